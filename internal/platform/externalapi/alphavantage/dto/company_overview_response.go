package dto

import "stockwatch_backend/internal/feature/market/domain/entity"

// CompanyOverviewResponse は OVERVIEW のレスポンスです。未知のシンボルには空のオブジェクトが返ります。
type CompanyOverviewResponse struct {
	Symbol                     string `json:"Symbol"`
	AssetType                  string `json:"AssetType"`
	Name                       string `json:"Name"`
	Description                string `json:"Description"`
	CIK                        string `json:"CIK"`
	Exchange                   string `json:"Exchange"`
	Currency                   string `json:"Currency"`
	Country                    string `json:"Country"`
	Sector                     string `json:"Sector"`
	Industry                   string `json:"Industry"`
	Address                    string `json:"Address"`
	OfficialSite               string `json:"OfficialSite"`
	FiscalYearEnd              string `json:"FiscalYearEnd"`
	LatestQuarter              string `json:"LatestQuarter"`
	MarketCapitalization       string `json:"MarketCapitalization"`
	EBITDA                     string `json:"EBITDA"`
	PERatio                    string `json:"PERatio"`
	PEGRatio                   string `json:"PEGRatio"`
	BookValue                  string `json:"BookValue"`
	DividendPerShare           string `json:"DividendPerShare"`
	DividendYield              string `json:"DividendYield"`
	EPS                        string `json:"EPS"`
	RevenuePerShareTTM         string `json:"RevenuePerShareTTM"`
	ProfitMargin               string `json:"ProfitMargin"`
	OperatingMarginTTM         string `json:"OperatingMarginTTM"`
	ReturnOnAssetsTTM          string `json:"ReturnOnAssetsTTM"`
	ReturnOnEquityTTM          string `json:"ReturnOnEquityTTM"`
	RevenueTTM                 string `json:"RevenueTTM"`
	GrossProfitTTM             string `json:"GrossProfitTTM"`
	DilutedEPSTTM              string `json:"DilutedEPSTTM"`
	QuarterlyEarningsGrowthYOY string `json:"QuarterlyEarningsGrowthYOY"`
	QuarterlyRevenueGrowthYOY  string `json:"QuarterlyRevenueGrowthYOY"`
	AnalystTargetPrice         string `json:"AnalystTargetPrice"`
	AnalystRatingStrongBuy     string `json:"AnalystRatingStrongBuy"`
	AnalystRatingBuy           string `json:"AnalystRatingBuy"`
	AnalystRatingHold          string `json:"AnalystRatingHold"`
	AnalystRatingSell          string `json:"AnalystRatingSell"`
	AnalystRatingStrongSell    string `json:"AnalystRatingStrongSell"`
	TrailingPE                 string `json:"TrailingPE"`
	ForwardPE                  string `json:"ForwardPE"`
	PriceToSalesRatioTTM       string `json:"PriceToSalesRatioTTM"`
	PriceToBookRatio           string `json:"PriceToBookRatio"`
	EVToRevenue                string `json:"EVToRevenue"`
	EVToEBITDA                 string `json:"EVToEBITDA"`
	Beta                       string `json:"Beta"`
	Week52High                 string `json:"52WeekHigh"`
	Week52Low                  string `json:"52WeekLow"`
	Day50MovingAverage         string `json:"50DayMovingAverage"`
	Day200MovingAverage        string `json:"200DayMovingAverage"`
	SharesOutstanding          string `json:"SharesOutstanding"`
	DividendDate               string `json:"DividendDate"`
	ExDividendDate             string `json:"ExDividendDate"`
}

// ToEntity はレスポンスをドメインの企業情報に変換します。
func (r CompanyOverviewResponse) ToEntity() entity.CompanyProfile {
	return entity.CompanyProfile{
		Symbol:                     r.Symbol,
		AssetType:                  r.AssetType,
		Name:                       r.Name,
		Description:                r.Description,
		CIK:                        r.CIK,
		Exchange:                   r.Exchange,
		Currency:                   r.Currency,
		Country:                    r.Country,
		Sector:                     r.Sector,
		Industry:                   r.Industry,
		Address:                    r.Address,
		OfficialSite:               r.OfficialSite,
		FiscalYearEnd:              r.FiscalYearEnd,
		LatestQuarter:              r.LatestQuarter,
		MarketCapitalization:       r.MarketCapitalization,
		EBITDA:                     r.EBITDA,
		PERatio:                    r.PERatio,
		PEGRatio:                   r.PEGRatio,
		BookValue:                  r.BookValue,
		DividendPerShare:           r.DividendPerShare,
		DividendYield:              r.DividendYield,
		EPS:                        r.EPS,
		RevenuePerShareTTM:         r.RevenuePerShareTTM,
		ProfitMargin:               r.ProfitMargin,
		OperatingMarginTTM:         r.OperatingMarginTTM,
		ReturnOnAssetsTTM:          r.ReturnOnAssetsTTM,
		ReturnOnEquityTTM:          r.ReturnOnEquityTTM,
		RevenueTTM:                 r.RevenueTTM,
		GrossProfitTTM:             r.GrossProfitTTM,
		DilutedEPSTTM:              r.DilutedEPSTTM,
		QuarterlyEarningsGrowthYOY: r.QuarterlyEarningsGrowthYOY,
		QuarterlyRevenueGrowthYOY:  r.QuarterlyRevenueGrowthYOY,
		AnalystTargetPrice:         r.AnalystTargetPrice,
		AnalystRatingStrongBuy:     r.AnalystRatingStrongBuy,
		AnalystRatingBuy:           r.AnalystRatingBuy,
		AnalystRatingHold:          r.AnalystRatingHold,
		AnalystRatingSell:          r.AnalystRatingSell,
		AnalystRatingStrongSell:    r.AnalystRatingStrongSell,
		TrailingPE:                 r.TrailingPE,
		ForwardPE:                  r.ForwardPE,
		PriceToSalesRatioTTM:       r.PriceToSalesRatioTTM,
		PriceToBookRatio:           r.PriceToBookRatio,
		EVToRevenue:                r.EVToRevenue,
		EVToEBITDA:                 r.EVToEBITDA,
		Beta:                       r.Beta,
		Week52High:                 r.Week52High,
		Week52Low:                  r.Week52Low,
		Day50MovingAverage:         r.Day50MovingAverage,
		Day200MovingAverage:        r.Day200MovingAverage,
		SharesOutstanding:          r.SharesOutstanding,
		DividendDate:               r.DividendDate,
		ExDividendDate:             r.ExDividendDate,
	}
}
