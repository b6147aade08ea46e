package dto

import "stockwatch_backend/internal/feature/market/domain/entity"

// CompanyResponse は企業情報のレスポンスDTOです。
type CompanyResponse struct {
	Symbol                     string `json:"symbol"`
	AssetType                  string `json:"asset_type"`
	Name                       string `json:"name"`
	Description                string `json:"description"`
	CIK                        string `json:"cik"`
	Exchange                   string `json:"exchange"`
	Currency                   string `json:"currency"`
	Country                    string `json:"country"`
	Sector                     string `json:"sector"`
	Industry                   string `json:"industry"`
	Address                    string `json:"address"`
	OfficialSite               string `json:"official_site"`
	FiscalYearEnd              string `json:"fiscal_year_end"`
	LatestQuarter              string `json:"latest_quarter"`
	MarketCapitalization       string `json:"market_capitalization"`
	EBITDA                     string `json:"ebitda"`
	PERatio                    string `json:"pe_ratio"`
	PEGRatio                   string `json:"peg_ratio"`
	BookValue                  string `json:"book_value"`
	DividendPerShare           string `json:"dividend_per_share"`
	DividendYield              string `json:"dividend_yield"`
	EPS                        string `json:"eps"`
	RevenuePerShareTTM         string `json:"revenue_per_share_ttm"`
	ProfitMargin               string `json:"profit_margin"`
	OperatingMarginTTM         string `json:"operating_margin_ttm"`
	ReturnOnAssetsTTM          string `json:"return_on_assets_ttm"`
	ReturnOnEquityTTM          string `json:"return_on_equity_ttm"`
	RevenueTTM                 string `json:"revenue_ttm"`
	GrossProfitTTM             string `json:"gross_profit_ttm"`
	DilutedEPSTTM              string `json:"diluted_eps_ttm"`
	QuarterlyEarningsGrowthYOY string `json:"quarterly_earnings_growth_yoy"`
	QuarterlyRevenueGrowthYOY  string `json:"quarterly_revenue_growth_yoy"`
	AnalystTargetPrice         string `json:"analyst_target_price"`
	AnalystRatingStrongBuy     string `json:"analyst_rating_strong_buy"`
	AnalystRatingBuy           string `json:"analyst_rating_buy"`
	AnalystRatingHold          string `json:"analyst_rating_hold"`
	AnalystRatingSell          string `json:"analyst_rating_sell"`
	AnalystRatingStrongSell    string `json:"analyst_rating_strong_sell"`
	TrailingPE                 string `json:"trailing_pe"`
	ForwardPE                  string `json:"forward_pe"`
	PriceToSalesRatioTTM       string `json:"price_to_sales_ratio_ttm"`
	PriceToBookRatio           string `json:"price_to_book_ratio"`
	EVToRevenue                string `json:"ev_to_revenue"`
	EVToEBITDA                 string `json:"ev_to_ebitda"`
	Beta                       string `json:"beta"`
	Week52High                 string `json:"week_52_high"`
	Week52Low                  string `json:"week_52_low"`
	Day50MovingAverage         string `json:"day_50_moving_average"`
	Day200MovingAverage        string `json:"day_200_moving_average"`
	SharesOutstanding          string `json:"shares_outstanding"`
	DividendDate               string `json:"dividend_date"`
	ExDividendDate             string `json:"ex_dividend_date"`
}

func NewCompanyResponse(p entity.CompanyProfile) CompanyResponse {
	return CompanyResponse{
		Symbol:                     p.Symbol,
		AssetType:                  p.AssetType,
		Name:                       p.Name,
		Description:                p.Description,
		CIK:                        p.CIK,
		Exchange:                   p.Exchange,
		Currency:                   p.Currency,
		Country:                    p.Country,
		Sector:                     p.Sector,
		Industry:                   p.Industry,
		Address:                    p.Address,
		OfficialSite:               p.OfficialSite,
		FiscalYearEnd:              p.FiscalYearEnd,
		LatestQuarter:              p.LatestQuarter,
		MarketCapitalization:       p.MarketCapitalization,
		EBITDA:                     p.EBITDA,
		PERatio:                    p.PERatio,
		PEGRatio:                   p.PEGRatio,
		BookValue:                  p.BookValue,
		DividendPerShare:           p.DividendPerShare,
		DividendYield:              p.DividendYield,
		EPS:                        p.EPS,
		RevenuePerShareTTM:         p.RevenuePerShareTTM,
		ProfitMargin:               p.ProfitMargin,
		OperatingMarginTTM:         p.OperatingMarginTTM,
		ReturnOnAssetsTTM:          p.ReturnOnAssetsTTM,
		ReturnOnEquityTTM:          p.ReturnOnEquityTTM,
		RevenueTTM:                 p.RevenueTTM,
		GrossProfitTTM:             p.GrossProfitTTM,
		DilutedEPSTTM:              p.DilutedEPSTTM,
		QuarterlyEarningsGrowthYOY: p.QuarterlyEarningsGrowthYOY,
		QuarterlyRevenueGrowthYOY:  p.QuarterlyRevenueGrowthYOY,
		AnalystTargetPrice:         p.AnalystTargetPrice,
		AnalystRatingStrongBuy:     p.AnalystRatingStrongBuy,
		AnalystRatingBuy:           p.AnalystRatingBuy,
		AnalystRatingHold:          p.AnalystRatingHold,
		AnalystRatingSell:          p.AnalystRatingSell,
		AnalystRatingStrongSell:    p.AnalystRatingStrongSell,
		TrailingPE:                 p.TrailingPE,
		ForwardPE:                  p.ForwardPE,
		PriceToSalesRatioTTM:       p.PriceToSalesRatioTTM,
		PriceToBookRatio:           p.PriceToBookRatio,
		EVToRevenue:                p.EVToRevenue,
		EVToEBITDA:                 p.EVToEBITDA,
		Beta:                       p.Beta,
		Week52High:                 p.Week52High,
		Week52Low:                  p.Week52Low,
		Day50MovingAverage:         p.Day50MovingAverage,
		Day200MovingAverage:        p.Day200MovingAverage,
		SharesOutstanding:          p.SharesOutstanding,
		DividendDate:               p.DividendDate,
		ExDividendDate:             p.ExDividendDate,
	}
}

// StockDetailsResponse は銘柄詳細のレスポンスDTOです。kind は full か partial です。
type StockDetailsResponse struct {
	Symbol  string           `json:"symbol"`
	Kind    string           `json:"kind"`
	Company *CompanyResponse `json:"company,omitempty"`
	Quote   *QuoteResponse   `json:"quote,omitempty"`
}

func NewStockDetailsResponse(d entity.StockDetails) StockDetailsResponse {
	out := StockDetailsResponse{Symbol: d.Symbol, Kind: string(d.Kind())}
	if d.Profile != nil {
		c := NewCompanyResponse(*d.Profile)
		out.Company = &c
	}
	if d.Quote != nil {
		q := NewQuoteResponse(*d.Quote)
		out.Quote = &q
	}
	return out
}
