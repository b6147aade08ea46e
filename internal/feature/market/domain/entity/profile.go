package entity

// CompanyProfile は企業の基本情報です。上流が返すフィールドをすべて文字列で保持します。
type CompanyProfile struct {
	Symbol                     string
	AssetType                  string
	Name                       string
	Description                string
	CIK                        string
	Exchange                   string
	Currency                   string
	Country                    string
	Sector                     string
	Industry                   string
	Address                    string
	OfficialSite               string
	FiscalYearEnd              string
	LatestQuarter              string
	MarketCapitalization       string
	EBITDA                     string
	PERatio                    string
	PEGRatio                   string
	BookValue                  string
	DividendPerShare           string
	DividendYield              string
	EPS                        string
	RevenuePerShareTTM         string
	ProfitMargin               string
	OperatingMarginTTM         string
	ReturnOnAssetsTTM          string
	ReturnOnEquityTTM          string
	RevenueTTM                 string
	GrossProfitTTM             string
	DilutedEPSTTM              string
	QuarterlyEarningsGrowthYOY string
	QuarterlyRevenueGrowthYOY  string
	AnalystTargetPrice         string
	AnalystRatingStrongBuy     string
	AnalystRatingBuy           string
	AnalystRatingHold          string
	AnalystRatingSell          string
	AnalystRatingStrongSell    string
	TrailingPE                 string
	ForwardPE                  string
	PriceToSalesRatioTTM       string
	PriceToBookRatio           string
	EVToRevenue                string
	EVToEBITDA                 string
	Beta                       string
	Week52High                 string
	Week52Low                  string
	Day50MovingAverage         string
	Day200MovingAverage        string
	SharesOutstanding          string
	DividendDate               string
	ExDividendDate             string
}

// Found は上流が実在する企業の情報を返したかどうかを判定します。
// 未知のシンボルに対して上流は空のオブジェクトを返すため、Name の有無で判断します。
func (p CompanyProfile) Found() bool {
	return p.Name != ""
}
