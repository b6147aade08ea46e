package entity

// DetailsKind は詳細画面に出せる情報の充足度です。
type DetailsKind string

const (
	DetailsFull    DetailsKind = "full"
	DetailsPartial DetailsKind = "partial"
	DetailsEmpty   DetailsKind = "empty"
)

// StockDetails は銘柄詳細です。プロフィールが取れない場合は
// 直近の Top Movers に載っていた気配値だけで代替します。
type StockDetails struct {
	Symbol  string
	Profile *CompanyProfile
	Quote   *QuoteRecord
}

// Kind は保持している情報から詳細の種別を返します。
func (d StockDetails) Kind() DetailsKind {
	switch {
	case d.Profile != nil:
		return DetailsFull
	case d.Quote != nil:
		return DetailsPartial
	default:
		return DetailsEmpty
	}
}
