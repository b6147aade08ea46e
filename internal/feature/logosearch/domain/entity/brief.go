package entity

// CompanyBrief は銘柄の企業概要から生成した要約です。
type CompanyBrief struct {
	Symbol string
	Name   string
	Brief  string // AI生成の要約
}
