package entity

import "slices"

// NewsFeed is the aggregate news-sentiment response.
type NewsFeed struct {
	Items                    string
	SentimentScoreDefinition string
	RelevanceScoreDefinition string
	Feed                     []Article
}

// Article is a single news item with its sentiment scores.
type Article struct {
	Title                 string
	URL                   string
	TimePublished         string
	Authors               []string
	Summary               string
	BannerImage           string
	Source                string
	CategoryWithinSource  string
	SourceDomain          string
	Topics                []Topic
	OverallSentimentScore float64
	OverallSentimentLabel string
	TickerSentiment       []TickerSentiment
}

type Topic struct {
	Topic          string
	RelevanceScore string
}

type TickerSentiment struct {
	Ticker               string
	RelevanceScore       string
	TickerSentimentScore string
	TickerSentimentLabel string
}

// Clone returns a deep copy of the feed.
func (f NewsFeed) Clone() NewsFeed {
	if f.Feed == nil {
		return f
	}
	articles := make([]Article, len(f.Feed))
	for i, a := range f.Feed {
		a.Authors = slices.Clone(a.Authors)
		a.Topics = slices.Clone(a.Topics)
		a.TickerSentiment = slices.Clone(a.TickerSentiment)
		articles[i] = a
	}
	f.Feed = articles
	return f
}
