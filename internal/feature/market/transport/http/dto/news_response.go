package dto

import "stockwatch_backend/internal/feature/market/domain/entity"

// ArticleResponse はニュース記事のレスポンスDTOです。
type ArticleResponse struct {
	Title                 string                    `json:"title"`
	URL                   string                    `json:"url"`
	TimePublished         string                    `json:"time_published"`
	Authors               []string                  `json:"authors"`
	Summary               string                    `json:"summary"`
	BannerImage           string                    `json:"banner_image,omitempty"`
	Source                string                    `json:"source"`
	SourceDomain          string                    `json:"source_domain"`
	Topics                []TopicResponse           `json:"topics"`
	OverallSentimentScore float64                   `json:"overall_sentiment_score"`
	OverallSentimentLabel string                    `json:"overall_sentiment_label"`
	TickerSentiment       []TickerSentimentResponse `json:"ticker_sentiment"`
}

type TopicResponse struct {
	Topic          string `json:"topic"`
	RelevanceScore string `json:"relevance_score"`
}

type TickerSentimentResponse struct {
	Ticker         string `json:"ticker"`
	RelevanceScore string `json:"relevance_score"`
	Score          string `json:"ticker_sentiment_score"`
	Label          string `json:"ticker_sentiment_label"`
}

// NewsResponse はニュースフィードのレスポンスDTOです。
type NewsResponse struct {
	Items string            `json:"items"`
	Feed  []ArticleResponse `json:"feed"`
}

func NewNewsResponse(f entity.NewsFeed) NewsResponse {
	out := NewsResponse{Items: f.Items, Feed: make([]ArticleResponse, 0, len(f.Feed))}
	for _, a := range f.Feed {
		r := ArticleResponse{
			Title:                 a.Title,
			URL:                   a.URL,
			TimePublished:         a.TimePublished,
			Authors:               a.Authors,
			Summary:               a.Summary,
			BannerImage:           a.BannerImage,
			Source:                a.Source,
			SourceDomain:          a.SourceDomain,
			Topics:                make([]TopicResponse, 0, len(a.Topics)),
			OverallSentimentScore: a.OverallSentimentScore,
			OverallSentimentLabel: a.OverallSentimentLabel,
			TickerSentiment:       make([]TickerSentimentResponse, 0, len(a.TickerSentiment)),
		}
		if r.Authors == nil {
			r.Authors = []string{}
		}
		for _, t := range a.Topics {
			r.Topics = append(r.Topics, TopicResponse{Topic: t.Topic, RelevanceScore: t.RelevanceScore})
		}
		for _, ts := range a.TickerSentiment {
			r.TickerSentiment = append(r.TickerSentiment, TickerSentimentResponse{
				Ticker:         ts.Ticker,
				RelevanceScore: ts.RelevanceScore,
				Score:          ts.TickerSentimentScore,
				Label:          ts.TickerSentimentLabel,
			})
		}
		out.Feed = append(out.Feed, r)
	}
	return out
}
