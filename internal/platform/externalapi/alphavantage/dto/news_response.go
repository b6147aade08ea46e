package dto

import "stockwatch_backend/internal/feature/market/domain/entity"

// NewsSentimentResponse は NEWS_SENTIMENT のレスポンスです。
type NewsSentimentResponse struct {
	Items                    string       `json:"items"`
	SentimentScoreDefinition string       `json:"sentiment_score_definition"`
	RelevanceScoreDefinition string       `json:"relevance_score_definition"`
	Feed                     []ArticleDTO `json:"feed"`
}

type ArticleDTO struct {
	Title                 string               `json:"title"`
	URL                   string               `json:"url"`
	TimePublished         string               `json:"time_published"`
	Authors               []string             `json:"authors"`
	Summary               string               `json:"summary"`
	BannerImage           string               `json:"banner_image"`
	Source                string               `json:"source"`
	CategoryWithinSource  string               `json:"category_within_source"`
	SourceDomain          string               `json:"source_domain"`
	Topics                []TopicDTO           `json:"topics"`
	OverallSentimentScore float64              `json:"overall_sentiment_score"`
	OverallSentimentLabel string               `json:"overall_sentiment_label"`
	TickerSentiment       []TickerSentimentDTO `json:"ticker_sentiment"`
}

type TopicDTO struct {
	Topic          string `json:"topic"`
	RelevanceScore string `json:"relevance_score"`
}

type TickerSentimentDTO struct {
	Ticker               string `json:"ticker"`
	RelevanceScore       string `json:"relevance_score"`
	TickerSentimentScore string `json:"ticker_sentiment_score"`
	TickerSentimentLabel string `json:"ticker_sentiment_label"`
}

// ToEntity はレスポンスをドメインのニュースフィードに変換します。
func (r NewsSentimentResponse) ToEntity() entity.NewsFeed {
	out := entity.NewsFeed{
		Items:                    r.Items,
		SentimentScoreDefinition: r.SentimentScoreDefinition,
		RelevanceScoreDefinition: r.RelevanceScoreDefinition,
		Feed:                     make([]entity.Article, 0, len(r.Feed)),
	}
	for _, a := range r.Feed {
		article := entity.Article{
			Title:                 a.Title,
			URL:                   a.URL,
			TimePublished:         a.TimePublished,
			Authors:               a.Authors,
			Summary:               a.Summary,
			BannerImage:           a.BannerImage,
			Source:                a.Source,
			CategoryWithinSource:  a.CategoryWithinSource,
			SourceDomain:          a.SourceDomain,
			OverallSentimentScore: a.OverallSentimentScore,
			OverallSentimentLabel: a.OverallSentimentLabel,
		}
		for _, t := range a.Topics {
			article.Topics = append(article.Topics, entity.Topic{Topic: t.Topic, RelevanceScore: t.RelevanceScore})
		}
		for _, ts := range a.TickerSentiment {
			article.TickerSentiment = append(article.TickerSentiment, entity.TickerSentiment{
				Ticker:               ts.Ticker,
				RelevanceScore:       ts.RelevanceScore,
				TickerSentimentScore: ts.TickerSentimentScore,
				TickerSentimentLabel: ts.TickerSentimentLabel,
			})
		}
		out.Feed = append(out.Feed, article)
	}
	return out
}
