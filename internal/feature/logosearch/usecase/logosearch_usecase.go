// Package usecase はlogosearchフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"stockwatch_backend/internal/feature/logosearch/domain/entity"
	marketentity "stockwatch_backend/internal/feature/market/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// MaxLogos はシンボル検索にかけるロゴの数です。検索1回ごとに API クォータを消費します。
	MaxLogos = 3
	// MaxMatchesPerLogo はロゴ1つあたりに返す検索候補の数です。
	MaxMatchesPerLogo = 5
	// BriefPromptTemplate は企業要約のプロンプトテンプレートです。
	BriefPromptTemplate = "From an investor's point of view, list three key strengths of %s (%s, %s / %s) " +
		"as short bullet points. Company description: %s"
)

// LogoDetector は画像からロゴを検出するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type LogoDetector interface {
	// DetectLogos は画像バイト列からロゴを検出し、検出結果を返します。
	DetectLogos(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error)
}

// Briefer はプロンプトから文章を生成します。
type Briefer interface {
	Brief(ctx context.Context, prompt string) (string, error)
}

// MarketLookup はデータアクセス層のうちロゴ検索で使う操作です。
type MarketLookup interface {
	SearchSymbols(ctx context.Context, keywords, apiKey string) (marketentity.SearchResults, error)
	GetCompanyProfile(ctx context.Context, symbol, apiKey string) (*marketentity.CompanyProfile, error)
}

// LogoSearchUsecase はロゴ画像から銘柄を探し、企業の要約を生成します。
type LogoSearchUsecase struct {
	detector LogoDetector
	briefer  Briefer
	market   MarketLookup
}

// NewLogoSearchUsecase はLogoSearchUsecaseの新しいインスタンスを生成します。
func NewLogoSearchUsecase(d LogoDetector, b Briefer, m MarketLookup) *LogoSearchUsecase {
	return &LogoSearchUsecase{detector: d, briefer: b, market: m}
}

// SearchByLogo は画像からロゴを検出し、信頼度の高い順に最大 MaxLogos 件をシンボル検索にかけます。
// 検索の失敗は分類済みのエラーとしてそのまま返します。
func (u *LogoSearchUsecase) SearchByLogo(ctx context.Context, imageData []byte, apiKey string) ([]entity.LogoMatch, error) {
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(imageData), MaxImageSize)
	}

	logos, err := u.detector.DetectLogos(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("logo detection failed: %w", err)
	}
	slices.SortStableFunc(logos, func(a, b entity.DetectedLogo) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	if len(logos) > MaxLogos {
		logos = logos[:MaxLogos]
	}

	out := make([]entity.LogoMatch, 0, len(logos))
	for _, logo := range logos {
		res, err := u.market.SearchSymbols(ctx, logo.Name, apiKey)
		if err != nil {
			return nil, err
		}
		matches := res.BestMatches
		if len(matches) > MaxMatchesPerLogo {
			matches = matches[:MaxMatchesPerLogo]
		}
		slog.Debug("logo matched", "logo", logo.Name, "confidence", logo.Confidence, "matches", len(matches))
		out = append(out, entity.LogoMatch{Logo: logo, Matches: matches})
	}
	return out, nil
}

// BriefCompany はデータアクセス層から企業情報を取得し、要約を生成します。
func (u *LogoSearchUsecase) BriefCompany(ctx context.Context, symbol, apiKey string) (*entity.CompanyBrief, error) {
	profile, err := u.market.GetCompanyProfile(ctx, symbol, apiKey)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, symbol)
	}

	prompt := fmt.Sprintf(BriefPromptTemplate,
		profile.Name, profile.Symbol, profile.Sector, profile.Industry, profile.Description)
	brief, err := u.briefer.Brief(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("briefer failed for %q: %w", profile.Symbol, err)
	}
	return &entity.CompanyBrief{Symbol: profile.Symbol, Name: profile.Name, Brief: brief}, nil
}
