// Package gemini は Gemini による企業要約を Briefer として提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"stockwatch_backend/internal/feature/logosearch/usecase"
)

const (
	// DefaultModel は GEMINI_MODEL が未設定のときのモデルです。
	DefaultModel = "gemini-2.5-flash"

	briefTemperature     = 0.3
	briefMaxOutputTokens = 512
	systemInstruction    = "You summarize listed companies for retail investors. Use only the facts given. No investment advice."
)

// ErrEmptyBrief はモデルが本文を返さなかったことを表します。
var ErrEmptyBrief = errors.New("gemini returned no text")

// generateFunc は genai の Models.GenerateContent と同じ形の関数です。
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GeminiBriefer は企業情報のプロンプトから短い要約を生成します。
type GeminiBriefer struct {
	generate generateFunc
	model    string
}

var _ usecase.Briefer = (*GeminiBriefer)(nil)

// NewGeminiBriefer は ADC を使ってクライアントを作成します。
// GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiBriefer(ctx context.Context) (*GeminiBriefer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = DefaultModel
	}
	return &GeminiBriefer{generate: client.Models.GenerateContent, model: model}, nil
}

// Brief はプロンプトから要約を生成します。
func (g *GeminiBriefer) Brief(ctx context.Context, prompt string) (string, error) {
	resp, err := g.generate(ctx, g.model, genai.Text(prompt), briefConfig())
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyBrief
	}
	return text, nil
}

func briefConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](briefTemperature),
		MaxOutputTokens:   briefMaxOutputTokens,
	}
}
