package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stockwatch_backend/internal/feature/logosearch/domain/entity"
	"stockwatch_backend/internal/feature/logosearch/transport/handler"
	"stockwatch_backend/internal/feature/logosearch/usecase"
	"stockwatch_backend/internal/feature/market/domain"
	marketentity "stockwatch_backend/internal/feature/market/domain/entity"
)

// mockLogoSearchUsecase はLogoSearchUsecaseインターフェースのモック実装です。
type mockLogoSearchUsecase struct {
	SearchByLogoFunc func(ctx context.Context, imageData []byte, apiKey string) ([]entity.LogoMatch, error)
	BriefCompanyFunc func(ctx context.Context, symbol, apiKey string) (*entity.CompanyBrief, error)
}

func (m *mockLogoSearchUsecase) SearchByLogo(ctx context.Context, imageData []byte, apiKey string) ([]entity.LogoMatch, error) {
	return m.SearchByLogoFunc(ctx, imageData, apiKey)
}

func (m *mockLogoSearchUsecase) BriefCompany(ctx context.Context, symbol, apiKey string) (*entity.CompanyBrief, error) {
	return m.BriefCompanyFunc(ctx, symbol, apiKey)
}

// createMultipartRequest はテスト用のマルチパートリクエストを生成するヘルパー関数です。
func createMultipartRequest(t *testing.T, fieldName, fileName string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		t.Fatalf("failed to copy content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/logos/search", body)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newRouter(uc handler.LogoSearchUsecase) *gin.Engine {
	h := handler.NewLogoSearchHandler(uc)
	r := gin.New()
	r.POST("/logos/search", h.SearchByLogo)
	r.POST("/logos/brief", h.BriefCompany)
	return r
}

func TestLogoSearchHandler_SearchByLogo(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupRequest   func(t *testing.T) *http.Request
		mockFunc       func(ctx context.Context, imageData []byte, apiKey string) ([]entity.LogoMatch, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: logos matched to symbols",
			setupRequest: func(t *testing.T) *http.Request {
				req := createMultipartRequest(t, "image", "test.jpg", []byte("fake-image"))
				req.Header.Set("X-API-Key", "user-key")
				return req
			},
			mockFunc: func(ctx context.Context, imageData []byte, apiKey string) ([]entity.LogoMatch, error) {
				if string(imageData) != "fake-image" || apiKey != "user-key" {
					return nil, errors.New("unexpected input")
				}
				return []entity.LogoMatch{{
					Logo:    entity.DetectedLogo{Name: "Apple", Confidence: 0.5},
					Matches: []marketentity.SearchMatch{{Symbol: "AAPL", Name: "Apple Inc"}},
				}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[{"name":"Apple","confidence":0.5,"matches":[
				{"symbol":"AAPL","name":"Apple Inc","type":"","region":"","market_open":"","market_close":"","timezone":"","currency":"","match_score":""}]}]`,
		},
		{
			name: "error: image field missing",
			setupRequest: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "file", "test.jpg", []byte("fake-image"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"image file is required"}`,
		},
		{
			name: "error: empty image",
			setupRequest: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "image", "test.jpg", []byte{})
			},
			mockFunc: func(ctx context.Context, imageData []byte, apiKey string) ([]entity.LogoMatch, error) {
				return nil, usecase.ErrEmptyImage
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"image data is empty"}`,
		},
		{
			name: "error: quota reached",
			setupRequest: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "image", "test.jpg", []byte("fake-image"))
			},
			mockFunc: func(ctx context.Context, imageData []byte, apiKey string) ([]entity.LogoMatch, error) {
				return nil, domain.Classify(fmt.Errorf("%w: note", domain.ErrQuotaExhausted))
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `{"error":"API limit reached. Please try again later."}`,
		},
		{
			name: "error: vision fails",
			setupRequest: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "image", "test.jpg", []byte("fake-image"))
			},
			mockFunc: func(ctx context.Context, imageData []byte, apiKey string) ([]entity.LogoMatch, error) {
				return nil, errors.New("logo detection failed: vision API request failed")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"upstream service failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockLogoSearchUsecase{SearchByLogoFunc: tt.mockFunc}
			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, tt.setupRequest(t))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestLogoSearchHandler_BriefCompany(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		mockFunc       func(ctx context.Context, symbol, apiKey string) (*entity.CompanyBrief, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: brief returned",
			body: `{"symbol":"AAPL"}`,
			mockFunc: func(ctx context.Context, symbol, apiKey string) (*entity.CompanyBrief, error) {
				return &entity.CompanyBrief{Symbol: symbol, Name: "Apple Inc", Brief: "- Brand"}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"AAPL","name":"Apple Inc","brief":"- Brand"}`,
		},
		{
			name:           "error: symbol missing",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"symbol is required"}`,
		},
		{
			name: "error: company not found",
			body: `{"symbol":"ZZZZ"}`,
			mockFunc: func(ctx context.Context, symbol, apiKey string) (*entity.CompanyBrief, error) {
				return nil, fmt.Errorf("%w: %s", usecase.ErrCompanyNotFound, symbol)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"company not found"}`,
		},
		{
			name: "error: upstream timeout",
			body: `{"symbol":"AAPL"}`,
			mockFunc: func(ctx context.Context, symbol, apiKey string) (*entity.CompanyBrief, error) {
				return nil, domain.Classify(context.DeadlineExceeded)
			},
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   `{"error":"Request timed out. Please try again."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockLogoSearchUsecase{BriefCompanyFunc: tt.mockFunc}
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/logos/brief", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			newRouter(uc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
