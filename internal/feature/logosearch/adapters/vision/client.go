// Package vision は Cloud Vision のロゴ検出を LogoDetector として提供します。
package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"

	"stockwatch_backend/internal/feature/logosearch/domain/entity"
	"stockwatch_backend/internal/feature/logosearch/usecase"
)

// maxLogoResults は Vision に要求するロゴ候補の上限です。上位 usecase.MaxLogos 件だけが検索に回ります。
const maxLogoResults = 10

// ErrVisionResponse は Vision が画像単位のエラーを返したことを表します。
var ErrVisionResponse = errors.New("vision annotate error")

// annotator は ImageAnnotatorClient のうち使用する操作です。
type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// VisionLogoDetector は画像に写った企業ロゴを検出します。
type VisionLogoDetector struct {
	client annotator
}

var _ usecase.LogoDetector = (*VisionLogoDetector)(nil)

// NewVisionLogoDetector は ADC で認証したクライアントを作成します。
func NewVisionLogoDetector(ctx context.Context) (*VisionLogoDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionLogoDetector{client: client}, nil
}

func (v *VisionLogoDetector) Close() error {
	return v.client.Close()
}

// DetectLogos は画像1枚のロゴを検出します。同じ名前のロゴは最も高い信頼度の1件にまとめます。
func (v *VisionLogoDetector) DetectLogos(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error) {
	resp, err := v.client.BatchAnnotateImages(ctx, logoRequest(imageData))
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}
	return toLogos(resp)
}

func logoRequest(imageData []byte) *visionpb.BatchAnnotateImagesRequest {
	return &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: imageData},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_LOGO_DETECTION, MaxResults: maxLogoResults}},
		}},
	}
}

// toLogos は先頭画像のロゴ注釈を取り出します。説明のない注釈は捨てます。
func toLogos(resp *visionpb.BatchAnnotateImagesResponse) ([]entity.DetectedLogo, error) {
	if len(resp.GetResponses()) == 0 {
		return nil, nil
	}
	first := resp.GetResponses()[0]
	if st := first.GetError(); st != nil {
		return nil, fmt.Errorf("%w: %s", ErrVisionResponse, st.GetMessage())
	}

	var logos []entity.DetectedLogo
	index := make(map[string]int)
	for _, a := range first.GetLogoAnnotations() {
		name := strings.TrimSpace(a.GetDescription())
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			if a.GetScore() > logos[i].Confidence {
				logos[i].Confidence = a.GetScore()
			}
			continue
		}
		index[key] = len(logos)
		logos = append(logos, entity.DetectedLogo{Name: name, Confidence: a.GetScore()})
	}
	return logos, nil
}
