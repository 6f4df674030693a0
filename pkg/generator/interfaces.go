package generator

import (
	"context"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"google.golang.org/genai"
)

// ContentGenerator は Gemini の generateContent 呼び出しを抽象化します。
// *genai.Models がそのまま満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImageGenerator は1回分の試着リクエストを送信し、編集後の画像を返します。
type ImageGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.ImagePayload, error)
}

// TryOnEditor はアプリケーション層が利用する唯一の窓口です。
type TryOnEditor interface {
	PerformEdit(ctx context.Context, personImage, garmentImage string, adj *domain.Adjustments) (string, error)
}
