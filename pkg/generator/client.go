package generator

import (
	"context"
	"strings"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"google.golang.org/genai"
)

// NewGeminiClient は API キーを明示的に受け取って genai.Client を作成します。
// キーが空の場合はネットワークに触れる前に Configuration エラーを返します。
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, &domain.Error{Kind: domain.KindConfiguration, Detail: "Gemini API key is not set"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindConfiguration, Detail: "failed to create Gemini client", Err: err}
	}
	return client, nil
}
