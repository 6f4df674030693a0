package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"github.com/shouni/gemini-tryon-kit/pkg/retry"
	"google.golang.org/genai"
)

// GeminiTryOnGenerator は人物画像と衣服画像を Gemini に送り、合成画像を受け取るのだ。
// 呼び出しごとのリクエストはその場で組み立てて破棄するため、状態は持たないのだ。
type GeminiTryOnGenerator struct {
	models ContentGenerator
	cfg    GeneratorConfig
}

// NewGeminiTryOnGenerator は GeminiTryOnGenerator を初期化するのだ。
func NewGeminiTryOnGenerator(models ContentGenerator, cfg GeneratorConfig) (*GeminiTryOnGenerator, error) {
	if models == nil {
		return nil, fmt.Errorf("models (ContentGenerator) is required")
	}
	cfg.Model = strings.TrimPrefix(strings.TrimSpace(cfg.Model), "models/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return &GeminiTryOnGenerator{
		models: models,
		cfg:    cfg,
	}, nil
}

// Generate は1回だけリクエストを送信するのだ。再試行は呼び出し側 (retry.Do) の責務なのだ。
// 通信エラーは retry.Classify で RateLimited か Transport に分類して返すのだ。
func (g *GeminiTryOnGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.ImagePayload, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	seed := seedOrDefault(g.cfg.Seed)
	contents := []*genai.Content{genai.NewContentFromParts(buildParts(req), genai.RoleUser)}

	slog.InfoContext(ctx, "Geminiに試着画像の生成をリクエストします",
		"model", g.cfg.Model,
		"seed", seed,
		"person_mime", req.Person.MIMEType,
		"garment_mime", req.Garment.MIMEType,
	)

	resp, err := g.models.GenerateContent(ctx, g.cfg.Model, contents, buildConfig(seed))
	if err != nil {
		classified := retry.Classify(err)
		slog.WarnContext(ctx, "Geminiの呼び出しに失敗しました", "model", g.cfg.Model, "kind", domain.KindOf(classified), "error", err)
		return nil, classified
	}

	return ParseResponse(ctx, resp)
}
