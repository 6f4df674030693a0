package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"github.com/shouni/gemini-tryon-kit/pkg/imgutil"
	"github.com/shouni/gemini-tryon-kit/pkg/prompt"
	"github.com/shouni/gemini-tryon-kit/pkg/retry"
)

// Options は NewTryOnServiceFromOptions に渡す設定です。
type Options struct {
	APIKey    string
	Generator GeneratorConfig
	Retry     retry.Policy
}

// TryOnService は画像の変換、指示文の組み立て、生成呼び出し、再試行を束ねる基盤なのだ。
// 呼び出しローカルなデータ以外の可変状態は持たないのだ。
type TryOnService struct {
	generator ImageGenerator
	policy    retry.Policy
}

var _ TryOnEditor = (*TryOnService)(nil)

// NewTryOnService は依存関係を注入して TryOnService を初期化します。
func NewTryOnService(generator ImageGenerator, policy retry.Policy) (*TryOnService, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	return &TryOnService{
		generator: generator,
		policy:    policy,
	}, nil
}

// NewTryOnServiceFromOptions は Gemini クライアントを作成して TryOnService を組み立てます。
// API キーが無い場合は Configuration エラーになります。
func NewTryOnServiceFromOptions(ctx context.Context, opts Options) (*TryOnService, error) {
	client, err := NewGeminiClient(ctx, opts.APIKey)
	if err != nil {
		return nil, err
	}
	gen, err := NewGeminiTryOnGenerator(client.Models, opts.Generator)
	if err != nil {
		return nil, err
	}
	return NewTryOnService(gen, opts.Retry)
}

// PerformEdit は人物画像に衣服画像を合成した結果を data URL で返します。
// personImage, garmentImage はどちらも data:<mime>;base64,<payload> 形式です。
// 失敗時は domain.Error を返し、Error() はユーザーに表示できる文言だけを含みます。
func (s *TryOnService) PerformEdit(ctx context.Context, personImage, garmentImage string, adj *domain.Adjustments) (string, error) {
	person, err := imgutil.ParseDataURL(personImage)
	if err != nil {
		return "", s.fail(ctx, "person", err)
	}
	garment, err := imgutil.ParseDataURL(garmentImage)
	if err != nil {
		return "", s.fail(ctx, "garment", err)
	}
	if err := adj.Validate(); err != nil {
		return "", s.fail(ctx, "adjustments", err)
	}

	instruction := prompt.Build(adj)

	out, err := retry.Do(ctx, s.policy, func() (*domain.ImagePayload, error) {
		return s.generator.Generate(ctx, domain.GenerationRequest{
			Person:      person,
			Garment:     garment,
			Instruction: instruction,
		})
	})
	if err != nil {
		return "", s.fail(ctx, "generate", err)
	}

	slog.InfoContext(ctx, "試着画像を生成しました", "mime", out.MIMEType, "bytes", len(out.Data))
	return out.DataURL(), nil
}

// fail は診断情報をログに残し、呼び出し側へは分類済みのエラーだけを返すのだ。
func (s *TryOnService) fail(ctx context.Context, stage string, err error) error {
	if domain.KindOf(err) == domain.KindUnknown {
		err = retry.Classify(err)
	}
	diag := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		diag = de.Diagnostic()
	}
	slog.ErrorContext(ctx, "試着画像の生成に失敗しました", "stage", stage, "kind", domain.KindOf(err), "diagnostic", diag)
	return err
}
