package generator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"google.golang.org/genai"
)

// buildParts は人物・衣服の順に、それぞれの前にラベルを挟んだパーツ列を作るのだ。
func buildParts(req domain.GenerationRequest) []*genai.Part {
	return []*genai.Part{
		genai.NewPartFromText(personLabel),
		toPart(req.Person),
		genai.NewPartFromText(garmentLabel),
		toPart(req.Garment),
		genai.NewPartFromText(instructionHeader + req.Instruction),
	}
}

func toPart(p domain.ImagePayload) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{MIMEType: p.MIMEType, Data: p.Data}}
}

// buildConfig は決定的な出力のための固定パラメータを返すのだ。
func buildConfig(seed int64) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:        genai.Ptr[float32](0),
		Seed:               seedToPtrInt32(&seed),
		ResponseModalities: []string{string(genai.ModalityImage), string(genai.ModalityText)},
	}
}

// ParseResponse は Gemini のレスポンスを解析します。
//
//  1. MinImagePayloadChars を超える最初の InlineData を成功として返す
//  2. 画像が無くテキストがあれば SafetyRefusal (テキストはログにのみ出す)
//  3. どちらも無ければ EmptyResult
func ParseResponse(ctx context.Context, resp *genai.GenerateContentResponse) (*domain.ImagePayload, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &domain.Error{Kind: domain.KindEmptyResult, Detail: "no candidates"}
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]
	if candidate == nil {
		return nil, &domain.Error{Kind: domain.KindEmptyResult, Detail: "nil candidate"}
	}
	var parts []*genai.Part
	if candidate.Content != nil {
		parts = candidate.Content.Parts
	}

	for _, part := range parts {
		if part == nil || part.InlineData == nil {
			continue
		}
		img := domain.ImagePayload{MIMEType: part.InlineData.MIMEType, Data: part.InlineData.Data}
		if img.EncodedLen() > MinImagePayloadChars {
			return &img, nil
		}
		slog.DebugContext(ctx, "小さすぎる画像パーツを無視しました", "encoded_len", img.EncodedLen())
	}

	if text := collectText(parts); text != "" {
		slog.WarnContext(ctx, "画像の代わりにテキストが返されました", "text", text, "finish_reason", candidate.FinishReason)
		return nil, &domain.Error{Kind: domain.KindSafetyRefusal, Detail: text}
	}

	return nil, &domain.Error{
		Kind:   domain.KindEmptyResult,
		Detail: "no image or text in response (finish_reason=" + string(candidate.FinishReason) + ")",
	}
}

func collectText(parts []*genai.Part) string {
	var sb strings.Builder
	for _, part := range parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}
