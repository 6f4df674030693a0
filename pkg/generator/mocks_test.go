package generator

import (
	"context"
	"sync"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"google.golang.org/genai"
)

// --- Mocks ---

// mockContentGenerator は ContentGenerator のテスト用モックなのだ。
type mockContentGenerator struct {
	mu           sync.Mutex
	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (m *mockContentGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	m.mu.Unlock()

	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, contents, config)
	}
	return imageResponse("image/png", make([]byte, 450)), nil
}

// mockImageGenerator は ImageGenerator のテスト用モックなのだ。
type mockImageGenerator struct {
	calls        int
	requests     []domain.GenerationRequest
	generateFunc func(call int, req domain.GenerationRequest) (*domain.ImagePayload, error)
}

func (m *mockImageGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.ImagePayload, error) {
	m.calls++
	m.requests = append(m.requests, req)
	if m.generateFunc != nil {
		return m.generateFunc(m.calls, req)
	}
	return &domain.ImagePayload{MIMEType: "image/png", Data: []byte("result")}, nil
}

// --- Helpers ---

func responseWithParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: parts},
		}},
	}
}

func imageResponse(mime string, data []byte) *genai.GenerateContentResponse {
	return responseWithParts(&genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: data}})
}
