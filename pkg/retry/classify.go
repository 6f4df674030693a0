package retry

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"google.golang.org/genai"
)

const (
	statusResourceExhausted = "RESOURCE_EXHAUSTED"
	retryInfoType           = "type.googleapis.com/google.rpc.RetryInfo"
)

// rateLimitPhrases はエラーメッセージ中にあればレート制限とみなす語句です（大文字小文字を区別）。
// 文言だけで判定するため誤判定の可能性がある脆いヒューリスティックですが、互換性のため維持しています。
var rateLimitPhrases = []string{"quota", "rate limit"}

func apiError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}

// StatusCode はエラーが持つ HTTP 形式のステータスコードを返します。無ければ 0 です。
func StatusCode(err error) int {
	var de *domain.Error
	if errors.As(err, &de) && de.Code != 0 {
		return de.Code
	}
	if ae, ok := apiError(err); ok {
		return ae.Code
	}
	return 0
}

// IsRateLimited はエラーが一時的なレート制限によるものかを判定します。
// 429、RESOURCE_EXHAUSTED、またはメッセージ中の "quota" / "rate limit" を対象とします。
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return de.Kind == domain.KindRateLimited
	}

	if ae, ok := apiError(err); ok {
		if ae.Code == http.StatusTooManyRequests || ae.Status == statusResourceExhausted {
			return true
		}
	}

	msg := err.Error()
	for _, phrase := range rateLimitPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// RetryAfter はサーバーが提示した再試行までの待機時間を返します。
// google.rpc.RetryInfo の retryDelay ("37s" など) を解釈し、無い場合や解釈できない場合は 0 です。
func RetryAfter(err error) time.Duration {
	var de *domain.Error
	if errors.As(err, &de) && de.RetryAfter > 0 {
		return de.RetryAfter
	}

	ae, ok := apiError(err)
	if !ok {
		return 0
	}
	for _, detail := range ae.Details {
		if t, _ := detail["@type"].(string); t != retryInfoType {
			continue
		}
		raw, _ := detail["retryDelay"].(string)
		if !strings.HasSuffix(raw, "s") {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			continue
		}
		return d
	}
	return 0
}

// Classify は生成サービス呼び出しで発生した生のエラーを domain.Error に分類します。
// 既に domain.Error であればそのまま返します。
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}

	ae, _ := apiError(err)
	if IsRateLimited(err) {
		return &domain.Error{
			Kind:       domain.KindRateLimited,
			Code:       ae.Code,
			Status:     ae.Status,
			RetryAfter: RetryAfter(err),
			Err:        err,
		}
	}
	return &domain.Error{
		Kind:   domain.KindTransport,
		Code:   ae.Code,
		Status: ae.Status,
		Err:    err,
	}
}
