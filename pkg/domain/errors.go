package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind は Error のバリアントを表します。
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindConfiguration
	KindRateLimited
	KindQuotaExceeded
	KindSafetyRefusal
	KindEmptyResult
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindConfiguration:
		return "Configuration"
	case KindRateLimited:
		return "RateLimited"
	case KindQuotaExceeded:
		return "QuotaExceeded"
	case KindSafetyRefusal:
		return "SafetyRefusal"
	case KindEmptyResult:
		return "EmptyResult"
	case KindTransport:
		return "Transport"
	default:
		return "Unknown"
	}
}

// UserMessage はエンドユーザーに表示してよい文言です。
// サービスの生のエラーやモデルのテキストは含めません。
func (k ErrorKind) UserMessage() string {
	switch k {
	case KindInvalidInput:
		return "Invalid image data. Expected 'data:mime/type;base64,data'."
	case KindConfiguration:
		return "The AI service is not configured. Please set an API key."
	case KindRateLimited:
		return "The AI service is busy right now. Please wait a moment and try again."
	case KindQuotaExceeded:
		return "You've exceeded your API quota limits. Please wait before trying again or upgrade your plan for higher limits."
	case KindSafetyRefusal:
		return "The AI was unable to process this request due to its safety policy. Please try different images."
	case KindEmptyResult:
		return "The AI failed to generate a valid image. The result was empty or incomplete."
	case KindTransport:
		return "A failure occurred while communicating with the AI. Please check your network connection and try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// Error は試着処理で発生するエラーのタグ付きバリアントです。
// Kind ごとに使うフィールドが異なります。
//   - KindRateLimited: Code, Status, RetryAfter (サーバー指定の待機時間、無ければ 0)
//   - KindSafetyRefusal: Detail にモデルが返したテキスト
//   - KindTransport, KindQuotaExceeded: Err に元のエラー
type Error struct {
	Kind       ErrorKind
	Code       int
	Status     string
	RetryAfter time.Duration
	Detail     string
	Err        error
}

// Error はユーザー向けの文言のみを返します。診断情報は Diagnostic を使ってください。
func (e *Error) Error() string {
	return e.Kind.UserMessage()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is は Kind が一致すれば同じエラーとみなします。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Diagnostic はログ出力用の詳細を返します。
func (e *Error) Diagnostic() string {
	msg := e.Kind.String()
	if e.Code != 0 {
		msg += fmt.Sprintf(" code=%d", e.Code)
	}
	if e.Status != "" {
		msg += " status=" + e.Status
	}
	if e.RetryAfter > 0 {
		msg += " retry_after=" + e.RetryAfter.String()
	}
	if e.Detail != "" {
		msg += " detail=" + e.Detail
	}
	if e.Err != nil {
		msg += " cause=" + e.Err.Error()
	}
	return msg
}

// errors.Is で Kind を判定するためのセンチネルです。
var (
	ErrInvalidInput  = &Error{Kind: KindInvalidInput}
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrRateLimited   = &Error{Kind: KindRateLimited}
	ErrQuotaExceeded = &Error{Kind: KindQuotaExceeded}
	ErrSafetyRefusal = &Error{Kind: KindSafetyRefusal}
	ErrEmptyResult   = &Error{Kind: KindEmptyResult}
	ErrTransport     = &Error{Kind: KindTransport}
)

// KindOf は err の連鎖から最初に見つかった Error の Kind を返します。
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
