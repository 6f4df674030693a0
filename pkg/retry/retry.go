package retry

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shouni/gemini-tryon-kit/pkg/domain"
)

const (
	DefaultMaxAttempts = 4
	DefaultBaseDelay   = time.Second
)

// Policy は再試行の方針です。ゼロ値のフィールドは既定値で補われます。
type Policy struct {
	// MaxAttempts は初回を含む最大試行回数です。
	MaxAttempts int
	// BaseDelay は指数バックオフの基準値です。n 回目の失敗後は BaseDelay * 2^n 待ちます。
	BaseDelay time.Duration
	// Timer はテスト用に差し替え可能な待機タイマーです。nil なら実時間で待ちます。
	Timer backoff.Timer
	// Notify は待機に入る直前に呼ばれます。
	Notify func(err error, attempt int, delay time.Duration)
}

// DefaultPolicy は 1 回の初回試行 + 3 回の再試行、基準 1 秒の方針を返します。
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, BaseDelay: DefaultBaseDelay}
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	return p
}

// hintedBackOff は指数バックオフを進めつつ、サーバー指定の待機時間があればそちらを優先します。
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	next := h.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if h.hint > 0 {
		return h.hint
	}
	return next
}

func newExponential(base time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Do は op を実行し、レート制限エラーの場合のみ方針に従って再試行します。
//
// レート制限以外のエラーは 1 回目で即座にそのまま返します。
// 再試行を使い切った場合、元のエラーが 429 なら QuotaExceeded を、それ以外なら元のエラーを返します。
// 待機中に ctx がキャンセルされた場合は ctx.Err() を返します。
func Do[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	p = p.withDefaults()

	hinted := &hintedBackOff{BackOff: newExponential(p.BaseDelay)}
	b := backoff.WithMaxRetries(backoff.WithContext(hinted, ctx), uint64(p.MaxAttempts-1))

	attempt := 0
	var operation backoff.OperationWithData[T] = func() (T, error) {
		attempt++
		res, err := op()
		if err == nil {
			return res, nil
		}
		if !IsRateLimited(err) {
			return res, backoff.Permanent(err)
		}
		hinted.hint = RetryAfter(err)
		return res, err
	}

	notify := func(err error, delay time.Duration) {
		slog.WarnContext(ctx, "レート制限を検知しました。待機後に再試行します",
			"attempt", attempt, "max_attempts", p.MaxAttempts, "delay", delay, "error", err)
		if p.Notify != nil {
			p.Notify(err, attempt, delay)
		}
	}

	res, err := backoff.RetryNotifyWithTimerAndData[T](operation, b, notify, p.Timer)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil || !IsRateLimited(err) {
		return res, err
	}

	slog.WarnContext(ctx, "再試行の上限に達しました", "attempts", attempt, "error", err)
	if StatusCode(err) == http.StatusTooManyRequests {
		return res, &domain.Error{Kind: domain.KindQuotaExceeded, Code: http.StatusTooManyRequests, Err: err}
	}
	return res, err
}
