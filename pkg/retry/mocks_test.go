package retry

import (
	"sync"
	"time"
)

// fakeTimer は実際には待たずに待機時間だけを記録する backoff.Timer なのだ。
type fakeTimer struct {
	mu     sync.Mutex
	delays []time.Duration
	c      chan time.Time
}

func (f *fakeTimer) Start(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays = append(f.delays, d)
	f.c = make(chan time.Time, 1)
	f.c <- time.Now()
}

func (f *fakeTimer) Stop() {}

func (f *fakeTimer) C() <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.c
}

func (f *fakeTimer) recorded() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.delays...)
}

// blockingTimer は永遠に発火しないタイマーなのだ。キャンセルの確認に使う。
type blockingTimer struct {
	started chan time.Duration
}

func (b *blockingTimer) Start(d time.Duration) { b.started <- d }
func (b *blockingTimer) Stop()                 {}
func (b *blockingTimer) C() <-chan time.Time   { return nil }
