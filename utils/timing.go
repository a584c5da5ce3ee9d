package utils

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Throttle returns a wrapper that invokes fn at most once per interval.
// The leading call runs immediately; calls landing inside the window are
// dropped, not queued. Safe for concurrent use.
func Throttle(clock clockwork.Clock, interval time.Duration, fn func()) func() {
	var mu sync.Mutex
	var last time.Time

	return func() {
		mu.Lock()
		now := clock.Now()
		if !last.IsZero() && now.Sub(last) < interval {
			mu.Unlock()
			return
		}
		last = now
		mu.Unlock()

		fn()
	}
}

// Debounce returns a wrapper that delays fn until wait has passed with no
// further calls; only the trailing invocation fires. Safe for concurrent
// use.
func Debounce(clock clockwork.Clock, wait time.Duration, fn func()) func() {
	var mu sync.Mutex
	var pending clockwork.Timer

	return func() {
		mu.Lock()
		defer mu.Unlock()

		if pending != nil {
			pending.Stop()
		}
		pending = clock.AfterFunc(wait, fn)
	}
}
