// Package ratelimit holds the process-wide limiter for the fundamentals provider quota.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// SlidingWindow allows at most limit calls in any rolling window. Callers over quota are
// delayed until a slot frees up; no call is ever rejected.
type SlidingWindow struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu     sync.Mutex
	grants []time.Time // ascending
}

// NewSlidingWindow creates a limiter for limit calls per window.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	if limit < 1 {
		limit = 1
	}
	return &SlidingWindow{
		limit:  limit,
		window: window,
		now:    time.Now,
		grants: make([]time.Time, 0, limit),
	}
}

// Reserve books the earliest slot that keeps the window within quota and returns how long
// the caller has to wait for it.
func (l *SlidingWindow) Reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	drop := 0
	for drop < len(l.grants) && !l.grants[drop].After(cutoff) {
		drop++
	}
	l.grants = l.grants[drop:]

	at := now
	if len(l.grants) >= l.limit {
		earliest := l.grants[len(l.grants)-l.limit].Add(l.window)
		if earliest.After(at) {
			at = earliest
		}
	}
	l.grants = append(l.grants, at)
	return at.Sub(now)
}

// Wait blocks until the caller may issue its call. The reserved slot is kept even if ctx
// is cancelled while waiting.
func (l *SlidingWindow) Wait(ctx context.Context) (time.Duration, error) {
	delay := l.Reserve()
	if delay <= 0 {
		return 0, nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return delay, nil
	case <-ctx.Done():
		return delay, ctx.Err()
	}
}

// InFlight reports how many grants fall inside the current window.
func (l *SlidingWindow) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	n := 0
	for _, g := range l.grants {
		if g.After(cutoff) {
			n++
		}
	}
	return n
}
