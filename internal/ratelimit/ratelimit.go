// Package ratelimit gates noisy diagnostic logging, so that a misconfigured
// hot path (e.g. repeatedly emitting to a receiver whose home thread has no
// registered loop) can't flood the configured Logger. It has no bearing on
// delivery semantics — only on how often a given diagnostic is surfaced.
package ratelimit

import (
	"time"

	"github.com/joeycumines/go-catrate"
)

// Limiter wraps a catrate.Limiter with a single sliding window: at most
// maxPerWindow events per category within the window given to New.
type Limiter struct {
	l *catrate.Limiter
}

// New returns a Limiter allowing up to maxPerWindow events per category
// within window.
func New(window time.Duration, maxPerWindow int) *Limiter {
	return &Limiter{
		l: catrate.NewLimiter(map[time.Duration]int{
			window: maxPerWindow,
		}),
	}
}

// Allow reports whether an event in category should be logged now.
func (r *Limiter) Allow(category string) bool {
	if r == nil || r.l == nil {
		return true
	}
	_, ok := r.l.Allow(category)
	return ok
}
