package handlers

import (
	"sync"

	"golang.org/x/time/rate"
)

// StepLimiter throttles batch requests per run.
// A zero limit disables throttling.
type StepLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewStepLimiter(perSecond float64, burst int) *StepLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &StepLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether another batch may run on runID now.
func (l *StepLimiter) Allow(runID string) bool {
	if l == nil || l.limit <= 0 {
		return true
	}

	l.mu.Lock()
	lim, ok := l.limiters[runID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[runID] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}

// Forget drops the limiter of a discarded run.
func (l *StepLimiter) Forget(runID string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	delete(l.limiters, runID)
	l.mu.Unlock()
}
