package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// VisitorLimiter keeps one token bucket per visitor
type VisitorLimiter struct {
	limit rate.Limit
	burst int

	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	lastAccess map[string]time.Time
	now        func() time.Time
}

// NewVisitorLimiter allows burst events at once and then one event per every
func NewVisitorLimiter(every time.Duration, burst int) *VisitorLimiter {
	return &VisitorLimiter{
		limit:      rate.Every(every),
		burst:      burst,
		limiters:   make(map[string]*rate.Limiter),
		lastAccess: make(map[string]time.Time),
		now:        time.Now,
	}
}

// Allow reports whether the visitor may perform one more event now
func (l *VisitorLimiter) Allow(visitorID string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[visitorID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[visitorID] = limiter
	}
	now := l.now()
	l.lastAccess[visitorID] = now
	l.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// Cleanup forgets visitors idle for longer than idle and returns how many were
// removed
func (l *VisitorLimiter) Cleanup(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	removed := 0
	for id, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.lastAccess, id)
			delete(l.limiters, id)
			removed++
		}
	}
	return removed
}

// Len is the number of tracked visitors
func (l *VisitorLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
