package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result describes the outcome of one hit against a fixed window
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts hits per key inside fixed windows
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps the windows in process memory
type MemoryLimiter struct {
	max     int
	period  time.Duration
	now     func() time.Time
	windows map[string]*window
	mu      sync.Mutex
}

// NewMemoryLimiter creates a limiter allowing max hits per period and key
func NewMemoryLimiter(max int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     max,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

func (m *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, exists := m.windows[key]
	if !exists || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(m.period)}
		m.windows[key] = w
		m.sweep(now)
	}
	w.count++

	return result(w.count, m.max, w.resetAt), nil
}

// sweep drops expired windows so idle clients do not accumulate
func (m *MemoryLimiter) sweep(now time.Time) {
	for k, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, k)
		}
	}
}

func result(count, max int, resetAt time.Time) Result {
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= max,
		Limit:     max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
