package services

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimiterManager hands out one token bucket per key (the session email for
// feedback submissions). Idle buckets are evicted.
type LimiterManager struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	done     chan struct{}
	stopOnce sync.Once
}

func NewLimiterManager(requestsPerMin, burst int) *LimiterManager {
	if burst <= 0 {
		burst = 1
	}

	m := &LimiterManager{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
		done:     make(chan struct{}),
	}

	go m.cleanupRoutine(10 * time.Minute)
	return m
}

func (m *LimiterManager) limiter(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, exists := m.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(m.rate, m.burst)
		m.limiters[key] = limiter
	}
	m.lastSeen[key] = time.Now()

	return limiter
}

// Allow is non-blocking.
func (m *LimiterManager) Allow(key string) bool {
	return m.limiter(key).Allow()
}

func (m *LimiterManager) ActiveKeys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.limiters)
}

func (m *LimiterManager) cleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle(interval)
		case <-m.done:
			return
		}
	}
}

func (m *LimiterManager) evictIdle(age time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, seen := range m.lastSeen {
		if now.Sub(seen) > age {
			delete(m.limiters, key)
			delete(m.lastSeen, key)
		}
	}
}

func (m *LimiterManager) Close() {
	m.stopOnce.Do(func() { close(m.done) })
}
