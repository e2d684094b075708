package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter keeps per-user request windows in process memory.
// Suitable for a single gateway instance or as a redis fallback.
type MemoryRateLimiter struct {
	windows sync.Map
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{}
}

type rateWindow struct {
	mu        sync.Mutex
	count     int
	expiresAt time.Time
}

func (r *MemoryRateLimiter) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	val, _ := r.windows.LoadOrStore(userID, &rateWindow{})
	entry := val.(*rateWindow)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.expiresAt) {
		entry.count = 1
		entry.expiresAt = now.Add(window)
	} else {
		entry.count++
	}

	return entry.count <= limit, nil
}
