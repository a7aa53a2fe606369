package ratelimit

import (
	"context"
	"fmt"
	"time"
)

const loginWindow = time.Minute

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter throttles login attempts per client key within a fixed window.
// A nil store or a zero limit disables the limiter.
type Limiter struct {
	store     WindowStore
	perMinute int
}

func NewLimiter(store WindowStore, perMinute int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	return &Limiter{store: store, perMinute: perMinute}
}

func (l *Limiter) AllowLogin(ctx context.Context, key string) (int64, bool, error) {
	if l == nil || l.store == nil || l.perMinute <= 0 {
		return 0, true, nil
	}
	if key == "" {
		return 0, false, fmt.Errorf("rate limit key is required")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, "rate:login:min:"+key, loginWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.perMinute) {
		return ceilSeconds(ttl), false, nil
	}

	return 0, true, nil
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
