package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MovingWindow допускает в среднем limit запросов на ключ за window,
// сглаживая всплески токен-бакетом x/time/rate: токены пополняются
// непрерывно, а не сбросом по границе окна.
type MovingWindow struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewMovingWindow создает лимитер с квотой limit запросов за window.
func NewMovingWindow(limit int, window time.Duration) *MovingWindow {
	if window <= 0 {
		window = time.Minute
	}
	return &MovingWindow{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(limit) / window.Seconds()),
		burst:    limit,
	}
}

// Allow учитывает запрос с данным ключом и сообщает решение.
func (mw *MovingWindow) Allow(key string) Decision {
	if mw.burst <= 0 {
		return Decision{Allowed: true}
	}

	mw.mu.Lock()
	lim, ok := mw.limiters[key]
	if !ok {
		lim = rate.NewLimiter(mw.rate, mw.burst)
		mw.limiters[key] = lim
	}
	mw.mu.Unlock()

	if lim.Allow() {
		return Decision{Allowed: true}
	}
	// время до пополнения одного токена
	return Decision{Allowed: false, RetryAfter: time.Duration(float64(time.Second) / float64(mw.rate))}
}
