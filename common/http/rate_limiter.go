package http

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter 令牌桶，rate 为每秒补充的令牌数，burst 为桶容量，rate <= 0 不限流
type RateLimiter struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

func NewRateLimiter(rate, burst int) *RateLimiter {
	rl := &RateLimiter{
		lastRefill: time.Now(),
		now:        time.Now,
	}
	rl.SetLimit(rate, burst)
	rl.tokens = rl.capacity
	return rl
}

// SetLimit 运行时调整速率和容量，已有令牌不超过新容量
func (rl *RateLimiter) SetLimit(rate, burst int) {
	if burst < 1 {
		burst = 1
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.rate = float64(rate)
	rl.capacity = float64(burst)
	rl.tokens = min(rl.tokens, rl.capacity)
}

// Allow 取一个令牌，桶空时返回 false
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.rate <= 0 {
		return true
	}

	now := rl.now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
	rl.lastRefill = now

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}
	return false
}

// RateLimitMiddleware 超出速率时直接返回 429
func RateLimitMiddleware(rl *RateLimiter) MiddlewareFunc {
	return func(c *Context) error {
		if !rl.Allow() {
			c.ErrorWithCode(http.StatusTooManyRequests, CodeTooManyRequests, "请求过于频繁")
			c.Abort()
		}
		return nil
	}
}
