package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// RateLimitKeyPrefix is the Redis key prefix for request counters.
	RateLimitKeyPrefix = "ratelimit:"
	// RateLimitWindow is the length of one counting window.
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is the number of requests allowed per window per IP.
	RateLimitMaxRequests = 300
)

// WindowLimiter counts requests per IP in Redis so the limit holds across
// instances. It fails open: a Redis error lets the request through.
type WindowLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
	log    *zap.Logger
}

func NewWindowLimiter(client *redis.Client, window time.Duration, max int64, log *zap.Logger) *WindowLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &WindowLimiter{client: client, window: window, max: max, log: log}
}

// Handler enforces the window limit and reports it in X-RateLimit-* headers.
func (l *WindowLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := RateLimitKeyPrefix + clientIP(r)

		count, err := l.client.Incr(r.Context(), key).Result()
		if err == nil && count == 1 {
			err = l.client.Expire(r.Context(), key, l.window).Err()
		}
		if err != nil {
			l.log.Warn("rate limit counter unavailable", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		remaining := l.max - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(l.max, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > l.max {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(fmt.Sprintf(`{"error":"Too many requests","message":"Rate limit exceeded, retry in %d seconds"}`, int(l.window.Seconds()))))
			return
		}
		next.ServeHTTP(w, r)
	})
}
