package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/openlance/openlance/internal/ports"
)

// RateLimit is one fixed-window limit class.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// RateLimiter enforces fixed-window limits keyed by class and client IP.
// The counter lives in a shared store so limits hold across replicas.
type RateLimiter struct {
	store ports.RateLimitStore
}

func NewRateLimiter(store ports.RateLimitStore) *RateLimiter {
	return &RateLimiter{store: store}
}

// Middleware builds a chi middleware for one limit class. When the
// counter store is unreachable the request is allowed through; dropping
// traffic on a cache outage would turn a degradation into an outage.
func (l *RateLimiter) Middleware(class string, rl RateLimit) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := class + ":" + readIP(r)
			count, err := l.store.Increment(r.Context(), key, rl.Window)
			if err != nil {
				httpLogger().WarnContext(r.Context(), "rate limit store unavailable",
					"operation", "rate_limit",
					"outcome", "degraded",
					"class", class,
					"error", err.Error(),
				)
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(rl.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(rl.Limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.Window.Seconds())))
				httpLogger().WarnContext(r.Context(), "rate limit exceeded",
					"operation", "rate_limit",
					"outcome", "failure",
					"class", class,
					"request_id", requestIDFromContext(r.Context()),
					"ip", readIP(r),
				)
				writeError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
