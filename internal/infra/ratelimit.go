package infra

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// PerMinute returns a limiter allowing n requests per minute with a burst
// of n, or nil when n is zero or negative.
func PerMinute(n int) *rate.Limiter {
	if n <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
}

// Limit returns middleware that rejects requests once the limiter is
// exhausted, setting Retry-After to the wait for the next token. A nil
// limiter passes every request through. A nil reject writes a plain 429.
func Limit(l *rate.Limiter, reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.Allow() {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter(l)))
			if reject != nil {
				reject(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}
}

// retryAfter returns whole seconds until l frees a token, at least 1.
func retryAfter(l *rate.Limiter) int {
	res := l.Reserve()
	defer res.Cancel()
	if !res.OK() {
		return 1
	}
	return max(1, int(math.Ceil(res.Delay().Seconds())))
}
