package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

var allowed = map[string]struct{}{
	"http://localhost:5173":              {},
	"http://localhost:5174":              {},
	"https://episcoping.github.io":       {},
	"https://reports.episcoping.org":     {},
	"https://reports-dev.episcoping.org": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it’s on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientLimiters hands out one token bucket per client IP. Buckets are never
// evicted; the report API sees a handful of distinct clients.
type clientLimiters struct {
	mu    sync.Mutex
	byIP  map[string]*rate.Limiter
	limit rate.Limit
	burst int
}

func (c *clientLimiters) get(ip string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.byIP[ip]; ok {
		return l
	}
	l := rate.NewLimiter(c.limit, c.burst)
	c.byIP[ip] = l
	return l
}

// RateLimitMiddleware returns a middleware allowing rps requests per second
// with the given burst, per client IP. Over-limit requests get 429 with a
// Retry-After hint.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	limiters := &clientLimiters{
		byIP:  map[string]*rate.Limiter{},
		limit: rate.Limit(rps),
		burst: burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiters.get(ip).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
