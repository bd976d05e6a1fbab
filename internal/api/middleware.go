package api

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/ignite/campaignforge/internal/config"
)

// throttleMiddleware rate limits the generate endpoint per client IP.
// Limiters live in memory for the process lifetime; with a handful of
// clients the map stays small and needs no eviction.
func throttleMiddleware(cfg config.ThrottleConfig) func(http.Handler) http.Handler {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
			limiters[ip] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiterFor(ip).Allow() {
				respondError(w, http.StatusTooManyRequests, "rate limit exceeded, try again shortly")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
