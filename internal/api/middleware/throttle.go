package middleware

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// LoginThrottle rate-limits credential-guessing per client IP. Each IP gets
// its own token bucket; the map grows with distinct IPs, which is acceptable
// for an internal dashboard.
func LoginThrottle(rps rate.Limit, burst int) echo.MiddlewareFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(rps, burst)
			limiters[ip] = l
		}
		return l
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiterFor(c.RealIP()).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, slow down")
			}
			return next(c)
		}
	}
}
