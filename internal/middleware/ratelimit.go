package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an unused bucket is kept. A bucket refills
// completely within a minute, so dropping it after this long loses nothing.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per user. A bucket holds a minute's
// worth of requests and refills continuously. Idle buckets are evicted.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (limiter *RateLimiter) forKey(key string) *rate.Limiter {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := limiter.now()
	if now.Sub(limiter.lastSweep) >= limiterIdleTTL {
		for existing, entry := range limiter.limiters {
			if now.Sub(entry.lastSeen) >= limiterIdleTTL {
				delete(limiter.limiters, existing)
			}
		}
		limiter.lastSweep = now
	}

	entry, ok := limiter.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// clientKey identifies the caller by user id, falling back to the remote host
// without its port.
func clientKey(r *http.Request) string {
	if userID := GetUser(r.Context()).ID; userID != "" {
		return userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware rejects requests over the caller's budget with 429. It must run
// after authentication.
func (limiter *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reservation := limiter.forKey(clientKey(r)).Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "too many messages, slow down"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
