package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/phrazzld/jobs-api/internal/api/shared"
	"golang.org/x/time/rate"
)

// RateLimiter limits requests per client IP with one token bucket per
// client. A client may burst the full quota, which refills evenly over the
// window. Responses carry RateLimit and RateLimit-Policy headers in the
// IETF draft-7 format.
type RateLimiter struct {
	requests int
	window   time.Duration
	limit    rate.Limit
	now      func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.now = now
	}
}

// NewRateLimiter allows requests per window for each client IP.
func NewRateLimiter(requests int, window time.Duration, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		requests: requests,
		window:   window,
		limit:    rate.Limit(float64(requests) / window.Seconds()),
		now:      time.Now,
		clients:  make(map[string]*client),
	}
	for _, opt := range opts {
		opt(rl)
	}
	rl.lastSweep = rl.now()
	return rl
}

// Handler enforces the limit. Rejected requests get 429 with Retry-After.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := rl.now()
		lim := rl.limiterFor(clientIP(r), now)

		allowed := lim.AllowN(now, 1)
		tokens := lim.TokensAt(now)

		h := w.Header()
		h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d", rl.requests, int(rl.window.Seconds())))
		h.Set("RateLimit", fmt.Sprintf("limit=%d, remaining=%d, reset=%d",
			rl.requests, remaining(tokens), rl.secondsUntil(tokens, float64(rl.requests))))

		if !allowed {
			h.Set("Retry-After", strconv.Itoa(rl.secondsUntil(tokens, 1)))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
				"Too many requests, please try again later", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiterFor(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(now)
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.requests)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// sweep forgets clients idle for a full window; their buckets are full again.
// Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, c := range rl.clients {
		if now.Sub(c.lastSeen) >= rl.window {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}

// Clients reports how many clients are currently tracked.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// secondsUntil returns how long, rounded up, until the bucket holds target tokens.
func (rl *RateLimiter) secondsUntil(tokens, target float64) int {
	if tokens >= target {
		return 0
	}
	return int(math.Ceil((target - tokens) / float64(rl.limit)))
}

func remaining(tokens float64) int {
	if tokens < 0 {
		return 0
	}
	return int(math.Floor(tokens))
}

// clientIP expects chi's RealIP middleware to have already applied
// X-Forwarded-For or X-Real-IP to RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
