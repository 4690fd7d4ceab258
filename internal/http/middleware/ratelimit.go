package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig shapes the per-client admission budget: Budget requests
// per Window, keyed by client IP.
type RateLimitConfig struct {
	Window time.Duration
	Budget int
}

func (c RateLimitConfig) normalized() RateLimitConfig {
	if c.Window <= 0 {
		c.Window = time.Minute
	}
	if c.Budget <= 0 {
		c.Budget = 5
	}
	return c
}

type clientWindow struct {
	windowStart time.Time
	count       int
	lastSeen    time.Time
}

// RateLimiter enforces a fixed per-IP window: at most Budget requests are
// admitted between a client's first request and Window later, with no
// mid-window refill. Rejected requests get a 429 with Retry-After set to the
// window's reset.
type RateLimiter struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	clients map[string]*clientWindow
	now     func() time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cfg:     cfg.normalized(),
		clients: make(map[string]*clientWindow),
		now:     time.Now,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := rl.admit(clientIP(r))
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeError(w, r, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded", retryAfter)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) admit(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	client, ok := rl.clients[ip]
	if !ok {
		if len(rl.clients) >= 10000 {
			rl.pruneLocked(now)
		}
		client = &clientWindow{windowStart: now}
		rl.clients[ip] = client
	}
	client.lastSeen = now

	if now.Sub(client.windowStart) >= rl.cfg.Window {
		client.windowStart = now
		client.count = 0
	}
	if client.count < rl.cfg.Budget {
		client.count++
		return true, 0
	}

	retryAfter := int(math.Ceil(client.windowStart.Add(rl.cfg.Window).Sub(now).Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	return false, retryAfter
}

// pruneLocked drops clients whose window has long since reset.
func (rl *RateLimiter) pruneLocked(now time.Time) {
	cutoff := now.Add(-2 * rl.cfg.Window)
	for ip, client := range rl.clients {
		if client.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
