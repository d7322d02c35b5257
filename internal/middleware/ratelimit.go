// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter is the token bucket of one client.
type clientLimiter struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles each client to limit requests per window with a
// token bucket that refills evenly across the window. Clients are keyed by
// user id when authenticated and by IP otherwise.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	every      rate.Limit
	burst      int
	window     time.Duration
	trustProxy bool
	now        func() time.Time
	stopCh     chan struct{}
	once       sync.Once
}

// NewRateLimiter creates a rate limiter that allows limit requests per
// window. A non-positive limit disables throttling. Proxy headers identify
// anonymous clients only when trustProxy is set. It starts a background
// goroutine that forgets idle clients; call Stop on shutdown.
func NewRateLimiter(limit int, window time.Duration, trustProxy bool) *RateLimiter {
	every, burst := rate.Inf, 1
	if limit > 0 && window > 0 {
		every, burst = rate.Every(window/time.Duration(limit)), limit
	}
	rl := &RateLimiter{
		clients:    make(map[string]*clientLimiter),
		every:      every,
		burst:      burst,
		window:     window,
		trustProxy: trustProxy,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background cleanup goroutine. It is safe to call
// more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// reserve takes a token for key. It returns zero when the request may
// proceed, otherwise how long the client has to wait for the next token.
func (rl *RateLimiter) reserve(key string) time.Duration {
	now := rl.now()

	rl.mu.Lock()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{bucket: rate.NewLimiter(rl.every, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	rl.mu.Unlock()

	r := c.bucket.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
	}
	return delay
}

// cleanup forgets clients idle for a full window; their buckets would be
// full again anyway.
func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// Middleware returns an HTTP middleware that rate-limits each client.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wait := rl.reserve(clientKey(r, rl.trustProxy)); wait > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
			writeError(w, http.StatusTooManyRequests, "resource_exhausted", "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(wait time.Duration) int {
	return max(1, int(math.Ceil(wait.Seconds())))
}

// clientKey identifies the caller for rate limiting.
func clientKey(r *http.Request, trustProxy bool) string {
	if user := UserFromCtx(r.Context()); user != nil {
		return "user:" + user.UserID
	}
	return "ip:" + clientIP(r, trustProxy)
}

// clientIP extracts the client's IP address. Proxy headers are consulted
// only when trustProxy is set; otherwise the peer address is used.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// The leftmost address is the original client.
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
