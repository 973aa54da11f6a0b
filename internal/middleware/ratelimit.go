package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/quickbites/support-backend/pkg/utils"
)

// RateLimiter tracks request counts per client in fixed time windows. The
// map is mutex-guarded; entries reset lazily when their window rolls over
// and Cleanup prunes expired entries.
type RateLimiter struct {
	mu          sync.Mutex
	requests    map[string]*rateLimitEntry
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// NewRateLimiter builds a limiter allowing maxRequests per window.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests:    make(map[string]*rateLimitEntry),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Allow records a request for the identifier and reports whether it fits
// inside the current window.
func (rl *RateLimiter) Allow(identifier string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.requests[identifier]
	if !ok || now.After(entry.resetTime) {
		rl.requests[identifier] = &rateLimitEntry{count: 1, resetTime: now.Add(rl.window)}
		return true
	}

	if entry.count >= rl.maxRequests {
		return false
	}
	entry.count++
	return true
}

// Remaining reports how many requests the identifier has left in the
// current window.
func (rl *RateLimiter) Remaining(identifier string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.requests[identifier]
	if !ok || rl.now().After(entry.resetTime) {
		return rl.maxRequests
	}
	if remaining := rl.maxRequests - entry.count; remaining > 0 {
		return remaining
	}
	return 0
}

// RetryAfter reports how long the identifier must wait before the window
// resets. Zero means no wait.
func (rl *RateLimiter) RetryAfter(identifier string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.requests[identifier]
	if !ok {
		return 0
	}
	if wait := entry.resetTime.Sub(rl.now()); wait > 0 {
		return wait
	}
	return 0
}

// Cleanup removes expired entries. Call periodically from a background
// goroutine.
func (rl *RateLimiter) Cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, entry := range rl.requests {
		if now.After(entry.resetTime) {
			delete(rl.requests, key)
		}
	}
}

// StartCleanup prunes the limiter every interval until stop is closed.
func (rl *RateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}

// RateLimit rejects requests over the limit with a 429 carrying the retry
// delay in seconds.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := ClientIdentifier(r)
			if !limiter.Allow(clientID) {
				retryAfter := int(limiter.RetryAfter(clientID).Seconds() + 0.5)
				utils.RespondJSON(w, http.StatusTooManyRequests, map[string]any{
					"error":      "Rate limit exceeded",
					"message":    "Too many requests. Please wait before sending another message.",
					"retryAfter": retryAfter,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIdentifier derives a rate-limiting key from proxy headers, falling
// back to the remote address.
func ClientIdentifier(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if cfIP := r.Header.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
