package previewd

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimitConfig defines the limit for one route.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustainable rate (tokens added per second).
	RequestsPerSecond float64

	// BurstSize is the maximum number of requests allowed in a burst.
	BurstSize int
}

// DefaultRateLimits caps how often one client may hit each limited route.
var DefaultRateLimits = map[string]RateLimitConfig{
	// Websocket connects; a browser reconnects at most every second.
	RouteSocket: {RequestsPerSecond: 5, BurstSize: 10},

	RoutePayload: {RequestsPerSecond: 50, BurstSize: 100},
}

// tokenBucket implements the token bucket algorithm for rate limiting.
type tokenBucket struct {
	mu           sync.Mutex
	tokens       float64
	lastUpdate   time.Time
	ratePerSec   float64
	maxTokens    float64
	requestCount int64
	deniedCount  int64
}

func newTokenBucket(cfg RateLimitConfig) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(cfg.BurstSize),
		lastUpdate: time.Now(),
		ratePerSec: cfg.RequestsPerSecond,
		maxTokens:  float64(cfg.BurstSize),
	}
}

// allow checks if a request is allowed and consumes a token if so.
func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.requestCount++

	now := time.Now()
	elapsed := now.Sub(tb.lastUpdate).Seconds()
	tb.tokens += elapsed * tb.ratePerSec
	if tb.tokens > tb.maxTokens {
		tb.tokens = tb.maxTokens
	}
	tb.lastUpdate = now

	if tb.tokens >= 1.0 {
		tb.tokens--
		return true
	}

	tb.deniedCount++
	return false
}

func (tb *tokenBucket) stats() (requestCount, deniedCount int64) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.requestCount, tb.deniedCount
}

// RateLimiter keeps one bucket per route and client address.
type RateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*tokenBucket
	configs map[string]RateLimitConfig
	enabled bool
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRouteLimits sets custom limits for specific routes.
func WithRouteLimits(limits map[string]RateLimitConfig) RateLimiterOption {
	return func(rl *RateLimiter) {
		for route, cfg := range limits {
			rl.configs[route] = cfg
		}
	}
}

// WithEnabled enables or disables rate limiting.
func WithEnabled(enabled bool) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.enabled = enabled
	}
}

// NewRateLimiter creates a rate limiter seeded with DefaultRateLimits.
func NewRateLimiter(opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*tokenBucket),
		configs: make(map[string]RateLimitConfig),
		enabled: true,
	}
	for route, cfg := range DefaultRateLimits {
		rl.configs[route] = cfg
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Allow reports whether client may make another request to route. Routes
// without a configured limit are always allowed.
func (rl *RateLimiter) Allow(route, client string) bool {
	rl.mu.RLock()
	enabled := rl.enabled
	rl.mu.RUnlock()
	if !enabled {
		return true
	}

	bucket := rl.getBucket(route, client)
	if bucket == nil {
		return true
	}
	return bucket.allow()
}

func (rl *RateLimiter) getBucket(route, client string) *tokenBucket {
	key := route + "|" + client

	rl.mu.RLock()
	bucket, exists := rl.buckets[key]
	rl.mu.RUnlock()
	if exists {
		return bucket
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if bucket, exists = rl.buckets[key]; exists {
		return bucket
	}
	cfg, ok := rl.configs[route]
	if !ok {
		return nil
	}
	bucket = newTokenBucket(cfg)
	rl.buckets[key] = bucket
	return bucket
}

// Denied returns how many requests to route were rejected across clients.
func (rl *RateLimiter) Denied(route string) int64 {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	var denied int64
	prefix := route + "|"
	for key, bucket := range rl.buckets {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			_, d := bucket.stats()
			denied += d
		}
	}
	return denied
}

// SetEnabled enables or disables rate limiting at runtime.
func (rl *RateLimiter) SetEnabled(enabled bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.enabled = enabled
}

// Middleware rejects requests over the route's limit with 429.
func (rl *RateLimiter) Middleware(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(route, clientAddr(r)) {
				http.Error(w, "rate limit exceeded for "+route, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
