package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter decides whether a request identified by key may proceed.
type RateLimiter interface {
	Allow(key string) (bool, RateLimitInfo)
}

// RateLimitInfo is the current limiter state for one key, exposed through
// the X-RateLimit-* response headers.
type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimitConfig holds configuration for the rate limit middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate per key.
	RequestsPerSecond float64
	// BurstSize is the maximum burst above the sustained rate.
	BurstSize int
	// SkipPaths are paths that bypass rate limiting.
	SkipPaths []string
	// CleanupInterval is how often idle buckets are removed.
	CleanupInterval time.Duration
}

// DefaultRateLimitConfig returns a sensible default configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		SkipPaths:         []string{"/healthz", "/readyz", "/metrics"},
		CleanupInterval:   5 * time.Minute,
	}
}

// tokenBucket is the per-key bucket state.
type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// TokenBucketLimiter is an in-memory token bucket RateLimiter.
type TokenBucketLimiter struct {
	rate            float64
	burstSize       int
	buckets         map[string]*tokenBucket
	mu              sync.RWMutex
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// NewTokenBucketLimiter creates a token bucket limiter. With a positive
// cleanupInterval a background goroutine evicts idle buckets; call Stop to
// end it.
func NewTokenBucketLimiter(rate float64, burstSize int, cleanupInterval time.Duration) *TokenBucketLimiter {
	l := &TokenBucketLimiter{
		rate:            rate,
		burstSize:       burstSize,
		buckets:         make(map[string]*tokenBucket),
		cleanupInterval: cleanupInterval,
		stopCleanup:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// SetLimits replaces the sustained rate and burst size at runtime. Existing
// buckets keep their current tokens and adopt the new limits on their next
// refill. Non-positive values are ignored.
func (l *TokenBucketLimiter) SetLimits(rate float64, burstSize int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if rate > 0 {
		l.rate = rate
	}
	if burstSize > 0 {
		l.burstSize = burstSize
	}
}

// Allow reports whether a request with the given key fits the limit.
func (l *TokenBucketLimiter) Allow(key string) (bool, RateLimitInfo) {
	now := time.Now()

	l.mu.RLock()
	rate, burstSize := l.rate, l.burstSize
	bucket, exists := l.buckets[key]
	l.mu.RUnlock()

	if !exists {
		l.mu.Lock()
		bucket, exists = l.buckets[key]
		if !exists {
			bucket = &tokenBucket{
				tokens:     float64(burstSize),
				lastRefill: now,
			}
			l.buckets[key] = bucket
		}
		l.mu.Unlock()
	}

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens += elapsed * rate
	if bucket.tokens > float64(burstSize) {
		bucket.tokens = float64(burstSize)
	}
	bucket.lastRefill = now

	info := RateLimitInfo{
		Limit:   burstSize,
		ResetAt: now.Add(time.Duration(float64(time.Second) / rate)),
	}

	if bucket.tokens >= 1.0 {
		bucket.tokens -= 1.0
		info.Remaining = int(bucket.tokens)
		return true, info
	}
	info.Remaining = 0
	return false, info
}

func (l *TokenBucketLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCleanup:
			return
		}
	}
}

// cleanup removes buckets that have sat full for a whole interval.
func (l *TokenBucketLimiter) cleanup() {
	threshold := time.Now().Add(-l.cleanupInterval)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, bucket := range l.buckets {
		bucket.mu.Lock()
		if bucket.lastRefill.Before(threshold) && bucket.tokens >= float64(l.burstSize)-1 {
			delete(l.buckets, key)
		}
		bucket.mu.Unlock()
	}
}

// Stop ends the background cleanup goroutine.
func (l *TokenBucketLimiter) Stop() {
	close(l.stopCleanup)
}

// BucketCount returns the number of live buckets, for monitoring.
func (l *TokenBucketLimiter) BucketCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// RateLimit enforces the limiter per client IP, setting the X-RateLimit-*
// headers on every response and answering 429 with Retry-After when the
// bucket is empty.
func RateLimit(limiter RateLimiter, config RateLimitConfig) gin.HandlerFunc {
	skipSet := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skipSet[p] = true
	}

	return func(c *gin.Context) {
		if skipSet[c.Request.URL.Path] {
			c.Next()
			return
		}

		allowed, info := limiter.Allow(c.ClientIP())

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetAt.Unix(), 10))

		if !allowed {
			retryAfter := time.Until(info.ResetAt).Seconds()
			if retryAfter < 1 {
				retryAfter = 1
			}
			h.Set("Retry-After", strconv.Itoa(int(retryAfter)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    "COMMON_007",
				"message": "rate limit exceeded, please retry later",
			})
			return
		}
		c.Next()
	}
}
