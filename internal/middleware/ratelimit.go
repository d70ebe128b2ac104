package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"cookshelf/internal/httputil"
	"cookshelf/internal/metrics"
)

// RateLimiterConfig holds the per-user rate limit settings.
type RateLimiterConfig struct {
	PerMinute       int           // sustained requests per minute per user
	Burst           int           // burst size per user
	CleanupInterval time.Duration // how often idle limiter entries are dropped
}

// userLimiter pairs a token bucket with its last access time so idle
// entries can be evicted.
type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter enforces a per-user request rate, keyed by the verified
// subject claim. It must sit after the auth middleware in the chain.
type RateLimiter struct {
	limit     rate.Limit
	burst     int
	interval  time.Duration
	collector *metrics.Collector
	logger    *slog.Logger

	mu       sync.Mutex
	limiters map[string]*userLimiter

	stopCh chan struct{}
}

// NewRateLimiter creates a RateLimiter and starts its background cleanup.
func NewRateLimiter(config RateLimiterConfig, collector *metrics.Collector, logger *slog.Logger) *RateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		limit:     rate.Limit(float64(config.PerMinute) / 60.0),
		burst:     config.Burst,
		interval:  config.CleanupInterval,
		collector: collector,
		logger:    logger,
		limiters:  make(map[string]*userLimiter),
		stopCh:    make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware returns the rate limiting middleware. Requests without claims
// in the context (public paths) pass through unlimited.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := httputil.ClaimsFromContext(r.Context())
			if claims == nil {
				next.ServeHTTP(w, r)
				return
			}

			if !rl.allow(claims.ExternalID()) {
				rl.collector.RecordRateLimited()
				rl.logger.Warn("rate limit exceeded",
					"subject", claims.ExternalID(),
					"path", r.URL.Path,
				)
				rl.writeLimitResponse(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// EntryCount returns the number of tracked users. Used by tests.
func (rl *RateLimiter) EntryCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) allow(subject string) bool {
	rl.mu.Lock()
	ul, exists := rl.limiters[subject]
	if !exists {
		ul = &userLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[subject] = ul
	}
	ul.lastAccess = time.Now()
	rl.mu.Unlock()

	return ul.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops entries idle for more than twice the cleanup interval.
func (rl *RateLimiter) cleanup() {
	ttl := rl.interval * 2
	now := time.Now()

	rl.mu.Lock()
	for subject, ul := range rl.limiters {
		if now.Sub(ul.lastAccess) > ttl {
			delete(rl.limiters, subject)
		}
	}
	rl.mu.Unlock()
}

// writeLimitResponse writes a 429 with a Retry-After hint derived from the
// token refill rate.
func (rl *RateLimiter) writeLimitResponse(w http.ResponseWriter) {
	retryAfterSec := int(math.Ceil(1.0 / float64(rl.limit)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	httputil.RespondError(w, http.StatusTooManyRequests, "too many requests")
}
