package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"local-services-server/logging"
)

// RateLimiter keeps one token bucket per client key and remembers when each
// key was last seen so idle buckets can be dropped.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	limit    rate.Limit
	burst    int
}

// NewRateLimiter creates a limiter pool where every key gets the same budget
func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		limit:    limit,
		burst:    burst,
	}
}

// Allow reports whether the key may proceed and refreshes its last-seen time
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = limiter
	}
	rl.lastSeen[key] = time.Now()

	return limiter.Allow()
}

// Cleanup removes buckets idle for longer than maxIdle
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, seen := range rl.lastSeen {
		if now.Sub(seen) > maxIdle {
			delete(rl.limiters, key)
			delete(rl.lastSeen, key)
		}
	}
}

func (rl *RateLimiter) cleanupLoop(every, maxIdle time.Duration) {
	ticker := time.NewTicker(every)
	for range ticker.C {
		rl.Cleanup(maxIdle)
	}
}

// Middleware rejects clients over their per-IP budget with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			logging.Log.WithFields(map[string]interface{}{
				"client_ip": ip,
				"path":      c.Request.URL.Path,
			}).Warn("rate limit exceeded")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimit is the general per-IP API budget: one request per second
// sustained with a burst of 30.
func RateLimit() gin.HandlerFunc {
	rl := NewRateLimiter(rate.Every(time.Second), 30)
	go rl.cleanupLoop(10*time.Minute, time.Hour)
	return rl.Middleware()
}

// AuthRateLimit throttles credential endpoints harder: five attempts per
// minute per IP.
func AuthRateLimit() gin.HandlerFunc {
	rl := NewRateLimiter(rate.Every(time.Minute/5), 5)
	go rl.cleanupLoop(10*time.Minute, time.Hour)
	return rl.Middleware()
}
