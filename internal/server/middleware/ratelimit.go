// file: internal/server/middleware/ratelimit.go
// version: 1.0.0
// guid: 8d9e0f1a-2b3c-4d5e-6f7a-8b9c0d1e2f3a

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// QueryRateLimiter is a per-IP token bucket guarding the search
// endpoints. Interactive typing produces bursts, so the burst size
// should sit well above the steady rate.
type QueryRateLimiter struct {
	mu             sync.Mutex
	clients        map[string]*clientLimiter
	requestsPerMin int
	burst          int
	idleTTL        time.Duration
}

// NewQueryRateLimiter creates a limiter allowing requestsPerMinute
// sustained requests with the given burst per client IP.
func NewQueryRateLimiter(requestsPerMinute, burst int) *QueryRateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &QueryRateLimiter{
		clients:        make(map[string]*clientLimiter),
		requestsPerMin: requestsPerMinute,
		burst:          burst,
		idleTTL:        15 * time.Minute,
	}
}

func (q *QueryRateLimiter) limiterForIP(ip string) *rate.Limiter {
	now := time.Now()

	q.mu.Lock()
	defer q.mu.Unlock()

	for key, entry := range q.clients {
		if now.Sub(entry.lastSeen) > q.idleTTL {
			delete(q.clients, key)
		}
	}

	entry, ok := q.clients[ip]
	if !ok {
		perSecond := float64(q.requestsPerMin) / 60.0
		entry = &clientLimiter{
			limiter:  rate.NewLimiter(rate.Limit(perSecond), q.burst),
			lastSeen: now,
		}
		q.clients[ip] = entry
		return entry.limiter
	}

	entry.lastSeen = now
	return entry.limiter
}

// Middleware returns a Gin middleware that enforces the configured limit.
func (q *QueryRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !q.limiterForIP(ip).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
