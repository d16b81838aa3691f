package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterEvictionAge = 10 * time.Minute

// IPRateLimiter mantiene un token bucket por IP de cliente.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	done     chan struct{}
	stopOnce sync.Once
}

// NewIPRateLimiter crea el limitador; requestsPerMin <= 0 desactiva el límite.
func NewIPRateLimiter(requestsPerMin, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	l := &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
		done:     make(chan struct{}),
	}
	if requestsPerMin <= 0 {
		l.rate = rate.Inf
	}
	go l.cleanupLoop(limiterEvictionAge)
	return l
}

func (l *IPRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	l.lastSeen[key] = time.Now()
	return lim
}

// Allow consume un token del bucket de key.
func (l *IPRateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// Stop detiene la limpieza periódica.
func (l *IPRateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *IPRateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evict(interval)
		case <-l.done:
			return
		}
	}
}

func (l *IPRateLimiter) evict(age time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	for key, seen := range l.lastSeen {
		if now.Sub(seen) > age {
			delete(l.limiters, key)
			delete(l.lastSeen, key)
		}
	}
}

// rateLimitMiddleware responde 429 cuando la IP agotó su bucket.
func rateLimitMiddleware(l *IPRateLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if !l.Allow(ip) {
			logger.Warn("rate limit exceeded", zap.String("client_ip", ip), zap.String("path", c.Request.URL.Path))
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
