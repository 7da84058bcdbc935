package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterSet hands out one token bucket per key.
type limiterSet struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(s.r, s.b)
		s.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware allows r requests per second with burst b for each key.
// Every call builds an independent set of buckets.
func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	set := &limiterSet{limiters: make(map[string]*rate.Limiter), r: r, b: b}

	return func(c *gin.Context) {
		if !set.get(keyFunc(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down :("})
			return
		}

		c.Next()
	}
}
