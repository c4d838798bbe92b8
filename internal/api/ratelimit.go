package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware shares one token bucket of rps requests per second
// across every route, with a burst of the same size. Rejected requests get a
// 429 naming the request id; with rps >= 1 a token is back within a second.
func RateLimitMiddleware(rps int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	return func(c *gin.Context) {
		if limiter.Allow() {
			c.Next()
			return
		}

		id := requestID(c)
		slog.Warn("rate limit exceeded",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", id,
		)
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"message":    "Too many requests",
			"request_id": id,
		})
	}
}
