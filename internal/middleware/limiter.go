package middleware

import (
	"github.com/haierkeys/collab-note-service/pkg/app"
	"github.com/haierkeys/collab-note-service/pkg/code"
	"github.com/haierkeys/collab-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 创建限流中间件
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			count := bucket.TakeAvailable(1)
			if count == 0 {
				response := app.NewResponse(c)
				response.ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
