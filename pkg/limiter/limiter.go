// Package limiter 提供基于令牌桶的按路由限流器
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	// Key 从请求中提取限流键
	Key(c *gin.Context) string
	// GetBucket 获取键对应的令牌桶
	GetBucket(key string) (*ratelimit.Bucket, bool)
	// AddBuckets 注册限流规则
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 单条限流规则
type BucketRule struct {
	// Key 匹配的路由前缀
	Key string
	// FillInterval 令牌填充周期
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次填充的令牌数量
	Quantum int64
}

// MethodLimiter 按请求路径前缀限流
type MethodLimiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// NewMethodLimiter 创建路径限流器
func NewMethodLimiter() Face {
	return &MethodLimiter{
		limiterBuckets: make(map[string]*ratelimit.Bucket),
	}
}

func (l *MethodLimiter) Key(c *gin.Context) string {
	return c.Request.URL.Path
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	for prefix, bucket := range l.limiterBuckets {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			return bucket, true
		}
	}
	return nil, false
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
