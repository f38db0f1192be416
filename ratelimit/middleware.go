package ratelimit

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ceyewan/idforge/response"
)

// GinMiddleware 创建 Gin 限流中间件
//
//   - keyFunc: 提取限流键，为 nil 时使用客户端 IP
//   - limitFunc: 返回限流规则，规则无效时放行
//   - costFunc: 返回本次请求消耗的令牌数，为 nil 时为 1；返回值 <= 0 时放行，交由处理函数校验参数
//
// 被限流的请求以 429 和统一响应信封结束。限流器出错时放行，避免影响发号。
//
//	r.GET("/ids/batch", ratelimit.GinMiddleware(limiter, nil, limitFunc,
//	    func(c *gin.Context) int { n, _ := strconv.Atoi(c.Query("n")); return n },
//	), handler)
func GinMiddleware(
	limiter Limiter,
	keyFunc func(*gin.Context) string,
	limitFunc func(*gin.Context) Limit,
	costFunc func(*gin.Context) int,
) gin.HandlerFunc {
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string {
			return c.ClientIP()
		}
	}
	if costFunc == nil {
		costFunc = func(*gin.Context) int { return 1 }
	}

	return func(c *gin.Context) {
		key := keyFunc(c)
		limit := limitFunc(c)
		cost := costFunc(c)
		if key == "" || !limit.valid() || cost <= 0 {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", formatLimit(limit))

		allowed, err := limiter.AllowN(c.Request.Context(), key, limit, cost)
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			c.Header("X-RateLimit-Remaining", "0")
			r := response.FailCode(http.StatusTooManyRequests, ErrRateLimitExceeded.Error(), response.ErrorData{})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, r)
			return
		}
		c.Next()
	}
}

// formatLimit 格式化限流规则为字符串
func formatLimit(limit Limit) string {
	return fmt.Sprintf("rate=%.2f, burst=%d", limit.Rate, limit.Burst)
}
