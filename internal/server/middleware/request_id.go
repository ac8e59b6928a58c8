package middleware

import (
	"github.com/gin-gonic/gin"

	"montage/internal/pkg/ctxutil"
	"montage/internal/pkg/id"
)

// RequestIDHeader 请求ID头
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen 客户端传入的请求ID超过该长度时重新生成
const maxRequestIDLen = 64

// RequestID 请求ID中间件
// 沿用客户端传入的 X-Request-ID，没有时生成一个；写入 gin context、request context 与响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = id.NewRequestID()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), rid))
		c.Header(RequestIDHeader, rid)

		c.Next()
	}
}
