package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger 访问日志中间件
// route 记录匹配到的路由模板（如 /api/v1/projects/:project_id/frames/:frame），便于按接口聚合
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		// 健康检查不记访问日志
		if path == "/health" || path == "/ready" {
			return
		}

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", path)
		if query != "" {
			event = event.Str("query", query)
		}
		if pid := c.Param("project_id"); pid != "" {
			event = event.Str("project_id", pid)
		}
		event.
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Str("user_id", c.GetString("user_id")).
			Int("errors", len(c.Errors)).
			Int("body_size", c.Writer.Size()).
			Msg("HTTP request")
	}
}
