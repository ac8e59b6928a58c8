package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"montage/internal/pkg/ctxutil"
	httputil "montage/internal/pkg/http"
	"montage/internal/pkg/jwt"
)

// Auth JWT 认证中间件
// 从 Authorization header 中提取 Bearer token，验证后注入 user_id 到 context
// token 由外部认证服务签发，这里只做校验
func Auth(jwtUtil *jwt.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.Fail(c, http.StatusUnauthorized, httputil.CodeUnauthorized, "未授权")
			return
		}

		// 提取 Token（Bearer {token}）
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			httputil.Fail(c, http.StatusUnauthorized, httputil.CodeUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			message := "Token无效"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "Token已过期"
			}
			httputil.Fail(c, http.StatusUnauthorized, httputil.CodeTokenInvalid, message)
			return
		}

		// 将 user_id 注入到 context
		c.Set("user_id", claims.UserID)
		ctx := ctxutil.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
