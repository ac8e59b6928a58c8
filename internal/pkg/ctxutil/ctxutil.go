package ctxutil

import "context"

type (
	userIDKeyType    struct{}
	requestIDKeyType struct{}
)

var (
	userIDKey    = userIDKeyType{}
	requestIDKey = requestIDKeyType{}
)

// WithUserID 将 userID 注入到 context 中，由认证中间件在解析 JWT 后调用
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID 从 context 中解析 userID
func GetUserID(ctx context.Context) (string, bool) {
	return stringValue(ctx, userIDKey)
}

// WithRequestID 将请求ID注入到 context 中
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID 从 context 中解析请求ID
func GetRequestID(ctx context.Context) (string, bool) {
	return stringValue(ctx, requestIDKey)
}

func stringValue(ctx context.Context, key any) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
