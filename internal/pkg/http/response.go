package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码：前三位与 HTTP 状态码一致
const (
	CodeOK                 = 0
	CodeInvalidRequest     = 40001 // 请求体或参数无法解析
	CodeInvalidDocument    = 40002 // 文档未通过校验
	CodeInvalidFrame       = 40003 // 帧号或采样区间非法
	CodeUnauthorized       = 40101
	CodeTokenInvalid       = 40102
	CodeForbidden          = 40301
	CodeProjectNotFound    = 40401
	CodeUnsupportedSchema  = 42201 // 文档版本无法识别
	CodeInternal           = 50001
	CodeStorageUnavailable = 50301 // 未配置持久化/存储
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 成功响应（所有API共用）
type SuccessResponse struct {
	Code    int         `json:"code"`           // 状态码（0表示成功）
	Message string      `json:"message"`        // 响应消息
	Data    interface{} `json:"data,omitempty"` // 响应数据（可选）
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Code:    CodeOK,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// OK 写出成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse("success", data))
}

// Fail 写出错误响应并终止后续处理
func Fail(c *gin.Context, status, code int, message string, detail ...string) {
	c.AbortWithStatusJSON(status, NewErrorResponse(code, message, detail...))
}
