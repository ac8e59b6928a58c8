package id

import (
	"strings"

	"github.com/google/uuid"
)

// New 生成新的UUID（string格式），用作项目ID
func New() string {
	return uuid.New().String()
}

// NewRequestID 生成不带连字符的请求ID
func NewRequestID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// IsValid 验证UUID格式是否有效
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
