package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// ErrNotFound 对象不存在
var ErrNotFound = errors.New("storage: object not found")

// ErrInvalidKey key 为空或试图跳出存储根目录
var ErrInvalidKey = errors.New("storage: invalid key")

// Storage 存储接口
// 用于读取项目文档、写出合成后的时间轴与混音计划
type Storage interface {
	// Upload 写入对象，返回访问URL
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Download 读取对象，不存在时返回 ErrNotFound
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetPresignedDownloadURL 获取限时下载URL
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// Delete 删除对象，不存在视为成功
	Delete(ctx context.Context, key string) error

	// Exists 检查对象是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// GetFileInfo 获取对象信息
	GetFileInfo(ctx context.Context, key string) (*FileInfo, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// FileInfo 文件信息
type FileInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)

// CleanKey 规范化对象 key：统一分隔符、去掉开头的斜杠，拒绝越出根目录的 key
func CleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.ReplaceAll(strings.TrimSpace(key), "\\", "/"), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// ContentType 根据扩展名推断 Content-Type
func ContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".txt":
		return "text/plain"
	case ".ass", ".ssa":
		return "text/x-ssa"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	default:
		return "application/octet-stream"
	}
}
