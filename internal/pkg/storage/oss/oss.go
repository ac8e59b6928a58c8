package oss

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"montage/internal/pkg/storage"
)

// OSSStorage 阿里云OSS存储
type OSSStorage struct {
	bucket        *oss.Bucket
	bucketName    string
	prefix        string        // 所有 key 的公共前缀
	presignExpiry time.Duration // 预签名URL的最长有效期
}

// NewOSSStorage 创建阿里云OSS存储
func NewOSSStorage(endpoint, bucketName, accessKeyID, accessKeySecret, prefix string, presignExpiry int) (*OSSStorage, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &OSSStorage{
		bucket:        bucket,
		bucketName:    bucketName,
		prefix:        strings.Trim(prefix, "/"),
		presignExpiry: time.Duration(presignExpiry) * time.Second,
	}, nil
}

// objectKey 拼出带前缀的对象名
func (s *OSSStorage) objectKey(key string) (string, error) {
	cleaned, err := storage.CleanKey(key)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return cleaned, nil
	}
	return s.prefix + "/" + cleaned, nil
}

// Upload 上传对象
func (s *OSSStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	object, err := s.objectKey(key)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = storage.ContentType(object)
	}

	if err := s.bucket.PutObject(object, data, oss.ContentType(contentType), oss.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, strings.TrimPrefix(s.bucket.Client.Config.Endpoint, "https://"), object), nil
}

// Download 下载对象
func (s *OSSStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := s.objectKey(key)
	if err != nil {
		return nil, err
	}
	body, err := s.bucket.GetObject(object, oss.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	return body, nil
}

// GetPresignedDownloadURL 获取预签名下载URL，有效期不超过配置值
func (s *OSSStorage) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	object, err := s.objectKey(key)
	if err != nil {
		return "", err
	}

	expiry := expiresIn
	if s.presignExpiry > 0 && s.presignExpiry < expiresIn {
		expiry = s.presignExpiry
	}

	url, err := s.bucket.SignURL(object, oss.HTTPGet, int64(expiry.Seconds()))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return url, nil
}

// Delete 删除对象
func (s *OSSStorage) Delete(ctx context.Context, key string) error {
	object, err := s.objectKey(key)
	if err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(object, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists 检查对象是否存在
func (s *OSSStorage) Exists(ctx context.Context, key string) (bool, error) {
	object, err := s.objectKey(key)
	if err != nil {
		return false, err
	}
	exists, err := s.bucket.IsObjectExist(object, oss.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return exists, nil
}

// GetFileInfo 获取对象信息
func (s *OSSStorage) GetFileInfo(ctx context.Context, key string) (*storage.FileInfo, error) {
	object, err := s.objectKey(key)
	if err != nil {
		return nil, err
	}

	props, err := s.bucket.GetObjectDetailedMeta(object, oss.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get object info: %w", err)
	}

	size, _ := strconv.ParseInt(props.Get("Content-Length"), 10, 64)
	contentType := props.Get("Content-Type")
	if contentType == "" {
		contentType = storage.ContentType(object)
	}
	lastModified, _ := time.Parse(http.TimeFormat, props.Get("Last-Modified"))

	return &storage.FileInfo{
		Key:          key,
		Size:         size,
		ContentType:  contentType,
		ETag:         strings.Trim(props.Get("ETag"), `"`),
		LastModified: lastModified,
	}, nil
}

// GetStorageType 获取存储类型
func (s *OSSStorage) GetStorageType() string {
	return string(storage.StorageTypeOSS)
}

func isNotFound(err error) bool {
	var svcErr oss.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode == http.StatusNotFound
	}
	return false
}
