// Package docio 项目文档与合成结果的读写
// 按扩展名选择 JSON 或 YAML，来源可以是本地文件或 storage.Storage
package docio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"montage/internal/model/project"
	"montage/internal/pkg/storage"
)

// Format 文档编码格式
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat 根据文件名推断格式，无法识别时按 JSON 处理
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode 解码项目文档
func Decode(r io.Reader, format Format) (*project.Document, error) {
	var doc project.Document
	if err := DecodeInto(r, format, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeInto 解码任意值
func DecodeInto(r io.Reader, format Format, v any) error {
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
	}
	return nil
}

// Encode 编码任意值，JSON 输出带缩进
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// ReadFile 从本地文件读取项目文档；path 为 "-" 时读取标准输入（JSON）
func ReadFile(path string) (*project.Document, error) {
	if path == "-" {
		return Decode(os.Stdin, FormatJSON)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, DetectFormat(path))
}

// WriteFile 写出到本地文件；path 为空或 "-" 时写到 w
func WriteFile(path string, w io.Writer, v any) error {
	if path == "" || path == "-" {
		return Encode(w, FormatJSON, v)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, DetectFormat(path), v); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Load 从存储读取项目文档
func Load(ctx context.Context, s storage.Storage, key string) (*project.Document, error) {
	rc, err := s.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Decode(rc, DetectFormat(key))
}

// Save 写出到存储，返回访问URL
func Save(ctx context.Context, s storage.Storage, key string, v any) (string, error) {
	format := DetectFormat(key)
	var buf bytes.Buffer
	if err := Encode(&buf, format, v); err != nil {
		return "", err
	}
	contentType := "application/json"
	if format == FormatYAML {
		contentType = "application/yaml"
	}
	return s.Upload(ctx, key, &buf, contentType)
}
