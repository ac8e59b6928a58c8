package project

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"montage/internal/model/project"
)

// ContentHash 文档内容哈希：规范 JSON 的 xxhash64（16 位十六进制）
// 结构体字段顺序固定，相同内容的文档得到相同哈希
func ContentHash(doc *project.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
