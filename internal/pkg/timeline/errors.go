package timeline

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSchemaVersion 文档版本无法识别
var ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")

// SchemaVersionError 携带无法识别的版本号
// 通过 errors.Is(err, ErrUnsupportedSchemaVersion) 判断
type SchemaVersionError struct {
	Version string
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedSchemaVersion.Error(), e.Version)
}

// Is 使 SchemaVersionError 匹配 ErrUnsupportedSchemaVersion
func (e *SchemaVersionError) Is(target error) bool {
	return target == ErrUnsupportedSchemaVersion
}
