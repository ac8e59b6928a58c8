// Package validate 项目文档的结构校验
// 在文档进入时间轴引擎之前拦截明显错误的输入；引擎本身对残缺文档依然宽容
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"montage/internal/model/project"
	"montage/internal/pkg/timeline"
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError 文档校验失败
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Message
	}
	return "invalid document: " + strings.Join(parts, "; ")
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			return jsonName(f.Tag.Get("json"), f.Name)
		})
		instance.RegisterStructValidation(documentStructLevel, project.Document{})
		instance.RegisterStructValidation(sceneStructLevel, project.Scene{})
	})
	return instance
}

// Document 校验项目文档
// 版本无法识别时返回 *timeline.SchemaVersionError，其它问题返回 *ValidationError
func Document(doc *project.Document) error {
	if doc == nil {
		return &ValidationError{Fields: []FieldError{{Field: "document", Rule: "required", Message: "document is required"}}}
	}
	if _, err := timeline.ParseSchemaVersion(doc.SchemaVersion); err != nil {
		return err
	}

	err := get().Struct(doc)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validate document: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, fe := range errs {
		out.Fields = append(out.Fields, FieldError{
			Field:   trimNamespace(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	return out
}

// documentStructLevel 场景序号必须唯一且严格递增
func documentStructLevel(sl validator.StructLevel) {
	doc := sl.Current().Interface().(project.Document)
	for i := 1; i < len(doc.Scenes); i++ {
		if doc.Scenes[i].Idx <= doc.Scenes[i-1].Idx {
			sl.ReportError(doc.Scenes[i].Idx, fmt.Sprintf("scenes[%d].idx", i), "Idx", "increasing", "")
		}
	}
}

// sceneStructLevel 同一场景内配音ID不能重复
func sceneStructLevel(sl validator.StructLevel) {
	s := sl.Current().Interface().(project.Scene)
	seen := make(map[string]bool, len(s.Assets.Voices))
	for i, v := range s.Assets.Voices {
		if v.ID == "" {
			continue
		}
		if seen[v.ID] {
			sl.ReportError(v.ID, fmt.Sprintf("assets.voices[%d].id", i), "ID", "unique", "")
		}
		seen[v.ID] = true
	}
}

// jsonName 取 json tag 中的字段名，错误信息与文档字段一一对应
func jsonName(tag, fallback string) string {
	name := strings.SplitN(tag, ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fallback
	default:
		return name
	}
}

func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	field := trimNamespace(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return field + " must be >= " + fe.Param()
	case "lte":
		return field + " must be <= " + fe.Param()
	case "oneof":
		return field + " must be one of [" + fe.Param() + "]"
	case "increasing":
		return field + " must be strictly increasing"
	case "unique":
		return field + " must be unique"
	default:
		return field + " failed " + fe.Tag()
	}
}
