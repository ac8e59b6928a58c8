package timeline

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"montage/internal/model/project"
	"montage/internal/pkg/ctxutil"
	httputil "montage/internal/pkg/http"
	"montage/internal/pkg/timeline"
	"montage/internal/pkg/validate"
	projectService "montage/internal/service/project"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// ProjectURI 路径中的项目ID
type ProjectURI struct {
	ProjectID string `uri:"project_id" binding:"required"` // 项目ID（必填）
}

// ProjectInfo 项目信息 DTO
type ProjectInfo struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Title       string            `json:"title"`
	ContentHash string            `json:"content_hash"`
	Version     int               `json:"version"`
	Summary     project.Summary   `json:"summary"`
	Document    *project.Document `json:"document,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// toProjectInfo 将 Project 实体转换为 ProjectInfo DTO，withDocument 控制是否带上完整文档
func toProjectInfo(p *project.Project, withDocument bool) ProjectInfo {
	info := ProjectInfo{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		ContentHash: p.ContentHash,
		Version:     p.Version,
		Summary:     p.Document.Summary,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if withDocument {
		doc := p.Document
		info.Document = &doc
	}
	return info
}

// currentUserID 认证中间件注入的用户ID；未启用认证时为空，视为系统内部请求
func currentUserID(c *gin.Context) string {
	userID, _ := ctxutil.GetUserID(c.Request.Context())
	return userID
}

// badRequest 请求参数无法解析
func badRequest(c *gin.Context, message string, err error) {
	httputil.Fail(c, http.StatusBadRequest, httputil.CodeInvalidRequest, message, err.Error())
}

// writeError 按错误类型映射 HTTP 状态码与业务错误码
func writeError(c *gin.Context, err error) {
	var verr *validate.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.Fail(c, http.StatusBadRequest, httputil.CodeInvalidDocument, "文档校验失败", verr.Error())
	case errors.Is(err, timeline.ErrUnsupportedSchemaVersion):
		httputil.Fail(c, http.StatusUnprocessableEntity, httputil.CodeUnsupportedSchema, "不支持的文档版本", err.Error())
	case errors.Is(err, projectService.ErrInvalidRange):
		httputil.Fail(c, http.StatusBadRequest, httputil.CodeInvalidFrame, "帧号或采样区间无效", err.Error())
	case errors.Is(err, projectService.ErrProjectNotFound):
		httputil.Fail(c, http.StatusNotFound, httputil.CodeProjectNotFound, err.Error())
	case errors.Is(err, projectService.ErrProjectAccessDenied):
		httputil.Fail(c, http.StatusForbidden, httputil.CodeForbidden, err.Error())
	case errors.Is(err, projectService.ErrStorageUnavailable):
		httputil.Fail(c, http.StatusServiceUnavailable, httputil.CodeStorageUnavailable, err.Error())
	default:
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("request failed")
		httputil.Fail(c, http.StatusInternalServerError, httputil.CodeInternal, "服务器内部错误")
	}
}
