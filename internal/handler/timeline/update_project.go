package timeline

import (
	"github.com/gin-gonic/gin"

	"montage/internal/model/project"
	httputil "montage/internal/pkg/http"
	projectService "montage/internal/service/project"
)

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Title    string            `json:"title"`                       // 为空时保持原名称
	Document *project.Document `json:"document" binding:"required"` // 新文档（必填）
}

// UpdateProject 更新项目文档
// @Summary      更新项目文档
// @Description  替换项目文档，版本号加一；内容变化时旧的时间轴缓存失效
// @Tags         项目管理
// @Accept       json
// @Produce      json
// @Param        project_id  path      string                true  "项目ID"
// @Param        request     body      UpdateProjectRequest  true  "更新请求"
// @Success      200         {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"project\": {...}}}"
// @Failure      400         {object}  ErrorResponse  "请求参数错误或文档校验失败"
// @Failure      403         {object}  ErrorResponse  "无权访问"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Router       /api/v1/projects/{project_id} [put]
func (h *Handler) UpdateProject(c *gin.Context) {
	var uri ProjectURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "Invalid project_id", err)
		return
	}
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	p, err := h.svc.UpdateProject(c.Request.Context(), &projectService.UpdateProjectRequest{
		ProjectID: uri.ProjectID,
		UserID:    currentUserID(c),
		Title:     req.Title,
		Document:  req.Document,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, CreateProjectResponseData{Project: toProjectInfo(p, false)})
}
