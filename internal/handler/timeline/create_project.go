package timeline

import (
	"github.com/gin-gonic/gin"

	"montage/internal/model/project"
	httputil "montage/internal/pkg/http"
	projectService "montage/internal/service/project"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title    string            `json:"title"`
	Document *project.Document `json:"document" binding:"required"` // 项目文档（必填）
}

// CreateProjectResponseData 创建项目响应数据
type CreateProjectResponseData struct {
	Project ProjectInfo `json:"project"`
}

// CreateProject 创建项目
// @Summary      创建项目
// @Description  校验并保存项目文档，返回项目ID与内容哈希
// @Tags         项目管理
// @Accept       json
// @Produce      json
// @Param        request  body      CreateProjectRequest  true  "创建请求"
// @Success      200      {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"project\": {...}}}"
// @Failure      400      {object}  ErrorResponse  "请求参数错误或文档校验失败"
// @Failure      422      {object}  ErrorResponse  "不支持的文档版本"
// @Failure      503      {object}  ErrorResponse  "未配置持久化"
// @Router       /api/v1/projects [post]
func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), &projectService.CreateProjectRequest{
		UserID:   currentUserID(c),
		Title:    req.Title,
		Document: req.Document,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, CreateProjectResponseData{Project: toProjectInfo(p, false)})
}
