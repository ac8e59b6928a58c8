package timeline

import (
	"github.com/gin-gonic/gin"

	httputil "montage/internal/pkg/http"
)

// GetProjectResponseData 获取项目响应数据
type GetProjectResponseData struct {
	Project ProjectInfo `json:"project"`
}

// GetProject 获取项目
// @Summary      获取项目
// @Description  根据项目ID获取项目信息与完整文档
// @Tags         项目管理
// @Produce      json
// @Param        project_id  path      string  true  "项目ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"project\": {...}}}"
// @Failure      403         {object}  ErrorResponse  "无权访问"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Router       /api/v1/projects/{project_id} [get]
func (h *Handler) GetProject(c *gin.Context) {
	var uri ProjectURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "Invalid project_id", err)
		return
	}

	p, err := h.svc.GetProject(c.Request.Context(), uri.ProjectID, currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, GetProjectResponseData{Project: toProjectInfo(p, true)})
}

// ListProjectsRequest 项目列表请求
type ListProjectsRequest struct {
	Limit  int64 `form:"limit"`  // 每页数量（默认 20，最大 100）
	Offset int64 `form:"offset"` // 偏移量
}

// ListProjectsResponseData 项目列表响应数据
type ListProjectsResponseData struct {
	Projects []ProjectInfo `json:"projects"`
	Total    int64         `json:"total"`
}

// ListProjects 查询当前用户的项目列表
// @Summary      项目列表
// @Description  查询当前用户的项目（不含完整文档），按创建时间倒序
// @Tags         项目管理
// @Produce      json
// @Param        limit   query     int  false  "每页数量"
// @Param        offset  query     int  false  "偏移量"
// @Success      200     {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"projects\": [...], \"total\": 1}}"
// @Failure      503     {object}  ErrorResponse  "未配置持久化"
// @Router       /api/v1/projects [get]
func (h *Handler) ListProjects(c *gin.Context) {
	var req ListProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "Invalid query", err)
		return
	}

	projects, total, err := h.svc.ListProjects(c.Request.Context(), currentUserID(c), req.Limit, req.Offset)
	if err != nil {
		writeError(c, err)
		return
	}

	infos := make([]ProjectInfo, 0, len(projects))
	for _, p := range projects {
		infos = append(infos, toProjectInfo(p, false))
	}
	httputil.OK(c, ListProjectsResponseData{Projects: infos, Total: total})
}

// DeleteProject 删除项目
// @Summary      删除项目
// @Description  软删除项目并清理其时间轴缓存
// @Tags         项目管理
// @Produce      json
// @Param        project_id  path      string  true  "项目ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      403         {object}  ErrorResponse  "无权访问"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Router       /api/v1/projects/{project_id} [delete]
func (h *Handler) DeleteProject(c *gin.Context) {
	var uri ProjectURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "Invalid project_id", err)
		return
	}

	if err := h.svc.DeleteProject(c.Request.Context(), uri.ProjectID, currentUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, nil)
}
