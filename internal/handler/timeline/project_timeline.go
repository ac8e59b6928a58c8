package timeline

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "montage/internal/pkg/http"
	projectService "montage/internal/service/project"
)

// TimelineQuery 时间轴查询参数
type TimelineQuery struct {
	FPS float64 `form:"fps"` // 目标帧率（可选）
}

// GetTimeline 获取项目时间轴
// @Summary      获取项目时间轴
// @Description  合成项目文档的时间轴，优先读取缓存
// @Tags         时间轴
// @Produce      json
// @Param        project_id  path      string  true   "项目ID"
// @Param        fps         query     number  false  "目标帧率"
// @Success      200         {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"cached\": true, \"timeline\": {...}}}"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Failure      422         {object}  ErrorResponse  "不支持的文档版本"
// @Router       /api/v1/projects/{project_id}/timeline [get]
func (h *Handler) GetTimeline(c *gin.Context) {
	var uri ProjectURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "Invalid project_id", err)
		return
	}
	var q TimelineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query", err)
		return
	}

	result, err := h.svc.GetTimeline(c.Request.Context(), uri.ProjectID, currentUserID(c), q.FPS)
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, result)
}

// FrameURI 路径中的项目ID与帧号
type FrameURI struct {
	ProjectID string `uri:"project_id" binding:"required"`
	Frame     int64  `uri:"frame" binding:"min=0"`
}

// GetFrame 采样项目的某一帧
// @Summary      采样项目的某一帧
// @Description  返回该帧的场景、运镜变换、BGM 音量、配音与可见叠加层；超出时长时 in_range 为 false
// @Tags         时间轴
// @Produce      json
// @Param        project_id  path      string  true   "项目ID"
// @Param        frame       path      int     true   "绝对帧号"
// @Param        fps         query     number  false  "目标帧率"
// @Success      200         {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"frame\": 60, ...}}"
// @Failure      400         {object}  ErrorResponse  "帧号无效"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Router       /api/v1/projects/{project_id}/frames/{frame} [get]
func (h *Handler) GetFrame(c *gin.Context) {
	var uri FrameURI
	if err := c.ShouldBindUri(&uri); err != nil {
		httputil.Fail(c, http.StatusBadRequest, httputil.CodeInvalidFrame, "Invalid frame", err.Error())
		return
	}
	var q TimelineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query", err)
		return
	}

	frames, err := h.svc.SampleProject(c.Request.Context(), uri.ProjectID, currentUserID(c), &projectService.SampleRequest{
		FPS:  q.FPS,
		From: uri.Frame,
		To:   uri.Frame,
		Step: 1,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, frames[0])
}

// ExportProject 导出项目时间轴
// @Summary      导出项目时间轴
// @Description  把时间轴、ffmpeg 混音计划（JSON）与 ASS 字幕写入存储，返回访问地址
// @Tags         时间轴
// @Produce      json
// @Param        project_id  path      string  true   "项目ID"
// @Param        fps         query     number  false  "目标帧率"
// @Success      200         {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"timeline_url\": \"...\"}}"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Failure      503         {object}  ErrorResponse  "未配置存储"
// @Router       /api/v1/projects/{project_id}/export [post]
func (h *Handler) ExportProject(c *gin.Context) {
	var uri ProjectURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "Invalid project_id", err)
		return
	}
	var q TimelineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query", err)
		return
	}

	result, err := h.svc.ExportProject(c.Request.Context(), uri.ProjectID, currentUserID(c), q.FPS)
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, result)
}
