package timeline

import (
	"github.com/gin-gonic/gin"

	"montage/internal/model/project"
	httputil "montage/internal/pkg/http"
	projectService "montage/internal/service/project"
)

// SampleRequest 采样请求
// 只给出 frame 时采样单帧；否则采样闭区间 [from, to]，步长 step（默认 1）
type SampleRequest struct {
	Document *project.Document `json:"document" binding:"required"` // 项目文档（必填）
	FPS      float64           `json:"fps"`
	Frame    *int64            `json:"frame"`
	From     int64             `json:"from"`
	To       int64             `json:"to"`
	Step     int64             `json:"step"`
}

func (r *SampleRequest) toServiceRequest() *projectService.SampleRequest {
	if r.Frame != nil {
		return &projectService.SampleRequest{FPS: r.FPS, From: *r.Frame, To: *r.Frame, Step: 1}
	}
	return &projectService.SampleRequest{FPS: r.FPS, From: r.From, To: r.To, Step: r.Step}
}

// SampleResponseData 采样响应数据
type SampleResponseData struct {
	Frames []projectService.FrameSample `json:"frames"`
}

// Sample 采样时间轴
// @Summary      采样时间轴
// @Description  合成提交的项目文档并返回指定帧（或帧区间）的全部渲染参数
// @Tags         时间轴
// @Accept       json
// @Produce      json
// @Param        request  body      SampleRequest  true  "采样请求"
// @Success      200      {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"frames\": [...]}}"
// @Failure      400      {object}  ErrorResponse  "请求参数错误、文档校验失败或区间无效"
// @Failure      422      {object}  ErrorResponse  "不支持的文档版本"
// @Failure      500      {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/timelines/sample [post]
func (h *Handler) Sample(c *gin.Context) {
	var req SampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	frames, err := h.svc.SampleDocument(c.Request.Context(), req.Document, req.toServiceRequest())
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, SampleResponseData{Frames: frames})
}
