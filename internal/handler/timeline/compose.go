package timeline

import (
	"github.com/gin-gonic/gin"

	"montage/internal/model/project"
	httputil "montage/internal/pkg/http"
)

// ComposeRequest 合成时间轴请求
type ComposeRequest struct {
	Document *project.Document `json:"document" binding:"required"` // 项目文档（必填）
	FPS      float64           `json:"fps"`                         // 目标帧率（可选，默认使用文档设置）
}

// Compose 合成时间轴
// @Summary      合成时间轴
// @Description  对提交的项目文档做校验并合成逐帧时间轴（不落库，结果按内容哈希缓存）
// @Tags         时间轴
// @Accept       json
// @Produce      json
// @Param        request  body      ComposeRequest  true  "合成请求"
// @Success      200      {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"content_hash\": \"...\", \"timeline\": {...}}}"
// @Failure      400      {object}  ErrorResponse  "请求参数错误或文档校验失败"
// @Failure      422      {object}  ErrorResponse  "不支持的文档版本"
// @Failure      500      {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/timelines [post]
func (h *Handler) Compose(c *gin.Context) {
	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	result, err := h.svc.Compose(c.Request.Context(), req.Document, req.FPS)
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, result)
}
