package timeline

import (
	"github.com/gin-gonic/gin"

	"montage/internal/model/project"
	httputil "montage/internal/pkg/http"
	projectService "montage/internal/service/project"
)

// BuildRequest 文档构建请求
type BuildRequest struct {
	Document           *project.Document `json:"document" binding:"required"` // 项目文档（必填）
	Seed               int64             `json:"seed"`                        // auto 运镜的项目级种子
	ResolveVoiceStarts bool              `json:"resolve_voice_starts"`        // 是否写回推算出的配音起点
	Probe              bool              `json:"probe"`                       // 是否用 ffprobe 补全缺失的时长
}

// BuildDocument 构建规范文档
// @Summary      构建规范文档
// @Description  选定 auto 运镜、只保留该版本的规范音频结构、填充场景时长与起点和摘要
// @Tags         时间轴
// @Accept       json
// @Produce      json
// @Param        request  body      BuildRequest  true  "构建请求"
// @Success      200      {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"schema_version\": \"3\", ...}}"
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      422      {object}  ErrorResponse  "不支持的文档版本"
// @Failure      500      {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/documents/build [post]
func (h *Handler) BuildDocument(c *gin.Context) {
	var req BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	doc, err := h.svc.BuildDocument(c.Request.Context(), &projectService.BuildRequest{
		Document:           req.Document,
		Seed:               req.Seed,
		ResolveVoiceStarts: req.ResolveVoiceStarts,
		Probe:              req.Probe,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.OK(c, doc)
}
