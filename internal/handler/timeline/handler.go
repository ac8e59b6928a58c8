package timeline

import (
	"github.com/gin-gonic/gin"

	projectService "montage/internal/service/project"
)

// Handler 时间轴模块处理器
// 所有时间轴与项目相关的 Handler 方法都通过这个结构体访问 Service
type Handler struct {
	svc projectService.Service
}

// NewHandler 创建时间轴模块处理器
func NewHandler(svc projectService.Service) *Handler {
	return &Handler{svc: svc}
}

// Register 注册路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	// 无状态接口
	rg.POST("/timelines", h.Compose)
	rg.POST("/timelines/sample", h.Sample)
	rg.POST("/documents/build", h.BuildDocument)

	// 项目接口（需要 MongoDB）
	projects := rg.Group("/projects")
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/:project_id", h.GetProject)
		projects.PUT("/:project_id", h.UpdateProject)
		projects.DELETE("/:project_id", h.DeleteProject)
		projects.GET("/:project_id/timeline", h.GetTimeline)
		projects.GET("/:project_id/frames/:frame", h.GetFrame)
		projects.POST("/:project_id/export", h.ExportProject)
	}
}
