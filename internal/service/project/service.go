package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"montage/internal/config"
	"montage/internal/model/project"
	"montage/internal/pkg/id"
	"montage/internal/pkg/storage"
	"montage/internal/pkg/timeline"
	"montage/internal/pkg/validate"
	projectRepo "montage/internal/repository/project"
)

var (
	ErrProjectNotFound     = projectRepo.ErrProjectNotFound
	ErrProjectAccessDenied = errors.New("无权访问该项目")
	ErrInvalidRange        = errors.New("采样区间无效")
	ErrStorageUnavailable  = errors.New("持久化或存储未配置")
)

// Cache 合成结果缓存（Redis 实现见 internal/pkg/cache）
type Cache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Prober 测量媒体时长（ffprobe 实现见 internal/pkg/ffmpeg）
type Prober interface {
	ProbeDurationMs(ctx context.Context, path string) (int64, error)
}

// Service 项目服务接口
// 定义文档构建、时间轴合成、采样与项目管理能力
type Service interface {
	// BuildDocument 构建规范文档（auto 运镜选定、时长与摘要填充）
	// Probe 为 true 时先用 ffprobe 补全缺失的媒体时长
	BuildDocument(ctx context.Context, req *BuildRequest) (*project.Document, error)

	// Compose 合成一份未落库的文档
	Compose(ctx context.Context, doc *project.Document, fps float64) (*ComposeResult, error)

	// SampleDocument 合成并采样一份未落库的文档
	SampleDocument(ctx context.Context, doc *project.Document, req *SampleRequest) ([]FrameSample, error)

	// CreateProject 校验并保存项目文档
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*project.Project, error)

	// UpdateProject 替换项目文档，版本号加一
	UpdateProject(ctx context.Context, req *UpdateProjectRequest) (*project.Project, error)

	// GetProject 获取项目
	// 注意：userID 为空视为系统内部请求，可以访问所有项目
	GetProject(ctx context.Context, projectID, userID string) (*project.Project, error)

	// ListProjects 查询用户的项目列表
	ListProjects(ctx context.Context, userID string, limit, offset int64) ([]*project.Project, int64, error)

	// GetTimeline 获取项目时间轴（优先读缓存）
	GetTimeline(ctx context.Context, projectID, userID string, fps float64) (*ComposeResult, error)

	// SampleProject 采样项目时间轴
	SampleProject(ctx context.Context, projectID, userID string, req *SampleRequest) ([]FrameSample, error)

	// ExportProject 导出时间轴与混音计划到存储
	ExportProject(ctx context.Context, projectID, userID string, fps float64) (*ExportResult, error)

	// DeleteProject 软删除项目并清理缓存
	DeleteProject(ctx context.Context, projectID, userID string) error
}

// Deps 服务依赖；均可以为空，缺少 Repo 时项目相关接口返回 ErrStorageUnavailable
type Deps struct {
	Repo    projectRepo.ProjectRepository
	Cache   Cache
	Storage storage.Storage
	Prober  Prober
	Config  config.TimelineConfig
}

// projectService 项目服务实现
type projectService struct {
	repo    projectRepo.ProjectRepository
	cache   Cache
	storage storage.Storage
	prober  Prober
	cfg     config.TimelineConfig
}

// NewService 创建项目服务
func NewService(deps Deps) Service {
	cfg := deps.Config
	if cfg.DefaultFPS <= 0 {
		cfg.DefaultFPS = 30
	}
	if cfg.SampleWorkers <= 0 {
		cfg.SampleWorkers = 1
	}
	if cfg.ExportPrefix == "" {
		cfg.ExportPrefix = "exports"
	}
	return &projectService{
		repo:    deps.Repo,
		cache:   deps.Cache,
		storage: deps.Storage,
		prober:  deps.Prober,
		cfg:     cfg,
	}
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	UserID   string
	Title    string
	Document *project.Document
}

// CreateProject 校验并保存项目文档
func (s *projectService) CreateProject(ctx context.Context, req *CreateProjectRequest) (*project.Project, error) {
	if s.repo == nil {
		return nil, ErrStorageUnavailable
	}
	doc := timeline.SanitizeDocument(req.Document)
	if err := validate.Document(doc); err != nil {
		return nil, err
	}
	hash, err := ContentHash(doc)
	if err != nil {
		return nil, err
	}

	p := &project.Project{
		ID:          id.New(),
		UserID:      req.UserID,
		Title:       req.Title,
		Document:    *doc,
		ContentHash: hash,
		Version:     1,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	log.Info().
		Str("project_id", p.ID).
		Str("user_id", p.UserID).
		Str("content_hash", hash).
		Int("scenes", len(p.Document.Scenes)).
		Msg("项目已创建")
	return p, nil
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	ProjectID string
	UserID    string
	Title     string
	Document  *project.Document
}

// UpdateProject 替换项目文档，版本号加一
func (s *projectService) UpdateProject(ctx context.Context, req *UpdateProjectRequest) (*project.Project, error) {
	old, err := s.GetProject(ctx, req.ProjectID, req.UserID)
	if err != nil {
		return nil, err
	}
	doc := timeline.SanitizeDocument(req.Document)
	if err := validate.Document(doc); err != nil {
		return nil, err
	}
	hash, err := ContentHash(doc)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.UpdateDocument(ctx, req.ProjectID, req.Title, doc, hash)
	if err != nil {
		return nil, err
	}
	if old.ContentHash != hash {
		s.invalidate(ctx, old.ContentHash)
	}

	log.Info().
		Str("project_id", p.ID).
		Int("version", p.Version).
		Str("content_hash", hash).
		Msg("项目已更新")
	return p, nil
}

// GetProject 获取项目
func (s *projectService) GetProject(ctx context.Context, projectID, userID string) (*project.Project, error) {
	if s.repo == nil {
		return nil, ErrStorageUnavailable
	}
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if userID != "" && p.UserID != userID {
		return nil, ErrProjectAccessDenied
	}
	return p, nil
}

// ListProjects 查询用户的项目列表
func (s *projectService) ListProjects(ctx context.Context, userID string, limit, offset int64) ([]*project.Project, int64, error) {
	if s.repo == nil {
		return nil, 0, ErrStorageUnavailable
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.FindByUserID(ctx, userID, limit, offset)
}

// DeleteProject 软删除项目并清理缓存
func (s *projectService) DeleteProject(ctx context.Context, projectID, userID string) error {
	p, err := s.GetProject(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, projectID); err != nil {
		return err
	}
	s.invalidate(ctx, p.ContentHash)

	log.Info().Str("project_id", projectID).Msg("项目已删除")
	return nil
}

// invalidate 清理某个文档的全部缓存，失败只记录日志
func (s *projectService) invalidate(ctx context.Context, contentHash string) {
	if s.cache == nil || contentHash == "" {
		return
	}
	if err := s.cache.DeletePattern(ctx, timelinePattern(contentHash)); err != nil {
		log.Warn().Err(err).Str("content_hash", contentHash).Msg("清理时间轴缓存失败")
	}
}
