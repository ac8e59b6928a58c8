package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "montage/docs"
	"montage/internal/config"
	"montage/internal/handler"
	timelineHandler "montage/internal/handler/timeline"
	"montage/internal/pkg/cache"
	"montage/internal/pkg/ffmpeg"
	"montage/internal/pkg/jwt"
	"montage/internal/pkg/mongodb"
	"montage/internal/pkg/storage"
	"montage/internal/pkg/storagefactory"
	projectRepo "montage/internal/repository/project"
	"montage/internal/server/middleware"
	projectService "montage/internal/service/project"
)

// Server HTTP 服务器
type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	mongo   *mongodb.Client
	redis   *cache.RedisCache
	storage storage.Storage
}

// New 创建服务器实例
// MongoDB、Redis、存储都是可选的：连接失败时降级运行，相关接口返回 503
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:    cfg,
		engine: gin.New(),
	}

	// 初始化 MongoDB (可选)
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(context.Background(), &cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			srv.mongo = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
			cancel()
		}
	}

	// 初始化 Redis (可选)
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			srv.redis = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 初始化存储 (可选)
	if cfg.Storage.Type != "" {
		st, err := storagefactory.NewStorage(context.Background(), &cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Str("type", cfg.Storage.Type).Msg("failed to initialize storage, export disabled")
		} else {
			srv.storage = st
			log.Info().Str("type", string(st.GetStorageType())).Msg("initialized storage")
		}
	}

	srv.setupRoutes()
	return srv, nil
}

// newProjectService 组装项目服务，未初始化的依赖不注入
func (s *Server) newProjectService() projectService.Service {
	deps := projectService.Deps{
		Config: s.cfg.Timeline,
		Prober: ffmpeg.NewClient(&s.cfg.FFmpeg),
	}
	if s.mongo != nil {
		deps.Repo = projectRepo.NewProjectRepo(s.mongo.Database())
	} else {
		log.Warn().Msg("MongoDB not configured, project endpoints disabled")
	}
	if s.redis != nil {
		deps.Cache = s.redis
	}
	if s.storage != nil {
		deps.Storage = s.storage
	}
	return projectService.NewService(deps)
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	if s.mongo != nil {
		healthHandler.WithDependency("mongo", s.mongo)
	}
	if s.redis != nil {
		healthHandler.WithDependency("redis", s.redis)
	}
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 本地存储的导出文件
	if s.storage != nil && s.storage.GetStorageType() == string(storage.StorageTypeLocal) && s.cfg.Storage.Local != nil {
		s.engine.Static("/files", s.cfg.Storage.Local.BasePath)
	}

	// API v1
	v1 := s.engine.Group("/api/v1")
	if s.cfg.Auth.JWTSecret != "" {
		v1.Use(middleware.Auth(jwt.NewJWT(s.cfg.Auth.JWTSecret, s.cfg.Auth.Issuer, s.cfg.Auth.AccessTokenExpiry)))
	} else {
		log.Warn().Msg("JWT secret not configured, API authentication disabled")
	}
	timelineHandler.NewHandler(s.newProjectService()).Register(v1)
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		// 关闭连接
		if s.mongo != nil {
			if err := s.mongo.Close(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}
		return err
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
