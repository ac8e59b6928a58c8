package project

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"montage/internal/model/project"
	"montage/internal/pkg/cache"
	"montage/internal/pkg/timeline"
	"montage/internal/pkg/validate"
)

// ComposeResult 合成结果
type ComposeResult struct {
	ContentHash string             `json:"content_hash"`
	Cached      bool               `json:"cached"`
	Timeline    *timeline.Timeline `json:"timeline"`
}

// options 合成参数：显式帧率 > 文档帧率 > 配置默认帧率
func (s *projectService) options(doc *project.Document, fps float64) timeline.Options {
	opts := timeline.Options{
		FPS:           fps,
		BGMFadeMs:     s.cfg.BGMFadeMs,
		OverlayFadeMs: s.cfg.OverlayFadeMs,
	}
	if opts.FPS <= 0 && doc.Settings.FPS <= 0 {
		opts.FPS = s.cfg.DefaultFPS
	}
	return opts
}

// resolvedFPS 本次合成实际使用的帧率（用于缓存 key）
func resolvedFPS(doc *project.Document, opts timeline.Options) float64 {
	if opts.FPS > 0 {
		return opts.FPS
	}
	return doc.Settings.FPS
}

// Compose 合成一份未落库的文档
func (s *projectService) Compose(ctx context.Context, doc *project.Document, fps float64) (*ComposeResult, error) {
	doc = timeline.SanitizeDocument(doc)
	if err := validate.Document(doc); err != nil {
		return nil, err
	}
	hash, err := ContentHash(doc)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, doc, hash, fps)
}

// compose 带缓存的合成；缓存读写失败只记录日志，不影响结果
func (s *projectService) compose(ctx context.Context, doc *project.Document, hash string, fps float64) (*ComposeResult, error) {
	opts := s.options(doc, fps)
	key := cache.TimelineCacheKey(hash, resolvedFPS(doc, opts), s.cfg.BGMFadeMs, s.cfg.OverlayFadeMs)

	if s.cache != nil {
		var tl timeline.Timeline
		err := s.cache.Get(ctx, key, &tl)
		if err == nil {
			return &ComposeResult{ContentHash: hash, Cached: true, Timeline: &tl}, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("读取时间轴缓存失败")
		}
	}

	tl, err := timeline.Compose(doc, opts)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		ttl := s.cfg.CacheTTL
		if ttl <= 0 {
			ttl = cache.TimelineCacheTTL
		}
		if err := s.cache.Set(ctx, key, tl, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("写入时间轴缓存失败")
		}
	}

	log.Debug().
		Str("content_hash", hash).
		Float64("fps", tl.FPS).
		Int64("total_frames", tl.TotalDurationFrames).
		Msg("时间轴合成完成")
	return &ComposeResult{ContentHash: hash, Timeline: tl}, nil
}

// GetTimeline 获取项目时间轴
func (s *projectService) GetTimeline(ctx context.Context, projectID, userID string, fps float64) (*ComposeResult, error) {
	p, err := s.GetProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return s.projectTimeline(ctx, p, fps)
}

func (s *projectService) projectTimeline(ctx context.Context, p *project.Project, fps float64) (*ComposeResult, error) {
	hash := p.ContentHash
	if hash == "" {
		var err error
		if hash, err = ContentHash(&p.Document); err != nil {
			return nil, err
		}
	}
	return s.compose(ctx, &p.Document, hash, fps)
}

func timelinePattern(contentHash string) string {
	return cache.TimelineCachePattern(contentHash)
}
