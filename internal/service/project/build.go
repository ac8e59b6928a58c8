package project

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"montage/internal/model/project"
	"montage/internal/pkg/timeline"
)

// BuildRequest 文档构建请求
type BuildRequest struct {
	Document           *project.Document
	Seed               int64
	ResolveVoiceStarts bool
	Probe              bool // 用 ffprobe 补全缺失的媒体时长
}

// BuildDocument 构建规范文档
func (s *projectService) BuildDocument(ctx context.Context, req *BuildRequest) (*project.Document, error) {
	doc := req.Document
	if doc == nil {
		return nil, fmt.Errorf("build: nil document")
	}
	if _, err := timeline.ParseSchemaVersion(doc.SchemaVersion); err != nil {
		return nil, err
	}
	// 已是副本，探测可以原地写入
	doc = timeline.SanitizeDocument(doc)

	if req.Probe {
		if s.prober == nil {
			return nil, fmt.Errorf("probe requested but ffprobe is not configured")
		}
		if err := s.probeDurations(ctx, doc); err != nil {
			return nil, err
		}
	}

	out, err := timeline.BuildDocument(doc, timeline.BuildOptions{
		Seed:               req.Seed,
		ResolveVoiceStarts: req.ResolveVoiceStarts,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("schema_version", string(out.SchemaVersion)).
		Int("scenes", out.Summary.SceneCount).
		Int64("total_duration_ms", out.Summary.TotalDurationMs).
		Msg("文档构建完成")
	return out, nil
}

// probeDurations 为缺少时长的配音、旧版音频与视频片段测量时长（原地修改 doc）
func (s *projectService) probeDurations(ctx context.Context, doc *project.Document) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.SampleWorkers)

	probe := func(url string, dst *int64) {
		if url == "" || *dst > 0 {
			return
		}
		g.Go(func() error {
			ms, err := s.prober.ProbeDurationMs(ctx, url)
			if err != nil {
				return fmt.Errorf("probe %s: %w", url, err)
			}
			*dst = ms
			return nil
		})
	}

	for i := range doc.Scenes {
		a := &doc.Scenes[i].Assets
		for j := range a.Voices {
			probe(a.Voices[j].URL, &a.Voices[j].DurationMs)
		}
		if a.Audio != nil {
			probe(a.Audio.URL, &a.Audio.DurationMs)
		}
		if a.VideoClip != nil {
			probe(a.VideoClip.URL, &a.VideoClip.DurationMs)
		}
	}
	return g.Wait()
}
