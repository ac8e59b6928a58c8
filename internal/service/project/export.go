package project

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"montage/internal/pkg/docio"
	"montage/internal/pkg/ffmpeg"
	"montage/internal/pkg/storage"
	"montage/internal/pkg/subtitle"
)

// ExportResult 导出结果
type ExportResult struct {
	ProjectID   string `json:"project_id"`
	Version     int    `json:"version"`
	TimelineKey string `json:"timeline_key"`
	TimelineURL string `json:"timeline_url"`
	MixPlanKey  string `json:"mixplan_key"`
	MixPlanURL  string `json:"mixplan_url"`
	SubtitleKey string `json:"subtitle_key"`
	SubtitleURL string `json:"subtitle_url"`
}

// ExportProject 导出时间轴与混音计划
// 存储路径：{export_prefix}/{project_id}/v{version}/timeline.json，同目录下还有 mixplan.json 与 subtitles.ass
func (s *projectService) ExportProject(ctx context.Context, projectID, userID string, fps float64) (*ExportResult, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	p, err := s.GetProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	res, err := s.projectTimeline(ctx, p, fps)
	if err != nil {
		return nil, err
	}

	dir := path.Join(s.cfg.ExportPrefix, p.ID, fmt.Sprintf("v%d", p.Version))
	out := &ExportResult{
		ProjectID:   p.ID,
		Version:     p.Version,
		TimelineKey: path.Join(dir, "timeline.json"),
		MixPlanKey:  path.Join(dir, "mixplan.json"),
		SubtitleKey: path.Join(dir, "subtitles.ass"),
	}

	if out.TimelineURL, err = docio.Save(ctx, s.storage, out.TimelineKey, res.Timeline); err != nil {
		return nil, fmt.Errorf("export timeline: %w", err)
	}
	if out.MixPlanURL, err = docio.Save(ctx, s.storage, out.MixPlanKey, ffmpeg.BuildMixPlan(res.Timeline)); err != nil {
		return nil, fmt.Errorf("export mix plan: %w", err)
	}
	ass := subtitle.NewASSGenerator().Generate(res.Timeline, p.Title)
	if out.SubtitleURL, err = s.storage.Upload(ctx, out.SubtitleKey, strings.NewReader(ass), storage.ContentType(out.SubtitleKey)); err != nil {
		return nil, fmt.Errorf("export subtitles: %w", err)
	}

	log.Info().
		Str("project_id", p.ID).
		Int("version", p.Version).
		Str("storage", string(s.storage.GetStorageType())).
		Str("timeline_key", out.TimelineKey).
		Msg("时间轴已导出")
	return out, nil
}
