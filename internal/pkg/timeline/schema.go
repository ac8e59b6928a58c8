package timeline

import (
	"fmt"
	"math"
	"strings"

	"montage/internal/model/project"
)

// ParseSchemaVersion 识别文档版本，兼容 "2"、"2.0"、"v2" 等写法
func ParseSchemaVersion(v project.SchemaVersion) (project.SchemaVersion, error) {
	s := strings.ToLower(strings.TrimSpace(string(v)))
	s = strings.TrimPrefix(s, "v")
	s = strings.TrimSuffix(s, ".0")

	switch project.SchemaVersion(s) {
	case project.SchemaVersionV1, project.SchemaVersionV2, project.SchemaVersionV3:
		return project.SchemaVersion(s), nil
	default:
		return "", &SchemaVersionError{Version: string(v)}
	}
}

// NormalizedScene 归一化后的场景
// 无论文档是哪个版本，下游组件都只面对这一种结构
type NormalizedScene struct {
	Idx            int                    `json:"idx"`
	Role           string                 `json:"role,omitempty"`
	Title          string                 `json:"title,omitempty"`
	DurationMs     int64                  `json:"duration_ms"`
	DurationSource DurationSource         `json:"duration_source"`
	HeadPadMs      int64                  `json:"head_pad_ms"`
	TailPadMs      int64                  `json:"tail_pad_ms"`
	Image          *project.Image         `json:"image,omitempty"`
	VideoClip      *project.VideoClip     `json:"video_clip,omitempty"`
	Cues           []Cue                  `json:"cues"`
	LegacyAudio    bool                   `json:"legacy_audio"` // Cues 由旧版单一音频合成
	BGM            *project.SceneBGM      `json:"bgm,omitempty"`
	Motion         MotionPreset           `json:"motion"`
	TextRenderMode project.TextRenderMode `json:"text_render_mode"`
	Overlays       []project.Overlay      `json:"overlays,omitempty"`
}

// NormalizedDocument 归一化后的文档
type NormalizedDocument struct {
	SchemaVersion project.SchemaVersion `json:"schema_version"`
	Settings      project.BuildSettings `json:"settings"`
	Scenes        []NormalizedScene     `json:"scenes"`
	BGM           *project.GlobalBGM    `json:"bgm,omitempty"`
}

// Normalize 读取任意受支持版本的文档，输出统一结构
// 版本无法识别时返回 *SchemaVersionError，不做任何计算
func Normalize(doc *project.Document) (*NormalizedDocument, error) {
	if doc == nil {
		return nil, fmt.Errorf("normalize: nil document")
	}
	version, err := ParseSchemaVersion(doc.SchemaVersion)
	if err != nil {
		return nil, err
	}

	out := &NormalizedDocument{
		SchemaVersion: version,
		Settings:      doc.Settings,
		Scenes:        make([]NormalizedScene, len(doc.Scenes)),
		BGM:           doc.BGM,
	}
	for i := range doc.Scenes {
		out.Scenes[i] = normalizeScene(&doc.Scenes[i])
	}
	return out, nil
}

func normalizeScene(s *project.Scene) NormalizedScene {
	duration, source := ResolveSceneDuration(s)

	ns := NormalizedScene{
		Idx:            s.Idx,
		Role:           s.Role,
		Title:          s.Title,
		DurationMs:     duration,
		DurationSource: source,
		HeadPadMs:      nonNegative(s.Timing.HeadPadMs),
		TailPadMs:      nonNegative(s.Timing.TailPadMs),
		Image:          s.Assets.Image,
		VideoClip:      s.Assets.VideoClip,
		BGM:            s.Assets.BGM,
		Motion:         ResolveMotion(s.Motion),
		TextRenderMode: s.TextRenderMode,
	}
	if ns.TextRenderMode == "" {
		ns.TextRenderMode = project.TextRenderModeOverlay
	}

	switch {
	case len(s.Assets.Voices) > 0:
		ns.Cues = buildCues(s.Assets.Voices)
	case s.Assets.Audio != nil:
		// 旧版单一音频视为一条旁白片段，仅用于时长与音频调度，不参与叠加层对齐
		ns.Cues = []Cue{{
			ID:          fmt.Sprintf("legacy-audio-%d", s.Idx),
			Role:        project.VoiceRoleNarration,
			URL:         s.Assets.Audio.URL,
			Text:        s.Dialogue,
			DurationMs:  nonNegative(s.Assets.Audio.DurationMs),
			Synthesized: true,
		}}
		ns.LegacyAudio = true
	default:
		ns.Cues = []Cue{}
	}

	ns.Overlays = alignOverlays(s.Overlays, ns.Cues, ns.HeadPadMs)
	return ns
}

// alignOverlays 为未给出有效时间窗口、但关联了配音片段的叠加层补全窗口
// 返回新切片；合成的旧版片段不作为对齐目标
func alignOverlays(overlays []project.Overlay, cues []Cue, headPadMs int64) []project.Overlay {
	if len(overlays) == 0 {
		return nil
	}

	byID := make(map[string]Cue, len(cues))
	for _, c := range cues {
		if !c.Synthesized {
			byID[c.ID] = c
		}
	}

	out := make([]project.Overlay, len(overlays))
	for i, o := range overlays {
		out[i] = o
		if o.EndMs > o.StartMs || o.VoiceID == "" {
			continue
		}
		if c, ok := byID[o.VoiceID]; ok {
			out[i].StartMs = headPadMs + c.StartMs
			out[i].EndMs = headPadMs + c.EndMs()
		}
	}
	return out
}

// effectiveFPS 返回可用的帧率
func effectiveFPS(override, settings float64) float64 {
	if override > 0 && !math.IsInf(override, 0) {
		return override
	}
	if settings > 0 && !math.IsInf(settings, 0) {
		return settings
	}
	return DefaultFPS
}
