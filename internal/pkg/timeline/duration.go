package timeline

import (
	"strings"
	"unicode/utf8"

	"montage/internal/model/project"
)

const (
	MsPerChar              = 300  // 按字数估算时每个字符的时长
	MinSceneDurationMs     = 2000 // 按字数估算时的最短时长
	DefaultSceneDurationMs = 5000 // 没有任何可用素材时的默认时长
)

// DurationSource 场景时长来源
type DurationSource string

const (
	DurationSourceVoices    DurationSource = "voices"
	DurationSourceVideoClip DurationSource = "video_clip"
	DurationSourceAudio     DurationSource = "audio"
	DurationSourceDialogue  DurationSource = "dialogue"
	DurationSourceDefault   DurationSource = "default"
)

// ResolveSceneDuration 计算场景时长（毫秒）
// 优先级固定：配音 > 视频片段 > 旧版音频 > 台词字数估算 > 默认值。
// 新版字段永远优先于旧版字段，即便两者同时存在。
func ResolveSceneDuration(scene *project.Scene) (int64, DurationSource) {
	pads := nonNegative(scene.Timing.HeadPadMs) + nonNegative(scene.Timing.TailPadMs)
	assets := scene.Assets

	if len(assets.Voices) > 0 {
		var total int64
		for _, v := range assets.Voices {
			total += nonNegative(v.DurationMs)
		}
		return total + pads, DurationSourceVoices
	}

	// 视频片段时长是权威值，不叠加 padding
	if assets.VideoClip != nil {
		return nonNegative(assets.VideoClip.DurationMs), DurationSourceVideoClip
	}

	if assets.Audio != nil {
		return nonNegative(assets.Audio.DurationMs) + pads, DurationSourceAudio
	}

	if dialogue := strings.TrimSpace(scene.Dialogue); dialogue != "" {
		estimated := int64(utf8.RuneCountInString(dialogue)) * MsPerChar
		if estimated < MinSceneDurationMs {
			estimated = MinSceneDurationMs
		}
		return estimated + pads, DurationSourceDialogue
	}

	return DefaultSceneDurationMs, DurationSourceDefault
}
