package timeline

import (
	"math"

	"montage/internal/model/project"
)

const (
	DefaultBGMFadeMs     = 120 // 全局 BGM 在场景 BGM 前后的淡出/淡入时长
	DefaultBGMVolume     = 1.0 // 未配置音量时的 BGM 基础音量
	DefaultSceneBGMLevel = 1.0
)

// BGMInterval 场景 BGM 占用的绝对帧区间 [StartFrame, EndFrame)
type BGMInterval struct {
	SceneIdx   int     `json:"scene_idx"`
	URL        string  `json:"url"`
	StartFrame int64   `json:"start_frame"`
	EndFrame   int64   `json:"end_frame"`
	Volume     float64 `json:"volume"`         // 场景 BGM 自身音量
	FadeIn     int64   `json:"fade_in_frames"` // 场景 BGM 自身的淡入帧数
	FadeOut    int64   `json:"fade_out_frames"`
}

// Contains 判断帧是否落在区间内
func (iv BGMInterval) Contains(frame int64) bool {
	return frame >= iv.StartFrame && frame < iv.EndFrame
}

// SceneBGMInterval 将场景级 BGM 覆盖换算为绝对帧区间
// start_ms/end_ms 先钳制到 [0, sceneDurationMs]，钳制后为空的区间直接丢弃（ok=false）
func SceneBGMInterval(sceneIdx int, sceneStartFrame, sceneDurationMs int64, bgm *project.SceneBGM, fps float64) (BGMInterval, bool) {
	if bgm == nil {
		return BGMInterval{}, false
	}

	duration := nonNegative(sceneDurationMs)
	endMs := duration
	if bgm.EndMs != nil {
		endMs = *bgm.EndMs
	}
	startMs := clampMs(bgm.StartMs, 0, duration)
	endMs = clampMs(endMs, 0, duration)

	iv := BGMInterval{
		SceneIdx:   sceneIdx,
		URL:        bgm.URL,
		StartFrame: sceneStartFrame + MsToFrame(startMs, fps),
		EndFrame:   sceneStartFrame + MsToFrame(endMs, fps),
		Volume:     volumeOrDefault(bgm.Volume, DefaultSceneBGMLevel),
		FadeIn:     MsToFrame(nonNegative(bgm.FadeInMs), fps),
		FadeOut:    MsToFrame(nonNegative(bgm.FadeOutMs), fps),
	}
	if iv.EndFrame <= iv.StartFrame {
		return BGMInterval{}, false
	}
	return iv, true
}

// DuckedVolume 计算全局 BGM 在某一绝对帧的音量
//   - 落在任一场景 BGM 区间内：完全静音（0）
//   - 落在某区间起点前 fadeFrames 帧内：从 base 线性淡出到 0
//   - 落在某区间终点后 fadeFrames 帧内：从 0 线性淡入到 base
//   - 其它：base
//
// 多个淡入/淡出区重叠时，按区间顺序第一个命中的生效。
func DuckedVolume(frame int64, base float64, intervals []BGMInterval, fadeFrames int64) float64 {
	base = clamp01(base)

	for _, iv := range intervals {
		if iv.Contains(frame) {
			return 0
		}
	}

	if fadeFrames <= 0 {
		return base
	}

	fade := float64(fadeFrames)
	for _, iv := range intervals {
		// 起点前：淡出
		if frame >= iv.StartFrame-fadeFrames && frame < iv.StartFrame {
			return clamp01(base * float64(iv.StartFrame-frame) / fade)
		}
		// 终点后：淡入
		if frame >= iv.EndFrame && frame < iv.EndFrame+fadeFrames {
			return clamp01(base * float64(frame-iv.EndFrame) / fade)
		}
	}

	return base
}

// Level 计算场景 BGM 在某一绝对帧的音量（区间外为 0）
func (iv BGMInterval) Level(frame int64) float64 {
	if !iv.Contains(frame) {
		return 0
	}
	level := clamp01(iv.Volume)
	if iv.FadeIn > 0 && frame < iv.StartFrame+iv.FadeIn {
		return clamp01(level * float64(frame-iv.StartFrame) / float64(iv.FadeIn))
	}
	if iv.FadeOut > 0 && frame >= iv.EndFrame-iv.FadeOut {
		return clamp01(level * float64(iv.EndFrame-frame) / float64(iv.FadeOut))
	}
	return level
}

// GlobalBGMTrack 全局 BGM 的调度信息
type GlobalBGMTrack struct {
	URL        string  `json:"url"`
	Volume     float64 `json:"volume"`      // 基础音量
	StartFrame int64   `json:"start_frame"` // 播放窗口起点（含）
	EndFrame   int64   `json:"end_frame"`   // 播放窗口终点（不含）
	Loop       bool    `json:"loop"`
}

// NewGlobalBGMTrack 计算全局 BGM 的播放窗口
// 未给出窗口时覆盖整个文档
func NewGlobalBGMTrack(bgm *project.GlobalBGM, totalFrames int64, fps float64) *GlobalBGMTrack {
	if bgm == nil {
		return nil
	}
	track := &GlobalBGMTrack{
		URL:      bgm.URL,
		Volume:   volumeOrDefault(bgm.Volume, DefaultBGMVolume),
		EndFrame: totalFrames,
		Loop:     bgm.Loop,
	}
	if bgm.VideoStartMs != nil {
		track.StartFrame = MsToFrame(nonNegative(*bgm.VideoStartMs), fps)
	}
	if bgm.VideoEndMs != nil {
		track.EndFrame = MsToFrame(nonNegative(*bgm.VideoEndMs), fps)
	}
	return track
}

// Scheduled 判断全局 BGM 在该帧是否被调度播放
func (t *GlobalBGMTrack) Scheduled(frame int64) bool {
	return t != nil && frame >= t.StartFrame && frame < t.EndFrame
}

// BGMState 全局 BGM 在某一帧的状态
type BGMState struct {
	Scheduled bool    `json:"scheduled"`
	Volume    float64 `json:"volume"`
	OffsetMs  int64   `json:"offset_ms"` // 素材内播放位置（相对窗口起点）
}

func volumeOrDefault(v *float64, def float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return def
	}
	return clamp01(*v)
}
