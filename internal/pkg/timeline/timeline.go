// Package timeline 视频时间轴合成引擎
//
// 输入为上游构建完成的项目文档，输出逐帧可查询的多轨时间轴。
// 包内全部是纯函数：同一文档、同一帧，任意进程、任意顺序、任意并发下结果一致。
// 不做 I/O，不读时钟，不使用随机源。
package timeline

import (
	"sort"

	"montage/internal/model/project"
)

// Options 合成参数
type Options struct {
	FPS           float64 // 目标帧率，<=0 时使用文档设置
	BGMFadeMs     int64   // 全局 BGM 避让淡入/淡出时长，<=0 时使用默认值
	OverlayFadeMs int64   // 叠加层淡入/淡出时长，<=0 时使用默认值
}

// DefaultOptions 返回默认合成参数
func DefaultOptions() Options {
	return Options{
		BGMFadeMs:     DefaultBGMFadeMs,
		OverlayFadeMs: DefaultOverlayFadeMs,
	}
}

// SceneTrack 场景在时间轴上的完整信息
type SceneTrack struct {
	SceneLayout
	Scene NormalizedScene `json:"scene"`
}

// VoiceClip 配音片段在时间轴上的绝对帧区间 [StartFrame, EndFrame)
type VoiceClip struct {
	SceneIdx    int    `json:"scene_idx"`
	CueID       string `json:"cue_id"`
	URL         string `json:"url"`
	StartFrame  int64  `json:"start_frame"`
	EndFrame    int64  `json:"end_frame"`
	Synthesized bool   `json:"synthesized"`
}

// Timeline 合成后的时间轴
// 所有字段均可序列化，反序列化后的 Timeline 与原值采样结果一致
type Timeline struct {
	SchemaVersion       project.SchemaVersion `json:"schema_version"`
	Settings            project.BuildSettings `json:"settings"`
	FPS                 float64               `json:"fps"`
	BGMFadeFrames       int64                 `json:"bgm_fade_frames"`
	OverlayFadeMs       int64                 `json:"overlay_fade_ms"`
	Scenes              []SceneTrack          `json:"scenes"`
	GlobalBGM           *GlobalBGMTrack       `json:"global_bgm,omitempty"`
	SceneBGMIntervals   []BGMInterval         `json:"scene_bgm_intervals"`
	VoiceClips          []VoiceClip           `json:"voice_clips"`
	TotalDurationFrames int64                 `json:"total_duration_frames"`
	TotalDurationMs     int64                 `json:"total_duration_ms"`
}

// Compose 由项目文档合成时间轴
func Compose(doc *project.Document, opts Options) (*Timeline, error) {
	norm, err := Normalize(doc)
	if err != nil {
		return nil, err
	}
	return ComposeNormalized(norm, opts), nil
}

// ComposeNormalized 由归一化文档合成时间轴
func ComposeNormalized(norm *NormalizedDocument, opts Options) *Timeline {
	fps := effectiveFPS(opts.FPS, norm.Settings.FPS)
	bgmFadeMs := opts.BGMFadeMs
	if bgmFadeMs <= 0 {
		bgmFadeMs = DefaultBGMFadeMs
	}
	overlayFadeMs := opts.OverlayFadeMs
	if overlayFadeMs <= 0 {
		overlayFadeMs = DefaultOverlayFadeMs
	}

	layout := AssembleLayout(norm.Scenes, fps)

	tl := &Timeline{
		SchemaVersion:       norm.SchemaVersion,
		Settings:            norm.Settings,
		FPS:                 fps,
		BGMFadeFrames:       MsToFrame(bgmFadeMs, fps),
		OverlayFadeMs:       overlayFadeMs,
		Scenes:              make([]SceneTrack, len(norm.Scenes)),
		SceneBGMIntervals:   []BGMInterval{},
		VoiceClips:          []VoiceClip{},
		TotalDurationFrames: layout.TotalDurationFrames,
		TotalDurationMs:     layout.TotalDurationMs,
	}
	tl.Settings.FPS = fps

	for i, s := range norm.Scenes {
		sl := layout.Scenes[i]
		tl.Scenes[i] = SceneTrack{SceneLayout: sl, Scene: s}

		if iv, ok := SceneBGMInterval(s.Idx, sl.StartFrame, s.DurationMs, s.BGM, fps); ok {
			tl.SceneBGMIntervals = append(tl.SceneBGMIntervals, iv)
		}

		audioStartMs := sl.StartMs + s.HeadPadMs
		for _, c := range s.Cues {
			startMs := audioStartMs + nonNegative(c.StartMs)
			tl.VoiceClips = append(tl.VoiceClips, VoiceClip{
				SceneIdx:    s.Idx,
				CueID:       c.ID,
				URL:         c.URL,
				StartFrame:  MsToFrame(startMs, fps),
				EndFrame:    MsToFrame(startMs+c.DurationMs, fps),
				Synthesized: c.Synthesized,
			})
		}
	}

	tl.GlobalBGM = NewGlobalBGMTrack(norm.BGM, tl.TotalDurationFrames, fps)
	return tl
}

// Layout 返回时间轴的帧布局
func (t *Timeline) Layout() Layout {
	l := Layout{
		FPS:                 t.FPS,
		Scenes:              make([]SceneLayout, len(t.Scenes)),
		TotalDurationFrames: t.TotalDurationFrames,
		TotalDurationMs:     t.TotalDurationMs,
	}
	for i, s := range t.Scenes {
		l.Scenes[i] = s.SceneLayout
	}
	return l
}

// SceneAt 返回包含该帧的场景
func (t *Timeline) SceneAt(frame int64) (*SceneTrack, bool) {
	if frame < 0 || frame >= t.TotalDurationFrames {
		return nil, false
	}
	i := sort.Search(len(t.Scenes), func(i int) bool {
		return t.Scenes[i].EndFrame() > frame
	})
	if i >= len(t.Scenes) {
		return nil, false
	}
	return &t.Scenes[i], true
}

// GlobalBGMAt 返回全局 BGM 在该帧的状态
// 播放窗口外不调度，音量为 0
func (t *Timeline) GlobalBGMAt(frame int64) BGMState {
	if !t.GlobalBGM.Scheduled(frame) {
		return BGMState{}
	}
	return BGMState{
		Scheduled: true,
		Volume:    DuckedVolume(frame, t.GlobalBGM.Volume, t.SceneBGMIntervals, t.BGMFadeFrames),
		OffsetMs:  FrameToMs(frame-t.GlobalBGM.StartFrame, t.FPS),
	}
}

// SceneBGMState 场景 BGM 在某一帧的状态
type SceneBGMState struct {
	SceneIdx int     `json:"scene_idx"`
	URL      string  `json:"url"`
	Volume   float64 `json:"volume"`
}

// SceneBGMAt 返回该帧正在播放的场景 BGM
func (t *Timeline) SceneBGMAt(frame int64) []SceneBGMState {
	var states []SceneBGMState
	for _, iv := range t.SceneBGMIntervals {
		if iv.Contains(frame) {
			states = append(states, SceneBGMState{SceneIdx: iv.SceneIdx, URL: iv.URL, Volume: iv.Level(frame)})
		}
	}
	return states
}

// VoicesAt 返回该帧正在发声的配音片段（显式重叠的片段会同时出现）
func (t *Timeline) VoicesAt(frame int64) []VoiceClip {
	var clips []VoiceClip
	for _, c := range t.VoiceClips {
		if frame >= c.StartFrame && frame < c.EndFrame {
			clips = append(clips, c)
		}
	}
	return clips
}

// FrameState 某一帧的全部渲染参数
type FrameState struct {
	Frame      int64           `json:"frame"`
	InRange    bool            `json:"in_range"`
	SceneIdx   int             `json:"scene_idx,omitempty"`
	SceneFrame int64           `json:"scene_frame"`
	SceneMs    int64           `json:"scene_ms"`
	Transform  Transform       `json:"transform"`
	GlobalBGM  BGMState        `json:"global_bgm"`
	SceneBGM   []SceneBGMState `json:"scene_bgm,omitempty"`
	Voices     []VoiceClip     `json:"voices,omitempty"`
	Overlays   []OverlayState  `json:"overlays,omitempty"`
}

// Sample 采样某一绝对帧
// 各组件互相独立，只依赖帧号与静态时间轴
func (t *Timeline) Sample(frame int64) FrameState {
	state := FrameState{
		Frame:     frame,
		Transform: IdentityTransform,
	}

	track, ok := t.SceneAt(frame)
	if !ok {
		return state
	}

	sceneFrame := frame - track.StartFrame
	sceneMs := FrameToMs(sceneFrame, t.FPS)

	state.InRange = true
	state.SceneIdx = track.Idx
	state.SceneFrame = sceneFrame
	state.SceneMs = sceneMs
	state.Transform = track.Scene.Motion.TransformAt(sceneFrame, track.DurationFrames)
	state.GlobalBGM = t.GlobalBGMAt(frame)
	state.SceneBGM = t.SceneBGMAt(frame)
	state.Voices = t.VoicesAt(frame)
	state.Overlays = VisibleOverlays(track.Scene.TextRenderMode, track.Scene.Overlays, sceneMs, t.OverlayFadeMs)
	return state
}

// SampleMs 按文档绝对毫秒采样
func (t *Timeline) SampleMs(ms int64) FrameState {
	return t.Sample(MsToFrame(ms, t.FPS))
}
