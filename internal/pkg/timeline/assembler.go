package timeline

import "sort"

// SceneLayout 场景在文档时间轴上的绝对位置
type SceneLayout struct {
	Idx            int   `json:"idx"`
	StartFrame     int64 `json:"start_frame"`
	DurationFrames int64 `json:"duration_frames"`
	StartMs        int64 `json:"start_ms"`
	DurationMs     int64 `json:"duration_ms"`
}

// EndFrame 返回场景结束帧（不含）
func (l SceneLayout) EndFrame() int64 {
	return l.StartFrame + l.DurationFrames
}

// Layout 文档级帧布局
type Layout struct {
	FPS                 float64       `json:"fps"`
	Scenes              []SceneLayout `json:"scenes"`
	TotalDurationFrames int64         `json:"total_duration_frames"`
	TotalDurationMs     int64         `json:"total_duration_ms"`
}

// AssembleLayout 按场景时长累加出每个场景的起始帧与帧数
// 起始帧由累计毫秒换算，帧数取相邻起始帧之差，因此相邻场景之间既无空隙也无重叠，
// 且四舍五入误差不会随场景数累积。
func AssembleLayout(scenes []NormalizedScene, fps float64) Layout {
	layout := Layout{
		FPS:    fps,
		Scenes: make([]SceneLayout, len(scenes)),
	}

	var cursorMs int64
	for i, s := range scenes {
		duration := nonNegative(s.DurationMs)
		startFrame := MsToFrame(cursorMs, fps)
		endFrame := MsToFrame(cursorMs+duration, fps)

		layout.Scenes[i] = SceneLayout{
			Idx:            s.Idx,
			StartFrame:     startFrame,
			DurationFrames: endFrame - startFrame,
			StartMs:        cursorMs,
			DurationMs:     duration,
		}
		cursorMs += duration
	}

	layout.TotalDurationMs = cursorMs
	layout.TotalDurationFrames = MsToFrame(cursorMs, fps)
	return layout
}

// SceneAt 返回包含该帧的场景在 Scenes 中的下标
func (l *Layout) SceneAt(frame int64) (int, bool) {
	if frame < 0 || frame >= l.TotalDurationFrames {
		return -1, false
	}
	i := sort.Search(len(l.Scenes), func(i int) bool {
		return l.Scenes[i].EndFrame() > frame
	})
	if i >= len(l.Scenes) {
		return -1, false
	}
	return i, true
}
