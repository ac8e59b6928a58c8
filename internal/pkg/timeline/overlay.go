package timeline

import (
	"sort"

	"montage/internal/model/project"
)

// DefaultOverlayFadeMs 叠加层进出场的淡入/淡出时长
const DefaultOverlayFadeMs = 150

// OverlayOpacity 计算叠加层在场景内 tMs 时刻的不透明度
// 可见窗口为 [start_ms, end_ms)，窗口两端各有 fadeMs 的线性渐变
func OverlayOpacity(o *project.Overlay, tMs, fadeMs int64) float64 {
	if tMs < o.StartMs || tMs >= o.EndMs {
		return 0
	}
	if fadeMs <= 0 {
		return 1
	}

	fade := float64(fadeMs)
	fadeInEnd := o.StartMs + fadeMs
	fadeOutStart := o.EndMs - fadeMs

	if tMs < fadeInEnd {
		return clamp01(float64(tMs-o.StartMs) / fade)
	}
	if tMs >= fadeOutStart {
		return clamp01(float64(o.EndMs-tMs) / fade)
	}
	return 1
}

// OverlayDisplayable 判断叠加层在给定渲染模式下是否可以显示
// baked 模式下没有预渲染图片的叠加层直接跳过，引擎不会自行绘制文字
func OverlayDisplayable(mode project.TextRenderMode, o *project.Overlay) bool {
	switch mode {
	case project.TextRenderModeNone:
		return false
	case project.TextRenderModeBaked:
		return o.BubbleImageURL != ""
	default:
		return true
	}
}

// OverlayState 叠加层在某一时刻的渲染参数
type OverlayState struct {
	ID       string               `json:"id"`
	Opacity  float64              `json:"opacity"`
	Text     string               `json:"text,omitempty"`      // overlay-rendered 模式下由渲染端绘制
	ImageURL string               `json:"image_url,omitempty"` // baked 模式下原样显示
	Position project.Point        `json:"position"`
	Size     project.Size         `json:"size"`
	Shape    project.OverlayShape `json:"shape,omitempty"`
	Style    project.OverlayStyle `json:"style"`
	ZIndex   int                  `json:"z_index"`
}

// VisibleOverlays 返回场景内 tMs 时刻可见的叠加层，按 z_index 升序（同层保持原顺序）
func VisibleOverlays(mode project.TextRenderMode, overlays []project.Overlay, tMs, fadeMs int64) []OverlayState {
	var states []OverlayState
	for i := range overlays {
		o := &overlays[i]
		if !OverlayDisplayable(mode, o) {
			continue
		}
		opacity := OverlayOpacity(o, tMs, fadeMs)
		if opacity <= 0 {
			continue
		}

		state := OverlayState{
			ID:       o.ID,
			Opacity:  opacity,
			Position: clampPoint(o.Position),
			Size:     clampSize(o.Size),
			Shape:    o.Shape,
			Style:    o.Style,
			ZIndex:   o.ZIndex,
		}
		if mode == project.TextRenderModeBaked {
			state.ImageURL = o.BubbleImageURL
		} else {
			state.Text = o.Text
		}
		states = append(states, state)
	}

	sort.SliceStable(states, func(i, j int) bool {
		return states[i].ZIndex < states[j].ZIndex
	})
	return states
}

func clampPoint(p project.Point) project.Point {
	return project.Point{X: clamp01(p.X), Y: clamp01(p.Y)}
}

func clampSize(s project.Size) project.Size {
	return project.Size{W: clamp01(s.W), H: clamp01(s.H)}
}
