package timeline

import (
	"math"

	"montage/internal/model/project"
)

// DefaultMotionPresetID 缺省运镜：轻微推近
const DefaultMotionPresetID = "soft_zoom_in"

// Transform 某一帧的画面变换
type Transform struct {
	Scale         float64 `json:"scale"`           // 缩放倍数（1.0 为原始大小）
	TranslateXPct float64 `json:"translate_x_pct"` // 水平平移（相对画面宽度的百分比）
	TranslateYPct float64 `json:"translate_y_pct"` // 垂直平移（相对画面高度的百分比）
}

// IdentityTransform 无变换
var IdentityTransform = Transform{Scale: 1}

// MotionPreset 具体的运镜参数
type MotionPreset struct {
	ID         string             `json:"id"`
	Kind       project.MotionKind `json:"kind"`
	StartScale float64            `json:"start_scale"`
	EndScale   float64            `json:"end_scale"`
	StartXPct  float64            `json:"start_x_pct"`
	EndXPct    float64            `json:"end_x_pct"`
	StartYPct  float64            `json:"start_y_pct"`
	EndYPct    float64            `json:"end_y_pct"`
	HoldRatio  float64            `json:"hold_ratio"`
}

// motionPresets 固定预设表
var motionPresets = map[string]MotionPreset{
	"static":         {ID: "static", Kind: project.MotionKindNone, StartScale: 1, EndScale: 1},
	"soft_zoom_in":   {ID: "soft_zoom_in", Kind: project.MotionKindZoom, StartScale: 1.0, EndScale: 1.08},
	"soft_zoom_out":  {ID: "soft_zoom_out", Kind: project.MotionKindZoom, StartScale: 1.08, EndScale: 1.0},
	"zoom_in":        {ID: "zoom_in", Kind: project.MotionKindZoom, StartScale: 1.0, EndScale: 1.2},
	"zoom_out":       {ID: "zoom_out", Kind: project.MotionKindZoom, StartScale: 1.2, EndScale: 1.0},
	"pan_left":       {ID: "pan_left", Kind: project.MotionKindPan, StartScale: 1.15, EndScale: 1.15, StartXPct: 5, EndXPct: -5},
	"pan_right":      {ID: "pan_right", Kind: project.MotionKindPan, StartScale: 1.15, EndScale: 1.15, StartXPct: -5, EndXPct: 5},
	"pan_up":         {ID: "pan_up", Kind: project.MotionKindPan, StartScale: 1.15, EndScale: 1.15, StartYPct: 5, EndYPct: -5},
	"pan_down":       {ID: "pan_down", Kind: project.MotionKindPan, StartScale: 1.15, EndScale: 1.15, StartYPct: -5, EndYPct: 5},
	"zoom_pan_left":  {ID: "zoom_pan_left", Kind: project.MotionKindCombined, StartScale: 1.05, EndScale: 1.2, StartXPct: 3, EndXPct: -3},
	"zoom_pan_right": {ID: "zoom_pan_right", Kind: project.MotionKindCombined, StartScale: 1.05, EndScale: 1.2, StartXPct: -3, EndXPct: 3},
	"hold_pan_left":  {ID: "hold_pan_left", Kind: project.MotionKindHoldThenPan, StartScale: 1.15, EndScale: 1.15, StartXPct: 5, EndXPct: -5, HoldRatio: 0.4},
	"hold_pan_right": {ID: "hold_pan_right", Kind: project.MotionKindHoldThenPan, StartScale: 1.15, EndScale: 1.15, StartXPct: -5, EndXPct: 5, HoldRatio: 0.4},
}

// autoMotionCandidates auto 运镜的候选预设（顺序固定，参与 seed 取模）
var autoMotionCandidates = []string{
	"soft_zoom_in",
	"soft_zoom_out",
	"zoom_in",
	"zoom_out",
	"pan_left",
	"pan_right",
	"pan_up",
	"pan_down",
	"zoom_pan_left",
	"zoom_pan_right",
	"hold_pan_left",
	"hold_pan_right",
}

// LookupMotionPreset 按ID查找预设
func LookupMotionPreset(id string) (MotionPreset, bool) {
	p, ok := motionPresets[id]
	return p, ok
}

// ResolveMotion 将运镜描述解析为具体预设
//   - 描述为空：默认预设
//   - id 为 auto：只读取 params.chosen 查表，此处绝不引入随机源
//   - id 命中预设表：使用预设
//   - id 未知但给出了合法 kind：按 params 构造自定义运镜
//   - 其它情况（id 未知且无 kind，或 kind 不合法）：回退到默认预设
//
// 自定义运镜的权威形式是 kind + params，此时 id 只作为名字原样带出；
// 想复用预设时只写 id，不要同时给 kind。
func ResolveMotion(m *project.Motion) MotionPreset {
	if m == nil {
		return motionPresets[DefaultMotionPresetID]
	}

	if m.ID == project.MotionIDAuto {
		if p, ok := motionPresets[m.Params.Chosen]; ok {
			return p
		}
		return motionPresets[DefaultMotionPresetID]
	}

	if p, ok := motionPresets[m.ID]; ok {
		return p
	}

	if m.Kind != "" {
		return customPreset(m)
	}

	return motionPresets[DefaultMotionPresetID]
}

// customPreset 由描述中的参数构造预设，非法值按默认处理
func customPreset(m *project.Motion) MotionPreset {
	switch m.Kind {
	case project.MotionKindNone, project.MotionKindZoom, project.MotionKindPan,
		project.MotionKindCombined, project.MotionKindHoldThenPan:
	default:
		return motionPresets[DefaultMotionPresetID]
	}

	p := m.Params
	return MotionPreset{
		ID:         m.ID,
		Kind:       m.Kind,
		StartScale: sanitizeScale(p.StartScale),
		EndScale:   sanitizeScale(p.EndScale),
		StartXPct:  sanitizePct(p.StartXPct),
		EndXPct:    sanitizePct(p.EndXPct),
		StartYPct:  sanitizePct(p.StartYPct),
		EndYPct:    sanitizePct(p.EndYPct),
		HoldRatio:  clamp01(p.HoldRatio),
	}
}

func sanitizeScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 1
	}
	return v
}

func sanitizePct(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(-100, math.Min(100, v))
}

// TransformAt 计算场景内第 frame 帧的变换，durationFrames 为场景总帧数
// 区间外的帧钳制到起点/终点
func (p MotionPreset) TransformAt(frame, durationFrames int64) Transform {
	start := Transform{Scale: p.StartScale, TranslateXPct: p.StartXPct, TranslateYPct: p.StartYPct}
	end := Transform{Scale: p.EndScale, TranslateXPct: p.EndXPct, TranslateYPct: p.EndYPct}

	switch p.Kind {
	case project.MotionKindNone:
		return IdentityTransform
	case project.MotionKindZoom:
		t := progress(frame, durationFrames)
		return Transform{
			Scale:         lerp(start.Scale, end.Scale, t),
			TranslateXPct: start.TranslateXPct,
			TranslateYPct: start.TranslateYPct,
		}
	case project.MotionKindPan:
		t := easeInOutCubic(progress(frame, durationFrames))
		return Transform{
			Scale:         start.Scale,
			TranslateXPct: lerp(start.TranslateXPct, end.TranslateXPct, t),
			TranslateYPct: lerp(start.TranslateYPct, end.TranslateYPct, t),
		}
	case project.MotionKindCombined:
		t := progress(frame, durationFrames)
		e := easeInOutCubic(t)
		return Transform{
			Scale:         lerp(start.Scale, end.Scale, t),
			TranslateXPct: lerp(start.TranslateXPct, end.TranslateXPct, e),
			TranslateYPct: lerp(start.TranslateYPct, end.TranslateYPct, e),
		}
	case project.MotionKindHoldThenPan:
		hold := p.HoldRatio * float64(durationFrames)
		remaining := float64(durationFrames) - hold
		if float64(frame) <= hold || remaining <= 0 {
			return start
		}
		t := easeOutCubic(clamp01((float64(frame) - hold) / remaining))
		return Transform{
			Scale:         lerp(start.Scale, end.Scale, t),
			TranslateXPct: lerp(start.TranslateXPct, end.TranslateXPct, t),
			TranslateYPct: lerp(start.TranslateYPct, end.TranslateYPct, t),
		}
	default:
		return IdentityTransform
	}
}

// progress 返回 [0,1] 内的线性进度
func progress(frame, durationFrames int64) float64 {
	if durationFrames <= 0 {
		return 0
	}
	return clamp01(float64(frame) / float64(durationFrames))
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func easeOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
