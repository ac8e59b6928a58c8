package timeline

import (
	"math"

	"montage/internal/model/project"
)

// SanitizeDocument 返回去掉非有限浮点数（NaN/±Inf）的文档副本，不修改入参
// 替换值与引擎解析时的结果一致，合成与采样结果不变，文档可以安全地序列化为 JSON：
//   - 音量 NaN 视为未设置，±Inf 钳制到 [0,1]
//   - 帧率非有限时视为未设置
//   - 运镜参数非有限时视为未设置，hold_ratio 的 +Inf 取 1
func SanitizeDocument(doc *project.Document) *project.Document {
	if doc == nil {
		return nil
	}
	out := CloneDocument(doc)
	out.Settings.FPS = finiteOrZero(out.Settings.FPS)
	if out.BGM != nil {
		out.BGM.Volume = sanitizeVolume(out.BGM.Volume)
	}
	for i := range out.Scenes {
		s := &out.Scenes[i]
		if s.Assets.BGM != nil {
			s.Assets.BGM.Volume = sanitizeVolume(s.Assets.BGM.Volume)
		}
		if s.Motion != nil {
			p := &s.Motion.Params
			p.StartScale = finiteOrZero(p.StartScale)
			p.EndScale = finiteOrZero(p.EndScale)
			p.StartXPct = finiteOrZero(p.StartXPct)
			p.EndXPct = finiteOrZero(p.EndXPct)
			p.StartYPct = finiteOrZero(p.StartYPct)
			p.EndYPct = finiteOrZero(p.EndYPct)
			if math.IsInf(p.HoldRatio, 0) {
				p.HoldRatio = clamp01(p.HoldRatio)
			} else {
				p.HoldRatio = finiteOrZero(p.HoldRatio)
			}
		}
	}
	return out
}

func sanitizeVolume(v *float64) *float64 {
	if v == nil || !math.IsNaN(*v) && !math.IsInf(*v, 0) {
		return v
	}
	if math.IsNaN(*v) {
		return nil
	}
	c := clamp01(*v)
	return &c
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
