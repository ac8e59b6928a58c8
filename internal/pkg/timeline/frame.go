package timeline

import "math"

// DefaultFPS 文档未给出有效帧率时使用
const DefaultFPS = 30

// MsToFrame 毫秒转帧号
// 使用四舍五入而不是截断，避免逐段累加时产生漂移
func MsToFrame(ms int64, fps float64) int64 {
	return int64(math.Round(float64(ms) / 1000 * fps))
}

// FrameToMs 帧号转毫秒，与 MsToFrame 互逆（误差不超过 1 帧）
func FrameToMs(frame int64, fps float64) int64 {
	return int64(math.Round(float64(frame) * 1000 / fps))
}

// FrameToSeconds 帧号转秒（用于生成 ffmpeg 表达式）
func FrameToSeconds(frame int64, fps float64) float64 {
	return float64(frame) / fps
}

// clamp01 将值限制在 [0,1]，NaN 视为 0
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampMs 将毫秒值限制在 [lo,hi]
func clampMs(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
