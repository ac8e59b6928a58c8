package ffmpeg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"montage/internal/pkg/timeline"
)

// num 格式化滤镜表达式中的数值，最多保留 6 位小数
func num(v float64) string {
	if math.Abs(v) < 5e-7 {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func seconds(frame int64, fps float64) float64 {
	return timeline.FrameToSeconds(frame, fps)
}

// VolumeExpression 把全局 BGM 的避让规则写成 volume 滤镜表达式（需配合 eval=frame）
// 与 timeline.DuckedVolume 一致：区间内静音；区间前后各有一段线性淡变；
// 淡变区重叠时按区间顺序第一个命中的生效。
func VolumeExpression(base float64, intervals []timeline.BGMInterval, fadeFrames int64, fps float64) string {
	base = math.Max(0, math.Min(1, base))
	if len(intervals) == 0 || fps <= 0 {
		return num(base)
	}

	mute := make([]string, len(intervals))
	for i, iv := range intervals {
		mute[i] = fmt.Sprintf("gte(t,%s)*lt(t,%s)", num(seconds(iv.StartFrame, fps)), num(seconds(iv.EndFrame, fps)))
	}

	expr := num(base)
	if fadeFrames > 0 {
		f := seconds(fadeFrames, fps)
		// 从后往前嵌套，列表中靠前的区间位于外层，先被判定
		for i := len(intervals) - 1; i >= 0; i-- {
			s := seconds(intervals[i].StartFrame, fps)
			e := seconds(intervals[i].EndFrame, fps)
			fadeIn := fmt.Sprintf("if(gte(t,%s)*lt(t,%s),%s*(t-%s)/%s,%s)",
				num(e), num(e+f), num(base), num(e), num(f), expr)
			expr = fmt.Sprintf("if(gte(t,%s)*lt(t,%s),%s*(%s-t)/%s,%s)",
				num(s-f), num(s), num(base), num(s), num(f), fadeIn)
		}
	}

	return fmt.Sprintf("if(%s,0,%s)", strings.Join(mute, "+"), expr)
}

// OverlayEnable 叠加层的 enable 表达式
func OverlayEnable(startSec, endSec float64) string {
	return fmt.Sprintf("between(t,%s,%s)", num(startSec), num(endSec))
}

// OverlayAlpha 叠加层的不透明度表达式，与 timeline.OverlayOpacity 一致
func OverlayAlpha(startSec, endSec, fadeSec float64) string {
	if endSec <= startSec {
		return "0"
	}
	if fadeSec <= 0 {
		return fmt.Sprintf("if(gte(t,%s)*lt(t,%s),1,0)", num(startSec), num(endSec))
	}
	s, e, f := num(startSec), num(endSec), num(fadeSec)
	return fmt.Sprintf("if(lt(t,%s),0,if(lt(t,%s),(t-%s)/%s,if(lt(t,%s),1,if(lt(t,%s),(%s-t)/%s,0))))",
		s, num(startSec+fadeSec), s, f, num(endSec-fadeSec), e, e, f)
}
