// Package subtitle 把时间轴上的文字叠加层导出为 ASS 字幕
// 只导出 overlay-rendered 模式下的叠加层；baked 与 none 模式由画面自身负责
package subtitle

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"montage/internal/model/project"
	"montage/internal/pkg/timeline"
)

// 默认画布尺寸（文档未设置分辨率时使用）
const (
	DefaultPlayResX = 1080
	DefaultPlayResY = 1920
)

// Event 一条字幕事件（文档绝对时间，毫秒）
type Event struct {
	SceneIdx  int
	OverlayID string
	StartMs   int64
	EndMs     int64
	Layer     int
	Text      string
	Override  string // ASS 行内样式，如 {\an7\pos(10,20)\fad(150,150)}
}

// ASSGenerator ASS 字幕生成器
type ASSGenerator struct {
	FontName string
	FontSize int
}

// NewASSGenerator 创建 ASS 字幕生成器
func NewASSGenerator() *ASSGenerator {
	return &ASSGenerator{FontName: "Microsoft YaHei", FontSize: 48}
}

// Events 从时间轴收集字幕事件，按开始时间排序（同一时刻按 z_index）
// 淡入淡出与 timeline.OverlayOpacity 逐段一致；窗口不足两段淡变时一条叠加层可能拆成两条事件
func (g *ASSGenerator) Events(tl *timeline.Timeline) []Event {
	resX, resY := playRes(tl.Settings)
	var events []Event
	for _, track := range tl.Scenes {
		if track.Scene.TextRenderMode != project.TextRenderModeOverlay {
			continue
		}
		for i := range track.Scene.Overlays {
			o := &track.Scene.Overlays[i]
			text := escapeText(o.Text)
			if text == "" || o.EndMs <= o.StartMs || o.StartMs >= track.DurationMs {
				continue
			}
			// 渐变曲线按完整窗口计算，只在场景结束处截断
			limit := o.EndMs - o.StartMs
			if rest := track.DurationMs - o.StartMs; rest < limit {
				limit = rest
			}
			pos := positionTag(o, resX, resY)
			style := styleTags(o)
			base := track.StartMs + o.StartMs
			for _, seg := range fadeSegments(o.EndMs-o.StartMs, tl.OverlayFadeMs) {
				if seg.startMs >= limit {
					break
				}
				end := seg.endMs
				if end > limit {
					end = limit
				}
				events = append(events, Event{
					SceneIdx:  track.Idx,
					OverlayID: o.ID,
					StartMs:   base + seg.startMs,
					EndMs:     base + end,
					Layer:     o.ZIndex,
					Text:      text,
					Override:  "{" + pos + seg.tag + style + "}",
				})
			}
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].StartMs != events[j].StartMs {
			return events[i].StartMs < events[j].StartMs
		}
		return events[i].Layer < events[j].Layer
	})
	return events
}

// fadeSegment 叠加层窗口内的一段（相对窗口起点）及其淡变标签
type fadeSegment struct {
	startMs int64
	endMs   int64
	tag     string
}

// fadeSegments 把 OverlayOpacity 的分段曲线翻译为 ASS 淡变标签
//   - 窗口 >= 2*fade：\fad(fade,fade)
//   - 窗口 <= fade：整段淡入，结束时的不透明度为 d/fade
//   - 其余：[0,fade) 淡入到 1，[fade,d) 从 (d-fade)/fade 淡出到 0
//
// \fade 的时间相对事件起点，alpha 为 0（不透明）~255（透明）
func fadeSegments(d, fade int64) []fadeSegment {
	switch {
	case fade <= 0:
		return []fadeSegment{{0, d, ""}}
	case d >= 2*fade:
		return []fadeSegment{{0, d, fmt.Sprintf(`\fad(%d,%d)`, fade, fade)}}
	case d <= fade:
		a := alpha(float64(d) / float64(fade))
		return []fadeSegment{{0, d, fmt.Sprintf(`\fade(255,%d,%d,0,%d,%d,%d)`, a, a, d, d, d)}}
	default:
		rest := d - fade
		a := alpha(float64(rest) / float64(fade))
		return []fadeSegment{
			{0, fade, fmt.Sprintf(`\fade(255,0,0,0,%d,%d,%d)`, fade, fade, fade)},
			{fade, d, fmt.Sprintf(`\fade(%d,%d,255,0,0,0,%d)`, a, a, rest)},
		}
	}
}

// alpha 不透明度转 ASS alpha
func alpha(opacity float64) int {
	return int(math.Round(255 * (1 - clamp01(opacity))))
}

// Generate 生成 ASS 文件内容
func (g *ASSGenerator) Generate(tl *timeline.Timeline, title string) string {
	if title == "" {
		title = "Montage Subtitle"
	}
	resX, resY := playRes(tl.Settings)

	var b strings.Builder
	fmt.Fprintf(&b, `[Script Info]
Title: %s
ScriptType: v4.00+
WrapStyle: 0
ScaledBorderAndShadow: yes
YCbCr Matrix: TV.601
PlayResX: %d
PlayResY: %d

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,60,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`, title, resX, resY, g.FontName, g.FontSize)

	for _, e := range g.Events(tl) {
		fmt.Fprintf(&b, "Dialogue: %d,%s,%s,Default,,0,0,0,,%s%s\n",
			e.Layer, FormatTime(e.StartMs), FormatTime(e.EndMs), e.Override, e.Text)
	}
	return b.String()
}

// FormatTime 毫秒转 ASS 时间格式 (H:MM:SS.CC)，厘秒向下取整
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	cs := ms / 10
	return fmt.Sprintf("%d:%02d:%02d.%02d", cs/360000, cs/6000%60, cs/100%60, cs%100)
}

// positionTag 左上角锚点定位
func positionTag(o *project.Overlay, resX, resY int) string {
	return fmt.Sprintf(`\an7\pos(%d,%d)`,
		int(clamp01(o.Position.X)*float64(resX)+0.5), int(clamp01(o.Position.Y)*float64(resY)+0.5))
}

// styleTags 字体与颜色
func styleTags(o *project.Overlay) string {
	var b strings.Builder
	if o.Style.FontFamily != "" {
		b.WriteString(`\fn` + o.Style.FontFamily)
	}
	if o.Style.FontSize > 0 {
		b.WriteString(`\fs` + strconv.Itoa(o.Style.FontSize))
	}
	if c, ok := assColor(o.Style.Color); ok {
		b.WriteString(`\c` + c)
	}
	if c, ok := assColor(o.Style.StrokeColor); ok {
		b.WriteString(`\3c` + c)
	}
	return b.String()
}

// assColor #RRGGBB 转 ASS 颜色 &HBBGGRR&
func assColor(hex string) (string, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", false
	}
	hex = strings.ToUpper(hex)
	return "&H" + hex[4:6] + hex[2:4] + hex[0:2] + "&", true
}

// escapeText 换行转为 \N，花括号会被当作样式块，替换为全角
func escapeText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", `\N`)
	s = strings.ReplaceAll(s, "{", "｛")
	return strings.ReplaceAll(s, "}", "｝")
}

func playRes(s project.BuildSettings) (int, int) {
	x, y := s.Width, s.Height
	if x <= 0 || y <= 0 {
		return DefaultPlayResX, DefaultPlayResY
	}
	return x, y
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
