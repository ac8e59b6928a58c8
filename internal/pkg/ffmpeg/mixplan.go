package ffmpeg

import (
	"fmt"
	"strings"

	"montage/internal/pkg/timeline"
)

// InputKind 混音输入类型
type InputKind string

const (
	InputVoice     InputKind = "voice"
	InputSceneBGM  InputKind = "scene_bgm"
	InputGlobalBGM InputKind = "global_bgm"
)

// MixInput 一路音频输入
type MixInput struct {
	Kind     InputKind `json:"kind"`
	URL      string    `json:"url"`
	SceneIdx int       `json:"scene_idx,omitempty"`
	Loop     bool      `json:"loop,omitempty"`
	Label    string    `json:"label"` // 滤镜图中的输出标签
}

// OverlayWindow 叠加层在成片中的显示窗口与表达式
type OverlayWindow struct {
	SceneIdx  int     `json:"scene_idx"`
	OverlayID string  `json:"overlay_id"`
	StartSec  float64 `json:"start_sec"`
	EndSec    float64 `json:"end_sec"`
	Enable    string  `json:"enable"`
	Alpha     string  `json:"alpha"`
}

// MixPlan 由时间轴推导出的 ffmpeg 混音计划
type MixPlan struct {
	DurationSec   float64         `json:"duration_sec"`
	Inputs        []MixInput      `json:"inputs"`
	FilterComplex string          `json:"filter_complex"`
	OutputLabel   string          `json:"output_label"`
	Overlays      []OverlayWindow `json:"overlays"`
}

// BuildMixPlan 生成混音计划：配音按绝对起点延迟，场景 BGM 带自身淡变，
// 全局 BGM 按窗口裁剪并套用避让表达式，最后 amix 成一路
func BuildMixPlan(tl *timeline.Timeline) *MixPlan {
	plan := &MixPlan{
		DurationSec: seconds(tl.TotalDurationFrames, tl.FPS),
		Inputs:      []MixInput{},
		OutputLabel: "aout",
		Overlays:    overlayWindows(tl),
	}

	var chains []string
	add := func(in MixInput, chain string) {
		idx := len(plan.Inputs)
		in.Label = fmt.Sprintf("%s%d", labelPrefix(in.Kind), idx)
		plan.Inputs = append(plan.Inputs, in)
		chains = append(chains, fmt.Sprintf("[%d:a]%s[%s]", idx, chain, in.Label))
	}

	for _, vc := range tl.VoiceClips {
		if vc.URL == "" || vc.EndFrame <= vc.StartFrame {
			continue
		}
		add(MixInput{Kind: InputVoice, URL: vc.URL, SceneIdx: vc.SceneIdx},
			fmt.Sprintf("atrim=duration=%s,asetpts=PTS-STARTPTS,adelay=%d:all=1",
				num(seconds(vc.EndFrame-vc.StartFrame, tl.FPS)), delayMs(vc.StartFrame, tl.FPS)))
	}

	for _, iv := range tl.SceneBGMIntervals {
		if iv.URL == "" {
			continue
		}
		dur := seconds(iv.EndFrame-iv.StartFrame, tl.FPS)
		chain := fmt.Sprintf("atrim=duration=%s,asetpts=PTS-STARTPTS", num(dur))
		if iv.FadeIn > 0 {
			chain += fmt.Sprintf(",afade=t=in:st=0:d=%s", num(seconds(iv.FadeIn, tl.FPS)))
		}
		if iv.FadeOut > 0 {
			fo := seconds(iv.FadeOut, tl.FPS)
			chain += fmt.Sprintf(",afade=t=out:st=%s:d=%s", num(dur-fo), num(fo))
		}
		chain += fmt.Sprintf(",volume=%s,adelay=%d:all=1", num(iv.Volume), delayMs(iv.StartFrame, tl.FPS))
		add(MixInput{Kind: InputSceneBGM, URL: iv.URL, SceneIdx: iv.SceneIdx}, chain)
	}

	if g := tl.GlobalBGM; g != nil && g.URL != "" && g.EndFrame > g.StartFrame {
		add(MixInput{Kind: InputGlobalBGM, URL: g.URL, Loop: g.Loop},
			fmt.Sprintf("atrim=duration=%s,asetpts=PTS-STARTPTS,adelay=%d:all=1,volume='%s':eval=frame",
				num(seconds(g.EndFrame-g.StartFrame, tl.FPS)), delayMs(g.StartFrame, tl.FPS),
				VolumeExpression(g.Volume, tl.SceneBGMIntervals, tl.BGMFadeFrames, tl.FPS)))
	}

	if len(plan.Inputs) == 0 {
		return plan
	}

	var mixIn strings.Builder
	for _, in := range plan.Inputs {
		mixIn.WriteString("[" + in.Label + "]")
	}
	chains = append(chains, fmt.Sprintf("%samix=inputs=%d:duration=longest:normalize=0,atrim=duration=%s[%s]",
		mixIn.String(), len(plan.Inputs), num(plan.DurationSec), plan.OutputLabel))

	plan.FilterComplex = strings.Join(chains, ";")
	return plan
}

// Args 返回执行混音计划的 ffmpeg 参数
func (p *MixPlan) Args(output string) []string {
	args := []string{"-y"}
	for _, in := range p.Inputs {
		if in.Loop {
			args = append(args, "-stream_loop", "-1")
		}
		args = append(args, "-i", in.URL)
	}
	if p.FilterComplex == "" {
		return append(args, "-f", "lavfi", "-i", fmt.Sprintf("anullsrc=d=%s", num(p.DurationSec)), output)
	}
	return append(args,
		"-filter_complex", p.FilterComplex,
		"-map", "["+p.OutputLabel+"]",
		"-c:a", "aac",
		"-b:a", "160k",
		output,
	)
}

func overlayWindows(tl *timeline.Timeline) []OverlayWindow {
	fade := float64(tl.OverlayFadeMs) / 1000
	windows := []OverlayWindow{}
	for _, track := range tl.Scenes {
		for i := range track.Scene.Overlays {
			o := &track.Scene.Overlays[i]
			if !timeline.OverlayDisplayable(track.Scene.TextRenderMode, o) || o.EndMs <= o.StartMs {
				continue
			}
			start := float64(track.StartMs+o.StartMs) / 1000
			end := float64(track.StartMs+o.EndMs) / 1000
			windows = append(windows, OverlayWindow{
				SceneIdx:  track.Idx,
				OverlayID: o.ID,
				StartSec:  start,
				EndSec:    end,
				Enable:    OverlayEnable(start, end),
				Alpha:     OverlayAlpha(start, end, fade),
			})
		}
	}
	return windows
}

func labelPrefix(kind InputKind) string {
	switch kind {
	case InputVoice:
		return "v"
	case InputSceneBGM:
		return "s"
	default:
		return "g"
	}
}

func delayMs(frame int64, fps float64) int64 {
	return timeline.FrameToMs(frame, fps)
}
