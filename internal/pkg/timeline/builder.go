package timeline

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"montage/internal/model/project"
)

// BuildOptions 文档构建参数
type BuildOptions struct {
	Seed               int64 // 运镜描述未给出 seed 时使用的项目级种子
	ResolveVoiceStarts bool  // 是否把推算出的配音起点写回文档
}

// SceneKey 场景的稳定标识，用于派生 auto 运镜的种子
func SceneKey(s *project.Scene) string {
	return strconv.Itoa(s.Idx) + ":" + s.Title
}

// PickAutoMotion 按 seed 与场景标识确定性地选出一个运镜预设
// 只在文档构建时调用；同样的输入在任何进程中都得到同样的结果
func PickAutoMotion(seed int64, sceneKey string) string {
	h := xxhash.New()
	_, _ = h.WriteString(strconv.FormatInt(seed, 10))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(sceneKey)
	return autoMotionCandidates[h.Sum64()%uint64(len(autoMotionCandidates))]
}

// BuildDocument 文档写入端：输出一份可直接交给时间轴引擎的规范文档
//   - 按版本只保留一种规范音频结构（v1 保留 audio，v2 起保留 voices）
//   - auto 运镜按 seed 选定预设并写入 params.chosen（已选定的保持不变）
//   - 填充 timing.duration_ms 与累计的 timing.start_ms
//   - 填充摘要
//
// 返回新文档，不修改入参。
func BuildDocument(doc *project.Document, opts BuildOptions) (*project.Document, error) {
	version, err := ParseSchemaVersion(doc.SchemaVersion)
	if err != nil {
		return nil, err
	}

	out := CloneDocument(doc)
	out.SchemaVersion = version

	var cursor int64
	caps := project.Capabilities{HasBGM: out.BGM != nil}
	for i := range out.Scenes {
		s := &out.Scenes[i]
		canonicalizeAudio(version, s)

		if s.Motion != nil && s.Motion.ID == project.MotionIDAuto {
			if _, ok := LookupMotionPreset(s.Motion.Params.Chosen); !ok {
				seed := opts.Seed
				if s.Motion.Params.Seed != nil {
					seed = *s.Motion.Params.Seed
				}
				s.Motion.Params.Chosen = PickAutoMotion(seed, SceneKey(s))
			}
		}

		if opts.ResolveVoiceStarts && len(s.Assets.Voices) > 0 {
			s.Assets.Voices = ResolveVoiceStarts(s.Assets.Voices)
		}

		duration, _ := ResolveSceneDuration(s)
		s.Timing.StartMs = cursor
		s.Timing.DurationMs = duration
		cursor += duration

		caps.HasVoices = caps.HasVoices || len(s.Assets.Voices) > 0
		caps.HasLegacy = caps.HasLegacy || (len(s.Assets.Voices) == 0 && s.Assets.Audio != nil)
		caps.HasMotion = caps.HasMotion || s.Motion != nil
		caps.HasOverlays = caps.HasOverlays || len(s.Overlays) > 0
		caps.HasSceneBGM = caps.HasSceneBGM || s.Assets.BGM != nil
	}

	out.Summary = project.Summary{
		SceneCount:      len(out.Scenes),
		TotalDurationMs: cursor,
		Capabilities:    caps,
	}
	return out, nil
}

// canonicalizeAudio 两种音频结构同时存在时，只保留该版本的规范结构
func canonicalizeAudio(version project.SchemaVersion, s *project.Scene) {
	if len(s.Assets.Voices) == 0 || s.Assets.Audio == nil {
		return
	}
	if version == project.SchemaVersionV1 {
		s.Assets.Voices = nil
	} else {
		s.Assets.Audio = nil
	}
}

// CloneDocument 深拷贝文档
func CloneDocument(doc *project.Document) *project.Document {
	out := *doc
	if doc.BGM != nil {
		bgm := *doc.BGM
		bgm.Volume = cloneFloat(doc.BGM.Volume)
		bgm.VideoStartMs = cloneInt(doc.BGM.VideoStartMs)
		bgm.VideoEndMs = cloneInt(doc.BGM.VideoEndMs)
		out.BGM = &bgm
	}
	if doc.Scenes != nil {
		out.Scenes = make([]project.Scene, len(doc.Scenes))
		for i := range doc.Scenes {
			out.Scenes[i] = cloneScene(&doc.Scenes[i])
		}
	}
	return &out
}

func cloneScene(s *project.Scene) project.Scene {
	out := *s
	a := &out.Assets
	if s.Assets.Image != nil {
		img := *s.Assets.Image
		a.Image = &img
	}
	if s.Assets.VideoClip != nil {
		clip := *s.Assets.VideoClip
		a.VideoClip = &clip
	}
	if s.Assets.Audio != nil {
		audio := *s.Assets.Audio
		a.Audio = &audio
	}
	if s.Assets.BGM != nil {
		bgm := *s.Assets.BGM
		bgm.EndMs = cloneInt(s.Assets.BGM.EndMs)
		bgm.Volume = cloneFloat(s.Assets.BGM.Volume)
		a.BGM = &bgm
	}
	if s.Assets.Voices != nil {
		a.Voices = make([]project.Voice, len(s.Assets.Voices))
		for i, v := range s.Assets.Voices {
			a.Voices[i] = v
			a.Voices[i].StartMs = cloneInt(v.StartMs)
		}
	}
	if s.Motion != nil {
		m := *s.Motion
		m.Params.Seed = cloneInt(s.Motion.Params.Seed)
		out.Motion = &m
	}
	if s.Overlays != nil {
		out.Overlays = make([]project.Overlay, len(s.Overlays))
		copy(out.Overlays, s.Overlays)
	}
	return out
}

func cloneInt(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
