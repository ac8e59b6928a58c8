package timeline

import "montage/internal/model/project"

// ResolveVoiceStarts 为配音片段补全场景内起点
// 未显式给出 start_ms 的片段紧接前一片段播放；显式值原样保留。
// 返回新切片，不修改入参。显式值之间的重叠不做检测，按原样保留。
func ResolveVoiceStarts(voices []project.Voice) []project.Voice {
	if voices == nil {
		return nil
	}

	out := make([]project.Voice, len(voices))
	var cursor int64
	for i, v := range voices {
		var start int64
		if v.StartMs != nil {
			start = *v.StartMs
		} else {
			start = cursor
		}
		cursor = start + nonNegative(v.DurationMs)

		out[i] = v
		out[i].StartMs = &start
	}
	return out
}

// Cue 归一化后的配音片段（场景内时间，毫秒）
type Cue struct {
	ID            string            `json:"id"`
	Role          project.VoiceRole `json:"role"`
	CharacterKey  string            `json:"character_key,omitempty"`
	CharacterName string            `json:"character_name,omitempty"`
	URL           string            `json:"url"`
	Text          string            `json:"text"`
	StartMs       int64             `json:"start_ms"`    // 相对音频区起点（即 head_pad_ms 之后）
	DurationMs    int64             `json:"duration_ms"` // 实测时长
	Explicit      bool              `json:"explicit"`    // start_ms 由作者显式给出
	Synthesized   bool              `json:"synthesized"` // 由旧版单一音频合成
}

// EndMs 返回片段结束时间（不含）
func (c Cue) EndMs() int64 {
	return c.StartMs + c.DurationMs
}

// buildCues 将配音列表转换为带起点的片段
func buildCues(voices []project.Voice) []Cue {
	resolved := ResolveVoiceStarts(voices)
	cues := make([]Cue, len(resolved))
	for i, v := range resolved {
		cues[i] = Cue{
			ID:            v.ID,
			Role:          v.Role,
			CharacterKey:  v.CharacterKey,
			CharacterName: v.CharacterName,
			URL:           v.URL,
			Text:          v.Text,
			StartMs:       *v.StartMs,
			DurationMs:    nonNegative(v.DurationMs),
			Explicit:      voices[i].StartMs != nil,
		}
		if cues[i].Role == "" {
			cues[i].Role = project.VoiceRoleNarration
		}
	}
	return cues
}
