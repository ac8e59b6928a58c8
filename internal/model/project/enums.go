package project

import (
	"bytes"
	"encoding/json"
)

// SchemaVersion 项目文档的 schema 版本
// 版本决定了场景中可以出现哪些可选字段
type SchemaVersion string

const (
	SchemaVersionV1 SchemaVersion = "1" // 旧版：单一音频轨（assets.audio），无运镜、无叠加层
	SchemaVersionV2 SchemaVersion = "2" // 多角色配音（assets.voices）+ 运镜
	SchemaVersionV3 SchemaVersion = "3" // 多角色配音 + 运镜 + 字幕/气泡叠加层 + 文字渲染模式
)

// String 返回版本的字符串表示
func (v SchemaVersion) String() string {
	return string(v)
}

// UnmarshalJSON 同时接受 "2" 与 2 两种写法
func (v *SchemaVersion) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' && !bytes.Equal(data, []byte("null")) {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = SchemaVersion(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = SchemaVersion(s)
	return nil
}

// TextRenderMode 文字渲染模式
type TextRenderMode string

const (
	TextRenderModeOverlay TextRenderMode = "overlay-rendered" // 由渲染端绘制文字
	TextRenderModeBaked   TextRenderMode = "baked-into-image" // 文字已烧录进气泡图片，原样显示
	TextRenderModeNone    TextRenderMode = "none"             // 不显示任何叠加层
)

// String 返回模式的字符串表示
func (m TextRenderMode) String() string {
	return string(m)
}

// VoiceRole 配音角色
type VoiceRole string

const (
	VoiceRoleNarration VoiceRole = "narration" // 旁白
	VoiceRoleDialogue  VoiceRole = "dialogue"  // 角色对白
)

// String 返回角色的字符串表示
func (r VoiceRole) String() string {
	return string(r)
}

// MotionKind 运镜类型
type MotionKind string

const (
	MotionKindNone        MotionKind = "none"
	MotionKindZoom        MotionKind = "zoom"
	MotionKindPan         MotionKind = "pan"
	MotionKindCombined    MotionKind = "combined"
	MotionKindHoldThenPan MotionKind = "hold-then-pan"
)

// String 返回类型的字符串表示
func (k MotionKind) String() string {
	return string(k)
}

// MotionIDAuto 自动运镜：具体预设在文档构建时按 seed 选定，写入 params.chosen
const MotionIDAuto = "auto"

// OverlayShape 叠加层形状
type OverlayShape string

const (
	OverlayShapeRect    OverlayShape = "rect"
	OverlayShapeRounded OverlayShape = "rounded"
	OverlayShapeEllipse OverlayShape = "ellipse"
	OverlayShapeCloud   OverlayShape = "cloud"   // 思考气泡
	OverlayShapeSpike   OverlayShape = "spike"   // 喊叫气泡
	OverlayShapeCaption OverlayShape = "caption" // 底部字幕条
)

// WritingDirection 文字书写方向
type WritingDirection string

const (
	WritingDirectionHorizontal WritingDirection = "horizontal"
	WritingDirectionVertical   WritingDirection = "vertical"
)
