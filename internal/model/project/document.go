package project

// Document 项目文档：一次视频渲染任务的完整声明式描述
// 说明：文档由上游的项目组装流水线构建，时间轴引擎只读不写
type Document struct {
	SchemaVersion SchemaVersion `json:"schema_version" bson:"schema_version" yaml:"schema_version" validate:"required"` // schema 版本
	Settings      BuildSettings `json:"settings" bson:"settings" yaml:"settings"`                                      // 全局构建参数
	Scenes        []Scene       `json:"scenes" bson:"scenes" yaml:"scenes" validate:"dive"`                            // 有序场景列表
	BGM           *GlobalBGM    `json:"bgm,omitempty" bson:"bgm,omitempty" yaml:"bgm,omitempty"`                       // 全局背景音乐（可选）
	Summary       Summary       `json:"summary" bson:"summary" yaml:"summary"`                                         // 摘要（构建时填充）
}

// BuildSettings 全局构建参数
type BuildSettings struct {
	Width             int     `json:"width" bson:"width" yaml:"width" validate:"gte=0"`                                                   // 输出宽度（像素）
	Height            int     `json:"height" bson:"height" yaml:"height" validate:"gte=0"`                                                // 输出高度（像素）
	FPS               float64 `json:"fps" bson:"fps" yaml:"fps" validate:"gte=0"`                                                         // 帧率
	Codec             string  `json:"codec,omitempty" bson:"codec,omitempty" yaml:"codec,omitempty"`                                      // 编码器，如 h264
	AspectRatio       string  `json:"aspect_ratio,omitempty" bson:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`                 // 画幅，如 9:16
	DefaultTransition string  `json:"default_transition,omitempty" bson:"default_transition,omitempty" yaml:"default_transition,omitempty"` // 默认转场
}

// Scene 场景：一个视觉节拍
type Scene struct {
	Idx            int            `json:"idx" bson:"idx" yaml:"idx" validate:"gte=1"`                                             // 场景序号（从1开始，唯一且递增）
	Role           string         `json:"role,omitempty" bson:"role,omitempty" yaml:"role,omitempty"`                             // 语义标签（自由文本）
	Title          string         `json:"title,omitempty" bson:"title,omitempty" yaml:"title,omitempty"`                          // 标题
	Dialogue       string         `json:"dialogue,omitempty" bson:"dialogue,omitempty" yaml:"dialogue,omitempty"`                 // 旧版纯文本台词（已废弃，仅用于时长兜底）
	Timing         Timing         `json:"timing" bson:"timing" yaml:"timing"`                                                     // 时间信息
	Assets         AssetBundle    `json:"assets" bson:"assets" yaml:"assets"`                                                     // 素材包
	Motion         *Motion        `json:"motion,omitempty" bson:"motion,omitempty" yaml:"motion,omitempty"`                       // 运镜描述（可选）
	TextRenderMode TextRenderMode `json:"text_render_mode,omitempty" bson:"text_render_mode,omitempty" yaml:"text_render_mode,omitempty" validate:"omitempty,oneof=overlay-rendered baked-into-image none"`
	Overlays       []Overlay      `json:"overlays,omitempty" bson:"overlays,omitempty" yaml:"overlays,omitempty" validate:"dive"` // 字幕/气泡叠加层
}

// Timing 场景时间信息（毫秒）
type Timing struct {
	StartMs    int64 `json:"start_ms" bson:"start_ms" yaml:"start_ms"`                                // 在文档中的绝对起点
	DurationMs int64 `json:"duration_ms" bson:"duration_ms" yaml:"duration_ms"`                       // 场景时长（派生值）
	HeadPadMs  int64 `json:"head_pad_ms" bson:"head_pad_ms" yaml:"head_pad_ms" validate:"gte=0"`      // 音频前的静音填充
	TailPadMs  int64 `json:"tail_pad_ms" bson:"tail_pad_ms" yaml:"tail_pad_ms" validate:"gte=0"`      // 音频后的静音填充
}

// AssetBundle 场景素材包
type AssetBundle struct {
	Image     *Image     `json:"image,omitempty" bson:"image,omitempty" yaml:"image,omitempty"`                // 背景图
	VideoClip *VideoClip `json:"video_clip,omitempty" bson:"video_clip,omitempty" yaml:"video_clip,omitempty"` // 视频片段
	Voices    []Voice    `json:"voices,omitempty" bson:"voices,omitempty" yaml:"voices,omitempty" validate:"dive"`
	Audio     *Audio     `json:"audio,omitempty" bson:"audio,omitempty" yaml:"audio,omitempty"` // 旧版单一音频
	BGM       *SceneBGM  `json:"bgm,omitempty" bson:"bgm,omitempty" yaml:"bgm,omitempty"`       // 场景级背景音乐
}

// Image 背景图
type Image struct {
	URL    string `json:"url" bson:"url" yaml:"url" validate:"required"`
	Width  int    `json:"width,omitempty" bson:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" bson:"height,omitempty" yaml:"height,omitempty"`
}

// VideoClip 视频片段（无配音时其时长即场景时长）
type VideoClip struct {
	URL        string `json:"url" bson:"url" yaml:"url" validate:"required"`
	DurationMs int64  `json:"duration_ms" bson:"duration_ms" yaml:"duration_ms" validate:"gte=0"`
}

// Voice 配音片段：一句话
type Voice struct {
	ID            string    `json:"id" bson:"id" yaml:"id" validate:"required"`
	Role          VoiceRole `json:"role" bson:"role" yaml:"role" validate:"omitempty,oneof=narration dialogue"`
	CharacterKey  string    `json:"character_key,omitempty" bson:"character_key,omitempty" yaml:"character_key,omitempty"`    // 角色标识（旁白为空）
	CharacterName string    `json:"character_name,omitempty" bson:"character_name,omitempty" yaml:"character_name,omitempty"` // 角色显示名
	URL           string    `json:"url" bson:"url" yaml:"url"`
	DurationMs    int64     `json:"duration_ms" bson:"duration_ms" yaml:"duration_ms" validate:"gte=0"` // 实测时长（权威值，不从文本推算）
	Text          string    `json:"text" bson:"text" yaml:"text"`                                       // 原文（字幕的唯一来源）
	StartMs       *int64    `json:"start_ms,omitempty" bson:"start_ms,omitempty" yaml:"start_ms,omitempty"` // 场景内起点（可选，缺省时紧接上一句）
}

// Audio 旧版单一音频
type Audio struct {
	URL        string `json:"url" bson:"url" yaml:"url"`
	DurationMs int64  `json:"duration_ms" bson:"duration_ms" yaml:"duration_ms" validate:"gte=0"`
	Format     string `json:"format,omitempty" bson:"format,omitempty" yaml:"format,omitempty"`
}

// SceneBGM 场景级背景音乐覆盖
// StartMs/EndMs 相对场景起点；EndMs 为空表示到场景结束
type SceneBGM struct {
	URL       string   `json:"url" bson:"url" yaml:"url"`
	StartMs   int64    `json:"start_ms" bson:"start_ms" yaml:"start_ms"`
	EndMs     *int64   `json:"end_ms,omitempty" bson:"end_ms,omitempty" yaml:"end_ms,omitempty"`
	Volume    *float64 `json:"volume,omitempty" bson:"volume,omitempty" yaml:"volume,omitempty"`
	FadeInMs  int64    `json:"fade_in_ms,omitempty" bson:"fade_in_ms,omitempty" yaml:"fade_in_ms,omitempty"`
	FadeOutMs int64    `json:"fade_out_ms,omitempty" bson:"fade_out_ms,omitempty" yaml:"fade_out_ms,omitempty"`
}

// GlobalBGM 全局背景音乐
// VideoStartMs/VideoEndMs 为可选的播放窗口（文档绝对时间），窗口外不调度
type GlobalBGM struct {
	URL          string   `json:"url" bson:"url" yaml:"url" validate:"required"`
	Volume       *float64 `json:"volume,omitempty" bson:"volume,omitempty" yaml:"volume,omitempty"`
	VideoStartMs *int64   `json:"video_start_ms,omitempty" bson:"video_start_ms,omitempty" yaml:"video_start_ms,omitempty"`
	VideoEndMs   *int64   `json:"video_end_ms,omitempty" bson:"video_end_ms,omitempty" yaml:"video_end_ms,omitempty"`
	Loop         bool     `json:"loop,omitempty" bson:"loop,omitempty" yaml:"loop,omitempty"`
}

// Motion 运镜描述
type Motion struct {
	ID     string       `json:"id" bson:"id" yaml:"id"` // 预设ID，或字面量 auto
	Kind   MotionKind   `json:"kind,omitempty" bson:"kind,omitempty" yaml:"kind,omitempty" validate:"omitempty,oneof=none zoom pan combined hold-then-pan"`
	Params MotionParams `json:"params" bson:"params" yaml:"params"`
}

// MotionParams 运镜参数
type MotionParams struct {
	StartScale float64 `json:"start_scale,omitempty" bson:"start_scale,omitempty" yaml:"start_scale,omitempty"`
	EndScale   float64 `json:"end_scale,omitempty" bson:"end_scale,omitempty" yaml:"end_scale,omitempty"`
	StartXPct  float64 `json:"start_x_pct,omitempty" bson:"start_x_pct,omitempty" yaml:"start_x_pct,omitempty"` // 平移百分比（相对画面宽度）
	EndXPct    float64 `json:"end_x_pct,omitempty" bson:"end_x_pct,omitempty" yaml:"end_x_pct,omitempty"`
	StartYPct  float64 `json:"start_y_pct,omitempty" bson:"start_y_pct,omitempty" yaml:"start_y_pct,omitempty"`
	EndYPct    float64 `json:"end_y_pct,omitempty" bson:"end_y_pct,omitempty" yaml:"end_y_pct,omitempty"`
	HoldRatio  float64 `json:"hold_ratio,omitempty" bson:"hold_ratio,omitempty" yaml:"hold_ratio,omitempty"`
	Seed       *int64  `json:"seed,omitempty" bson:"seed,omitempty" yaml:"seed,omitempty"`       // auto 的随机种子
	Chosen     string  `json:"chosen,omitempty" bson:"chosen,omitempty" yaml:"chosen,omitempty"` // auto 已选定的具体预设ID
}

// Overlay 字幕/对话气泡
type Overlay struct {
	ID             string       `json:"id" bson:"id" yaml:"id" validate:"required"`
	VoiceID        string       `json:"voice_id,omitempty" bson:"voice_id,omitempty" yaml:"voice_id,omitempty"` // 关联的配音片段
	Text           string       `json:"text" bson:"text" yaml:"text"`
	StartMs        int64        `json:"start_ms" bson:"start_ms" yaml:"start_ms"` // 场景内起点
	EndMs          int64        `json:"end_ms" bson:"end_ms" yaml:"end_ms"`       // 场景内终点（不含）
	Position       Point        `json:"position" bson:"position" yaml:"position"`
	Size           Size         `json:"size" bson:"size" yaml:"size"`
	Shape          OverlayShape `json:"shape,omitempty" bson:"shape,omitempty" yaml:"shape,omitempty"`
	Style          OverlayStyle `json:"style" bson:"style" yaml:"style"`
	ZIndex         int          `json:"z_index" bson:"z_index" yaml:"z_index"`
	BubbleImageURL string       `json:"bubble_image_url,omitempty" bson:"bubble_image_url,omitempty" yaml:"bubble_image_url,omitempty"` // baked 模式下的预渲染图片
}

// Point 归一化坐标（0~1，相对画面）
type Point struct {
	X float64 `json:"x" bson:"x" yaml:"x" validate:"gte=0,lte=1"`
	Y float64 `json:"y" bson:"y" yaml:"y" validate:"gte=0,lte=1"`
}

// Size 归一化尺寸（0~1，相对画面）
type Size struct {
	W float64 `json:"w" bson:"w" yaml:"w" validate:"gte=0,lte=1"`
	H float64 `json:"h" bson:"h" yaml:"h" validate:"gte=0,lte=1"`
}

// OverlayStyle 叠加层样式
type OverlayStyle struct {
	FontFamily      string           `json:"font_family,omitempty" bson:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontSize        int              `json:"font_size,omitempty" bson:"font_size,omitempty" yaml:"font_size,omitempty"`
	Color           string           `json:"color,omitempty" bson:"color,omitempty" yaml:"color,omitempty"`
	StrokeColor     string           `json:"stroke_color,omitempty" bson:"stroke_color,omitempty" yaml:"stroke_color,omitempty"`
	BackgroundColor string           `json:"background_color,omitempty" bson:"background_color,omitempty" yaml:"background_color,omitempty"`
	Direction       WritingDirection `json:"direction,omitempty" bson:"direction,omitempty" yaml:"direction,omitempty" validate:"omitempty,oneof=horizontal vertical"`
}

// Summary 文档摘要
type Summary struct {
	SceneCount      int          `json:"scene_count" bson:"scene_count" yaml:"scene_count"`
	TotalDurationMs int64        `json:"total_duration_ms" bson:"total_duration_ms" yaml:"total_duration_ms"`
	Capabilities    Capabilities `json:"capabilities" bson:"capabilities" yaml:"capabilities"`
}

// Capabilities 能力标记
type Capabilities struct {
	HasVoices   bool `json:"has_voices" bson:"has_voices" yaml:"has_voices"`
	HasLegacy   bool `json:"has_legacy_audio" bson:"has_legacy_audio" yaml:"has_legacy_audio"`
	HasMotion   bool `json:"has_motion" bson:"has_motion" yaml:"has_motion"`
	HasOverlays bool `json:"has_overlays" bson:"has_overlays" yaml:"has_overlays"`
	HasBGM      bool `json:"has_bgm" bson:"has_bgm" yaml:"has_bgm"`
	HasSceneBGM bool `json:"has_scene_bgm" bson:"has_scene_bgm" yaml:"has_scene_bgm"`
}
