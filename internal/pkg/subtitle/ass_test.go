package subtitle

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/model/project"
	"montage/internal/pkg/timeline"
)

func subtitleDoc() *project.Document {
	return &project.Document{
		SchemaVersion: project.SchemaVersionV3,
		Settings:      project.BuildSettings{Width: 1080, Height: 1920, FPS: 30},
		Scenes: []project.Scene{
			{
				Idx:    1,
				Timing: project.Timing{HeadPadMs: 200, TailPadMs: 300},
				Assets: project.AssetBundle{
					Voices: []project.Voice{
						{ID: "v1", URL: "v1.mp3", DurationMs: 1500, Text: "夜深了"},
						{ID: "v2", URL: "v2.mp3", DurationMs: 2000, Text: "你来了"},
					},
				},
				Overlays: []project.Overlay{
					{ID: "o2", VoiceID: "v2", Text: "你来了", Position: project.Point{X: 0.5, Y: 0.25}, ZIndex: 2,
						Style: project.OverlayStyle{Color: "#FF8800", FontSize: 40}},
					{ID: "o1", Text: "第一章\n{夜}", StartMs: 0, EndMs: 100},
				},
			},
			{
				Idx:            2,
				TextRenderMode: project.TextRenderModeBaked,
				Assets:         project.AssetBundle{VideoClip: &project.VideoClip{URL: "clip.mp4", DurationMs: 3000}},
				Overlays:       []project.Overlay{{ID: "o3", Text: "不导出", StartMs: 0, EndMs: 1000, BubbleImageURL: "b.png"}},
			},
		},
	}
}

func TestFormatTime(t *testing.T) {
	Convey("FormatTime 输出 H:MM:SS.CC", t, func() {
		So(FormatTime(0), ShouldEqual, "0:00:00.00")
		So(FormatTime(1705), ShouldEqual, "0:00:01.70")
		So(FormatTime(3723450), ShouldEqual, "1:02:03.45")
		So(FormatTime(-5), ShouldEqual, "0:00:00.00")
	})
}

func TestASSGenerator(t *testing.T) {
	Convey("ASSGenerator 导出叠加层字幕", t, func() {
		tl, err := timeline.Compose(subtitleDoc(), timeline.DefaultOptions())
		So(err, ShouldBeNil)
		g := NewASSGenerator()

		events := g.Events(tl)
		So(len(events), ShouldEqual, 2)

		Convey("按开始时间排序，baked 场景不导出", func() {
			So(events[0].OverlayID, ShouldEqual, "o1")
			So(events[1].OverlayID, ShouldEqual, "o2")
		})

		Convey("关联配音的叠加层使用配音窗口", func() {
			So(events[1].StartMs, ShouldEqual, 1700)
			So(events[1].EndMs, ShouldEqual, 3700)
			So(events[1].Override, ShouldEqual, `{\an7\pos(540,480)\fad(150,150)\fs40\c&H0088FF&}`)
		})

		Convey("短窗口只有淡入，与引擎采样一致；文本转义", func() {
			So(events[0].Override, ShouldContainSubstring, `\fade(255,85,85,0,100,100,100)`)
			So(events[0].Text, ShouldEqual, `第一章\N｛夜｝`)
		})

		Convey("生成完整文件", func() {
			content := g.Generate(tl, "第一集")
			So(content, ShouldStartWith, "[Script Info]\nTitle: 第一集\n")
			So(content, ShouldContainSubstring, "PlayResX: 1080\nPlayResY: 1920\n")
			So(content, ShouldContainSubstring, "Dialogue: 2,0:00:01.70,0:00:03.70,Default,,0,0,0,,{")
			So(strings.Count(content, "Dialogue:"), ShouldEqual, 2)
		})
	})

	Convey("assColor", t, func() {
		c, ok := assColor("#336699")
		So(ok, ShouldBeTrue)
		So(c, ShouldEqual, "&H996633&")
		_, ok = assColor("red")
		So(ok, ShouldBeFalse)
	})
}

func TestFadeSegments(t *testing.T) {
	Convey("fadeSegments 与 timeline.OverlayOpacity 分段一致", t, func() {
		Convey("长窗口", func() {
			So(fadeSegments(2000, 150), ShouldResemble, []fadeSegment{{0, 2000, `\fad(150,150)`}})
			So(fadeSegments(300, 150), ShouldResemble, []fadeSegment{{0, 300, `\fad(150,150)`}})
		})

		Convey("无淡变", func() {
			So(fadeSegments(500, 0), ShouldResemble, []fadeSegment{{0, 500, ""}})
		})

		Convey("窗口介于一段与两段淡变之间时拆成两段", func() {
			o := &project.Overlay{StartMs: 0, EndMs: 200}
			segs := fadeSegments(200, 150)
			So(segs, ShouldResemble, []fadeSegment{
				{0, 150, `\fade(255,0,0,0,150,150,150)`},
				{150, 200, `\fade(170,170,255,0,0,0,50)`},
			})
			// 第二段起点的 alpha 就是引擎在该时刻的不透明度
			So(alpha(timeline.OverlayOpacity(o, 150, 150)), ShouldEqual, 170)
			So(alpha(timeline.OverlayOpacity(o, 149, 150)), ShouldEqual, 2)
		})

		Convey("窗口不超过一段淡变", func() {
			o := &project.Overlay{StartMs: 0, EndMs: 120}
			So(fadeSegments(120, 150), ShouldResemble, []fadeSegment{{0, 120, `\fade(255,51,51,0,120,120,120)`}})
			So(alpha(timeline.OverlayOpacity(o, 119, 150)), ShouldBeBetweenOrEqual, 51, 53)
		})
	})

	Convey("拆分的事件与场景截断", t, func() {
		doc := &project.Document{
			SchemaVersion: project.SchemaVersionV3,
			Settings:      project.BuildSettings{Width: 1000, Height: 1000, FPS: 30},
			Scenes: []project.Scene{{
				Idx:    1,
				Assets: project.AssetBundle{VideoClip: &project.VideoClip{URL: "clip.mp4", DurationMs: 1000}},
				Overlays: []project.Overlay{
					{ID: "short", Text: "嗯", StartMs: 100, EndMs: 300},
					{ID: "tail", Text: "再见", StartMs: 900, EndMs: 1500},
				},
			}},
		}
		tl, err := timeline.Compose(doc, timeline.DefaultOptions())
		So(err, ShouldBeNil)

		events := NewASSGenerator().Events(tl)
		So(len(events), ShouldEqual, 3)
		So(events[0].OverlayID, ShouldEqual, "short")
		So(events[0].StartMs, ShouldEqual, 100)
		So(events[0].EndMs, ShouldEqual, 250)
		So(events[1].StartMs, ShouldEqual, 250)
		So(events[1].EndMs, ShouldEqual, 300)
		So(events[1].Override, ShouldEqual, `{\an7\pos(0,0)\fade(170,170,255,0,0,0,50)}`)

		// 曲线按完整窗口计算，只截断结束时间
		So(events[2].OverlayID, ShouldEqual, "tail")
		So(events[2].StartMs, ShouldEqual, 900)
		So(events[2].EndMs, ShouldEqual, 1000)
		So(events[2].Override, ShouldContainSubstring, `\fad(150,150)`)
	})
}
