package timeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/model/project"
)

func TestResolveSceneDuration(t *testing.T) {
	Convey("ResolveSceneDuration 按固定优先级计算场景时长", t, func() {
		pads := project.Timing{HeadPadMs: 200, TailPadMs: 300}

		Convey("配音优先于旧版音频", func() {
			s := &project.Scene{
				Timing: pads,
				Assets: project.AssetBundle{
					Voices: []project.Voice{{ID: "v1", DurationMs: 1000}, {ID: "v2", DurationMs: 2000}},
					Audio:  &project.Audio{URL: "a.mp3", DurationMs: 9000},
				},
			}
			d, src := ResolveSceneDuration(s)
			So(d, ShouldEqual, 3500)
			So(src, ShouldEqual, DurationSourceVoices)
		})

		Convey("配音优先于视频片段", func() {
			s := &project.Scene{
				Assets: project.AssetBundle{
					Voices:    []project.Voice{{ID: "v1", DurationMs: 1200}},
					VideoClip: &project.VideoClip{URL: "c.mp4", DurationMs: 8000},
				},
			}
			d, src := ResolveSceneDuration(s)
			So(d, ShouldEqual, 1200)
			So(src, ShouldEqual, DurationSourceVoices)
		})

		Convey("视频片段时长不叠加 padding", func() {
			s := &project.Scene{
				Timing: pads,
				Assets: project.AssetBundle{
					VideoClip: &project.VideoClip{URL: "c.mp4", DurationMs: 4000},
					Audio:     &project.Audio{URL: "a.mp3", DurationMs: 9000},
				},
			}
			d, src := ResolveSceneDuration(s)
			So(d, ShouldEqual, 4000)
			So(src, ShouldEqual, DurationSourceVideoClip)
		})

		Convey("旧版音频叠加 padding", func() {
			s := &project.Scene{Timing: pads, Assets: project.AssetBundle{Audio: &project.Audio{URL: "a.mp3", DurationMs: 4000}}}
			d, src := ResolveSceneDuration(s)
			So(d, ShouldEqual, 4500)
			So(src, ShouldEqual, DurationSourceAudio)
		})

		Convey("台词按字数估算，不足最短时长时取最短时长", func() {
			s := &project.Scene{Timing: pads, Dialogue: "你好世界"}
			d, src := ResolveSceneDuration(s)
			So(d, ShouldEqual, MinSceneDurationMs+500)
			So(src, ShouldEqual, DurationSourceDialogue)

			s.Dialogue = "一二三四五六七八九十"
			d, _ = ResolveSceneDuration(s)
			So(d, ShouldEqual, 10*MsPerChar+500)
		})

		Convey("空白台词视为没有台词", func() {
			s := &project.Scene{Timing: pads, Dialogue: "   \n "}
			d, src := ResolveSceneDuration(s)
			So(d, ShouldEqual, DefaultSceneDurationMs)
			So(src, ShouldEqual, DurationSourceDefault)
		})

		Convey("负值被钳制为 0", func() {
			s := &project.Scene{
				Timing: project.Timing{HeadPadMs: -100, TailPadMs: 50},
				Assets: project.AssetBundle{Voices: []project.Voice{{ID: "v1", DurationMs: -300}, {ID: "v2", DurationMs: 700}}},
			}
			d, _ := ResolveSceneDuration(s)
			So(d, ShouldEqual, 750)
		})
	})
}
