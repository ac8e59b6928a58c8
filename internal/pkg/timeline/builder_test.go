package timeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/model/project"
)

func TestBuildDocument(t *testing.T) {
	Convey("BuildDocument 输出规范文档", t, func() {
		auto := sceneWithClip(1, 3000)
		auto.Title = "开场"
		auto.Motion = &project.Motion{ID: project.MotionIDAuto}

		fixed := sceneWithClip(2, 2000)
		fixed.Motion = &project.Motion{ID: project.MotionIDAuto, Params: project.MotionParams{Chosen: "pan_up"}}

		both := project.Scene{
			Idx: 3,
			Assets: project.AssetBundle{
				Voices: []project.Voice{{ID: "v1", URL: "v1.mp3", DurationMs: 1000}, {ID: "v2", URL: "v2.mp3", DurationMs: 500}},
				Audio:  &project.Audio{URL: "a.mp3", DurationMs: 9000},
			},
			Overlays: []project.Overlay{{ID: "o1", VoiceID: "v1"}},
		}
		doc := docV3(auto, fixed, both)
		doc.SchemaVersion = "v3"

		out, err := BuildDocument(doc, BuildOptions{Seed: 42, ResolveVoiceStarts: true})
		So(err, ShouldBeNil)
		So(out.SchemaVersion, ShouldEqual, project.SchemaVersionV3)

		Convey("auto 运镜被确定性地选定", func() {
			chosen := out.Scenes[0].Motion.Params.Chosen
			So(autoMotionCandidates, ShouldContain, chosen)
			So(chosen, ShouldEqual, PickAutoMotion(42, "1:开场"))

			again, err := BuildDocument(doc, BuildOptions{Seed: 42})
			So(err, ShouldBeNil)
			So(again.Scenes[0].Motion.Params.Chosen, ShouldEqual, chosen)
		})

		Convey("已选定的预设保持不变", func() {
			So(out.Scenes[1].Motion.Params.Chosen, ShouldEqual, "pan_up")
		})

		Convey("场景级 seed 优先于项目级 seed", func() {
			d := docV3(auto)
			d.Scenes[0].Motion = &project.Motion{ID: project.MotionIDAuto, Params: project.MotionParams{Seed: i64(7)}}
			res, err := BuildDocument(d, BuildOptions{Seed: 42})
			So(err, ShouldBeNil)
			So(res.Scenes[0].Motion.Params.Chosen, ShouldEqual, PickAutoMotion(7, "1:开场"))
		})

		Convey("v2 起只保留 voices", func() {
			So(out.Scenes[2].Assets.Audio, ShouldBeNil)
			So(len(out.Scenes[2].Assets.Voices), ShouldEqual, 2)
			So(*out.Scenes[2].Assets.Voices[1].StartMs, ShouldEqual, 1000)
		})

		Convey("v1 只保留 audio", func() {
			d := docV3(both)
			d.SchemaVersion = project.SchemaVersionV1
			res, err := BuildDocument(d, BuildOptions{})
			So(err, ShouldBeNil)
			So(res.Scenes[0].Assets.Voices, ShouldBeNil)
			So(res.Scenes[0].Assets.Audio, ShouldNotBeNil)
			So(res.Scenes[0].Timing.DurationMs, ShouldEqual, 9000)
		})

		Convey("填充时长、累计起点与摘要", func() {
			So(out.Scenes[0].Timing.StartMs, ShouldEqual, 0)
			So(out.Scenes[1].Timing.StartMs, ShouldEqual, 3000)
			So(out.Scenes[2].Timing.StartMs, ShouldEqual, 5000)
			So(out.Scenes[2].Timing.DurationMs, ShouldEqual, 1500)

			So(out.Summary.SceneCount, ShouldEqual, 3)
			So(out.Summary.TotalDurationMs, ShouldEqual, 6500)
			caps := out.Summary.Capabilities
			So(caps.HasVoices, ShouldBeTrue)
			So(caps.HasLegacy, ShouldBeFalse)
			So(caps.HasMotion, ShouldBeTrue)
			So(caps.HasOverlays, ShouldBeTrue)
			So(caps.HasBGM, ShouldBeFalse)
		})

		Convey("不修改入参", func() {
			So(doc.SchemaVersion, ShouldEqual, project.SchemaVersion("v3"))
			So(doc.Scenes[0].Motion.Params.Chosen, ShouldBeEmpty)
			So(doc.Scenes[2].Assets.Audio, ShouldNotBeNil)
			So(doc.Scenes[2].Assets.Voices[1].StartMs, ShouldBeNil)
			So(doc.Scenes[0].Timing.DurationMs, ShouldEqual, 0)
		})

		Convey("构建结果可以直接合成", func() {
			tl, err := Compose(out, DefaultOptions())
			So(err, ShouldBeNil)
			So(tl.TotalDurationMs, ShouldEqual, out.Summary.TotalDurationMs)
		})

		Convey("未知版本拒绝构建", func() {
			d := docV3(auto)
			d.SchemaVersion = "0"
			_, err := BuildDocument(d, BuildOptions{})
			So(err, ShouldNotBeNil)
		})
	})
}
