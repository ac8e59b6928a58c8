package timeline

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/model/project"
)

// sampleDoc 两个场景：第一个场景带两段配音与叠加层，第二个场景带场景 BGM
func sampleDoc() *project.Document {
	first := project.Scene{
		Idx:    1,
		Title:  "开场",
		Timing: project.Timing{HeadPadMs: 200, TailPadMs: 300},
		Assets: project.AssetBundle{
			Image: &project.Image{URL: "https://cdn.example.com/1.png"},
			Voices: []project.Voice{
				{ID: "v1", Role: project.VoiceRoleNarration, URL: "v1.mp3", DurationMs: 1500, Text: "夜深了"},
				{ID: "v2", Role: project.VoiceRoleDialogue, URL: "v2.mp3", DurationMs: 2000, Text: "你来了"},
			},
		},
		Motion:   &project.Motion{ID: "zoom_in"},
		Overlays: []project.Overlay{{ID: "o1", VoiceID: "v2", Text: "你来了"}},
	}
	second := sceneWithClip(2, 3000)
	second.Assets.BGM = &project.SceneBGM{URL: "scene.mp3", StartMs: 1000, EndMs: i64(2000)}

	doc := docV3(first, second)
	doc.BGM = &project.GlobalBGM{URL: "global.mp3", Volume: f64(0.3)}
	return doc
}

func TestCompose(t *testing.T) {
	Convey("Compose 合成多轨时间轴", t, func() {
		tl, err := Compose(sampleDoc(), DefaultOptions())
		So(err, ShouldBeNil)

		// 场景一 1500+2000+200+300=4000ms，场景二 3000ms
		So(tl.TotalDurationMs, ShouldEqual, 7000)
		So(tl.TotalDurationFrames, ShouldEqual, 210)
		So(tl.Scenes[1].StartFrame, ShouldEqual, 120)
		So(tl.BGMFadeFrames, ShouldEqual, 4)

		Convey("配音片段从 head pad 之后依次排布", func() {
			So(len(tl.VoiceClips), ShouldEqual, 2)
			So(tl.VoiceClips[0].StartFrame, ShouldEqual, 6)
			So(tl.VoiceClips[0].EndFrame, ShouldEqual, 51)
			So(tl.VoiceClips[1].StartFrame, ShouldEqual, 51)
			So(tl.VoiceClips[1].EndFrame, ShouldEqual, 111)
		})

		Convey("场景 BGM 区间换算为绝对帧", func() {
			So(len(tl.SceneBGMIntervals), ShouldEqual, 1)
			So(tl.SceneBGMIntervals[0].StartFrame, ShouldEqual, 150)
			So(tl.SceneBGMIntervals[0].EndFrame, ShouldEqual, 180)
		})

		Convey("未知版本返回错误", func() {
			doc := sampleDoc()
			doc.SchemaVersion = "7"
			_, err := Compose(doc, DefaultOptions())
			So(err, ShouldNotBeNil)
		})

		Convey("帧率参数覆盖文档设置", func() {
			tl24, err := Compose(sampleDoc(), Options{FPS: 24})
			So(err, ShouldBeNil)
			So(tl24.FPS, ShouldEqual, 24)
			So(tl24.TotalDurationFrames, ShouldEqual, 168)
		})
	})
}

func TestTimelineSample(t *testing.T) {
	Convey("Timeline.Sample 采样单帧", t, func() {
		tl, err := Compose(sampleDoc(), DefaultOptions())
		So(err, ShouldBeNil)

		Convey("场景一中段", func() {
			st := tl.Sample(60)
			So(st.InRange, ShouldBeTrue)
			So(st.SceneIdx, ShouldEqual, 1)
			So(st.SceneMs, ShouldEqual, 2000)
			So(st.Transform.Scale, ShouldAlmostEqual, 1.1, 1e-9)
			So(st.GlobalBGM.Scheduled, ShouldBeTrue)
			So(st.GlobalBGM.Volume, ShouldAlmostEqual, 0.3, 1e-9)
			So(len(st.Voices), ShouldEqual, 1)
			So(st.Voices[0].CueID, ShouldEqual, "v2")
			So(len(st.Overlays), ShouldEqual, 1)
			So(st.Overlays[0].ID, ShouldEqual, "o1")
		})

		Convey("场景 BGM 播放时全局 BGM 静音", func() {
			st := tl.Sample(160)
			So(st.SceneIdx, ShouldEqual, 2)
			So(st.GlobalBGM.Volume, ShouldEqual, 0)
			So(len(st.SceneBGM), ShouldEqual, 1)
			So(st.SceneBGM[0].URL, ShouldEqual, "scene.mp3")
		})

		Convey("超出时间轴的帧", func() {
			st := tl.Sample(210)
			So(st.InRange, ShouldBeFalse)
			So(st.Transform, ShouldResemble, IdentityTransform)
			So(st.GlobalBGM.Scheduled, ShouldBeFalse)
		})

		Convey("同一帧多次采样结果一致", func() {
			So(tl.Sample(100), ShouldResemble, tl.Sample(100))
			So(tl.SampleMs(2000), ShouldResemble, tl.Sample(60))
		})

		Convey("序列化后再采样结果一致", func() {
			raw, err := json.Marshal(tl)
			So(err, ShouldBeNil)
			var back Timeline
			So(json.Unmarshal(raw, &back), ShouldBeNil)
			for _, f := range []int64{0, 45, 60, 119, 149, 160, 209} {
				So(back.Sample(f), ShouldResemble, tl.Sample(f))
			}
		})
	})
}
