package timeline

import (
	"encoding/json"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/model/project"
)

func TestSanitizeDocument(t *testing.T) {
	Convey("SanitizeDocument 去掉非有限浮点数且不改变采样结果", t, func() {
		nan, inf, negInf := math.NaN(), math.Inf(1), math.Inf(-1)

		s1 := sceneWithClip(1, 2000)
		s1.Assets.BGM = &project.SceneBGM{URL: "scene.mp3", Volume: &inf}
		s1.Motion = &project.Motion{ID: "custom", Kind: project.MotionKindHoldThenPan,
			Params: project.MotionParams{StartScale: nan, EndScale: inf, StartXPct: negInf, EndXPct: 20, HoldRatio: inf}}
		s2 := sceneWithClip(2, 2000)
		s2.Assets.BGM = &project.SceneBGM{URL: "quiet.mp3", Volume: &negInf}

		doc := &project.Document{
			SchemaVersion: project.SchemaVersionV3,
			Settings:      project.BuildSettings{FPS: inf},
			BGM:           &project.GlobalBGM{URL: "bgm.mp3", Volume: &nan},
			Scenes:        []project.Scene{s1, s2},
		}

		clean := SanitizeDocument(doc)

		Convey("替换值", func() {
			So(clean.Settings.FPS, ShouldEqual, 0)
			So(clean.BGM.Volume, ShouldBeNil)
			So(*clean.Scenes[0].Assets.BGM.Volume, ShouldEqual, 1.0)
			So(*clean.Scenes[1].Assets.BGM.Volume, ShouldEqual, 0)
			p := clean.Scenes[0].Motion.Params
			So(p.StartScale, ShouldEqual, 0)
			So(p.EndScale, ShouldEqual, 0)
			So(p.StartXPct, ShouldEqual, 0)
			So(p.EndXPct, ShouldEqual, 20)
			So(p.HoldRatio, ShouldEqual, 1.0)
		})

		Convey("不修改入参，结果可序列化", func() {
			So(math.IsNaN(*doc.BGM.Volume), ShouldBeTrue)
			So(math.IsInf(doc.Settings.FPS, 1), ShouldBeTrue)
			_, err := json.Marshal(clean)
			So(err, ShouldBeNil)
		})

		Convey("采样结果一致", func() {
			raw, err := Compose(doc, DefaultOptions())
			So(err, ShouldBeNil)
			sanitized, err := Compose(clean, DefaultOptions())
			So(err, ShouldBeNil)
			So(sanitized.TotalDurationFrames, ShouldEqual, raw.TotalDurationFrames)
			for f := int64(0); f <= raw.TotalDurationFrames; f += 7 {
				So(sanitized.Sample(f), ShouldResemble, raw.Sample(f))
			}
		})

		Convey("nil 文档", func() {
			So(SanitizeDocument(nil), ShouldBeNil)
		})
	})
}
