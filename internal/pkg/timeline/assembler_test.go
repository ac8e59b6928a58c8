package timeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAssembleLayout(t *testing.T) {
	Convey("AssembleLayout 按累计时长排布场景", t, func() {
		scenes := []NormalizedScene{
			{Idx: 1, DurationMs: 5000},
			{Idx: 2, DurationMs: 3000},
			{Idx: 3, DurationMs: 4000},
		}
		layout := AssembleLayout(scenes, 30)

		So(layout.Scenes[0].StartFrame, ShouldEqual, 0)
		So(layout.Scenes[1].StartFrame, ShouldEqual, 150)
		So(layout.Scenes[2].StartFrame, ShouldEqual, 240)
		So(layout.Scenes[2].DurationFrames, ShouldEqual, 120)
		So(layout.TotalDurationFrames, ShouldEqual, 360)
		So(layout.TotalDurationMs, ShouldEqual, 12000)

		Convey("相邻场景首尾相接", func() {
			for i := 1; i < len(layout.Scenes); i++ {
				So(layout.Scenes[i].StartFrame, ShouldEqual, layout.Scenes[i-1].EndFrame())
			}
		})

		Convey("SceneAt 定位帧所在场景", func() {
			i, ok := layout.SceneAt(0)
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 0)

			i, _ = layout.SceneAt(149)
			So(i, ShouldEqual, 0)
			i, _ = layout.SceneAt(150)
			So(i, ShouldEqual, 1)
			i, _ = layout.SceneAt(359)
			So(i, ShouldEqual, 2)

			_, ok = layout.SceneAt(360)
			So(ok, ShouldBeFalse)
			_, ok = layout.SceneAt(-1)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("非整帧时长的舍入误差不累积", t, func() {
		scenes := make([]NormalizedScene, 10)
		for i := range scenes {
			scenes[i] = NormalizedScene{Idx: i + 1, DurationMs: 1010}
		}
		layout := AssembleLayout(scenes, 24)
		So(layout.TotalDurationFrames, ShouldEqual, MsToFrame(10100, 24))

		var sum int64
		for _, s := range layout.Scenes {
			sum += s.DurationFrames
		}
		So(sum, ShouldEqual, layout.TotalDurationFrames)
	})
}
