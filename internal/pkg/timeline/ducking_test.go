package timeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/model/project"
)

func TestSceneBGMInterval(t *testing.T) {
	Convey("SceneBGMInterval 计算场景 BGM 的绝对帧区间", t, func() {
		Convey("相对场景起点偏移", func() {
			iv, ok := SceneBGMInterval(2, 150, 3000, &project.SceneBGM{URL: "s.mp3", StartMs: 1000, EndMs: i64(2000)}, 30)
			So(ok, ShouldBeTrue)
			So(iv.StartFrame, ShouldEqual, 180)
			So(iv.EndFrame, ShouldEqual, 210)
			So(iv.SceneIdx, ShouldEqual, 2)
			So(iv.Volume, ShouldEqual, DefaultSceneBGMLevel)
		})

		Convey("end_ms 缺省时到场景结束", func() {
			iv, ok := SceneBGMInterval(1, 0, 3000, &project.SceneBGM{URL: "s.mp3", StartMs: 500}, 30)
			So(ok, ShouldBeTrue)
			So(iv.EndFrame, ShouldEqual, 90)
		})

		Convey("超出场景的部分被钳制", func() {
			iv, ok := SceneBGMInterval(1, 0, 3000, &project.SceneBGM{URL: "s.mp3", StartMs: -500, EndMs: i64(99000)}, 30)
			So(ok, ShouldBeTrue)
			So(iv.StartFrame, ShouldEqual, 0)
			So(iv.EndFrame, ShouldEqual, 90)
		})

		Convey("钳制后为空的区间被丢弃", func() {
			_, ok := SceneBGMInterval(1, 0, 3000, &project.SceneBGM{URL: "s.mp3", StartMs: 2500, EndMs: i64(1000)}, 30)
			So(ok, ShouldBeFalse)
			_, ok = SceneBGMInterval(1, 0, 3000, &project.SceneBGM{URL: "s.mp3", StartMs: 4000}, 30)
			So(ok, ShouldBeFalse)
			_, ok = SceneBGMInterval(1, 0, 3000, nil, 30)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestDuckedVolume(t *testing.T) {
	Convey("DuckedVolume 计算全局 BGM 避让音量", t, func() {
		// [1000ms, 3000ms) @30fps，淡变 120ms = 4 帧
		intervals := []BGMInterval{{StartFrame: 30, EndFrame: 90}}
		fade := MsToFrame(DefaultBGMFadeMs, 30)
		So(fade, ShouldEqual, 4)

		Convey("区间内完全静音", func() {
			So(DuckedVolume(MsToFrame(2000, 30), 0.3, intervals, fade), ShouldEqual, 0)
			So(DuckedVolume(30, 0.3, intervals, fade), ShouldEqual, 0)
			So(DuckedVolume(89, 0.3, intervals, fade), ShouldEqual, 0)
		})

		Convey("远离区间时保持基础音量", func() {
			So(DuckedVolume(MsToFrame(500, 30), 0.3, intervals, fade), ShouldEqual, 0.3)
			So(DuckedVolume(200, 0.3, intervals, fade), ShouldEqual, 0.3)
		})

		Convey("起点前线性淡出", func() {
			So(DuckedVolume(MsToFrame(940, 30), 0.3, intervals, fade), ShouldAlmostEqual, 0.15, 1e-9)
			So(DuckedVolume(26, 0.3, intervals, fade), ShouldAlmostEqual, 0.3, 1e-9)
			So(DuckedVolume(29, 0.3, intervals, fade), ShouldAlmostEqual, 0.075, 1e-9)
		})

		Convey("终点后线性淡入", func() {
			So(DuckedVolume(90, 0.3, intervals, fade), ShouldEqual, 0)
			So(DuckedVolume(92, 0.3, intervals, fade), ShouldAlmostEqual, 0.15, 1e-9)
			So(DuckedVolume(94, 0.3, intervals, fade), ShouldEqual, 0.3)
		})

		Convey("淡变区重叠时按区间顺序第一个命中的生效", func() {
			a := BGMInterval{StartFrame: 30, EndFrame: 40}
			b := BGMInterval{StartFrame: 43, EndFrame: 60}
			So(DuckedVolume(41, 0.3, []BGMInterval{a, b}, 4), ShouldAlmostEqual, 0.075, 1e-9)
			So(DuckedVolume(41, 0.3, []BGMInterval{b, a}, 4), ShouldAlmostEqual, 0.15, 1e-9)
		})

		Convey("音量钳制到 [0,1]", func() {
			So(DuckedVolume(500, 3.5, intervals, fade), ShouldEqual, 1)
			So(DuckedVolume(500, -1, intervals, fade), ShouldEqual, 0)
		})

		Convey("淡变帧数为 0 时没有淡变区", func() {
			So(DuckedVolume(29, 0.3, intervals, 0), ShouldEqual, 0.3)
		})

		Convey("没有场景 BGM 时保持基础音量", func() {
			So(DuckedVolume(29, 0.3, nil, fade), ShouldEqual, 0.3)
		})
	})
}

func TestBGMIntervalLevel(t *testing.T) {
	Convey("场景 BGM 自身的淡入淡出", t, func() {
		iv := BGMInterval{StartFrame: 30, EndFrame: 90, Volume: 0.8, FadeIn: 10, FadeOut: 10}
		So(iv.Level(29), ShouldEqual, 0)
		So(iv.Level(30), ShouldEqual, 0)
		So(iv.Level(35), ShouldAlmostEqual, 0.4, 1e-9)
		So(iv.Level(60), ShouldAlmostEqual, 0.8, 1e-9)
		So(iv.Level(85), ShouldAlmostEqual, 0.4, 1e-9)
		So(iv.Level(90), ShouldEqual, 0)
	})
}

func TestGlobalBGMTrack(t *testing.T) {
	Convey("全局 BGM 播放窗口", t, func() {
		Convey("缺省覆盖整个文档", func() {
			track := NewGlobalBGMTrack(&project.GlobalBGM{URL: "g.mp3"}, 300, 30)
			So(track.Volume, ShouldEqual, DefaultBGMVolume)
			So(track.Scheduled(0), ShouldBeTrue)
			So(track.Scheduled(299), ShouldBeTrue)
			So(track.Scheduled(300), ShouldBeFalse)
		})

		Convey("窗口外不调度", func() {
			track := NewGlobalBGMTrack(&project.GlobalBGM{URL: "g.mp3", Volume: f64(0.3), VideoStartMs: i64(1000), VideoEndMs: i64(4000)}, 300, 30)
			So(track.Scheduled(29), ShouldBeFalse)
			So(track.Scheduled(30), ShouldBeTrue)
			So(track.Scheduled(119), ShouldBeTrue)
			So(track.Scheduled(120), ShouldBeFalse)
		})

		Convey("未配置全局 BGM", func() {
			var track *GlobalBGMTrack
			So(track.Scheduled(0), ShouldBeFalse)
			So(NewGlobalBGMTrack(nil, 300, 30), ShouldBeNil)
		})
	})
}
