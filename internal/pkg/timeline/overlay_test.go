package timeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/model/project"
)

func TestOverlayOpacity(t *testing.T) {
	Convey("OverlayOpacity 在窗口两端线性渐变", t, func() {
		o := &project.Overlay{ID: "o1", StartMs: 1000, EndMs: 2000}

		So(OverlayOpacity(o, 999, 150), ShouldEqual, 0)
		So(OverlayOpacity(o, 1000, 150), ShouldEqual, 0)
		So(OverlayOpacity(o, 1075, 150), ShouldAlmostEqual, 0.5, 1e-9)
		So(OverlayOpacity(o, 1500, 150), ShouldEqual, 1)
		So(OverlayOpacity(o, 1925, 150), ShouldAlmostEqual, 0.5, 1e-9)
		So(OverlayOpacity(o, 2000, 150), ShouldEqual, 0)

		Convey("淡变时长为 0 时窗口内完全不透明", func() {
			So(OverlayOpacity(o, 1000, 0), ShouldEqual, 1)
		})

		Convey("空窗口永远不可见", func() {
			empty := &project.Overlay{StartMs: 1000, EndMs: 1000}
			So(OverlayOpacity(empty, 1000, 150), ShouldEqual, 0)
		})
	})
}

func TestVisibleOverlays(t *testing.T) {
	Convey("VisibleOverlays 按渲染模式筛选叠加层", t, func() {
		overlays := []project.Overlay{
			{ID: "top", Text: "上层", StartMs: 0, EndMs: 3000, ZIndex: 2, Position: project.Point{X: 1.4, Y: -0.2}},
			{ID: "baked", Text: "图片", StartMs: 0, EndMs: 3000, ZIndex: 1, BubbleImageURL: "https://cdn.example.com/b.png"},
			{ID: "bottom", Text: "下层", StartMs: 0, EndMs: 3000, ZIndex: 1},
			{ID: "later", Text: "稍后", StartMs: 2500, EndMs: 3000},
		}

		Convey("overlay-rendered 模式按 z_index 排序并输出文字", func() {
			states := VisibleOverlays(project.TextRenderModeOverlay, overlays, 1000, 150)
			So(len(states), ShouldEqual, 3)
			So(states[0].ID, ShouldEqual, "baked")
			So(states[1].ID, ShouldEqual, "bottom")
			So(states[2].ID, ShouldEqual, "top")
			So(states[2].Text, ShouldEqual, "上层")
			So(states[2].ImageURL, ShouldBeEmpty)
			So(states[2].Position, ShouldResemble, project.Point{X: 1, Y: 0})
		})

		Convey("baked 模式跳过没有预渲染图片的叠加层", func() {
			states := VisibleOverlays(project.TextRenderModeBaked, overlays, 1000, 150)
			So(len(states), ShouldEqual, 1)
			So(states[0].ID, ShouldEqual, "baked")
			So(states[0].ImageURL, ShouldEqual, "https://cdn.example.com/b.png")
			So(states[0].Text, ShouldBeEmpty)
		})

		Convey("none 模式不显示任何叠加层", func() {
			So(VisibleOverlays(project.TextRenderModeNone, overlays, 1000, 150), ShouldBeEmpty)
		})
	})
}
