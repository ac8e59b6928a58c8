package ffmpeg

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/pkg/timeline"
)

func TestNum(t *testing.T) {
	Convey("num 格式化数值", t, func() {
		So(num(0), ShouldEqual, "0")
		So(num(-0.0000001), ShouldEqual, "0")
		So(num(10), ShouldEqual, "10")
		So(num(0.3), ShouldEqual, "0.3")
		So(num(4.0/30), ShouldEqual, "0.133333")
		So(num(-1.5), ShouldEqual, "-1.5")
	})
}

func TestVolumeExpression(t *testing.T) {
	Convey("VolumeExpression 生成避让表达式", t, func() {
		Convey("没有场景 BGM 时为常量", func() {
			So(VolumeExpression(0.3, nil, 4, 30), ShouldEqual, "0.3")
			So(VolumeExpression(1.7, nil, 4, 30), ShouldEqual, "1")
		})

		Convey("单个区间", func() {
			expr := VolumeExpression(0.3, []timeline.BGMInterval{{StartFrame: 30, EndFrame: 90}}, 4, 30)
			So(expr, ShouldEqual,
				"if(gte(t,1)*lt(t,3),0,"+
					"if(gte(t,0.866667)*lt(t,1),0.3*(1-t)/0.133333,"+
					"if(gte(t,3)*lt(t,3.133333),0.3*(t-3)/0.133333,0.3)))")
		})

		Convey("淡变帧数为 0 时只有静音段", func() {
			expr := VolumeExpression(0.3, []timeline.BGMInterval{{StartFrame: 30, EndFrame: 90}}, 0, 30)
			So(expr, ShouldEqual, "if(gte(t,1)*lt(t,3),0,0.3)")
		})

		Convey("多个区间按列表顺序判定", func() {
			a := timeline.BGMInterval{StartFrame: 30, EndFrame: 40}
			b := timeline.BGMInterval{StartFrame: 43, EndFrame: 60}
			expr := VolumeExpression(0.3, []timeline.BGMInterval{a, b}, 4, 30)
			So(expr, ShouldStartWith, "if(gte(t,1)*lt(t,1.333333)+gte(t,1.433333)*lt(t,2),0,")

			// a 的淡入判定位于 b 的淡出判定之前
			aFadeIn := strings.Index(expr, "gte(t,1.333333)*lt(t,1.466667)")
			bFadeOut := strings.Index(expr, "gte(t,1.3)*lt(t,1.433333)")
			So(aFadeIn, ShouldBeGreaterThan, 0)
			So(bFadeOut, ShouldBeGreaterThan, aFadeIn)

			reversed := VolumeExpression(0.3, []timeline.BGMInterval{b, a}, 4, 30)
			So(strings.Index(reversed, "gte(t,1.3)*lt(t,1.433333)"), ShouldBeLessThan,
				strings.Index(reversed, "gte(t,1.333333)*lt(t,1.466667)"))
		})
	})
}

func TestOverlayExpressions(t *testing.T) {
	Convey("叠加层表达式", t, func() {
		So(OverlayEnable(1, 2.5), ShouldEqual, "between(t,1,2.5)")
		So(OverlayAlpha(1, 2, 0.15), ShouldEqual,
			"if(lt(t,1),0,if(lt(t,1.15),(t-1)/0.15,if(lt(t,1.85),1,if(lt(t,2),(2-t)/0.15,0))))")
		So(OverlayAlpha(1, 2, 0), ShouldEqual, "if(gte(t,1)*lt(t,2),1,0)")
		So(OverlayAlpha(2, 2, 0.15), ShouldEqual, "0")
	})
}
