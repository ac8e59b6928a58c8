package timeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMsToFrame(t *testing.T) {
	Convey("毫秒与帧互转", t, func() {
		Convey("四舍五入而不是截断", func() {
			So(MsToFrame(1000, 30), ShouldEqual, 30)
			So(MsToFrame(120, 30), ShouldEqual, 4) // 3.6
			So(MsToFrame(40, 30), ShouldEqual, 1)  // 1.2
			So(MsToFrame(0, 30), ShouldEqual, 0)
			So(MsToFrame(1001, 29.97), ShouldEqual, 30)
		})

		Convey("往返换算误差不超过 1 帧", func() {
			for ms := int64(0); ms < 5000; ms += 7 {
				frame := MsToFrame(ms, 30)
				back := MsToFrame(FrameToMs(frame, 30), 30)
				diff := back - frame
				So(diff >= -1 && diff <= 1, ShouldBeTrue)
			}
		})

		Convey("帧转毫秒", func() {
			So(FrameToMs(150, 30), ShouldEqual, 5000)
			So(FrameToMs(1, 30), ShouldEqual, 33)
			So(FrameToSeconds(45, 30), ShouldEqual, 1.5)
		})
	})
}
