package ffmpeg

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/config"
)

func fakeRunner(out string, err error, calls *[][]string) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if calls != nil {
			*calls = append(*calls, append([]string{name}, args...))
		}
		return []byte(out), err
	}
}

func TestProbeDurationMs(t *testing.T) {
	Convey("ProbeDurationMs 解析 ffprobe 输出", t, func() {
		ctx := context.Background()

		Convey("使用 format.duration", func() {
			var calls [][]string
			c := NewClient(&config.FFmpegConfig{FFprobePath: "/opt/bin/ffprobe"}).WithRunner(fakeRunner(`{"format":{"duration":"1.234567"}}`, nil, &calls))
			ms, err := c.ProbeDurationMs(ctx, "v1.mp3")
			So(err, ShouldBeNil)
			So(ms, ShouldEqual, 1235)
			So(calls[0][0], ShouldEqual, "/opt/bin/ffprobe")
			So(calls[0][len(calls[0])-1], ShouldEqual, "v1.mp3")
		})

		Convey("format 缺失时取流时长", func() {
			c := NewClient(nil).WithRunner(fakeRunner(`{"format":{"duration":"N/A"},"streams":[{"codec_type":"audio","duration":"2.5"}]}`, nil, nil))
			ms, err := c.ProbeDurationMs(ctx, "v1.mp3")
			So(err, ShouldBeNil)
			So(ms, ShouldEqual, 2500)
		})

		Convey("没有任何时长", func() {
			c := NewClient(nil).WithRunner(fakeRunner(`{"format":{}}`, nil, nil))
			_, err := c.ProbeDurationMs(ctx, "v1.mp3")
			So(err, ShouldNotBeNil)
		})

		Convey("命令失败", func() {
			c := NewClient(nil).WithRunner(fakeRunner("", errors.New("exit status 1"), nil))
			_, err := c.ProbeDurationMs(ctx, "v1.mp3")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewClient(t *testing.T) {
	Convey("NewClient 读取配置", t, func() {
		c := NewClient(&config.FFmpegConfig{FFmpegPath: "/usr/local/bin/ffmpeg", Timeout: time.Second})
		So(c.ffmpegPath, ShouldEqual, "/usr/local/bin/ffmpeg")
		So(c.ffprobePath, ShouldEqual, "ffprobe")
		So(c.timeout, ShouldEqual, time.Second)
	})
}
