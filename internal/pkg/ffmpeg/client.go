package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"montage/internal/config"
)

// Runner 执行外部命令并返回标准输出
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// execRunner 默认实现，失败时把 stderr 带进错误信息
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, nil
}

// Client FFmpeg 客户端
type Client struct {
	ffmpegPath  string // FFmpeg 可执行文件路径（默认: ffmpeg）
	ffprobePath string // FFprobe 可执行文件路径（默认: ffprobe）
	timeout     time.Duration
	run         Runner
}

// NewClient 创建 FFmpeg 客户端
func NewClient(cfg *config.FFmpegConfig) *Client {
	c := &Client{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		timeout:     30 * time.Second,
		run:         execRunner,
	}
	if cfg != nil {
		if cfg.FFmpegPath != "" {
			c.ffmpegPath = cfg.FFmpegPath
		}
		if cfg.FFprobePath != "" {
			c.ffprobePath = cfg.FFprobePath
		}
		if cfg.Timeout > 0 {
			c.timeout = cfg.Timeout
		}
	}
	return c
}

// WithRunner 替换命令执行方式（测试使用）
func (c *Client) WithRunner(run Runner) *Client {
	c.run = run
	return c
}

// probeOutput ffprobe -of json 的输出
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// ProbeDurationMs 测量媒体时长（毫秒）
// 优先取 format.duration，缺失时取第一条带时长的流
func (c *Client) ProbeDurationMs(ctx context.Context, path string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.run(ctx, c.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration:stream=codec_type,duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}

	candidates := []string{probe.Format.Duration}
	for _, s := range probe.Streams {
		candidates = append(candidates, s.Duration)
	}
	for _, raw := range candidates {
		if raw == "" || raw == "N/A" {
			continue
		}
		sec, err := strconv.ParseFloat(raw, 64)
		if err != nil || sec < 0 || math.IsNaN(sec) {
			continue
		}
		return int64(math.Round(sec * 1000)), nil
	}
	return 0, fmt.Errorf("ffprobe: no duration for %s", path)
}

// Mix 按混音计划执行 ffmpeg，输出一条音轨
func (c *Client) Mix(ctx context.Context, plan *MixPlan, outputPath string) error {
	if _, err := c.run(ctx, c.ffmpegPath, plan.Args(outputPath)...); err != nil {
		return fmt.Errorf("ffmpeg mix audio failed: %w", err)
	}

	log.Info().
		Int("inputs", len(plan.Inputs)).
		Float64("duration_sec", plan.DurationSec).
		Str("output", outputPath).
		Msg("音频混合成功")
	return nil
}
