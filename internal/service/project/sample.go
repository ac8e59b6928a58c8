package project

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"montage/internal/model/project"
	"montage/internal/pkg/timeline"
)

// MaxSampleFrames 单次区间采样的最大帧数
const MaxSampleFrames = 10000

// SampleRequest 采样请求：From/To 为闭区间，Step 为步长
type SampleRequest struct {
	FPS  float64
	From int64
	To   int64
	Step int64
}

// FrameSample 单帧采样结果
type FrameSample = timeline.FrameState

// Frames 展开请求中的帧号
func (r *SampleRequest) Frames() ([]int64, error) {
	step := r.Step
	if step <= 0 {
		step = 1
	}
	if r.From < 0 || r.To < r.From {
		return nil, fmt.Errorf("%w: from=%d to=%d", ErrInvalidRange, r.From, r.To)
	}
	// From <= To 且均非负，span 不会溢出；先比较 span/step 再加 1
	span := r.To - r.From
	if span/step >= MaxSampleFrames {
		return nil, fmt.Errorf("%w: more than %d frames in [%d, %d] step %d", ErrInvalidRange, MaxSampleFrames, r.From, r.To, step)
	}
	n := span/step + 1
	frames := make([]int64, n)
	for i := range frames {
		// i*step <= span，不会越过 To
		frames[i] = r.From + int64(i)*step
	}
	return frames, nil
}

// SampleRange 并发采样，每个 goroutine 只写自己的下标，结果与串行一致
func SampleRange(ctx context.Context, tl *timeline.Timeline, frames []int64, workers int) ([]FrameSample, error) {
	out := make([]FrameSample, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, f := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = tl.Sample(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SampleDocument 合成并采样一份未落库的文档
func (s *projectService) SampleDocument(ctx context.Context, doc *project.Document, req *SampleRequest) ([]FrameSample, error) {
	frames, err := req.Frames()
	if err != nil {
		return nil, err
	}
	res, err := s.Compose(ctx, doc, req.FPS)
	if err != nil {
		return nil, err
	}
	return SampleRange(ctx, res.Timeline, frames, s.cfg.SampleWorkers)
}

// SampleProject 采样项目时间轴
func (s *projectService) SampleProject(ctx context.Context, projectID, userID string, req *SampleRequest) ([]FrameSample, error) {
	frames, err := req.Frames()
	if err != nil {
		return nil, err
	}
	res, err := s.GetTimeline(ctx, projectID, userID, req.FPS)
	if err != nil {
		return nil, err
	}
	return SampleRange(ctx, res.Timeline, frames, s.cfg.SampleWorkers)
}
