package project

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"montage/internal/config"
	"montage/internal/model/project"
	"montage/internal/pkg/cache"
	projectRepo "montage/internal/repository/project"
)

// fakeRepo 内存仓库
type fakeRepo struct {
	mu       sync.Mutex
	projects map[string]*project.Project
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{projects: map[string]*project.Project{}}
}

func (r *fakeRepo) Create(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.DeletedAt != nil {
		return nil, projectRepo.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) FindByUserID(ctx context.Context, userID string, limit, offset int64) ([]*project.Project, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*project.Project
	for _, p := range r.projects {
		if p.UserID == userID && p.DeletedAt == nil {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeRepo) UpdateDocument(ctx context.Context, id, title string, doc *project.Document, contentHash string) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.DeletedAt != nil {
		return nil, projectRepo.ErrProjectNotFound
	}
	p.Document = *doc
	p.ContentHash = contentHash
	if title != "" {
		p.Title = title
	}
	p.Version++
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.DeletedAt != nil {
		return projectRepo.ErrProjectNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

// fakeCache 内存缓存，按 JSON 存取，与 Redis 实现一致
type fakeCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	patterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	data, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *fakeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// fakeProber 按 URL 返回固定时长
type fakeProber struct {
	mu        sync.Mutex
	durations map[string]int64
	calls     int
}

func (p *fakeProber) ProbeDurationMs(ctx context.Context, path string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.durations[path], nil
}

func testConfig() config.TimelineConfig {
	return config.TimelineConfig{
		DefaultFPS:    30,
		BGMFadeMs:     120,
		OverlayFadeMs: 150,
		CacheTTL:      time.Minute,
		SampleWorkers: 4,
		ExportPrefix:  "exports",
	}
}

func i64(v int64) *int64 { return &v }

func f64(v float64) *float64 { return &v }

// testDoc 场景一 4000ms（两段配音加首尾填充），场景二 3000ms 且带场景 BGM
func testDoc() *project.Document {
	return &project.Document{
		SchemaVersion: project.SchemaVersionV3,
		Settings:      project.BuildSettings{Width: 1080, Height: 1920, FPS: 30},
		Scenes: []project.Scene{
			{
				Idx:    1,
				Title:  "开场",
				Timing: project.Timing{HeadPadMs: 200, TailPadMs: 300},
				Assets: project.AssetBundle{
					Voices: []project.Voice{
						{ID: "v1", Role: project.VoiceRoleNarration, URL: "v1.mp3", DurationMs: 1500, Text: "夜深了"},
						{ID: "v2", Role: project.VoiceRoleDialogue, URL: "v2.mp3", DurationMs: 2000, Text: "你来了"},
					},
				},
				Motion:   &project.Motion{ID: "zoom_in"},
				Overlays: []project.Overlay{{ID: "o1", VoiceID: "v2", Text: "你来了"}},
			},
			{
				Idx: 2,
				Assets: project.AssetBundle{
					VideoClip: &project.VideoClip{URL: "clip.mp4", DurationMs: 3000},
					BGM:       &project.SceneBGM{URL: "scene.mp3", StartMs: 1000, EndMs: i64(2000)},
				},
			},
		},
		BGM: &project.GlobalBGM{URL: "global.mp3", Volume: f64(0.3)},
	}
}
