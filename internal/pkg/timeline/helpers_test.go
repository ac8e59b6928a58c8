package timeline

import "montage/internal/model/project"

func i64(v int64) *int64 { return &v }

func f64(v float64) *float64 { return &v }

// sceneWithClip 构造一个以视频片段决定时长的场景
func sceneWithClip(idx int, durationMs int64) project.Scene {
	return project.Scene{
		Idx: idx,
		Assets: project.AssetBundle{
			VideoClip: &project.VideoClip{URL: "https://cdn.example.com/clip.mp4", DurationMs: durationMs},
		},
	}
}

func docV3(scenes ...project.Scene) *project.Document {
	return &project.Document{
		SchemaVersion: project.SchemaVersionV3,
		Settings:      project.BuildSettings{Width: 1080, Height: 1920, FPS: 30},
		Scenes:        scenes,
	}
}
