package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"montage/internal/model/project"
	"montage/internal/pkg/docio"
	"montage/internal/pkg/ffmpeg"
	projectService "montage/internal/service/project"
)

// documentFlags 子命令共用的输入输出参数
type documentFlags struct {
	file   string
	output string
	fps    float64
}

func (f *documentFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "f", "", "project document (.json/.yaml, - for stdin)")
	flags.StringVarP(&f.output, "output", "o", "", "output file (default: stdout; format by extension)")
	flags.Float64Var(&f.fps, "fps", 0, "target frame rate (default: document settings)")
	_ = cmd.MarkFlagRequired("file")
}

func (f *documentFlags) load() (*project.Document, error) {
	doc, err := docio.ReadFile(f.file)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", f.file, err)
	}
	return doc, nil
}

func (f *documentFlags) write(cmd *cobra.Command, v any) error {
	return docio.WriteFile(f.output, cmd.OutOrStdout(), v)
}

// localService 命令行使用的项目服务：不连接 MongoDB/Redis/存储
func localService() projectService.Service {
	c := GetConfig()
	return projectService.NewService(projectService.Deps{
		Config: c.Timeline,
		Prober: ffmpeg.NewClient(&c.FFmpeg),
	})
}
