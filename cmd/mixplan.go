package cmd

import (
	"github.com/spf13/cobra"

	"montage/internal/pkg/ffmpeg"
)

var (
	mixplanFlags documentFlags
	mixplanRun   string
)

var mixplanCmd = &cobra.Command{
	Use:   "mixplan",
	Short: "Print the ffmpeg audio mix plan for a document",
	Long: `Compose a project document and translate its audio tracks into an ffmpeg
filter graph: delayed voice clips, faded scene BGM, and the global BGM with a
per-frame ducking volume expression. Overlay windows are listed with their
enable/alpha expressions. With --run, ffmpeg is executed to render the mixed track.`,
	Example: `  montage mixplan -f episode.yaml
  montage mixplan -f episode.yaml --run mix.m4a`,
	RunE: runMixplan,
}

func init() {
	rootCmd.AddCommand(mixplanCmd)
	mixplanFlags.register(mixplanCmd)

	mixplanCmd.Flags().StringVar(&mixplanRun, "run", "", "execute ffmpeg and write the mixed audio to this file")
}

func runMixplan(cmd *cobra.Command, args []string) error {
	doc, err := mixplanFlags.load()
	if err != nil {
		return err
	}

	res, err := localService().Compose(cmd.Context(), doc, mixplanFlags.fps)
	if err != nil {
		return err
	}
	plan := ffmpeg.BuildMixPlan(res.Timeline)

	if mixplanRun != "" {
		if err := ffmpeg.NewClient(&GetConfig().FFmpeg).Mix(cmd.Context(), plan, mixplanRun); err != nil {
			return err
		}
	}
	return mixplanFlags.write(cmd, plan)
}
