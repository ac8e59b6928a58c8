package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var composeFlags documentFlags

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a project document into a timeline",
	Long: `Validate a project document and print its frame-accurate timeline
(scene layout, voice clips, scene BGM intervals, global BGM window).`,
	Example: `  montage compose -f episode.yaml
  montage compose -f episode.json --fps 24 -o timeline.json`,
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)
	composeFlags.register(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	doc, err := composeFlags.load()
	if err != nil {
		return err
	}

	res, err := localService().Compose(cmd.Context(), doc, composeFlags.fps)
	if err != nil {
		return err
	}

	log.Info().
		Str("content_hash", res.ContentHash).
		Float64("fps", res.Timeline.FPS).
		Int64("total_frames", res.Timeline.TotalDurationFrames).
		Int64("total_ms", res.Timeline.TotalDurationMs).
		Msg("timeline composed")
	return composeFlags.write(cmd, res.Timeline)
}
