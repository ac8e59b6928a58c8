package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"montage/internal/pkg/subtitle"
)

var (
	subtitlesFlags documentFlags
	subtitlesTitle string
)

var subtitlesCmd = &cobra.Command{
	Use:   "subtitles",
	Short: "Export overlay text as an ASS subtitle file",
	Long: `Compose a project document and write every overlay-rendered text overlay as an
ASS dialogue event at its absolute document time. Baked and hidden scenes are skipped.`,
	Example: `  montage subtitles -f episode.yaml -o episode.ass`,
	RunE:    runSubtitles,
}

func init() {
	rootCmd.AddCommand(subtitlesCmd)
	subtitlesFlags.register(subtitlesCmd)

	subtitlesCmd.Flags().StringVar(&subtitlesTitle, "title", "", "script title written to [Script Info]")
}

func runSubtitles(cmd *cobra.Command, args []string) error {
	doc, err := subtitlesFlags.load()
	if err != nil {
		return err
	}
	res, err := localService().Compose(cmd.Context(), doc, subtitlesFlags.fps)
	if err != nil {
		return err
	}
	content := subtitle.NewASSGenerator().Generate(res.Timeline, subtitlesTitle)

	var w io.Writer = cmd.OutOrStdout()
	if subtitlesFlags.output != "" {
		f, err := os.Create(subtitlesFlags.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", subtitlesFlags.output, err)
		}
		defer f.Close()
		w = f
	}
	_, err = io.WriteString(w, content)
	return err
}
