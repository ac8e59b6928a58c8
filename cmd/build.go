package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	projectService "montage/internal/service/project"
)

var (
	buildFlags         documentFlags
	buildSeed          int64
	buildResolveVoices bool
	buildProbe         bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a canonical project document",
	Long: `Resolve "auto" motion with a deterministic seed, keep only the canonical
audio shape for the schema version, and fill scene timing and the summary.
With --probe, missing media durations are measured with ffprobe first.`,
	Example: `  montage build -f draft.yaml -o episode.yaml --seed 42
  montage build -f draft.json -o episode.json --probe`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildFlags.register(buildCmd)

	flags := buildCmd.Flags()
	flags.Int64Var(&buildSeed, "seed", 0, "project seed for auto motion")
	flags.BoolVar(&buildResolveVoices, "resolve-voice-starts", false, "write resolved voice start_ms back")
	flags.BoolVar(&buildProbe, "probe", false, "measure missing media durations with ffprobe")
}

func runBuild(cmd *cobra.Command, args []string) error {
	doc, err := buildFlags.load()
	if err != nil {
		return err
	}

	out, err := localService().BuildDocument(cmd.Context(), &projectService.BuildRequest{
		Document:           doc,
		Seed:               buildSeed,
		ResolveVoiceStarts: buildResolveVoices,
		Probe:              buildProbe,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("output", buildFlags.output).
		Int("scenes", out.Summary.SceneCount).
		Msg("document built")
	return buildFlags.write(cmd, out)
}
