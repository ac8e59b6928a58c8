package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	projectService "montage/internal/service/project"
)

var (
	sampleFlags documentFlags
	sampleFrame int64
	sampleFrom  int64
	sampleTo    int64
	sampleStep  int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Sample render parameters at one frame or a frame range",
	Long: `Compose a project document and print the per-frame state: scene, motion
transform, ducked global BGM volume, scene BGM, active voices and visible overlays.`,
	Example: `  montage sample -f episode.yaml --frame 120
  montage sample -f episode.yaml --from 0 --to 300 --step 30`,
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleFlags.register(sampleCmd)

	flags := sampleCmd.Flags()
	flags.Int64Var(&sampleFrame, "frame", -1, "single absolute frame")
	flags.Int64Var(&sampleFrom, "from", 0, "range start frame (inclusive)")
	flags.Int64Var(&sampleTo, "to", -1, "range end frame (inclusive)")
	flags.Int64Var(&sampleStep, "step", 1, "range step")
	sampleCmd.MarkFlagsMutuallyExclusive("frame", "from")
	sampleCmd.MarkFlagsMutuallyExclusive("frame", "to")
}

func runSample(cmd *cobra.Command, args []string) error {
	req := &projectService.SampleRequest{FPS: sampleFlags.fps, From: sampleFrom, To: sampleTo, Step: sampleStep}
	single := cmd.Flags().Changed("frame")
	switch {
	case single:
		req.From, req.To, req.Step = sampleFrame, sampleFrame, 1
	case !cmd.Flags().Changed("to"):
		return errors.New("either --frame or --to is required")
	}

	doc, err := sampleFlags.load()
	if err != nil {
		return err
	}

	frames, err := localService().SampleDocument(cmd.Context(), doc, req)
	if err != nil {
		return err
	}
	if single {
		return sampleFlags.write(cmd, frames[0])
	}
	return sampleFlags.write(cmd, frames)
}
