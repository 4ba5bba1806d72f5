// Package cli — process.go implements the "gcode-ejector process" command,
// which rewrites the files named on the command line instead of scanning
// the input directory.
package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/gcode-ejector/internal/model"
	"github.com/shinji-kodama/gcode-ejector/internal/processor"
)

type processFlags struct {
	output string
	dryRun bool
}

// NewProcessCommand creates the "process" cobra command.
func NewProcessCommand() *cobra.Command {
	flags := &processFlags{}

	cmd := &cobra.Command{
		Use:   "process <file>...",
		Short: "Process specific print files",
		Long: `Process the given print files and write the rewritten copies to the
output directory. Files are processed in the order given.

Examples:
  gcode-ejector process benchy.gcode
  gcode-ejector process -o pushed/ plate1.gcode plate2.gcode`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "outputs", "Output directory")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Compute and report without writing outputs")

	return cmd
}

func runProcess(cmd *cobra.Command, paths []string, flags *processFlags) error {
	// Named inputs must exist; a typo should not look like a processing failure.
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return model.WrapCLIError(model.ExitInputNotFound,
				fmt.Sprintf("input not found: %s", path), err)
		}
	}

	runID := uuid.NewString()
	proc := processor.New(activeProfile,
		processor.WithLogger(logger.With(zap.String("run_id", runID))),
		processor.WithDryRun(flags.dryRun))

	reports, err := proc.ProcessFiles(paths, flags.output)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to prepare output directory", err)
	}

	summary := model.Summarize(runID, reports)
	if err := printSummary(cmd.OutOrStdout(), summary, activeProfile.Axis); err != nil {
		return err
	}
	return summaryError(summary)
}
