// Package cli — run.go implements the "gcode-ejector run" command.
//
// The run command is the batch mode of the original tool: every file in
// the input directory whose name ends with the profile extension is
// rewritten into the output directory. Both directories are created when
// missing. A failing file is reported and the batch continues.
package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/gcode-ejector/internal/model"
	"github.com/shinji-kodama/gcode-ejector/internal/processor"
)

// runFlags holds the flag values for the run command.
type runFlags struct {
	input  string // --input: directory scanned for print files
	output string // --output: directory receiving rewritten files
	dryRun bool   // --dry-run: report without writing
}

// NewRunCommand creates the "run" cobra command.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every print file in the input directory",
		Long: `Process every print file in the input directory and write the
rewritten copies to the output directory. Existing outputs are overwritten.

Examples:
  gcode-ejector run
  gcode-ejector run --input ~/prints --output ~/prints/pushed
  gcode-ejector run --profile bambu.yaml --dry-run`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "inputs", "Input directory")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "outputs", "Output directory")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Compute and report without writing outputs")

	return cmd
}

// runBatch processes the input directory and prints the summary.
func runBatch(cmd *cobra.Command, flags *runFlags) error {
	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))

	proc := processor.New(activeProfile,
		processor.WithLogger(log),
		processor.WithDryRun(flags.dryRun))

	reports, err := proc.ProcessDir(flags.input, flags.output)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to prepare directories", err)
	}

	summary := model.Summarize(runID, reports)
	if err := printSummary(cmd.OutOrStdout(), summary, activeProfile.Axis); err != nil {
		return err
	}
	return summaryError(summary)
}

// summaryError converts a summary with failures into a CLIError carrying
// ExitPartialFailure.
func summaryError(summary model.BatchSummary) error {
	if summary.Failed == 0 {
		return nil
	}
	return model.NewCLIError(model.ExitPartialFailure,
		fmt.Sprintf("%d of %d file(s) failed", summary.Failed, summary.Total))
}
