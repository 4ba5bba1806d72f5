// Package cli — watch.go implements the "gcode-ejector watch" command.
//
// The watch command keeps the input directory open as a drop folder:
// every print file that lands in it is processed once it has been quiet
// for the debounce window. Files are processed one at a time. Outputs
// (names ending in the profile suffix) are never picked up again, so the
// input and output directories may be the same.
package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/gcode-ejector/internal/model"
	"github.com/shinji-kodama/gcode-ejector/internal/processor"
	"github.com/shinji-kodama/gcode-ejector/internal/watch"
)

type watchFlags struct {
	input    string
	output   string
	debounce time.Duration
}

// NewWatchCommand creates the "watch" cobra command.
func NewWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Process print files as they appear in the input directory",
		Long: `Watch the input directory and process every new or updated print file.
Stop with Ctrl+C.

Examples:
  gcode-ejector watch
  gcode-ejector watch --input /srv/octoprint/uploads --output /srv/octoprint/uploads`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "inputs", "Input directory to watch")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "outputs", "Output directory")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce, "Quiet period before a changed file is processed")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, flags *watchFlags) error {
	for _, dir := range []string{flags.input, flags.output} {
		if err := processor.EnsureDir(dir); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to prepare directories", err)
		}
	}

	prof := activeProfile
	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	proc := processor.New(prof, processor.WithLogger(log))

	filter := func(name string) bool {
		return strings.HasSuffix(name, prof.Extension) && !processor.IsOutputName(name, prof)
	}
	handle := func(_ context.Context, path string) {
		report := proc.ProcessFile(path, flags.output)
		summary := model.Summarize(runID, []model.FileReport{report})
		if err := printSummary(cmd.OutOrStdout(), summary, prof.Axis); err != nil {
			log.Warn("failed to print report", zap.Error(err))
		}
	}

	w, err := watch.New(flags.input, filter, handle,
		watch.WithDebounce(flags.debounce),
		watch.WithLogger(log))
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to start watcher", err)
	}

	if err := w.Run(ctx); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "watcher stopped unexpectedly", err)
	}
	return nil
}
