// Package cli implements the cobra-based CLI commands for gcode-ejector.
//
// Each subcommand (run, process, watch, profile) is defined in its own file
// within this package. This file defines the root command that serves as the
// parent for all subcommands and handles global flags, logger construction
// and profile loading.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shinji-kodama/gcode-ejector/internal/model"
	"github.com/shinji-kodama/gcode-ejector/internal/profile"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose lowers the log level to debug, which includes per-file
	// coordinate statistics.
	verbose bool

	// profilePath points to an optional YAML/JSONC printer profile.
	// When empty, the built-in default profile is used.
	profilePath string
)

// State initialised by the root PersistentPreRunE for the running command.
var (
	logger        = zap.NewNop()
	activeProfile = profile.Default()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action; it only provides
// help text and global flags.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gcode-ejector",
		Short: "Append an automatic part-ejection sequence to sliced G-code",
		Long: `gcode-ejector post-processes sliced G-code so the printer pushes the
finished part off the bed once the print is done.

It estimates the part's center from the motion commands after the first
few layers and appends a cool-down, home and push sequence aimed at that
center right after the end-of-print marker.

Known limitation: all objects on the plate are treated as one part, so
multi-object plates may not be cleared completely.`,

		// We handle error output ourselves (text or JSON based on --json flag).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to initialize logger", err)
			}
			logger = l

			p, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			activeProfile = p
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "Printer profile file (.yaml, .yml, .json, .jsonc)")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewProcessCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewProfileCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// newLogger builds the process logger: zap's production (JSON, stderr)
// configuration at warn level, or debug level when verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// loadProfile returns the default profile, or the one at path when set.
func loadProfile(path string) (profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}
	p, err := profile.Load(path)
	if err != nil {
		return profile.Profile{}, err
	}
	logger.Debug("loaded profile", zap.String("path", path))
	return p, nil
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stdout is reserved for successful command output, so errors go to
		// stderr even in JSON mode.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
