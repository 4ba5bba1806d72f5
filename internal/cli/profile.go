// Package cli — profile.go implements "gcode-ejector profile show" and
// "gcode-ejector profile init".
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/gcode-ejector/internal/model"
	"github.com/shinji-kodama/gcode-ejector/internal/profile"
)

// NewProfileCommand creates the "profile" parent command.
func NewProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect or create printer profiles",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newProfileShowCommand())
	cmd.AddCommand(newProfileInitCommand())
	return cmd
}

func newProfileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective profile (default or --profile)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if IsJSONOutput() {
				data, err = json.MarshalIndent(activeProfile, "", "  ")
				data = append(data, '\n')
			} else {
				data, err = profile.Marshal(activeProfile)
			}
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to render profile", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newProfileInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default profile as YAML for editing",
		Long: `Write the built-in default profile to a YAML file (profile.yaml by
default). Edit it for your printer and pass it with --profile.

Examples:
  gcode-ejector profile init
  gcode-ejector profile init printers/voron.yaml --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "profile.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return model.NewCLIError(model.ExitGeneralError,
					fmt.Sprintf("%s already exists (use --force to overwrite)", path))
			}

			data, err := profile.Marshal(profile.Default())
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to render profile", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to write profile", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default profile to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
