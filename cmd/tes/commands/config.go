package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tesgen/tes/pkg/config"
)

const redacted = "********"

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create tes configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.ProjectFileName + " to the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path, _ := cmd.Flags().GetString("path")

			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
	initCmd.Flags().String("path", config.ProjectFileName, "Destination file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *a.cfg
			if cfg.Generation.APIKey != "" {
				cfg.Generation.APIKey = redacted
			}

			data, err := toml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, "format config")
			}
			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# from %s\n", used)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
