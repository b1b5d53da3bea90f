package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/treehash/internal/config"
)

// NewConfigCmd creates the config subcommand, which prints the effective
// configuration after the file and environment have been applied.
func NewConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "Path to a TOML configuration file")

	return cmd
}
