package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dendrascience/treehash/treehash"
)

// NewCountCmd creates the count subcommand. It walks the same way the hash
// command does and reports how many regular files would be hashed.
func NewCountCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "count [flags] PATH [PATH ...]",
		Short: "Count the regular files reachable from a set of paths",
		Long: `Count walks each PATH exactly as the hash command does, without reading
any file content, and prints the number of regular files that would be hashed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePaths(cmd, args); err != nil {
				return err
			}
			return runCount(cmd, &flags, args)
		},
	}
	flags.bind(cmd, false)

	return cmd
}

func runCount(cmd *cobra.Command, flags *pipelineFlags, paths []string) error {
	cfg, err := flags.resolve(cmd)
	if err != nil {
		return err
	}
	opts, err := runOptions(cmd, cfg)
	if err != nil {
		return err
	}

	stats, err := treehash.Count(paths, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), stats.Files.Load())
	return nil
}
