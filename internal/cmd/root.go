package cmd

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/dendrascience/treehash/treehash"
	"github.com/dendrascience/treehash/version"
)

// NewRootCmd creates the treehash command. Invoked with paths it hashes
// every regular file below them; the subcommands reuse the same pipeline.
func NewRootCmd() *cobra.Command {
	var flags pipelineFlags

	rootCmd := &cobra.Command{
		Use:   "treehash [flags] PATH [PATH ...]",
		Short: "Hash every file below a set of paths concurrently",
		Long: `treehash walks each PATH, hashes every regular file it reaches with a pool
of workers and prints one "<path> <digest>" line per file.

Files that cannot be read and entries that cannot be inspected are skipped.
The exit status is 0 whenever at least one PATH is given.

A PATH spelled exactly like a subcommand (count, dupes, config) runs that
subcommand instead; write it as ./count to hash it.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePaths(cmd, args); err != nil {
				return err
			}
			return runHash(cmd, &flags, args)
		},
	}
	flags.bind(rootCmd, true)

	groupAnalysis := "analysis"
	groupSettings := "settings"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupAnalysis,
		Title: "Tree Analysis",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupSettings,
		Title: "Settings",
	})

	countCmd := NewCountCmd()
	dupesCmd := NewDupesCmd()
	configCmd := NewConfigCmd()

	countCmd.GroupID = groupAnalysis
	dupesCmd.GroupID = groupAnalysis
	configCmd.GroupID = groupSettings

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(dupesCmd)
	rootCmd.AddCommand(configCmd)

	return rootCmd
}

func runHash(cmd *cobra.Command, flags *pipelineFlags, paths []string) error {
	cfg, err := flags.resolve(cmd)
	if err != nil {
		return err
	}
	opts, err := runOptions(cmd, cfg)
	if err != nil {
		return err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	opts.Sink = treehash.NewLineSink(out, format, cfg.Digest.Algorithm)

	stats, err := treehash.Run(paths, opts)
	if ferr := out.Flush(); err == nil && ferr != nil {
		opts.Logger.Error("failed to flush results", "error", ferr)
	}
	if err != nil {
		return err
	}

	if cfg.Output.Stats {
		renderSummary(cmd.ErrOrStderr(), stats.Summary())
	}
	return nil
}
