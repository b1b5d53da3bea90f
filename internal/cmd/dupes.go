package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dendrascience/treehash/treehash"
	"github.com/dendrascience/treehash/util"
)

// NewDupesCmd creates the dupes subcommand, which hashes the tree and
// reports every group of files with identical content.
func NewDupesCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "dupes [flags] PATH [PATH ...]",
		Short: "List files with identical content",
		Long: `Dupes hashes every regular file below each PATH and prints the groups of
files that share a digest, followed by how much space keeping one copy of
each would reclaim. With --format json the groups and every hashed file are
written as one JSON document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePaths(cmd, args); err != nil {
				return err
			}
			return runDupes(cmd, &flags, args)
		},
	}
	flags.bind(cmd, true)

	return cmd
}

func runDupes(cmd *cobra.Command, flags *pipelineFlags, paths []string) error {
	cfg, err := flags.resolve(cmd)
	if err != nil {
		return err
	}
	opts, err := runOptions(cmd, cfg)
	if err != nil {
		return err
	}

	sink := treehash.NewCollectSink()
	opts.Sink = sink

	stats, err := treehash.Run(paths, opts)
	if err != nil {
		return err
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}
	if format == treehash.FormatJSON {
		if err := writeDupesJSON(cmd.OutOrStdout(), sink.Table()); err != nil {
			return err
		}
	} else {
		renderDupes(cmd.OutOrStdout(), sink.Table())
	}
	if cfg.Output.Stats {
		renderSummary(cmd.ErrOrStderr(), stats.Summary())
	}
	return nil
}

func renderDupes(w io.Writer, table *util.DigestTable) {
	groups := table.Duplicates()
	if len(groups) == 0 {
		fmt.Fprintf(w, "No duplicates among %d files\n", table.GetTotalFileCount())
		return
	}

	var rows [][]string
	for i, group := range groups {
		for _, entry := range group {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				entry.Digest,
				humanize.IBytes(uint64(entry.Size)),
				entry.Name,
			})
		}
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Group", "Digest", "Size", "Path"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
	))
	fmt.Fprintf(w, "%d groups, %s files, %s unique contents, %s of %s reclaimable\n",
		len(groups),
		humanize.Comma(int64(table.GetTotalFileCount())),
		humanize.Comma(int64(table.GetUniqueContentCount())),
		humanize.IBytes(uint64(table.GetRedundantSize())),
		humanize.IBytes(uint64(table.GetTotalSize())))
}

type dupesReport struct {
	Groups [][]util.DigestEntry `json:"groups"`
	Table  *util.DigestTable    `json:"table"`
}

// writeDupesJSON emits the duplicate groups and the full sorted table as a
// single JSON document.
func writeDupesJSON(w io.Writer, table *util.DigestTable) error {
	groups := table.Duplicates()
	if groups == nil {
		groups = [][]util.DigestEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dupesReport{Groups: groups, Table: table})
}
