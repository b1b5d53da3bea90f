package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dendrascience/treehash/treehash"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// renderSummary writes the run counters as a two-column table.
func renderSummary(w io.Writer, s treehash.Summary) {
	rows := [][]string{
		{"Run", s.RunID},
		{"Files hashed", humanize.Comma(s.Files)},
		{"Bytes hashed", humanize.IBytes(uint64(s.Bytes))},
		{"Skipped entries", humanize.Comma(s.SkippedEntries)},
		{"Skipped files", humanize.Comma(s.SkippedFiles)},
		{"Write errors", humanize.Comma(s.EmitErrors)},
		{"Elapsed", s.Elapsed.Round(time.Millisecond).String()},
	}
	fmt.Fprintln(w, renderTable([]string{"Stat", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
