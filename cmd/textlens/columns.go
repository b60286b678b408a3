package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/textlens/internal/analysis"
	"github.com/verte-zerg/textlens/internal/report"
	"github.com/verte-zerg/textlens/internal/tabular"
	"github.com/verte-zerg/textlens/internal/textio"
)

var (
	columnsName     string
	columnsTop      int
	columnsEncoding string
)

func newColumnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns <file>",
		Short: "List text columns of a CSV/XLSX file or count words in one",
		Args:  cobra.ExactArgs(1),
		RunE:  runColumnsCmd,
	}
	cmd.Flags().StringVar(&columnsName, "column", "", "column to count words in")
	cmd.Flags().IntVar(&columnsTop, "top", defaultColumnTop, "number of words to print")
	cmd.Flags().StringVar(&columnsEncoding, "encoding", "auto", "CSV encoding (auto, utf-8, latin1, windows-1252, ...)")
	return cmd
}

func runColumnsCmd(cmd *cobra.Command, args []string) error {
	if columnsTop <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	enc, err := textio.Lookup(columnsEncoding)
	if err != nil {
		return err
	}
	table, err := tabular.ReadFileEncoding(args[0], enc)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}
	out := cmd.OutOrStdout()

	if columnsName == "" {
		textCols := table.TextColumns()
		if len(textCols) == 0 {
			if _, err := fmt.Fprintln(out, "No text columns found."); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		}
		if _, err := fmt.Fprintf(out, "Text columns (%d rows):\n", len(table.Rows)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		for _, col := range textCols {
			if _, err := fmt.Fprintf(out, "  %s\n", col); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}

	cells, err := table.Column(columnsName)
	if err != nil {
		return err
	}
	counts := analysis.ColumnFrequency(cells, columnsTop)
	if err := report.RenderWordCounts(out, columnsName, counts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
