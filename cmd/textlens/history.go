package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/textlens/internal/config"
	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/report"
	"github.com/verte-zerg/textlens/internal/store"
)

var (
	historySince string
	historyLast  int
	historyTop   int
	historyClear bool
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved analyses",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N analyses")
	cmd.Flags().IntVar(&historyTop, "top", report.DefaultHistoryTop, "number of aggregated keywords")
	cmd.Flags().BoolVar(&historyClear, "clear", false, "delete every saved analysis")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	cfg := model.HistoryConfig{Since: sinceTime, Last: historyLast, Top: historyTop}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	if historyClear {
		if err := st.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logErrln("History cleared.")
		return nil
	}

	h, err := report.BuildHistory(ctx, st, cfg)
	if err != nil {
		return err
	}
	if err := report.RenderHistory(out, h); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
