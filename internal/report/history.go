package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/store"
)

// DefaultHistoryTop is the number of aggregated keywords shown by default.
const DefaultHistoryTop = 10

const historyDateLayout = "2006-01-02 15:04"

// History contains precomputed data for history rendering.
type History struct {
	Records     []model.AnalysisRecord
	TopKeywords []model.KeywordAggregate
}

// BuildHistory loads the analyses selected by cfg and aggregates their keywords.
func BuildHistory(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (History, error) {
	records, err := st.ListAnalyses(ctx, cfg)
	if err != nil {
		return History{}, fmt.Errorf("failed to list analyses: %w", err)
	}
	top := cfg.Top
	if top <= 0 {
		top = DefaultHistoryTop
	}
	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	keywords, err := st.TopKeywords(ctx, ids, top)
	if err != nil {
		return History{}, fmt.Errorf("failed to aggregate keywords: %w", err)
	}
	return History{Records: records, TopKeywords: keywords}, nil
}

// RenderHistory prints a summary, the word count trend, the analyses table
// and the most frequent keywords across the window.
func RenderHistory(w io.Writer, h History) error {
	if len(h.Records) == 0 {
		_, err := fmt.Fprintln(w, "No analyses found.")
		return err
	}

	totalWords, totalReading := 0, 0
	words := make([]float64, len(h.Records))
	for i, rec := range h.Records {
		totalWords += rec.Statistics.Words
		totalReading += rec.Statistics.ReadingTimeMinutes
		words[i] = float64(rec.Statistics.Words)
	}
	count := float64(len(h.Records))

	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analyses: %d\n", len(h.Records)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total words: %d\n", totalWords); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg reading time: %.1f min\n", float64(totalReading)/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words trend: %s\n\n", Sparkline(words)); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "Analyses"); err != nil {
		return err
	}
	tbl := newTable([]string{"Date", "Source", "Words", "Sentences", "Reading"}, 2, 3, 4)
	for _, rec := range h.Records {
		tbl.addRow(
			rec.CreatedAt.Local().Format(historyDateLayout),
			rec.Source,
			strconv.Itoa(rec.Statistics.Words),
			strconv.Itoa(rec.Statistics.Sentences),
			fmt.Sprintf("%d min", rec.Statistics.ReadingTimeMinutes),
		)
	}
	if err := writeLines(w, tbl.lines()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	if len(h.TopKeywords) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Top Keywords"); err != nil {
		return err
	}
	kwTable := newTable([]string{"Keyword", "Freq", "Analyses"}, 1, 2)
	for _, kw := range h.TopKeywords {
		kwTable.addRow(kw.Text, strconv.Itoa(kw.Frequency), strconv.Itoa(kw.Analyses))
	}
	if err := writeLines(w, kwTable.lines()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
