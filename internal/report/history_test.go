package report

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/store"
)

func TestBuildAndRenderHistory(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "textlens.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		stats := model.TextStatistics{Words: 10 * (i + 1), Sentences: 2, ReadingTimeMinutes: 1}
		keywords := []model.KeywordEntry{{Text: "river", Frequency: 2, Weight: 72, Sentence: "River."}}
		if i == 2 {
			keywords = append(keywords, model.KeywordEntry{Text: "delta", Frequency: 1, Weight: 44, Sentence: "Delta."})
		}
		if _, err := st.InsertAnalysis(ctx, base.Add(time.Duration(i)*time.Hour), "stdin", stats, keywords); err != nil {
			t.Fatalf("insert analysis: %v", err)
		}
	}

	h, err := BuildHistory(ctx, st, model.HistoryConfig{Last: 2})
	if err != nil {
		t.Fatalf("build history: %v", err)
	}
	if len(h.Records) != 2 || h.Records[0].Statistics.Words != 20 {
		t.Fatalf("unexpected records: %+v", h.Records)
	}
	if len(h.TopKeywords) != 2 || h.TopKeywords[0].Text != "river" || h.TopKeywords[0].Frequency != 4 {
		t.Fatalf("unexpected top keywords: %+v", h.TopKeywords)
	}

	var buf bytes.Buffer
	if err := RenderHistory(&buf, h); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Analyses: 2\n", "Total words: 50\n", "Avg reading time: 1.0 min\n", "Words trend: ▁█\n", "Top Keywords\n", "delta"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, History{}); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if buf.String() != "No analyses found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
