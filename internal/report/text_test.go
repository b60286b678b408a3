package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/verte-zerg/textlens/internal/model"
)

func TestRenderStatistics(t *testing.T) {
	var buf bytes.Buffer
	st := model.TextStatistics{Words: 12, Characters: 70, Sentences: 3, ReadingTimeMinutes: 1, SpeakingTimeMinutes: 1}
	if err := RenderStatistics(&buf, st); err != nil {
		t.Fatalf("render statistics: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Statistics\n", "Words                     12\n", "Reading time           1 min\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderKeywords(t *testing.T) {
	keywords := []model.KeywordEntry{
		{Text: "river", Frequency: 3, Weight: 72, Hue: 10},
		{Text: "stone", Frequency: 1, Weight: 34, Hue: 200},
		{Text: "cloud", Frequency: 1, Weight: 34, Hue: 300},
	}
	var buf bytes.Buffer
	if err := RenderKeywords(&buf, keywords, 2, false); err != nil {
		t.Fatalf("render keywords: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	if lines[1] != "# Keyword Freq Weight" {
		t.Fatalf("unexpected header %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "1 river      3   72.0 ") || strings.Count(lines[2], "█") != barWidth {
		t.Fatalf("unexpected first row %q", lines[2])
	}
	if strings.Contains(buf.String(), "cloud") {
		t.Fatalf("expected output truncated to top 2")
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected no color codes")
	}

	buf.Reset()
	if err := RenderKeywords(&buf, keywords, 0, true); err != nil {
		t.Fatalf("render colored keywords: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[38;2;") {
		t.Fatalf("expected truecolor codes in output")
	}
	colored := strings.Split(ansi.Strip(buf.String()), "\n")

	buf.Reset()
	if err := RenderKeywords(&buf, keywords, 0, false); err != nil {
		t.Fatalf("render plain keywords: %v", err)
	}
	plain := strings.Split(buf.String(), "\n")
	if strings.Join(colored, "\n") != strings.Join(plain, "\n") {
		t.Fatalf("colored rows misaligned:\n%s\nvs\n%s", strings.Join(colored, "\n"), strings.Join(plain, "\n"))
	}
	if !strings.Contains(buf.String(), "3 cloud      1   34.0 ") {
		t.Fatalf("unexpected plain rows:\n%s", buf.String())
	}
}

func TestRenderKeywordsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderKeywords(&buf, nil, 0, false); err != nil {
		t.Fatalf("render keywords: %v", err)
	}
	if buf.String() != "No keywords found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderWordCounts(t *testing.T) {
	var buf bytes.Buffer
	counts := []model.WordCount{{Word: "food", Count: 4}, {Word: "service", Count: 2}}
	if err := RenderWordCounts(&buf, "comment", counts); err != nil {
		t.Fatalf("render word counts: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != `Top words in "comment"` {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if lines[1] != "food    4 "+strings.Repeat("█", barWidth) {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if strings.Count(lines[2], "█") != barWidth/2 {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}
