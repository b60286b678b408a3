package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/textlens/internal/model"
)

func plainItems(words ...string) []cloudItem {
	items := make([]cloudItem, 0, len(words))
	for _, w := range words {
		items = append(items, cloudItem{s: w, width: len([]rune(w))})
	}
	return items
}

func TestWrapCloudBreaksBeforeOverflow(t *testing.T) {
	lines := wrapCloud(plainItems("alpha", "beta", "gamma"), 12)
	if strings.Join(lines, "|") != "alpha  beta|gamma" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestWrapCloudWideItemOwnLine(t *testing.T) {
	lines := wrapCloud(plainItems("ox", "extraordinary", "yak"), 5)
	if strings.Join(lines, "|") != "ox|extraordinary|yak" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestWrapCloudNoWidth(t *testing.T) {
	lines := wrapCloud(plainItems("one", "two"), 0)
	if len(lines) != 1 || lines[0] != "one  two" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestBuildCloudItemsWidth(t *testing.T) {
	keywords := []model.KeywordEntry{{Text: "日本語", Weight: 72}, {Text: "river", Weight: 14}}
	items := buildCloudItems(keywords, 1)
	if items[0].width != 6 || items[1].width != 5 {
		t.Fatalf("unexpected widths: %d %d", items[0].width, items[1].width)
	}
	if items[1].s != keywordStyle(keywords[1], true).Render("river") {
		t.Fatalf("expected selected style for second keyword")
	}
}
