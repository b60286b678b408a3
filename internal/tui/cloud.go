package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/report"
)

// Weights at or above boldWeight render bold, below faintWeight render faint.
const (
	boldWeight  = 43.0
	faintWeight = 20.0
)

type cloudItem struct {
	s     string
	width int
}

func keywordStyle(kw model.KeywordEntry, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(report.HueHex(kw.Hue)))
	switch {
	case kw.Weight >= boldWeight:
		style = style.Bold(true)
	case kw.Weight < faintWeight:
		style = style.Faint(true)
	}
	if selected {
		style = style.Reverse(true).Underline(true)
	}
	return style
}

func buildCloudItems(keywords []model.KeywordEntry, selected int) []cloudItem {
	items := make([]cloudItem, 0, len(keywords))
	for i, kw := range keywords {
		items = append(items, cloudItem{
			s:     keywordStyle(kw, i == selected).Render(kw.Text),
			width: runewidth.StringWidth(kw.Text),
		})
	}
	return items
}

// wrapCloud lays items out left to right, separated by cloudGap, breaking
// lines before an item that would exceed width. An item wider than width
// gets a line of its own.
func wrapCloud(items []cloudItem, width int) []string {
	const cloudGap = "  "
	gapWidth := len(cloudGap)
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, item := range items {
		if lineWidth > 0 && width > 0 && lineWidth+gapWidth+item.width > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(cloudGap)
			lineWidth += gapWidth
		}
		line.WriteString(item.s)
		lineWidth += item.width
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func renderCloud(keywords []model.KeywordEntry, selected, width int) string {
	if len(keywords) == 0 {
		return mutedStyle.Render("No keywords: every token is too short or the text has no sentence.")
	}
	return strings.Join(wrapCloud(buildCloudItems(keywords, selected), width), "\n")
}
