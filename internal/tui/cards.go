package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/textlens/internal/model"
)

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func statisticCards(st model.TextStatistics) []string {
	return []string{
		metricCard("Words", fmt.Sprintf("%d", st.Words)),
		metricCard("Characters", fmt.Sprintf("%d", st.Characters)),
		metricCard("No spaces", fmt.Sprintf("%d", st.CharactersNoSpace)),
		metricCard("Syllables", fmt.Sprintf("%d", st.Syllables)),
		metricCard("Sentences", fmt.Sprintf("%d", st.Sentences)),
		metricCard("Paragraphs", fmt.Sprintf("%d", st.Paragraphs)),
		metricCard("Reading", fmt.Sprintf("%d min", st.ReadingTimeMinutes)),
		metricCard("Speaking", fmt.Sprintf("%d min", st.SpeakingTimeMinutes)),
	}
}

// layoutCards joins cards horizontally, starting a new row when the next card
// would exceed width.
func layoutCards(cards []string, width int) string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, card := range cards {
		w := lipgloss.Width(card)
		if len(row) > 0 && width > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
			rowWidth = 0
		}
		row = append(row, card)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
