package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/textlens/internal/analysis"
	"github.com/verte-zerg/textlens/internal/model"
)

// RenderStatistics prints the structural counts of a text.
func RenderStatistics(w io.Writer, st model.TextStatistics) error {
	if _, err := fmt.Fprintln(w, "Statistics"); err != nil {
		return err
	}
	tbl := newTable(nil, 1)
	tbl.addRow("Words", strconv.Itoa(st.Words))
	tbl.addRow("Characters", strconv.Itoa(st.Characters))
	tbl.addRow("Characters (no spaces)", strconv.Itoa(st.CharactersNoSpace))
	tbl.addRow("Syllables", strconv.Itoa(st.Syllables))
	tbl.addRow("Sentences", strconv.Itoa(st.Sentences))
	tbl.addRow("Paragraphs", strconv.Itoa(st.Paragraphs))
	tbl.addRow("Reading time", fmt.Sprintf("%d min", st.ReadingTimeMinutes))
	tbl.addRow("Speaking time", fmt.Sprintf("%d min", st.SpeakingTimeMinutes))
	if err := writeLines(w, tbl.lines()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderKeywords prints the ranked keyword cloud with weight bars. top <= 0
// prints every keyword. Keywords and bars take the keyword hue when useColor
// is set.
func RenderKeywords(w io.Writer, keywords []model.KeywordEntry, top int, useColor bool) error {
	if len(keywords) == 0 {
		_, err := fmt.Fprintln(w, "No keywords found.")
		return err
	}
	if top > 0 && len(keywords) > top {
		keywords = keywords[:top]
	}
	if _, err := fmt.Fprintln(w, "Keywords"); err != nil {
		return err
	}

	tbl := newTable([]string{"#", "Keyword", "Freq", "Weight"}, 0, 2, 3)
	for i, kw := range keywords {
		text := kw.Text
		b := bar(kw.Weight, analysis.MaxWeight, barWidth)
		if useColor {
			text = colorize(text, kw.Hue)
			b = colorize(b, kw.Hue)
		}
		tbl.addRow(strconv.Itoa(i+1), text, strconv.Itoa(kw.Frequency), fmt.Sprintf("%.1f", kw.Weight), b)
	}
	if err := writeLines(w, tbl.lines()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderWordCounts prints per-column word frequencies as horizontal bars.
func RenderWordCounts(w io.Writer, column string, counts []model.WordCount) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintf(w, "No words found in column %q.\n", column)
		return err
	}
	if _, err := fmt.Fprintf(w, "Top words in %q\n", column); err != nil {
		return err
	}
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c.Count)
	}
	tbl := newTable(nil, 1)
	for _, c := range counts {
		tbl.addRow(c.Word, strconv.Itoa(c.Count), bar(float64(c.Count), float64(maxCount), barWidth))
	}
	if err := writeLines(w, tbl.lines()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if err := writeLine(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, line string) error {
	_, err := fmt.Fprintln(w, line)
	return err
}
