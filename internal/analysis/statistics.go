// Package analysis computes lexical statistics and keyword clouds for text.
package analysis

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/textlens/internal/model"
)

const (
	readingWordsPerMinute  = 200
	speakingWordsPerMinute = 130
	syllablesPerWord       = 1.5
	paragraphSeparator     = "\n\n"
)

// sentencePattern matches a run of non-terminators closed by one or more of
// '.', '!' or '?'. Text after the last terminator is not a sentence.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// IsBlank reports whether text is empty or whitespace-only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// ComputeStatistics derives structural counts for text. It returns false for
// blank input, in which case keyword extraction should be skipped as well.
func ComputeStatistics(text string) (model.TextStatistics, bool) {
	if IsBlank(text) {
		return model.TextStatistics{}, false
	}
	words := len(strings.Fields(text))
	return model.TextStatistics{
		Words:               words,
		Characters:          utf8.RuneCountInString(text),
		CharactersNoSpace:   countNonSpace(text),
		Syllables:           int(math.Ceil(float64(words) * syllablesPerWord)),
		Sentences:           len(sentencePattern.FindAllStringIndex(text, -1)),
		Paragraphs:          countParagraphs(text),
		ReadingTimeMinutes:  ceilDiv(words, readingWordsPerMinute),
		SpeakingTimeMinutes: ceilDiv(words, speakingWordsPerMinute),
	}, true
}

// SplitSentences returns the trimmed sentences of text in input order.
func SplitSentences(text string) []string {
	matches := sentencePattern.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m))
	}
	return out
}

func countNonSpace(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func countParagraphs(text string) int {
	n := 0
	for _, block := range strings.Split(text, paragraphSeparator) {
		if block != "" {
			n++
		}
	}
	return n
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
