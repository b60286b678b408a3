package analysis

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/textlens/internal/model"
)

const (
	// MaxKeywords bounds the size of a keyword cloud.
	MaxKeywords = 50

	// MinWeight and MaxWeight clamp keyword weights.
	MinWeight = 14.0
	MaxWeight = 72.0

	weightSpan      = 60.0
	minKeywordRunes = 4
	maxHue          = 360.0
)

// keywordPunct is trimmed from both edges of every keyword token.
const keywordPunct = ".,!?;:()"

// HueFunc returns a color hue in [0, 360).
type HueFunc func() float64

// RandomHue draws a hue from the shared math/rand source.
func RandomHue() float64 {
	return rand.Float64() * maxHue
}

// Result bundles the statistics and keyword cloud of one analysis.
type Result struct {
	Statistics model.TextStatistics
	Keywords   []model.KeywordEntry
}

// Analyze computes statistics and keywords for text. It returns false for
// blank input.
func Analyze(text string) (Result, bool) {
	return AnalyzeWithHue(text, RandomHue)
}

// AnalyzeWithHue is Analyze with an explicit hue source.
func AnalyzeWithHue(text string, hue HueFunc) (Result, bool) {
	st, ok := ComputeStatistics(text)
	if !ok {
		return Result{}, false
	}
	return Result{
		Statistics: st,
		Keywords:   ExtractKeywordsWithHue(text, hue),
	}, true
}

// ExtractKeywords builds the keyword cloud for text using random hues.
func ExtractKeywords(text string) []model.KeywordEntry {
	return ExtractKeywordsWithHue(text, RandomHue)
}

// ExtractKeywordsWithHue builds the keyword cloud for text.
//
// Frequencies come from a lowercased, punctuation-trimmed tokenization that
// keeps tokens longer than three runes. Each keyword is then attributed to the
// first sentence of the input text whose lowercased form contains it;
// keywords without such a sentence are dropped. Weights are normalized
// against the highest frequency among the attributed keywords, and the result
// is ordered by descending weight with ties in first-appearance order.
func ExtractKeywordsWithHue(text string, hue HueFunc) []model.KeywordEntry {
	if IsBlank(text) {
		return nil
	}
	if hue == nil {
		hue = RandomHue
	}

	counts := map[string]int{}
	var order []string
	for _, tok := range keywordTokens(text) {
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}
	if len(order) == 0 {
		return nil
	}

	sentences := SplitSentences(text)
	lowered := make([]string, len(sentences))
	for i, s := range sentences {
		lowered[i] = strings.ToLower(s)
	}

	entries := make([]model.KeywordEntry, 0, len(order))
	maxFreq := 0
	for _, word := range order {
		sentence, ok := firstSentenceWith(word, sentences, lowered)
		if !ok {
			continue
		}
		freq := counts[word]
		if freq > maxFreq {
			maxFreq = freq
		}
		entries = append(entries, model.KeywordEntry{
			Text:      word,
			Frequency: freq,
			Sentence:  sentence,
		})
	}
	if len(entries) == 0 {
		return nil
	}

	for i := range entries {
		entries[i].Weight = Weight(entries[i].Frequency, maxFreq)
		entries[i].Hue = clampHue(hue())
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Weight > entries[j].Weight
	})
	if len(entries) > MaxKeywords {
		entries = entries[:MaxKeywords]
	}
	return entries
}

// Weight scales a frequency into the [14, 72] display range.
func Weight(freq, maxFreq int) float64 {
	if maxFreq <= 0 {
		return MinWeight
	}
	w := float64(freq)/float64(maxFreq)*weightSpan + MinWeight
	return math.Max(MinWeight, math.Min(MaxWeight, w))
}

func keywordTokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		tok := strings.Trim(field, keywordPunct)
		if utf8.RuneCountInString(tok) < minKeywordRunes {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func firstSentenceWith(word string, sentences, lowered []string) (string, bool) {
	for i, s := range lowered {
		if strings.Contains(s, word) {
			return sentences[i], true
		}
	}
	return "", false
}

func clampHue(h float64) float64 {
	if math.IsNaN(h) || h < 0 {
		return 0
	}
	if h >= maxHue {
		return math.Mod(h, maxHue)
	}
	return h
}
