// Package model defines shared data structures.
package model

import "time"

// TextStatistics holds structural counts derived from a text.
type TextStatistics struct {
	Words               int
	Characters          int
	CharactersNoSpace   int
	Syllables           int
	Sentences           int
	Paragraphs          int
	ReadingTimeMinutes  int
	SpeakingTimeMinutes int
}

// KeywordEntry is a weighted keyword paired with a representative sentence.
type KeywordEntry struct {
	Text      string
	Frequency int
	Weight    float64
	// Hue is a cosmetic color hue in [0, 360). It is not stable across runs.
	Hue      float64
	Sentence string
}

// AnalyzeConfig defines settings for a single analysis run.
type AnalyzeConfig struct {
	Top        int
	Save       bool
	NoKeywords bool
}

// VoiceConfig defines spoken-audio settings.
type VoiceConfig struct {
	Enabled bool
	Lang    string
	Rate    float64
	Pitch   float64
	Command string
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Since *time.Time
	Last  int
	Top   int
}

// AnalysisRecord is a stored analysis.
type AnalysisRecord struct {
	ID         int64
	CreatedAt  time.Time
	Source     string
	Statistics TextStatistics
}

// StoredKeyword is a keyword saved with an analysis.
type StoredKeyword struct {
	Rank      int
	Text      string
	Frequency int
	Weight    float64
	Sentence  string
}

// KeywordAggregate sums keyword frequencies across analyses.
type KeywordAggregate struct {
	Text      string
	Frequency int
	Analyses  int
}

// WordCount pairs a word with its number of occurrences.
type WordCount struct {
	Word  string
	Count int
}
