// Package store handles SQLite persistence of analysis history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/textlens/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout has fixed-width fractional seconds so stored timestamps sort
// chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for analysis history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			words INTEGER NOT NULL,
			characters INTEGER NOT NULL,
			characters_no_space INTEGER NOT NULL,
			syllables INTEGER NOT NULL,
			sentences INTEGER NOT NULL,
			paragraphs INTEGER NOT NULL,
			reading_minutes INTEGER NOT NULL,
			speaking_minutes INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS analysis_keywords (
			analysis_id INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			keyword TEXT NOT NULL,
			frequency INTEGER NOT NULL,
			weight REAL NOT NULL,
			sentence TEXT NOT NULL,
			PRIMARY KEY (analysis_id, keyword)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_keywords_keyword ON analysis_keywords(keyword);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAnalysis stores statistics and the ranked keywords of one analysis.
func (s *Store) InsertAnalysis(ctx context.Context, createdAt time.Time, source string, st model.TextStatistics, keywords []model.KeywordEntry) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO analyses (created_at, source, words, characters, characters_no_space, syllables, sentences, paragraphs, reading_minutes, speaking_minutes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UTC().Format(timeLayout),
		source,
		st.Words,
		st.Characters,
		st.CharactersNoSpace,
		st.Syllables,
		st.Sentences,
		st.Paragraphs,
		st.ReadingTimeMinutes,
		st.SpeakingTimeMinutes,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(keywords) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO analysis_keywords (analysis_id, rank, keyword, frequency, weight, sentence)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, kw := range keywords {
			if _, err = stmt.ExecContext(ctx, id, i+1, kw.Text, kw.Frequency, kw.Weight, kw.Sentence); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListAnalyses returns stored analyses filtered by cfg, oldest first.
func (s *Store) ListAnalyses(ctx context.Context, cfg model.HistoryConfig) ([]model.AnalysisRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, created_at, source, words, characters, characters_no_space, syllables, sentences, paragraphs, reading_minutes, speaking_minutes
		FROM analyses
		WHERE %s
		ORDER BY created_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.AnalysisRecord
	for rows.Next() {
		var rec model.AnalysisRecord
		var createdAt string
		st := &rec.Statistics
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Source, &st.Words, &st.Characters, &st.CharactersNoSpace,
			&st.Syllables, &st.Sentences, &st.Paragraphs, &st.ReadingTimeMinutes, &st.SpeakingTimeMinutes); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(records) > cfg.Last {
		records = records[len(records)-cfg.Last:]
	}
	return records, nil
}

// ListKeywords returns the keywords of one analysis in rank order.
func (s *Store) ListKeywords(ctx context.Context, analysisID int64) ([]model.StoredKeyword, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, keyword, frequency, weight, sentence
		FROM analysis_keywords
		WHERE analysis_id = ?
		ORDER BY rank ASC`, analysisID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.StoredKeyword
	for rows.Next() {
		var kw model.StoredKeyword
		if err := rows.Scan(&kw.Rank, &kw.Text, &kw.Frequency, &kw.Weight, &kw.Sentence); err != nil {
			return nil, err
		}
		result = append(result, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// TopKeywords aggregates keyword frequencies across analyses and returns the
// n most frequent.
func (s *Store) TopKeywords(ctx context.Context, analysisIDs []int64, n int) ([]model.KeywordAggregate, error) {
	if len(analysisIDs) == 0 || n <= 0 {
		return nil, nil
	}
	placeholders := make([]string, len(analysisIDs))
	args := make([]any, 0, len(analysisIDs)+1)
	for i, id := range analysisIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, n)
	query := fmt.Sprintf(`SELECT keyword, SUM(frequency) AS total_frequency, COUNT(*) AS analysis_count
		FROM analysis_keywords
		WHERE analysis_id IN (%s)
		GROUP BY keyword
		ORDER BY total_frequency DESC, analysis_count DESC, keyword ASC
		LIMIT ?`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.KeywordAggregate
	for rows.Next() {
		var agg model.KeywordAggregate
		if err := rows.Scan(&agg.Text, &agg.Frequency, &agg.Analyses); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteAll removes every stored analysis.
func (s *Store) DeleteAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range []string{`DELETE FROM analysis_keywords`, `DELETE FROM analyses`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
			return err
		}
	}
	return tx.Commit()
}
