// Package tabular imports spreadsheet files as rows keyed by column name.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"

	"github.com/verte-zerg/textlens/internal/textio"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyTable is returned when a file has no header row.
	ErrEmptyTable = errors.New("table has no header row")
	// ErrUnknownColumn is returned when a column name is not in the header.
	ErrUnknownColumn = errors.New("unknown column")
)

// Table is an imported sheet: ordered column names plus one map per data row.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// ReadFile imports a .csv or .xlsx file. For workbooks the first sheet is used.
func ReadFile(path string) (Table, error) {
	return ReadFileEncoding(path, nil)
}

// ReadFileEncoding is ReadFile with an explicit text encoding for CSV input.
// Workbooks are always UTF-8 and ignore enc.
func ReadFileEncoding(path string, enc encoding.Encoding) (Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	if ext == ".csv" {
		return ReadCSV(textio.NewReader(file, enc))
	}
	return ReadXLSX(file)
}

// ReadCSV imports comma-separated UTF-8 data. A leading byte order mark is
// dropped and rows may have differing lengths.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(textio.NewReader(r, nil))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", err)
	}
	return FromRecords(records)
}

// ReadXLSX imports the first sheet of an Excel workbook.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of workbook temp files.
			_ = cerr
		}
	}()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrEmptyTable
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return FromRecords(rows)
}

// FromRecords builds a Table from raw records whose first entry is the header.
// Blank header cells are named column_<n>, duplicates get a numeric suffix and
// short rows are padded with empty cells. Fully blank rows are skipped.
func FromRecords(records [][]string) (Table, error) {
	if len(records) == 0 || isBlankRecord(records[0]) {
		return Table{}, ErrEmptyTable
	}
	columns := headerNames(records[0])
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return Table{Columns: columns, Rows: rows}, nil
}

// Column returns the cells of the named column in row order.
func (t Table) Column(name string) ([]string, error) {
	if !t.hasColumn(name) {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownColumn, name, strings.Join(t.Columns, ", "))
	}
	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row[name]
	}
	return cells, nil
}

// TextColumns returns the columns whose first-row value is non-empty text.
func (t Table) TextColumns() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	first := t.Rows[0]
	var out []string
	for _, col := range t.Columns {
		v := strings.TrimSpace(first[col])
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			continue
		}
		out = append(out, col)
	}
	return out
}

func (t Table) hasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

func headerNames(header []string) []string {
	raw := make(map[string]bool, len(header))
	for _, h := range header {
		raw[strings.TrimSpace(h)] = true
	}
	seen := make(map[string]bool, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if seen[name] {
			// Suffixes skip every name the header already uses.
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if !seen[candidate] && !raw[candidate] {
					name = candidate
					break
				}
			}
		}
		seen[name] = true
		out[i] = name
	}
	return out
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
