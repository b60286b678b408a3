package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/textlens/internal/textio"
)

func TestReadCSV(t *testing.T) {
	data := "name,score,comment\nAda,12,\"Loves clean proofs\"\nBob,7\n\n"
	table, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if strings.Join(table.Columns, ",") != "name,score,comment" {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0]["comment"] != "Loves clean proofs" {
		t.Fatalf("unexpected cell: %q", table.Rows[0]["comment"])
	}
	if v, ok := table.Rows[1]["comment"]; !ok || v != "" {
		t.Fatalf("expected padded empty cell, got %q %v", v, ok)
	}
	text := table.TextColumns()
	if strings.Join(text, ",") != "name,comment" {
		t.Fatalf("unexpected text columns: %v", text)
	}
}

func TestFromRecordsHeaderNames(t *testing.T) {
	table, err := FromRecords([][]string{{"a", "", "a"}, {"1", "2", "3"}})
	if err != nil {
		t.Fatalf("from records: %v", err)
	}
	if strings.Join(table.Columns, ",") != "a,column_2,a_2" {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	if table.Rows[0]["a_2"] != "3" {
		t.Fatalf("unexpected row: %v", table.Rows[0])
	}

	table, err = FromRecords([][]string{{"a_2", "a", "a"}, {"first", "second", "third"}})
	if err != nil {
		t.Fatalf("from records: %v", err)
	}
	if strings.Join(table.Columns, ",") != "a_2,a,a_3" {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	row := table.Rows[0]
	if row["a_2"] != "first" || row["a"] != "second" || row["a_3"] != "third" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestFromRecordsEmpty(t *testing.T) {
	if _, err := FromRecords(nil); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}
	if _, err := FromRecords([][]string{{" ", ""}}); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable for blank header, got %v", err)
	}
}

func TestColumnUnknown(t *testing.T) {
	table := Table{Columns: []string{"a"}, Rows: []map[string]string{{"a": "x"}}}
	if _, err := table.Column("b"); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
	cells, err := table.Column("a")
	if err != nil || len(cells) != 1 || cells[0] != "x" {
		t.Fatalf("unexpected cells %v (%v)", cells, err)
	}
}

func TestReadFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xls")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ReadFile(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestReadFileMalformedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("a,b\n\"unterminated,1\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatalf("expected error for malformed csv")
	}
}

func TestReadFileXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]string{
		"A1": "title", "B1": "notes",
		"A2": "First", "B2": "Short note here",
		"A3": "Second", "B3": "Another longer note",
	}
	for cell, value := range cells {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("set cell: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	table, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read xlsx: %v", err)
	}
	if strings.Join(table.Columns, ",") != "title,notes" {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	notes, err := table.Column("notes")
	if err != nil {
		t.Fatalf("column: %v", err)
	}
	if len(notes) != 2 || notes[1] != "Another longer note" {
		t.Fatalf("unexpected notes: %v", notes)
	}
}

func TestReadCSVByteOrderMark(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("\xef\xbb\xbfname,comment\nAda,hello there\n"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if table.Columns[0] != "name" {
		t.Fatalf("expected BOM stripped from header, got %q", table.Columns[0])
	}
}

func TestReadFileEncodingLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.csv")
	if err := os.WriteFile(path, []byte("plat\nCr\xe8me br\xfbl\xe9e\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	enc, err := textio.Lookup("latin1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	table, err := ReadFileEncoding(path, enc)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if got := table.Rows[0]["plat"]; got != "Crème brûlée" {
		t.Fatalf("unexpected decoded cell %q", got)
	}
}
