package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a single-sheet workbook with the given rows.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("Bad coordinates: %v", err)
			}
			if value == nil {
				continue
			}
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				t.Fatalf("Failed to set %s: %v", cell, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "fees.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Name", "Amount", "Class"},
		{"Asha Rao", 500, "5A"},
		{nil, nil, nil},
		{nil, 300, "6B"},
	})

	tbl, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(tbl.Columns) != 3 || tbl.Columns[0] != "Name" {
		t.Errorf("Unexpected columns: %v", tbl.Columns)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows (blank row skipped), got %d", tbl.Len())
	}

	first, _ := tbl.Row(0)
	if v, _ := first.Get("Name"); v.String() != "Asha Rao" {
		t.Errorf("Expected 'Asha Rao', got %q", v.String())
	}
	if v, _ := first.Get("Amount"); v.String() != "500" {
		t.Errorf("Expected '500', got %q", v.String())
	}

	second, _ := tbl.Row(1)
	if second.Index != 1 || second.SourceLine != 4 {
		t.Errorf("Expected index 1 on line 4, got index %d line %d", second.Index, second.SourceLine)
	}
	if v, _ := second.Get("Name"); !v.IsMissing() {
		t.Errorf("Expected missing name, got %q", v.String())
	}
}

// testdata/fees.xls is a BIFF8 workbook. Its first sheet "Fees" holds a
// header, a short row, a blank row and a full row; "Summary" holds one cell.
func TestLoadXLS(t *testing.T) {
	path := filepath.Join("testdata", "fees.xls")

	tbl, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(tbl.Columns) != 3 || tbl.Columns[0] != "Name" || tbl.Columns[2] != "Class" {
		t.Errorf("Unexpected columns: %v", tbl.Columns)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows (blank row skipped), got %d", tbl.Len())
	}

	first, _ := tbl.Row(0)
	if v, _ := first.Get("Name"); v.String() != "Asha Rao" {
		t.Errorf("Expected 'Asha Rao', got %q", v.String())
	}
	if v, _ := first.Get("Amount"); v.String() != "500" {
		t.Errorf("Expected '500', got %q", v.String())
	}
	if v, _ := first.Get("Class"); !v.IsMissing() {
		t.Errorf("Expected missing class for short row, got %q", v.String())
	}

	second, _ := tbl.Row(1)
	if second.Index != 1 || second.SourceLine != 4 {
		t.Errorf("Expected index 1 on line 4, got index %d line %d", second.Index, second.SourceLine)
	}
	if v, _ := second.Get("Class"); v.String() != "5B" {
		t.Errorf("Expected '5B', got %q", v.String())
	}
}

func TestLoadXLSSheet(t *testing.T) {
	path := filepath.Join("testdata", "fees.xls")

	tbl, err := Load(path, Options{Sheet: "Summary"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tbl.Columns) != 1 || tbl.Columns[0] != "Total" {
		t.Errorf("Unexpected columns: %v", tbl.Columns)
	}
	row, ok := tbl.Row(0)
	if !ok {
		t.Fatal("Expected one row")
	}
	if v, _ := row.Get("Total"); v.String() != "800" {
		t.Errorf("Expected '800', got %q", v.String())
	}

	if _, err := Load(path, Options{Sheet: "Absent"}); !errors.Is(err, ErrParse) {
		t.Errorf("Expected ErrParse for missing sheet, got %v", err)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fees.csv")
	data := "\xEF\xBB\xBFName,Amount\nAsha Rao,500\n\n\"Rao, Ravi\",300,extra\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	tbl, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tbl.Columns[0] != "Name" {
		t.Errorf("Expected BOM to be stripped, got %q", tbl.Columns[0])
	}
	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.Len())
	}

	row, _ := tbl.Row(1)
	if v, _ := row.Get("Name"); v.String() != "Rao, Ravi" {
		t.Errorf("Expected quoted name, got %q", v.String())
	}
	if row.SourceLine != 4 {
		t.Errorf("Expected source line 4, got %d", row.SourceLine)
	}
}

func TestLoadEmptyTableIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("Name,Amount\n"), 0o644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	tbl, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Expected no error for empty table, got %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Expected zero rows, got %d", tbl.Len())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.xlsx")
	if err := os.WriteFile(corrupt, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	legacy := filepath.Join(dir, "legacy.xls")
	if err := os.WriteFile(legacy, []byte("binary"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	unknown := filepath.Join(dir, "fees.ods")
	if err := os.WriteFile(unknown, []byte("binary"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
		kind error
	}{
		{"missing file", filepath.Join(dir, "absent.xlsx"), ErrFileNotFound},
		{"directory", dir, ErrFileNotFound},
		{"corrupt workbook", corrupt, ErrParse},
		{"corrupt legacy workbook", legacy, ErrParse},
		{"unsupported extension", unknown, ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Load(tt.path, Options{})
			if tbl != nil {
				t.Error("Expected no table on error")
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Expected %v, got %v", tt.kind, err)
			}
			var loadErr *Error
			if !errors.As(err, &loadErr) || loadErr.Path != tt.path {
				t.Errorf("Expected *Error for %s, got %T", tt.path, err)
			}
		})
	}

	if _, err := Load(unknown, Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadMissingSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"Name"}, {"Asha"}})

	if _, err := Load(path, Options{Sheet: "Fees"}); !errors.Is(err, ErrParse) {
		t.Errorf("Expected ErrParse for missing sheet, got %v", err)
	}
	if _, err := Load(path, Options{Sheet: "Sheet1"}); err != nil {
		t.Errorf("Expected named sheet to load, got %v", err)
	}
}

func TestAccepts(t *testing.T) {
	for path, want := range map[string]bool{
		"fees.xlsx": true,
		"FEES.CSV":  true,
		"fees.xls":  true,
		"fees.ods":  false,
		"fees":      false,
	} {
		if got := Accepts(path); got != want {
			t.Errorf("Accepts(%q) = %v, want %v", path, got, want)
		}
	}
}
