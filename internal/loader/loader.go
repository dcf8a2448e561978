// =============================================================================
// Receipt Desk - Tabular Loader
// =============================================================================
//
// This module reads a spreadsheet file into a table.Table. Three formats
// are accepted:
//   - .xlsx : read with excelize (see xlsx.go)
//   - .xls  : legacy BIFF8 workbooks, read with extrame/xls (see xls.go)
//   - .csv  : read with encoding/csv (see csv.go)
//
// The first non-empty row is the header row. Fully empty data rows are
// skipped and do not consume a row index.
//
// ERRORS:
//   - ErrFileNotFound : the path does not resolve to an existing file
//   - ErrParse        : any other read or parse failure, wrapping the cause
//   An empty table (header only, or no rows at all) is not an error.
//
// =============================================================================

package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/receipt-desk/internal/table"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrParse indicates the input file exists but could not be read as a table.
var ErrParse = errors.New("could not load data from spreadsheet")

// ErrUnsupportedFormat is wrapped by ErrParse for unknown extensions.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extensions lists the accepted file extensions.
var Extensions = []string{".xlsx", ".xls", ".csv"}

// Error is a structural load failure.
type Error struct {
	Path string
	Kind error // ErrFileNotFound or ErrParse
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFound(path string) *Error {
	return &Error{Path: path, Kind: ErrFileNotFound}
}

func parseError(path string, err error) *Error {
	return &Error{Path: path, Kind: ErrParse, Err: err}
}

// =============================================================================
// LOADER
// =============================================================================

// Options control how a file is read.
type Options struct {
	// Sheet names the worksheet of an .xlsx or .xls file. Empty means the
	// first one.
	Sheet string
}

// Load reads the file at path into a table.
//
// PARAMETERS:
//   - path: The spreadsheet file.
//   - opts: Format-specific options.
//
// RETURNS:
//   - The loaded table (never partially filled on error).
//   - A *Error matching ErrFileNotFound or ErrParse.
func Load(path string, opts Options) (*table.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound(path)
		}
		return nil, parseError(path, err)
	}
	if info.IsDir() {
		return nil, notFound(path)
	}

	var (
		headers []string
		records []table.Record
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		headers, records, err = readXLSX(path, opts.Sheet)
	case ".xls":
		headers, records, err = readXLS(path, opts.Sheet)
	case ".csv":
		headers, records, err = readCSV(path)
	default:
		err = fmt.Errorf("%w %q (accepted: %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, parseError(path, err)
	}

	return table.New(path, headers, records), nil
}

// Accepts reports whether the path has one of the accepted extensions.
func Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// splitRows finds the header row and converts the rest into records.
// lines holds the 1-based source line of each row; when nil, row i is
// taken to be on line i+1.
func splitRows(rows [][]string, lines []int) ([]string, []table.Record) {
	headerAt := -1
	for i, row := range rows {
		if !isRowEmpty(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, nil
	}

	headers := rows[headerAt]
	records := make([]table.Record, 0, len(rows)-headerAt-1)
	for i := headerAt + 1; i < len(rows); i++ {
		if isRowEmpty(rows[i]) {
			continue
		}
		line := i + 1
		if lines != nil {
			line = lines[i]
		}
		records = append(records, table.Record{Line: line, Fields: rows[i]})
	}
	return headers, records
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
