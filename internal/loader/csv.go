package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/receipt-desk/internal/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV reads a comma-separated file.
//
// The reader is lenient: rows may have a variable number of fields and
// stray quotes are tolerated. A leading UTF-8 byte order mark (as written
// by spreadsheet exports) is dropped.
func readCSV(path string) ([]string, []table.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	if head, err := reader.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := reader.Discard(len(utf8BOM)); err != nil {
			return nil, nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	var (
		rows  [][]string
		lines []int
	)
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := csvReader.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}

	headers, records := splitRows(rows, lines)
	return headers, records, nil
}
