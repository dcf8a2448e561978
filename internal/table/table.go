// =============================================================================
// Receipt Desk - Table Model
// =============================================================================
//
// This package contains the in-memory table shared by the loader, filter,
// session, exporter and UI packages. Keeping it in its own package avoids
// import cycles between them.
//
// IDENTITY:
//   A row's Index is its 0-based position among the kept data rows of the
//   source file. It is stable for the lifetime of one loaded table.
//
// =============================================================================

package table

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CELL VALUES
// =============================================================================

// Kind classifies a cell value.
type Kind int

const (
	// Missing marks an absent or blank cell.
	Missing Kind = iota
	// Text is any non-numeric value.
	Text
	// Number is a value that parses as an integer or float.
	Number
)

// Value is a single cell.
type Value struct {
	Kind Kind

	// Raw is the cell text as read from the file, trimmed.
	Raw string
}

// NewValue classifies raw cell text.
func NewValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{Kind: Missing}
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Value{Kind: Number, Raw: raw}
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return Value{Kind: Number, Raw: raw}
	}
	return Value{Kind: Text, Raw: raw}
}

// IsMissing reports whether the cell has no value.
func (v Value) IsMissing() bool {
	return v.Kind == Missing
}

// String returns the display text. Missing cells display as "".
func (v Value) String() string {
	return v.Raw
}

// =============================================================================
// ROWS AND TABLES
// =============================================================================

// Row is one record of the table.
type Row struct {
	// Index is the row identity within the loaded table.
	Index int

	// Cells maps column name to value. Every column of the table has an
	// entry, possibly Missing.
	Cells map[string]Value

	// SourceLine is the 1-based row number in the source file.
	SourceLine int
}

// Get returns the value of a column and whether the column exists.
func (r Row) Get(column string) (Value, bool) {
	v, ok := r.Cells[column]
	return v, ok
}

// Table is an ordered sequence of rows sharing one column set.
type Table struct {
	// Columns lists the unique column names in source order.
	Columns []string

	// Rows holds the data rows; Rows[i].Index == i.
	Rows []Row

	// Source is the path the table was loaded from.
	Source string
}

// Record is one raw data row as read from a source file.
type Record struct {
	// Line is the 1-based row number in the source file.
	Line int

	// Fields holds the cell texts in column order.
	Fields []string
}

// New builds a table from headers and raw records. Headers are made unique
// and each record is padded or truncated to the header count.
func New(source string, headers []string, records []Record) *Table {
	columns := UniqueColumns(headers)
	t := &Table{
		Columns: columns,
		Rows:    make([]Row, 0, len(records)),
		Source:  source,
	}
	for _, record := range records {
		cells := make(map[string]Value, len(columns))
		for i, col := range columns {
			if i < len(record.Fields) {
				cells[col] = NewValue(record.Fields[i])
			} else {
				cells[col] = Value{Kind: Missing}
			}
		}
		t.Rows = append(t.Rows, Row{Index: len(t.Rows), Cells: cells, SourceLine: record.Line})
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Row returns the row with the given index.
func (t *Table) Row(index int) (Row, bool) {
	if t == nil || index < 0 || index >= len(t.Rows) {
		return Row{}, false
	}
	return t.Rows[index], true
}

// HasColumn reports whether a column with exactly this name exists.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// UniqueColumns trims headers, names blank ones "Unnamed: <i>" and suffixes
// repeats with ".1", ".2", ...
func UniqueColumns(headers []string) []string {
	out := make([]string, len(headers))
	used := make(map[string]bool, len(headers))
	repeats := make(map[string]int)
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			repeats[h]++
			name = fmt.Sprintf("%s.%d", h, repeats[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}
