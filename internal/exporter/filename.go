package exporter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ginjaninja78/receipt-desk/internal/table"
)

// FileName derives the receipt file name for a row:
//
//	receipt_<name>_<index>.pdf   when the name column holds a usable value
//	receipt_<index>.pdf          otherwise
//
// The row index is always part of the name, so two rows never share a file.
func FileName(row table.Row, nameColumn string) string {
	if nameColumn != "" {
		if v, ok := row.Get(nameColumn); ok && !v.IsMissing() {
			if name := sanitize(v.String()); name != "" {
				return fmt.Sprintf("receipt_%s_%d.pdf", name, row.Index)
			}
		}
	}
	return fmt.Sprintf("receipt_%d.pdf", row.Index)
}

// sanitize keeps letters, digits, spaces and underscores, trims trailing
// whitespace and joins words with underscores.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimRightFunc(b.String(), unicode.IsSpace)
	return strings.ReplaceAll(cleaned, " ", "_")
}
