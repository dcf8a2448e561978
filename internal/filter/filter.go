// Package filter computes which rows of a table are visible for a given
// search text.
package filter

import (
	"sort"
	"strings"

	"github.com/ginjaninja78/receipt-desk/internal/table"
)

// Set is a set of row indices.
type Set map[int]struct{}

// NewSet builds a set from row indices.
func NewSet(indices ...int) Set {
	s := make(Set, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether the row index is in the set.
func (s Set) Has(index int) bool {
	_, ok := s[index]
	return ok
}

// Sorted returns the indices in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// All returns every row index of the table.
func All(tbl *table.Table) Set {
	s := make(Set, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		s[i] = struct{}{}
	}
	return s
}

// Visible returns the rows whose nameColumn value contains text, ignoring
// case. An empty text matches every row. An empty nameColumn means the
// column was not resolved, and filtering is switched off.
func Visible(tbl *table.Table, text, nameColumn string) Set {
	if nameColumn == "" || text == "" {
		return All(tbl)
	}

	s := make(Set)
	if tbl == nil {
		return s
	}
	needle := strings.ToLower(text)
	for _, row := range tbl.Rows {
		v, ok := row.Get(nameColumn)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v.String()), needle) {
			s[row.Index] = struct{}{}
		}
	}
	return s
}
