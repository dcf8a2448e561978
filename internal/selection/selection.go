// Package selection tracks which rows are marked for export.
//
// The selection is independent of filter visibility: a hidden row can stay
// selected.
package selection

import (
	"sort"

	"github.com/ginjaninja78/receipt-desk/internal/filter"
)

// Tracker holds the selected row indices. The zero value is ready to use.
type Tracker struct {
	rows map[int]struct{}

	// OnChange, when set, is called after every change with the affected
	// row and its new state. UI adapters use it to keep check boxes in step.
	OnChange func(row int, selected bool)
}

// Select marks a row. Selecting a selected row is a no-op.
func (t *Tracker) Select(row int) {
	if t.rows == nil {
		t.rows = make(map[int]struct{})
	}
	if _, ok := t.rows[row]; ok {
		return
	}
	t.rows[row] = struct{}{}
	t.notify(row, true)
}

// Deselect unmarks a row. Deselecting an unselected row is a no-op.
func (t *Tracker) Deselect(row int) {
	if _, ok := t.rows[row]; !ok {
		return
	}
	delete(t.rows, row)
	t.notify(row, false)
}

// Set applies a (row, checked) signal.
func (t *Tracker) Set(row int, checked bool) {
	if checked {
		t.Select(row)
	} else {
		t.Deselect(row)
	}
}

// IsSelected reports whether the row is marked.
func (t *Tracker) IsSelected(row int) bool {
	_, ok := t.rows[row]
	return ok
}

// Len returns the number of selected rows.
func (t *Tracker) Len() int {
	return len(t.rows)
}

// Current returns a copy of the selection.
func (t *Tracker) Current() filter.Set {
	s := make(filter.Set, len(t.rows))
	for row := range t.rows {
		s[row] = struct{}{}
	}
	return s
}

// Clear deselects every row. It walks a sorted snapshot, so OnChange
// handlers may call back into the tracker.
func (t *Tracker) Clear() {
	snapshot := make([]int, 0, len(t.rows))
	for row := range t.rows {
		snapshot = append(snapshot, row)
	}
	sort.Ints(snapshot)
	for _, row := range snapshot {
		t.Deselect(row)
	}
}

func (t *Tracker) notify(row int, selected bool) {
	if t.OnChange != nil {
		t.OnChange(row, selected)
	}
}
