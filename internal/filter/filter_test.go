package filter

import (
	"reflect"
	"testing"

	"github.com/ginjaninja78/receipt-desk/internal/table"
)

func sampleTable() *table.Table {
	return table.New("fees.csv", []string{"Name", "Amount"}, []table.Record{
		{Line: 2, Fields: []string{"Asha Rao", "500"}},
		{Line: 3, Fields: []string{"", "300"}},
		{Line: 4, Fields: []string{"RAVI Kumar", "250"}},
		{Line: 5, Fields: []string{"Meera  Rao", "100"}},
	})
}

func TestVisible(t *testing.T) {
	tbl := sampleTable()

	tests := []struct {
		name   string
		text   string
		column string
		want   []int
	}{
		{"empty text shows all", "", "Name", []int{0, 1, 2, 3}},
		{"case insensitive", "rao", "Name", []int{0, 3}},
		{"upper needle", "RAVI", "Name", []int{2}},
		{"substring in middle", "a R", "Name", []int{0}},
		{"no whitespace normalisation", "Meera Rao", "Name", []int{}},
		{"double space matches", "Meera  Rao", "Name", []int{3}},
		{"no match", "zzz", "Name", []int{}},
		{"unresolved column is inert", "zzz", "", []int{0, 1, 2, 3}},
		{"other column", "50", "Amount", []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(tbl, tt.text, tt.column).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Visible(%q, %q) = %v, want %v", tt.text, tt.column, got, tt.want)
			}
		})
	}
}

// Every row must be visible exactly when the text is empty or a
// case-insensitive substring of its name.
func TestVisibleMatchesDefinition(t *testing.T) {
	tbl := sampleTable()
	for _, text := range []string{"", "a", "A", "rao", " ", "Kumar", "x", "sha r"} {
		got := Visible(tbl, text, "Name")
		for _, row := range tbl.Rows {
			name, _ := row.Get("Name")
			want := text == "" || containsFold(name.String(), text)
			if got.Has(row.Index) != want {
				t.Errorf("text %q row %d: visible=%v, want %v", text, row.Index, got.Has(row.Index), want)
			}
		}
	}
}

func containsFold(s, sub string) bool {
	ls, lsub := []rune(s), []rune(sub)
	for i := 0; i+len(lsub) <= len(ls); i++ {
		match := true
		for j := range lsub {
			if toLower(ls[i+j]) != toLower(lsub[j]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func TestSetHelpers(t *testing.T) {
	s := NewSet(9, 2, 5)
	if !s.Has(5) || s.Has(3) {
		t.Error("Has returned the wrong membership")
	}
	if got := s.Sorted(); !reflect.DeepEqual(got, []int{2, 5, 9}) {
		t.Errorf("Sorted = %v", got)
	}
	if got := All(nil); len(got) != 0 {
		t.Errorf("All(nil) = %v", got)
	}
}
