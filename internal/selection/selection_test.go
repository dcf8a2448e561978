package selection

import (
	"reflect"
	"testing"
)

func TestSelectDeselectIsInverse(t *testing.T) {
	var tr Tracker
	tr.Select(1)
	tr.Select(4)
	before := tr.Current().Sorted()

	for _, row := range []int{0, 7} {
		tr.Select(row)
		tr.Deselect(row)
	}

	if got := tr.Current().Sorted(); !reflect.DeepEqual(got, before) {
		t.Errorf("Selection changed from %v to %v", before, got)
	}
}

func TestSelectIdempotent(t *testing.T) {
	var tr Tracker
	calls := 0
	tr.OnChange = func(int, bool) { calls++ }

	tr.Select(3)
	tr.Select(3)
	tr.Deselect(9)

	if tr.Len() != 1 || !tr.IsSelected(3) {
		t.Errorf("Expected only row 3 selected, got %v", tr.Current().Sorted())
	}
	if calls != 1 {
		t.Errorf("Expected 1 change notification, got %d", calls)
	}
}

func TestSetSignal(t *testing.T) {
	var tr Tracker
	tr.Set(2, true)
	tr.Set(5, true)
	tr.Set(2, false)

	if got := tr.Current().Sorted(); !reflect.DeepEqual(got, []int{5}) {
		t.Errorf("Expected [5], got %v", got)
	}
}

func TestCurrentIsACopy(t *testing.T) {
	var tr Tracker
	tr.Select(1)
	snap := tr.Current()
	tr.Select(2)

	if len(snap) != 1 {
		t.Errorf("Snapshot mutated: %v", snap.Sorted())
	}
}

// A change handler that deselects through the tracker (as a check box
// callback does) must not disturb Clear.
func TestClearWithReentrantHandler(t *testing.T) {
	var tr Tracker
	for _, row := range []int{9, 2, 5} {
		tr.Select(row)
	}

	var order []int
	tr.OnChange = func(row int, selected bool) {
		if selected {
			t.Errorf("Unexpected select of %d during Clear", row)
		}
		order = append(order, row)
		tr.Set(row, selected)
	}

	tr.Clear()

	if tr.Len() != 0 {
		t.Errorf("Expected empty selection, got %v", tr.Current().Sorted())
	}
	if !reflect.DeepEqual(order, []int{2, 5, 9}) {
		t.Errorf("Expected ascending deselect order, got %v", order)
	}
}
