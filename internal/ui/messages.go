package ui

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ginjaninja78/receipt-desk/internal/exporter"
	"github.com/ginjaninja78/receipt-desk/internal/session"
)

// notice is the title and text of an information dialog.
type notice struct {
	Title string
	Text  string
}

// checkBatch reports why a batch cannot start, before the folder dialog is
// shown. It mirrors the checks of exporter.ExportBatch.
func checkBatch(s *session.Session) error {
	if !s.HasData() {
		return exporter.ErrNoData
	}
	selected := s.Selection().Current()
	if len(selected) == 0 {
		return exporter.ErrNothingSelected
	}
	for row := range selected {
		if s.IsVisible(row) {
			return nil
		}
	}
	return exporter.ErrSelectionHidden
}

// exportProblem maps an exporter error to the dialog shown for it. The
// second result is false for errors without a dedicated dialog.
func exportProblem(err error) (notice, bool) {
	switch {
	case errors.Is(err, exporter.ErrNoData):
		return notice{"No Data", "Please upload a spreadsheet first."}, true
	case errors.Is(err, exporter.ErrNothingSelected):
		return notice{"No Selection", "Please select at least one row to print."}, true
	case errors.Is(err, exporter.ErrSelectionHidden):
		return notice{"No Visible Selection",
			"The selected rows are hidden by the search. Clear the search to print them."}, true
	default:
		return notice{}, false
	}
}

// loadWarning is the dialog shown for a warning raised while loading.
func loadWarning(w session.Warning) notice {
	if w.Code == session.WarnNameColumnMissing {
		return notice{"Column Not Found", w.Message}
	}
	return notice{"Warning", w.Message}
}

// batchSummary is the text of the dialog shown after a batch.
func batchSummary(t exporter.Tally) string {
	text := fmt.Sprintf("Successfully saved: %d receipts.", t.Success)
	if t.Failed > 0 {
		text += fmt.Sprintf("\nFailed: %d receipts.", t.Failed)
	}
	if n := len(t.Hidden); n > 0 {
		text += fmt.Sprintf("\nSkipped %d selected rows hidden by the search.", n)
	}
	return text
}

// singleResult is the dialog shown after a row's Print button.
func singleResult(row int, outcome exporter.Outcome, path string) (notice, bool) {
	if !outcome.OK() {
		return notice{"Error", fmt.Sprintf("Failed to generate receipt for row %d.", row)}, false
	}
	return notice{"Success", fmt.Sprintf("Receipt saved as %s.", filepath.Base(path))}, true
}
