package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/ginjaninja78/receipt-desk/internal/exporter"
	"github.com/ginjaninja78/receipt-desk/internal/loader"
	"github.com/ginjaninja78/receipt-desk/internal/session"
	"github.com/ginjaninja78/receipt-desk/internal/table"
	"github.com/rs/zerolog"
)

func loadedSession() *session.Session {
	s := session.New("Name", loader.Options{}, zerolog.Nop())
	s.Replace(table.New("fees.csv", []string{"Name"}, []table.Record{
		{Fields: []string{"Asha"}},
		{Fields: []string{"Ravi"}},
	}))
	return s
}

func TestCheckBatch(t *testing.T) {
	empty := session.New("Name", loader.Options{}, zerolog.Nop())
	if err := checkBatch(empty); !errors.Is(err, exporter.ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}

	s := loadedSession()
	if err := checkBatch(s); !errors.Is(err, exporter.ErrNothingSelected) {
		t.Errorf("Expected ErrNothingSelected, got %v", err)
	}

	s.Toggle(1, true)
	s.SetFilter("asha")
	if err := checkBatch(s); !errors.Is(err, exporter.ErrSelectionHidden) {
		t.Errorf("Expected ErrSelectionHidden, got %v", err)
	}

	s.SetFilter("")
	if err := checkBatch(s); err != nil {
		t.Errorf("Expected batch to be ready, got %v", err)
	}
}

func TestExportProblemTitles(t *testing.T) {
	tests := []struct {
		err   error
		title string
	}{
		{exporter.ErrNoData, "No Data"},
		{exporter.ErrNothingSelected, "No Selection"},
		{exporter.ErrSelectionHidden, "No Visible Selection"},
	}
	for _, tt := range tests {
		n, ok := exportProblem(tt.err)
		if !ok || n.Title != tt.title {
			t.Errorf("exportProblem(%v) = %q, %v; want %q", tt.err, n.Title, ok, tt.title)
		}
	}
	if _, ok := exportProblem(errors.New("disk on fire")); ok {
		t.Error("Expected no dedicated dialog for other errors")
	}
}

func TestLoadWarningTitle(t *testing.T) {
	s := session.New("Student Name", loader.Options{}, zerolog.Nop())
	warnings := s.Replace(table.New("fees.csv", []string{"Name"}, []table.Record{{Fields: []string{"Asha"}}}))
	if len(warnings) != 1 {
		t.Fatalf("Expected one warning, got %v", warnings)
	}

	n := loadWarning(warnings[0])
	if n.Title != "Column Not Found" {
		t.Errorf("Expected title 'Column Not Found', got %q", n.Title)
	}
	if !strings.Contains(n.Text, "'Student Name' was not found") {
		t.Errorf("Unexpected text %q", n.Text)
	}

	if n := loadWarning(session.Warning{Code: "other", Message: "x"}); n.Title != "Warning" {
		t.Errorf("Expected generic title, got %q", n.Title)
	}
}

func TestBatchSummary(t *testing.T) {
	got := batchSummary(exporter.Tally{Success: 3})
	if got != "Successfully saved: 3 receipts." {
		t.Errorf("Unexpected summary %q", got)
	}

	got = batchSummary(exporter.Tally{Success: 2, Failed: 1, Hidden: []int{5}})
	for _, want := range []string{"Successfully saved: 2 receipts.", "Failed: 1 receipts.", "Skipped 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary %q missing %q", got, want)
		}
	}
}

func TestSingleResult(t *testing.T) {
	n, ok := singleResult(3, exporter.OutcomePrinted, "/tmp/out/receipt_Asha_3.pdf")
	if !ok || !strings.Contains(n.Text, "receipt_Asha_3.pdf") {
		t.Errorf("Unexpected success notice %+v", n)
	}
	if _, ok := singleResult(3, exporter.OutcomeRenderFailed, ""); ok {
		t.Error("Expected failure notice")
	}
}
