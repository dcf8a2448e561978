// =============================================================================
// Receipt Desk - Session
// =============================================================================
//
// A Session holds everything tied to one loaded file: the table, the
// resolved name column, the selection and the current filter text. Loading
// a new file replaces all of it at once; a failed load leaves the previous
// session untouched.
//
// UI adapters talk to the session through plain method calls:
//   - Toggle(rowIndex, checked)  for check box changes
//   - SetFilter(text)            for search box changes
//
// =============================================================================

package session

import (
	"fmt"

	"github.com/ginjaninja78/receipt-desk/internal/filter"
	"github.com/ginjaninja78/receipt-desk/internal/loader"
	"github.com/ginjaninja78/receipt-desk/internal/selection"
	"github.com/ginjaninja78/receipt-desk/internal/table"
	"github.com/rs/zerolog"
)

// Warning is a non-fatal condition found while loading.
type Warning struct {
	Code    string
	Message string
}

// WarnNameColumnMissing is raised when the designated name column is not a
// header of the loaded table.
const WarnNameColumnMissing = "name_column_missing"

// Session is the state of one loaded file.
type Session struct {
	expectedName string
	loadOpts     loader.Options
	logger       zerolog.Logger

	tbl        *table.Table
	nameColumn string
	filterText string
	visible    filter.Set
	selected   *selection.Tracker
}

// New creates an empty session that will resolve expectedNameColumn on
// every load.
func New(expectedNameColumn string, opts loader.Options, logger zerolog.Logger) *Session {
	s := &Session{
		expectedName: expectedNameColumn,
		loadOpts:     opts,
		logger:       logger.With().Str("component", "session").Logger(),
	}
	s.reset(nil)
	return s
}

// Load reads a file and, on success, replaces the session state.
//
// RETURNS:
//   - Warnings for degraded behaviour (missing name column).
//   - A loader error; the previous state is kept in that case.
func (s *Session) Load(path string) ([]Warning, error) {
	tbl, err := loader.Load(path, s.loadOpts)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("load failed")
		return nil, err
	}

	warnings := s.Replace(tbl)
	s.logger.Info().
		Str("path", path).
		Int("rows", tbl.Len()).
		Int("columns", len(tbl.Columns)).
		Str("name_column", s.nameColumn).
		Msg("table loaded")
	return warnings, nil
}

// Replace installs an already loaded table, discarding all derived state.
func (s *Session) Replace(tbl *table.Table) []Warning {
	s.reset(tbl)

	var warnings []Warning
	if tbl.HasColumn(s.expectedName) {
		s.nameColumn = s.expectedName
	} else {
		warnings = append(warnings, Warning{
			Code: WarnNameColumnMissing,
			Message: fmt.Sprintf("The column '%s' was not found. "+
				"Search by name and PDF naming may not work as expected.", s.expectedName),
		})
		s.logger.Warn().Str("expected", s.expectedName).Msg("name column not found")
	}
	return warnings
}

func (s *Session) reset(tbl *table.Table) {
	s.tbl = tbl
	s.nameColumn = ""
	s.filterText = ""
	s.visible = filter.All(tbl)
	s.selected = &selection.Tracker{}
}

// Table returns the loaded table, or nil before the first load.
func (s *Session) Table() *table.Table {
	return s.tbl
}

// HasData reports whether a table with at least one row is loaded.
func (s *Session) HasData() bool {
	return s.tbl.Len() > 0
}

// NameColumn returns the resolved name column, or "" when unresolved.
func (s *Session) NameColumn() string {
	return s.nameColumn
}

// SetFilter recomputes visibility for a new search text.
func (s *Session) SetFilter(text string) {
	s.filterText = text
	s.visible = filter.Visible(s.tbl, text, s.nameColumn)
}

// Filter returns the current search text.
func (s *Session) Filter() string {
	return s.filterText
}

// Visible returns the currently visible rows.
func (s *Session) Visible() filter.Set {
	return s.visible
}

// IsVisible reports whether a row passes the current filter.
func (s *Session) IsVisible(row int) bool {
	return s.visible.Has(row)
}

// Toggle applies a check box signal for a row. Out-of-range rows are
// ignored.
func (s *Session) Toggle(row int, checked bool) {
	if _, ok := s.tbl.Row(row); !ok {
		return
	}
	s.selected.Set(row, checked)
}

// Selection returns the selection tracker of the current table.
func (s *Session) Selection() *selection.Tracker {
	return s.selected
}
