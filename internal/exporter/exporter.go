// =============================================================================
// Receipt Desk - Batch Exporter
// =============================================================================
//
// This module turns selected table rows into receipt files. It decides which
// rows to process, names the files, calls the renderer and hands every
// rendered file to the print dispatcher.
//
// BATCH PIPELINE:
//   1. Reject empty tables and empty selections
//   2. Intersect the selection with the visible rows
//   3. For each row in ascending index order:
//      a. Derive the file name
//      b. Render the receipt
//      c. Dispatch the file (print, or open as a fallback)
//   4. Optionally write an export summary log
//
// A failed row is counted and the batch moves on. Dispatch problems never
// change the tally: a rendered receipt is a success even if it was neither
// printed nor opened.
//
// =============================================================================

package exporter

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/receipt-desk/internal/filter"
	"github.com/ginjaninja78/receipt-desk/internal/printer"
	"github.com/ginjaninja78/receipt-desk/internal/table"
	"github.com/ginjaninja78/receipt-desk/pkg/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoData is returned when no table, or an empty one, is loaded.
	ErrNoData = errors.New("no data loaded")

	// ErrNothingSelected is returned when no row is selected.
	ErrNothingSelected = errors.New("no rows selected")

	// ErrSelectionHidden is returned when rows are selected but the search
	// filter hides all of them.
	ErrSelectionHidden = errors.New("all selected rows are hidden by the filter")

	// ErrRowOutOfRange is returned by ExportOne for an unknown row index.
	ErrRowOutOfRange = errors.New("row index out of range")
)

// =============================================================================
// OUTCOMES
// =============================================================================

// Outcome is the result of processing one row.
type Outcome int

const (
	// OutcomeRenderFailed means no receipt was written.
	OutcomeRenderFailed Outcome = iota
	// OutcomeRendered means the receipt was written and printing is off.
	OutcomeRendered
	// OutcomePrinted means the receipt was written and sent to the printer.
	OutcomePrinted
	// OutcomeOpened means printing failed and the receipt was opened instead.
	OutcomeOpened
	// OutcomeDispatchFailed means the receipt was written but could be
	// neither printed nor opened.
	OutcomeDispatchFailed
)

// OK reports whether the receipt file was written.
func (o Outcome) OK() bool {
	return o != OutcomeRenderFailed
}

func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomePrinted:
		return "printed"
	case OutcomeOpened:
		return "opened"
	case OutcomeDispatchFailed:
		return "dispatch_failed"
	default:
		return "render_failed"
	}
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// RowResult records what happened to a single row of a batch.
type RowResult struct {
	Row     int
	Path    string
	Outcome Outcome
}

// Tally is the outcome of one batch.
type Tally struct {
	// BatchID identifies the batch in logs and the summary file.
	BatchID uuid.UUID

	// Success counts written receipts, whatever happened when dispatching.
	Success int

	// Failed counts rows whose receipt could not be written.
	Failed int

	// Hidden lists selected rows that the filter excluded, in ascending order.
	Hidden []int

	// Files lists the written receipts in processing order.
	Files []string

	// Rows has one entry per processed row.
	Rows []RowResult

	// Duration is the time taken by the batch.
	Duration time.Duration

	// SummaryPath is the summary log, if one was written.
	SummaryPath string
}

// =============================================================================
// EXPORTER STRUCTURE
// =============================================================================

// Renderer writes the receipt for a row and reports success.
type Renderer interface {
	Render(row table.Row, path string) bool
}

// Dispatcher hands a written receipt to the printer.
type Dispatcher interface {
	Dispatch(path string) printer.Result
}

// Options control optional exporter behaviour.
type Options struct {
	// Print sends every written receipt to the dispatcher.
	Print bool

	// WriteSummary writes export_summary_<timestamp>.txt after each batch.
	WriteSummary bool
}

// Exporter runs single-row and batch exports.
type Exporter struct {
	renderer   Renderer
	dispatcher Dispatcher
	logger     zerolog.Logger
	opts       Options
	now        func() time.Time
}

// New creates an Exporter. A nil dispatcher disables printing.
//
// PARAMETERS:
//   - renderer: Writes receipt files.
//   - dispatcher: Receives every written receipt when printing is enabled.
//   - logger: Component logger.
//   - opts: Print and summary switches.
func New(renderer Renderer, dispatcher Dispatcher, logger zerolog.Logger, opts Options) *Exporter {
	if dispatcher == nil {
		opts.Print = false
	}
	return &Exporter{
		renderer:   renderer,
		dispatcher: dispatcher,
		logger:     logger.With().Str("component", "exporter").Logger(),
		opts:       opts,
		now:        time.Now,
	}
}

// =============================================================================
// BATCH EXPORT
// =============================================================================

// ExportBatch writes a receipt for every selected row that is also visible.
//
// PARAMETERS:
//   - tbl: The loaded table.
//   - selected: Selected row indices, hidden ones included.
//   - visible: Rows passing the current filter.
//   - nameColumn: The resolved name column, or "" if unresolved.
//   - outDir: Directory receiving the receipts.
//
// RETURNS:
//   - A Tally; per-row causes are logged, not returned.
//   - ErrNoData, ErrNothingSelected or ErrSelectionHidden when there is
//     nothing to export. The tally still carries Hidden for the latter.
func (e *Exporter) ExportBatch(tbl *table.Table, selected, visible filter.Set, nameColumn, outDir string) (Tally, error) {
	start := e.now()
	tally := Tally{BatchID: uuid.New()}

	// =========================================================================
	// STEP 1: CHECK INPUT
	// =========================================================================

	if tbl.Len() == 0 {
		return tally, ErrNoData
	}
	if len(selected) == 0 {
		return tally, ErrNothingSelected
	}

	// =========================================================================
	// STEP 2: EFFECTIVE EXPORT SET
	// =========================================================================

	var rows []int
	for _, idx := range selected.Sorted() {
		if _, ok := tbl.Row(idx); !ok {
			continue
		}
		if visible.Has(idx) {
			rows = append(rows, idx)
		} else {
			tally.Hidden = append(tally.Hidden, idx)
		}
	}

	if len(rows) == 0 {
		if len(tally.Hidden) == 0 {
			return tally, ErrNothingSelected
		}
		return tally, ErrSelectionHidden
	}

	logger := e.logger.With().Str("batch", tally.BatchID.String()).Logger()
	logger.Info().
		Int("rows", len(rows)).
		Ints("hidden", tally.Hidden).
		Str("out", outDir).
		Msg("starting export")

	// Without a usable directory every row fails and nothing is rendered.
	dirErr := utils.EnsureDir(outDir)
	if dirErr != nil {
		logger.Warn().Err(dirErr).Msg("output directory unavailable")
	}

	// =========================================================================
	// STEP 3: PROCESS ROWS
	// =========================================================================

	for _, idx := range rows {
		row, _ := tbl.Row(idx)
		path := filepath.Join(outDir, FileName(row, nameColumn))

		outcome := OutcomeRenderFailed
		if dirErr == nil {
			outcome = e.process(logger, row, path)
		}
		tally.Rows = append(tally.Rows, RowResult{Row: idx, Path: path, Outcome: outcome})
		if outcome.OK() {
			tally.Success++
			tally.Files = append(tally.Files, path)
		} else {
			tally.Failed++
		}
	}

	tally.Duration = e.now().Sub(start)

	// =========================================================================
	// STEP 4: SUMMARY LOG
	// =========================================================================

	if e.opts.WriteSummary && dirErr == nil {
		summaryPath, err := utils.WriteSummaryLog(buildSummary(tbl, tally, len(selected), outDir, start, start.Add(tally.Duration)), outDir)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to write export summary")
		} else {
			tally.SummaryPath = summaryPath
		}
	}

	logger.Info().
		Int("success", tally.Success).
		Int("failed", tally.Failed).
		Dur("duration", tally.Duration).
		Msg("export finished")

	return tally, nil
}

// =============================================================================
// SINGLE ROW EXPORT
// =============================================================================

// ExportOne writes and dispatches the receipt for one row, ignoring the
// selection and the filter.
//
// RETURNS:
//   - The row outcome and the receipt path.
//   - ErrNoData or ErrRowOutOfRange for invalid input. A failed render, or
//     an output directory that cannot be created, is reported through the
//     outcome, not as an error.
func (e *Exporter) ExportOne(tbl *table.Table, rowIndex int, nameColumn, outDir string) (Outcome, string, error) {
	if tbl.Len() == 0 {
		return OutcomeRenderFailed, "", ErrNoData
	}
	row, ok := tbl.Row(rowIndex)
	if !ok {
		return OutcomeRenderFailed, "", fmt.Errorf("%w: %d", ErrRowOutOfRange, rowIndex)
	}

	path := filepath.Join(outDir, FileName(row, nameColumn))
	if err := utils.EnsureDir(outDir); err != nil {
		e.logger.Warn().Err(err).Int("row", rowIndex).Msg("output directory unavailable")
		return OutcomeRenderFailed, path, nil
	}

	return e.process(e.logger, row, path), path, nil
}

// process renders one row and dispatches the file.
func (e *Exporter) process(logger zerolog.Logger, row table.Row, path string) Outcome {
	if !e.renderer.Render(row, path) {
		logger.Warn().Int("row", row.Index).Str("path", path).Msg("receipt not written")
		return OutcomeRenderFailed
	}

	if !e.opts.Print {
		return OutcomeRendered
	}

	switch e.dispatcher.Dispatch(path) {
	case printer.Printed:
		return OutcomePrinted
	case printer.Opened:
		return OutcomeOpened
	default:
		return OutcomeDispatchFailed
	}
}

func buildSummary(tbl *table.Table, tally Tally, selected int, outDir string, start, end time.Time) utils.ExportSummary {
	summary := utils.ExportSummary{
		BatchID:   tally.BatchID.String(),
		Source:    tbl.Source,
		OutputDir: outDir,
		StartTime: start,
		EndTime:   end,
		Selected:  selected,
		Hidden:    tally.Hidden,
		Success:   tally.Success,
		Failed:    tally.Failed,
	}
	for _, r := range tally.Rows {
		summary.Receipts = append(summary.Receipts, utils.ReceiptInfo{
			Row:     r.Row,
			File:    filepath.Base(r.Path),
			Outcome: r.Outcome.String(),
			OK:      r.Outcome.OK(),
		})
	}
	return summary
}
