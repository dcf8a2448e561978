// =============================================================================
// Receipt Desk - Desktop Window
// =============================================================================
//
// The window is a thin adapter over the session and the exporter. Widget
// events are translated into plain calls:
//
//   Upload Spreadsheet  -> Session.Load(path)
//   Search entry        -> Session.SetFilter(text)
//   Select check box    -> Session.Toggle(row, checked)
//   Print Receipt(s)    -> Exporter.ExportBatch(...)
//   row Print button    -> Exporter.ExportOne(...)
//
// All callbacks run on the fyne event goroutine, so session state is never
// touched concurrently.
//
// =============================================================================

package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/ginjaninja78/receipt-desk/internal/exporter"
	"github.com/ginjaninja78/receipt-desk/internal/filter"
	"github.com/ginjaninja78/receipt-desk/internal/loader"
	"github.com/ginjaninja78/receipt-desk/internal/session"
	"github.com/ginjaninja78/receipt-desk/internal/table"
	"github.com/rs/zerolog"
)

// Exporter is the part of exporter.Exporter the window uses.
type Exporter interface {
	ExportBatch(tbl *table.Table, selected, visible filter.Set, nameColumn, outDir string) (exporter.Tally, error)
	ExportOne(tbl *table.Table, rowIndex int, nameColumn, outDir string) (exporter.Outcome, string, error)
}

// Window is the main application window.
type Window struct {
	sess   *session.Session
	exp    Exporter
	logger zerolog.Logger

	win    fyne.Window
	search *widget.Entry
	status *widget.Label
	rows   *fyne.Container
	checks map[int]*widget.Check
}

// Run opens the window and blocks until it is closed. A non-empty path is
// loaded before the window is shown.
func Run(sess *session.Session, exp Exporter, logger zerolog.Logger, path string) {
	a := app.NewWithID("com.ginjaninja78.receiptdesk")
	w := New(a, sess, exp, logger)
	if path != "" {
		w.load(path)
	}
	w.win.ShowAndRun()
}

// New builds the window on a.
func New(a fyne.App, sess *session.Session, exp Exporter, logger zerolog.Logger) *Window {
	w := &Window{
		sess:   sess,
		exp:    exp,
		logger: logger.With().Str("component", "ui").Logger(),
		win:    a.NewWindow("Receipt Desk"),
		checks: map[int]*widget.Check{},
	}
	w.win.Resize(fyne.NewSize(1000, 640))

	/* -------------------- Top bar -------------------- */

	uploadBtn := widget.NewButtonWithIcon("Upload Spreadsheet", theme.FolderOpenIcon(), w.chooseFile)

	w.search = widget.NewEntry()
	w.search.SetPlaceHolder("Search by Name...")
	w.search.OnChanged = func(text string) {
		w.sess.SetFilter(text)
		w.refreshRows()
	}

	w.status = widget.NewLabel("No file loaded.")

	topBar := container.NewBorder(nil, nil, uploadBtn, nil, w.search)

	/* -------------------- Rows -------------------- */

	w.rows = container.NewVBox()

	/* -------------------- Bottom bar -------------------- */

	printBtn := widget.NewButtonWithIcon("Print Receipt(s)", theme.DocumentPrintIcon(), w.printSelected)
	bottomBar := container.NewBorder(nil, nil, nil, printBtn, w.status)

	w.win.SetContent(container.NewBorder(topBar, bottomBar, nil, nil, container.NewScroll(w.rows)))
	w.refreshRows()
	return w
}

// =============================================================================
// LOADING
// =============================================================================

func (w *Window) chooseFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		w.load(path)
	}, w.win)
	fd.SetFilter(storage.NewExtensionFileFilter(loader.Extensions))
	fd.Show()
}

func (w *Window) load(path string) {
	warnings, err := w.sess.Load(path)
	if err != nil {
		dialog.ShowError(fmt.Errorf("could not load the spreadsheet: %w", err), w.win)
		return
	}

	// The new session starts unfiltered; only the entry needs clearing.
	w.search.SetText("")
	w.watchSelection()
	w.refreshRows()

	for _, warn := range warnings {
		n := loadWarning(warn)
		dialog.ShowInformation(n.Title, n.Text, w.win)
	}
}

// watchSelection keeps the check boxes in step with the tracker, which is
// replaced on every load.
func (w *Window) watchSelection() {
	w.sess.Selection().OnChange = func(row int, selected bool) {
		if c, ok := w.checks[row]; ok && c.Checked != selected {
			c.SetChecked(selected)
		}
	}
}

// =============================================================================
// ROW GRID
// =============================================================================

// refreshRows rebuilds the grid for the visible rows.
func (w *Window) refreshRows() {
	w.rows.RemoveAll()
	w.checks = map[int]*widget.Check{}

	tbl := w.sess.Table()
	if tbl == nil {
		w.status.SetText("No file loaded.")
		w.rows.Refresh()
		return
	}

	cols := len(tbl.Columns) + 2
	header := []fyne.CanvasObject{bold("Select")}
	for _, c := range tbl.Columns {
		header = append(header, bold(c))
	}
	header = append(header, bold(""))
	w.rows.Add(container.NewGridWithColumns(cols, header...))
	w.rows.Add(widget.NewSeparator())

	for _, row := range tbl.Rows {
		if !w.sess.IsVisible(row.Index) {
			continue
		}
		w.rows.Add(container.NewGridWithColumns(cols, w.rowCells(tbl, row)...))
	}

	w.updateStatus()
	w.rows.Refresh()
}

func (w *Window) rowCells(tbl *table.Table, row table.Row) []fyne.CanvasObject {
	index := row.Index

	check := widget.NewCheck("", nil)
	check.SetChecked(w.sess.Selection().IsSelected(index))
	check.OnChanged = func(checked bool) {
		w.sess.Toggle(index, checked)
		w.updateStatus()
	}
	w.checks[index] = check

	cells := []fyne.CanvasObject{check}
	for _, col := range tbl.Columns {
		text := ""
		if v, ok := row.Get(col); ok {
			text = v.String()
		}
		label := widget.NewLabel(text)
		label.Truncation = fyne.TextTruncateEllipsis
		cells = append(cells, label)
	}

	printBtn := widget.NewButtonWithIcon("Print", theme.DocumentPrintIcon(), func() {
		w.printRow(index)
	})
	return append(cells, printBtn)
}

func (w *Window) updateStatus() {
	tbl := w.sess.Table()
	if tbl == nil {
		return
	}
	w.status.SetText(fmt.Sprintf("%s: %d of %d rows shown, %d selected",
		tbl.Source, len(w.sess.Visible()), tbl.Len(), w.sess.Selection().Len()))
}

func bold(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

// =============================================================================
// PRINTING
// =============================================================================

func (w *Window) printSelected() {
	if err := checkBatch(w.sess); err != nil {
		w.showProblem(err)
		return
	}

	w.chooseFolder(func(dir string) {
		tally, err := w.exp.ExportBatch(w.sess.Table(), w.sess.Selection().Current(),
			w.sess.Visible(), w.sess.NameColumn(), dir)
		if err != nil {
			w.showProblem(err)
			return
		}

		dialog.ShowInformation("Print Summary", batchSummary(tally), w.win)
		w.sess.Selection().Clear()
		w.updateStatus()
	})
}

func (w *Window) printRow(index int) {
	w.chooseFolder(func(dir string) {
		outcome, path, err := w.exp.ExportOne(w.sess.Table(), index, w.sess.NameColumn(), dir)
		if err != nil {
			w.showProblem(err)
			return
		}

		n, ok := singleResult(index, outcome, path)
		if !ok {
			dialog.ShowError(errors.New(n.Text), w.win)
			return
		}
		dialog.ShowInformation(n.Title, n.Text, w.win)
	})
}

// chooseFolder asks for the output directory every time.
func (w *Window) chooseFolder(then func(dir string)) {
	dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if uri == nil {
			return
		}
		then(uri.Path())
	}, w.win).Show()
}

func (w *Window) showProblem(err error) {
	if n, ok := exportProblem(err); ok {
		dialog.ShowInformation(n.Title, n.Text, w.win)
		return
	}
	w.logger.Error().Err(err).Msg("export failed")
	dialog.ShowError(err, w.win)
}
