// =============================================================================
// Receipt Desk - Receipt Renderer
// =============================================================================
//
// This module renders one table row as a single-page PDF "Fee Receipt".
//
// LAYOUT (US Letter, 1 inch margins):
//   +------------------------------------------------+
//   | [left logo]      [centre logo]                 |  optional
//   |                  Fee Receipt                   |
//   |   +----------------+-------------------------+ |
//   |   | Name           | Asha Rao                | |
//   |   | Admission No.  | N/A                     | |
//   |   | ...            | ...                     | |
//   |   +----------------+-------------------------+ |
//   +------------------------------------------------+
//
// The field list is fixed by configuration, not by the table's columns.
// A field the row does not have (or has blank) is printed as "N/A".
//
// The document is built in memory and written in one step, so a failed
// render never leaves a file behind.
//
// =============================================================================

package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ginjaninja78/receipt-desk/internal/table"
	"github.com/ginjaninja78/receipt-desk/pkg/utils"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
)

// Placeholder is printed for fields the row does not provide.
const Placeholder = "N/A"

// Layout constants, in inches unless noted.
const (
	pageMargin       = 1.0
	leftLogoWidth    = 1.4
	leftLogoHeight   = 1.0
	centerLogoWidth  = 3.6
	centerLogoHeight = 1.5
	spacer           = 0.25
	labelWidth       = 2.0
	valueWidth       = 4.0
	rowHeight        = 0.38
	titleHeight      = 0.5
	titleFontSize    = 18.0 // points
	bodyFontSize     = 11.0 // points
)

// Options configure the renderer.
type Options struct {
	Title      string
	Fields     []string
	LogoLeft   string
	LogoCenter string
}

// Renderer writes receipt PDFs.
type Renderer struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a renderer.
func New(opts Options, logger zerolog.Logger) *Renderer {
	return &Renderer{
		opts:   opts,
		logger: logger.With().Str("component", "receipt").Logger(),
	}
}

// Fields returns the label/value pairs printed for a row, in order.
func (r *Renderer) Fields(row table.Row) [][2]string {
	pairs := make([][2]string, 0, len(r.opts.Fields))
	for _, field := range r.opts.Fields {
		value := Placeholder
		if v, ok := row.Get(field); ok && !v.IsMissing() {
			value = v.String()
		}
		pairs = append(pairs, [2]string{field, value})
	}
	return pairs
}

// Render writes the receipt for row to path and reports success. The cause
// of a failure is logged, not returned.
func (r *Renderer) Render(row table.Row, path string) bool {
	if err := r.Write(row, path); err != nil {
		r.logger.Error().Err(err).Int("row", row.Index).Str("path", path).Msg("error creating PDF")
		return false
	}
	return true
}

// Write renders the receipt for row and saves it to path.
func (r *Renderer) Write(row table.Row, path string) error {
	var buf bytes.Buffer
	if err := r.build(row, &buf); err != nil {
		return fmt.Errorf("failed to lay out receipt: %w", err)
	}

	if err := writeFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}

	r.logger.Debug().Int("row", row.Index).Str("path", path).Int("bytes", buf.Len()).Msg("receipt written")
	return nil
}

func (r *Renderer) build(row table.Row, buf *bytes.Buffer) error {
	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()

	r.header(pdf, pageWidth)

	pdf.SetFont("Helvetica", "B", titleFontSize)
	pdf.CellFormat(0, titleHeight, tr(r.opts.Title), "", 1, "C", false, 0, "")
	pdf.Ln(spacer)

	tableX := (pageWidth - labelWidth - valueWidth) / 2
	for _, pair := range r.Fields(row) {
		pdf.SetX(tableX)
		pdf.SetFont("Helvetica", "B", bodyFontSize)
		pdf.CellFormat(labelWidth, rowHeight, tr(pair[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.CellFormat(valueWidth, rowHeight, tr(pair[1]), "1", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(buf)
}

// header draws whichever logos exist and moves below them.
func (r *Renderer) header(pdf *gofpdf.Fpdf, pageWidth float64) {
	left := utils.FileExists(r.opts.LogoLeft)
	center := utils.FileExists(r.opts.LogoCenter)
	if !left && !center {
		return
	}

	top := pdf.GetY()
	height := 0.0
	var opts gofpdf.ImageOptions

	if left {
		pdf.ImageOptions(r.opts.LogoLeft, pageMargin, top, leftLogoWidth, leftLogoHeight, false, opts, 0, "")
		height = leftLogoHeight
	}
	if center {
		x := (pageWidth - centerLogoWidth) / 2
		pdf.ImageOptions(r.opts.LogoCenter, x, top, centerLogoWidth, centerLogoHeight, false, opts, 0, "")
		height = centerLogoHeight
	}

	pdf.SetY(top + height + spacer)
}

// writeFile writes data to path, removing a partially written file.
func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
