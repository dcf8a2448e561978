// =============================================================================
// Receipt Desk - Main Entry Point
// =============================================================================
//
// Receipt Desk turns rows of a fee spreadsheet into printed PDF receipts.
// This file registers the fyne window and hands control to the Cobra CLI in
// the cmd package.
//
// USAGE:
//   receiptdesk list FILE      - Show rows with their index
//   receiptdesk export FILE    - Generate receipts for selected rows
//   receiptdesk print FILE     - Generate the receipt for one row
//   receiptdesk gui [FILE]     - Open the desktop window
//   receiptdesk version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core logic (loader, filter, selection, session,
//                      receipt, printer, exporter) and the fyne window
//   - pkg/utils      : Shared file helpers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/receipt-desk/cmd"
	"github.com/ginjaninja78/receipt-desk/internal/exporter"
	"github.com/ginjaninja78/receipt-desk/internal/session"
	"github.com/ginjaninja78/receipt-desk/internal/ui"
	"github.com/rs/zerolog"
)

func main() {
	cmd.SetWindow(func(sess *session.Session, exp *exporter.Exporter, logger zerolog.Logger, path string) {
		ui.Run(sess, exp, logger, path)
	})
	cmd.Execute()
}
