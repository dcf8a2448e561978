// =============================================================================
// Receipt Desk - GUI Command
// =============================================================================
//
// This file defines the 'gui' command, which opens the desktop window.
//
// COMMAND USAGE:
//   receiptdesk gui [FILE]
//
// FILE, when given, is loaded before the window appears.
//
// The window itself is registered by main through SetWindow. Keeping fyne
// out of this package lets the CLI build and test without cgo or OpenGL.
//
// =============================================================================

package cmd

import (
	"errors"

	"github.com/ginjaninja78/receipt-desk/internal/exporter"
	"github.com/ginjaninja78/receipt-desk/internal/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// WindowFunc opens the desktop window and blocks until it is closed.
type WindowFunc func(sess *session.Session, exp *exporter.Exporter, logger zerolog.Logger, path string)

// openWindow is nil in builds without a desktop window.
var openWindow WindowFunc

// SetWindow registers the function the gui command runs.
func SetWindow(fn WindowFunc) {
	openWindow = fn
}

var guiCmd = &cobra.Command{
	Use:   "gui [FILE]",
	Short: "Open the Receipt Desk window",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if openWindow == nil {
			return errors.New("this build has no desktop window")
		}

		exp, err := rt.newExporter(true)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		openWindow(rt.newSession(), exp, rt.logger, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
