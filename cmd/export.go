// =============================================================================
// Receipt Desk - Export Command
// =============================================================================
//
// This file defines the 'export' command, the headless equivalent of the
// "Print Receipt(s)" button.
//
// COMMAND USAGE:
//   receiptdesk export FILE --out DIR [--select 0,2,5 | --all] [flags]
//
// FLAGS:
//   --out       : Directory receiving the receipts (created if missing)
//   --select    : Row indices to export
//   --all       : Select every row
//   --filter    : Search text; selected rows that do not match are skipped
//   --no-print  : Write the receipts without sending them to the printer
//
// PROCESSING PIPELINE:
//   1. Load the spreadsheet
//   2. Apply the selection and the filter
//   3. Render each selected, visible row in ascending order
//   4. Dispatch each written receipt to the printer
//   5. Print the summary "success: N, failed: K"
//
// Rendering failures do not fail the command. It exits non-zero only when
// the file cannot be loaded or there is nothing to export.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ginjaninja78/receipt-desk/internal/exporter"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	exportOut     string
	exportSelect  string
	exportAll     bool
	exportFilter  string
	exportNoPrint bool
)

// =============================================================================
// EXPORT COMMAND DEFINITION
// =============================================================================

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Generate receipts for the selected rows",
	Long: `The export command writes one PDF receipt per selected row into the output
directory. Rows are processed in ascending index order. A row that fails to
render is counted and the batch continues.

Files are named receipt_<name>_<row>.pdf, or receipt_<row>.pdf when the row
has no usable value in the name column.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	// =========================================================================
	// STEP 1: LOAD
	// =========================================================================

	s, err := rt.loadSession(args[0])
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: SELECTION AND FILTER
	// =========================================================================

	if exportAll {
		for _, row := range s.Table().Rows {
			s.Toggle(row.Index, true)
		}
	} else {
		rows, err := parseRows(exportSelect)
		if err != nil {
			return err
		}
		for _, r := range rows {
			s.Toggle(r, true)
		}
	}
	s.SetFilter(exportFilter)

	// =========================================================================
	// STEP 3: EXPORT
	// =========================================================================

	exp, err := rt.newExporter(!exportNoPrint)
	if err != nil {
		return err
	}

	tally, err := exp.ExportBatch(s.Table(), s.Selection().Current(), s.Visible(), s.NameColumn(), exportOut)
	switch {
	case errors.Is(err, exporter.ErrNoData):
		return fmt.Errorf("%s has no data rows", args[0])
	case errors.Is(err, exporter.ErrNothingSelected):
		return fmt.Errorf("no rows selected: use --select or --all")
	case errors.Is(err, exporter.ErrSelectionHidden):
		return fmt.Errorf("selected rows %v are hidden by the filter %q: clear or change --filter", tally.Hidden, exportFilter)
	case err != nil:
		return err
	}

	s.Selection().Clear()

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	out := cmd.OutOrStdout()
	for _, r := range tally.Rows {
		fmt.Fprintf(out, "row %d: %s %s\n", r.Row, r.Outcome, r.Path)
	}
	if len(tally.Hidden) > 0 {
		fmt.Fprintf(os.Stderr, "Skipped rows hidden by the filter: %v\n", tally.Hidden)
	}
	if tally.SummaryPath != "" {
		fmt.Fprintf(os.Stderr, "Summary written to %s\n", tally.SummaryPath)
	}
	fmt.Fprintf(out, "success: %d, failed: %d\n", tally.Success, tally.Failed)

	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output directory for the receipts (required)")
	exportCmd.Flags().StringVar(&exportSelect, "select", "", "Comma separated row indices, e.g. 0,2,5")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Select every row")
	exportCmd.Flags().StringVar(&exportFilter, "filter", "", "Search text matched against the name column")
	exportCmd.Flags().BoolVar(&exportNoPrint, "no-print", false, "Do not send receipts to the printer")

	exportCmd.MarkFlagRequired("out")
	exportCmd.MarkFlagsMutuallyExclusive("select", "all")

	rootCmd.AddCommand(exportCmd)
}
