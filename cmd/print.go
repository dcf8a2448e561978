// =============================================================================
// Receipt Desk - Print Command
// =============================================================================
//
// This file defines the 'print' command, the headless equivalent of a row's
// "Print" button. The selection and filter play no part.
//
// COMMAND USAGE:
//   receiptdesk print FILE --row N --out DIR [--no-print]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	printRow     int
	printOut     string
	printNoPrint bool
)

var printCmd = &cobra.Command{
	Use:   "print FILE",
	Short: "Generate the receipt for a single row",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	s, err := rt.loadSession(args[0])
	if err != nil {
		return err
	}

	exp, err := rt.newExporter(!printNoPrint)
	if err != nil {
		return err
	}

	outcome, path, err := exp.ExportOne(s.Table(), printRow, s.NameColumn(), printOut)
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return fmt.Errorf("failed to generate receipt for row %d", printRow)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Receipt saved to %s (%s)\n", path, outcome)
	return nil
}

func init() {
	printCmd.Flags().IntVar(&printRow, "row", -1, "Row index to export (required)")
	printCmd.Flags().StringVar(&printOut, "out", "", "Output directory for the receipt (required)")
	printCmd.Flags().BoolVar(&printNoPrint, "no-print", false, "Do not send the receipt to the printer")

	printCmd.MarkFlagRequired("row")
	printCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(printCmd)
}
