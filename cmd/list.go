// =============================================================================
// Receipt Desk - List Command
// =============================================================================
//
// This file defines the 'list' command, which prints the rows of a
// spreadsheet with their row index, so they can be picked for export.
//
// COMMAND USAGE:
//   receiptdesk list FILE [--filter TEXT] [--select 0,2,5]
//
// OUTPUT:
//   SEL  ROW  Name      Amount
//   [x]  0    Asha Rao  500
//   [ ]  2    Ravi      300
//
// Rows hidden by --filter are not printed; the footer counts them.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listFilter string
	listSelect string
)

var listCmd = &cobra.Command{
	Use:   "list FILE",
	Short: "List spreadsheet rows with their row index",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := rt.loadSession(args[0])
	if err != nil {
		return err
	}

	rows, err := parseRows(listSelect)
	if err != nil {
		return err
	}
	for _, r := range rows {
		s.Toggle(r, true)
	}
	s.SetFilter(listFilter)

	tbl := s.Table()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "SEL\tROW\t%s\n", strings.Join(tbl.Columns, "\t"))

	for _, row := range tbl.Rows {
		if !s.IsVisible(row.Index) {
			continue
		}
		mark := "[ ]"
		if s.Selection().IsSelected(row.Index) {
			mark = "[x]"
		}
		cells := make([]string, len(tbl.Columns))
		for i, col := range tbl.Columns {
			if v, ok := row.Get(col); ok {
				cells[i] = v.String()
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", mark, row.Index, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d of %d rows shown\n", len(s.Visible()), tbl.Len())
	return nil
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Show only rows whose name contains TEXT (case-insensitive)")
	listCmd.Flags().StringVar(&listSelect, "select", "", "Mark these row indices as selected, e.g. 0,2,5")
	rootCmd.AddCommand(listCmd)
}
