package loader

import (
	"fmt"

	"github.com/extrame/xls"
	"github.com/ginjaninja78/receipt-desk/internal/table"
)

// readXLS reads one worksheet of a legacy BIFF8 .xls workbook.
//
// PARAMETERS:
//   - path: The workbook path.
//   - sheet: The worksheet name, or "" for the first sheet.
//
// RETURNS:
//   - The header row and the data records.
//   - An error if the workbook or sheet cannot be read.
func readXLS(path, sheet string) (headers []string, records []table.Record, err error) {
	// The BIFF decoder panics on some malformed records.
	defer func() {
		if r := recover(); r != nil {
			headers, records = nil, nil
			err = fmt.Errorf("malformed workbook: %v", r)
		}
	}()

	wb, closer, err := xls.OpenWithCloser(path, "utf-8")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer closer.Close()

	ws := findSheet(wb, sheet)
	if ws == nil {
		if sheet == "" {
			return nil, nil, fmt.Errorf("workbook has no sheets")
		}
		return nil, nil, fmt.Errorf("sheet %q not found", sheet)
	}

	// Rows absent from the file come back empty and are skipped like blank
	// rows, so row i is still on line i+1.
	rows := make([][]string, int(ws.MaxRow)+1)
	for i := range rows {
		row := ws.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < len(cells); j++ {
			cells[j] = row.Col(j)
		}
		rows[i] = cells
	}

	headers, records = splitRows(rows, nil)
	return headers, records, nil
}

// findSheet returns the named worksheet, or the first one when name is
// empty. It returns nil when there is no match.
func findSheet(wb *xls.WorkBook, name string) *xls.WorkSheet {
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		if name == "" || ws.Name == name {
			return ws
		}
	}
	return nil
}
