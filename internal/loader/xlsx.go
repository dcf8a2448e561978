package loader

import (
	"fmt"

	"github.com/ginjaninja78/receipt-desk/internal/table"
	"github.com/xuri/excelize/v2"
)

// readXLSX reads one worksheet of an .xlsx file.
//
// PARAMETERS:
//   - path: The workbook path.
//   - sheet: The worksheet name, or "" for the first sheet.
//
// RETURNS:
//   - The header row and the data records.
//   - An error if the workbook or sheet cannot be read.
func readXLSX(path, sheet string) ([]string, []table.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil, fmt.Errorf("sheet %q not found", sheet)
	}

	// GetRows returns formatted cell text, so dates and currency come back
	// the way they are shown in the spreadsheet.
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}

	headers, records := splitRows(rows, nil)
	return headers, records, nil
}
