// Package parser reads spreadsheet files into plain text grids.
package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadGrid reads one sheet as rows of cell text. Values are read raw,
// without number formats, so amounts arrive as "1500.5" rather than
// "1.500,50 KM". Cell text is trimmed.
func ReadGrid(f *excelize.File, sheetName string) ([][]string, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	return trimRows(rows), nil
}

// trimRows trims every cell and drops trailing blank cells of each row.
func trimRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		last := -1
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
			if cells[j] != "" {
				last = j
			}
		}
		out[i] = cells[:last+1]
	}
	return out
}
