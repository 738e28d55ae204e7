package parser

import (
	"fmt"
	"strings"

	"github.com/thedatashed/xlsxreader"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
)

// StreamGrids reads every sheet of an xlsx file with xlsxreader, which
// decodes rows as a stream instead of loading the whole sheet model.
func StreamGrids(path string) ([]models.SheetGrid, error) {
	xl, err := xlsxreader.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer xl.Close()

	grids := make([]models.SheetGrid, 0, len(xl.Sheets))
	for _, name := range xl.Sheets {
		rows, err := collectStream(xl.ReadRows(name))
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		grids = append(grids, models.SheetGrid{Name: name, Rows: rows})
	}
	return grids, nil
}

// collectStream places streamed cells by their row and column positions;
// the stream omits blank rows and blank cells. The channel is always
// drained so the reader goroutine can exit.
func collectStream(rows chan xlsxreader.Row) ([][]string, error) {
	var (
		out      [][]string
		firstErr error
	)
	for row := range rows {
		if row.Error != nil {
			if firstErr == nil {
				firstErr = row.Error
			}
			continue
		}
		if firstErr != nil || row.Index < 1 {
			continue
		}
		for len(out) < row.Index-1 {
			out = append(out, nil)
		}
		var cells []string
		for _, c := range row.Cells {
			col := c.ColumnIndex()
			if col < 0 {
				continue
			}
			for len(cells) <= col {
				cells = append(cells, "")
			}
			cells[col] = strings.TrimSpace(c.Value)
		}
		out = append(out, cells)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return trimRows(out), nil
}
