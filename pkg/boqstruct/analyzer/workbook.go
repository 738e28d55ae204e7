package analyzer

import (
	"golang.org/x/sync/errgroup"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
)

// AnalyzeWorkbook analyzes every sheet and merges the results in source
// order. Each sheet's row indices are rebased by the number of rows in the
// sheets before it, including skipped ones. The workbook column map and
// header index come from the first sheet that yields an item.
func AnalyzeWorkbook(bookName string, grids []models.SheetGrid, params Params) *models.WorkbookAnalysis {
	log := params.logger().With("book", bookName)
	sheets := make([]models.SheetAnalysis, len(grids))

	var g errgroup.Group
	g.SetLimit(max(params.Concurrency, 1))
	for i, grid := range grids {
		i, grid := i, grid
		g.Go(func() error {
			sheets[i] = AnalyzeSheet(grid, params)
			return nil
		})
	}
	// AnalyzeSheet never fails; the group only bounds the fan-out.
	_ = g.Wait()

	wb := &models.WorkbookAnalysis{
		BookName: bookName,
		Columns:  models.DefaultColumnMap(),
		Sheets:   make([]models.SheetAnalysis, 0, len(sheets)),
	}
	displaySet := false
	offset := 0
	for i, s := range sheets {
		s = rebase(s, offset)
		offset += len(grids[i].Rows)

		sheetLog := log.With("sheet", s.Name, "offset", s.Offset)
		if s.Skipped {
			sheetLog.Debug("Skipping sheet with too few rows", "rows", s.Counts.Rows)
		} else {
			sheetLog.Debug("Analyzed sheet",
				"header_index", s.HeaderIndex,
				"header_found", s.HeaderFound,
				"items", len(s.Items),
				"included", s.Counts.Included,
			)
		}
		for _, w := range s.Warnings {
			sheetLog.Warn("Row needs review", "row", w.Row, "reason", w.Reason)
		}

		if !displaySet && len(s.Items) > 0 {
			wb.Columns = s.Columns
			wb.HeaderIndex = s.HeaderIndex
			displaySet = true
		}
		wb.Rows = append(wb.Rows, s.Rows...)
		wb.Items = append(wb.Items, inheritOrdinals(s.Items)...)
		wb.Warnings = append(wb.Warnings, s.Warnings...)
		wb.Counts = wb.Counts.Add(s.Counts)
		wb.Sheets = append(wb.Sheets, s)
	}

	log.Info("Workbook analyzed",
		"sheets", len(wb.Sheets),
		"items", len(wb.Items),
		"rows", wb.Counts.Rows,
		"included", wb.Counts.Included,
		"warnings", len(wb.Warnings),
	)
	return wb
}

// rebase returns a copy of s with every row reference shifted by offset.
func rebase(s models.SheetAnalysis, offset int) models.SheetAnalysis {
	s.Offset = offset
	s.HeaderIndex += offset
	if s.Skipped {
		return s
	}

	rows := make([]models.ClassifiedRow, len(s.Rows))
	for i, r := range s.Rows {
		r.Row.Index += offset
		rows[i] = r
	}
	s.Rows = rows

	items := make([]models.Item, len(s.Items))
	for i, it := range s.Items {
		it.Row += offset
		it.Absorbed = shift(it.Absorbed, offset)
		items[i] = it
	}
	s.Items = items

	absorptions := make([]models.Absorption, len(s.Absorptions))
	for i, a := range s.Absorptions {
		a.Parent += offset
		a.Rows = shift(a.Rows, offset)
		absorptions[i] = a
	}
	s.Absorptions = absorptions

	warnings := make([]models.Warning, len(s.Warnings))
	for i, w := range s.Warnings {
		w.Row += offset
		warnings[i] = w
	}
	s.Warnings = warnings
	return s
}

func shift(idx []int, offset int) []int {
	if idx == nil {
		return nil
	}
	out := make([]int, len(idx))
	for i, v := range idx {
		out[i] = v + offset
	}
	return out
}

// inheritOrdinals gives ordinal-0 items the ordinal of the item before them.
func inheritOrdinals(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	last := 0
	for i, it := range items {
		if it.Ordinal == 0 {
			it.Ordinal = last
		} else {
			last = it.Ordinal
		}
		out[i] = it
	}
	return out
}
