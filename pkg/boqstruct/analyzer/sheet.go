package analyzer

import (
	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/parser"
)

// minSheetRows is the fewest rows a sheet needs to be analyzed.
const minSheetRows = 2

// AnalyzeSheet runs column mapping, classification and aggregation over one
// sheet. Row indices in the result are sheet-local.
func AnalyzeSheet(grid models.SheetGrid, params Params) models.SheetAnalysis {
	res := models.SheetAnalysis{
		Name:      grid.Name,
		Columns:   models.DefaultColumnMap(),
		DataRange: parser.DataRange(grid.Rows),
	}
	if len(grid.Rows) < minSheetRows {
		res.Skipped = true
		res.Counts = models.Counts{Rows: len(grid.Rows), Skipped: len(grid.Rows)}
		return res
	}

	params = params.withDefaults()
	m := newMatcher(params.Keywords)
	rows := make([]models.RawRow, len(grid.Rows))
	for i, cells := range grid.Rows {
		rows[i] = models.RawRow{Index: i, Cells: cells}
	}

	header := mapColumns(rows, params, m)
	res.HeaderIndex = header.Index
	res.HeaderFound = header.Found
	res.Columns = header.Columns

	ctx := newContext(header, params, m)
	classified := make([]models.ClassifiedRow, len(rows))
	for i, row := range rows {
		classified[i] = Classify(row, ctx)
	}

	agg := Aggregate(classified, header.Columns)
	res.Rows = agg.Rows
	res.Absorptions = agg.Absorptions
	res.Items = collectItems(grid.Name, agg)
	res.Warnings = collectWarnings(grid.Name, agg.Rows)
	res.Counts = countRows(agg.Rows)
	return res
}

func collectItems(sheet string, agg Aggregation) []models.Item {
	absorbed := make(map[int][]int, len(agg.Absorptions))
	for _, a := range agg.Absorptions {
		absorbed[a.Parent] = a.Rows
	}
	var items []models.Item
	for _, r := range agg.Rows {
		if r.Tag != models.TagData || !r.Included || r.Item == nil {
			continue
		}
		items = append(items, models.Item{
			ParsedItem: *r.Item,
			Sheet:      sheet,
			Row:        r.Row.Index,
			Absorbed:   absorbed[r.Row.Index],
		})
	}
	return items
}

func collectWarnings(sheet string, rows []models.ClassifiedRow) []models.Warning {
	var warnings []models.Warning
	for _, r := range rows {
		switch {
		case r.Reason == models.ReasonUnclassified:
			warnings = append(warnings, models.Warning{Sheet: sheet, Row: r.Row.Index, Reason: "unclassified row"})
		case r.IsParentHeading():
			warnings = append(warnings, models.Warning{Sheet: sheet, Row: r.Row.Index, Reason: "parent heading without sub-items"})
		}
	}
	return warnings
}

func countRows(rows []models.ClassifiedRow) models.Counts {
	c := models.Counts{Rows: len(rows)}
	for _, r := range rows {
		if r.Included {
			c.Included++
		}
	}
	c.Skipped = c.Rows - c.Included
	return c
}
