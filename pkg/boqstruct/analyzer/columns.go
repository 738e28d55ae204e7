package analyzer

import (
	"strings"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
)

// HeaderResult is the outcome of column mapping for one sheet.
type HeaderResult struct {
	// Index is the header row index within the sheet.
	Index int
	// Columns is the inferred column map.
	Columns models.ColumnMap
	// Found is false when the default layout was assumed.
	Found bool
	// Matches is the number of distinct header keywords in the header row.
	Matches int
}

// MapColumns finds the header row among the first rows of a sheet and
// binds its cells to fields. Without a header it returns the default
// layout at index 0.
func MapColumns(rows []models.RawRow, params Params) HeaderResult {
	params = params.withDefaults()
	return mapColumns(rows, params, newMatcher(params.Keywords))
}

func mapColumns(rows []models.RawRow, params Params, m *matcher) HeaderResult {
	limit := params.HeaderScanRows
	if limit > len(rows) {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		n := headerMatches(rows[i], params, m)
		if n >= params.HeaderMinMatches {
			return HeaderResult{
				Index:   rows[i].Index,
				Columns: bindColumns(rows[i], m),
				Found:   true,
				Matches: n,
			}
		}
	}
	return HeaderResult{
		Index:   0,
		Columns: models.DefaultColumnMap(),
	}
}

// headerMatches counts the distinct header keywords found in a row. Within
// one cell only the first matching keyword of each caption group counts.
func headerMatches(row models.RawRow, params Params, m *matcher) int {
	found := make(map[string]bool)
	for _, cell := range row.Cells {
		text := fold(cell)
		if text == "" || len([]rune(text)) > params.HeaderMaxCellLen {
			continue
		}
		for _, group := range m.header {
			for _, w := range group {
				if strings.Contains(text, w) {
					found[w] = true
					break
				}
			}
		}
	}
	return len(found)
}

// bindColumns assigns each header cell to at most one field. Fields are
// tried in priority order and the first cell to claim a field keeps it.
// A field no caption names takes its default column when that column lies
// within the header row and is still free.
func bindColumns(row models.RawRow, m *matcher) models.ColumnMap {
	cols := models.EmptyColumnMap()
	for col, cell := range row.Cells {
		text := fold(cell)
		if text == "" {
			continue
		}
		f, ok := classifyHeaderCell(text, cols, m)
		if !ok {
			continue
		}
		cols = cols.With(f, col)
	}

	defaults := models.DefaultColumnMap()
	for _, f := range models.Fields {
		col := defaults.Column(f)
		if cols.Has(f) || col == models.Unbound || col >= len(row.Cells) {
			continue
		}
		if _, taken := cols.FieldAt(col); !taken {
			cols = cols.With(f, col)
		}
	}
	return cols
}

func classifyHeaderCell(text string, cols models.ColumnMap, m *matcher) (models.Field, bool) {
	isPrice := containsAny(text, m.price)
	candidates := []struct {
		field models.Field
		match bool
	}{
		{models.FieldOrdinal, containsAny(text, m.ordinal)},
		{models.FieldDescription, containsAny(text, m.description)},
		{models.FieldDetails, containsAny(text, m.details)},
		{models.FieldUnit, containsAny(text, m.unit) && !isPrice},
		{models.FieldQuantity, containsAny(text, m.quantity) && !isPrice},
	}
	for _, c := range candidates {
		if c.match && !cols.Has(c.field) {
			return c.field, true
		}
		if c.match {
			// Claimed by an earlier column; the cell is a duplicate caption.
			return "", false
		}
	}
	if !isPrice {
		return "", false
	}
	return priceField(text, cols, m)
}

// priceField separates unit price from line total by qualifier. When both
// qualifiers occur the earlier one wins; an unqualified price fills the
// unit price first.
func priceField(text string, cols models.ColumnMap, m *matcher) (models.Field, bool) {
	per, total := firstIndex(text, m.perUnit), firstIndex(text, m.total)
	var want models.Field
	switch {
	case per >= 0 && (total < 0 || per < total):
		want = models.FieldUnitPrice
	case total >= 0:
		want = models.FieldTotalPrice
	case !cols.Has(models.FieldUnitPrice):
		want = models.FieldUnitPrice
	default:
		want = models.FieldTotalPrice
	}
	if cols.Has(want) {
		return "", false
	}
	return want, true
}
