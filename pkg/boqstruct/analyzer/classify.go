package analyzer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
)

// Context is what the classifier knows about a sheet besides the row itself.
type Context struct {
	HeaderIndex int
	Columns     models.ColumnMap
	// SectionMaxCells caps the non-empty cells of a text-only section row.
	SectionMaxCells int

	kw *matcher
}

// NewContext builds a classification context for one sheet.
func NewContext(header HeaderResult, params Params) Context {
	params = params.withDefaults()
	return newContext(header, params, newMatcher(params.Keywords))
}

func newContext(header HeaderResult, params Params, m *matcher) Context {
	return Context{
		HeaderIndex:     header.Index,
		Columns:         header.Columns,
		SectionMaxCells: params.SectionMaxCells,
		kw:              m,
	}
}

// Classify assigns a row its tag. Rules are tried in order and the first
// match wins: structural evidence (header position, section markers,
// keywords) comes before "has an ordinal and amounts", because keyword rows
// often carry an incidental number.
func Classify(row models.RawRow, ctx Context) models.ClassifiedRow {
	out := models.ClassifiedRow{Row: row}
	cols := ctx.Columns

	filled := nonEmptyCells(row)
	if len(filled) == 0 {
		return tag(out, models.TagEmpty, models.ReasonEmpty)
	}
	if row.Index < ctx.HeaderIndex {
		return tag(out, models.TagTitle, models.ReasonTitle)
	}
	if row.Index == ctx.HeaderIndex {
		return tag(out, models.TagHeader, models.ReasonHeader)
	}

	ordText := strings.TrimSpace(row.Cell(cols.Ordinal))
	if ordText != "" && IsSectionMarker(ordText) {
		return tag(out, models.TagSection, models.ReasonSectionMarker)
	}

	ordinal, hasOrdinal := ParseOrdinal(ordText)
	texts := textCells(row)
	if !hasNonZeroOutside(row, cols.Ordinal) && len(filled) <= ctx.SectionMaxCells {
		shortText := !hasOrdinal && len(filled) <= 2 && len(texts) == len(filled)
		if shortText || ctx.matchesAny(texts, ctx.kw.section) {
			return tag(out, models.TagSection, models.ReasonSectionText)
		}
	}

	qty := number(row.Cell(cols.Quantity))
	unitPrice := number(row.Cell(cols.UnitPrice))
	total := number(row.Cell(cols.TotalPrice))

	// A row with a quantity is an item even when its text names a footer
	// keyword ("Ugradnja sa PDV").
	if !hasOrdinal && !qty.IsPositive() && ctx.matchesAny(texts, ctx.kw.footer) {
		return tag(out, models.TagFooter, models.ReasonFooter)
	}
	anyPositive := qty.IsPositive() || unitPrice.IsPositive() || total.IsPositive()

	switch {
	case hasOrdinal && anyPositive:
		out.Item = newItem(ordinal, describe(row, cols), unitOf(row, cols), qty, unitPrice, total)
		out.Included = true
		return tag(out, models.TagData, models.ReasonItem)
	case hasOrdinal:
		out.Item = &models.ParsedItem{
			Ordinal:     ordinal,
			Description: describe(row, cols),
			Unit:        unitOf(row, cols),
		}
		return tag(out, models.TagSection, models.ReasonParentHeading)
	case anyPositive:
		out.Item = newItem(0, leftoverText(row, cols), unitOf(row, cols), qty, unitPrice, total)
		out.Included = true
		return tag(out, models.TagData, models.ReasonHeadless)
	}
	return tag(out, models.TagSection, models.ReasonUnclassified)
}

func tag(c models.ClassifiedRow, t models.RowTag, reason string) models.ClassifiedRow {
	c.Tag = t
	c.Reason = reason
	return c
}

func newItem(ordinal int, desc, unit string, qty, unitPrice, total decimal.Decimal) *models.ParsedItem {
	if !total.IsPositive() && qty.IsPositive() && unitPrice.IsPositive() {
		total = qty.Mul(unitPrice).Round(2)
	}
	return &models.ParsedItem{
		Ordinal:     ordinal,
		Description: desc,
		Unit:        unit,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		TotalPrice:  total,
	}
}

func (c Context) matchesAny(texts []string, words []string) bool {
	for _, t := range texts {
		if containsAny(fold(t), words) {
			return true
		}
	}
	return false
}

func unitOf(row models.RawRow, cols models.ColumnMap) string {
	return strings.TrimSpace(row.Cell(cols.Unit))
}

// describe joins the description and details columns, falling back to the
// leftover text cells when both are blank.
func describe(row models.RawRow, cols models.ColumnMap) string {
	parts := make([]string, 0, 2)
	for _, col := range []int{cols.Description, cols.Details} {
		if s := strings.TrimSpace(row.Cell(col)); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return leftoverText(row, cols)
	}
	return strings.Join(parts, " ")
}

// leftoverText joins the non-numeric cells outside the ordinal, unit and
// amount columns.
func leftoverText(row models.RawRow, cols models.ColumnMap) string {
	reserved := map[int]bool{
		cols.Ordinal:    true,
		cols.Unit:       true,
		cols.Quantity:   true,
		cols.UnitPrice:  true,
		cols.TotalPrice: true,
	}
	var parts []string
	for col, cell := range row.Cells {
		s := strings.TrimSpace(cell)
		if s == "" || reserved[col] {
			continue
		}
		if _, ok := ParseNumber(s); ok {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func nonEmptyCells(row models.RawRow) []string {
	var out []string
	for _, cell := range row.Cells {
		if s := strings.TrimSpace(cell); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// textCells returns the non-empty cells that do not parse as numbers.
func textCells(row models.RawRow) []string {
	var out []string
	for _, cell := range row.Cells {
		s := strings.TrimSpace(cell)
		if s == "" {
			continue
		}
		if _, ok := ParseNumber(s); ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

func hasNonZeroOutside(row models.RawRow, ordinalCol int) bool {
	for col, cell := range row.Cells {
		if col == ordinalCol {
			continue
		}
		if d, ok := ParseNumber(cell); ok && !d.IsZero() {
			return true
		}
	}
	return false
}
