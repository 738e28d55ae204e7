package analyzer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
)

// Aggregation is the output of Aggregate.
type Aggregation struct {
	// Rows is a new row slice; parents and absorbed rows are replaced,
	// every other row is carried over unchanged.
	Rows []models.ClassifiedRow
	// Absorptions records each fold in row order.
	Absorptions []models.Absorption
}

// Aggregate folds continuation rows into their parent item. It never
// modifies rows; the result references absorbed rows by index.
//
// Two patterns are recognized, scanned once per parent in row order:
//
//   - a parent heading (ordinal, no amounts) followed by ordinal-less or
//     sub-ordinal rows with amounts;
//   - an item N followed by rows whose ordinal is a sub-form of N ("N.1",
//     "Na", "N-1", "N/1"), optionally interleaved with ordinal-less rows.
//
// A row consumed by an earlier parent is never scanned again, so when both
// patterns could claim a run the earlier parent wins. The sub-ordinal
// pattern only applies when a sub-form was seen or the parent has neither
// quantity nor unit price, so a complete item is never overwritten by
// trailing numbers.
func Aggregate(rows []models.ClassifiedRow, cols models.ColumnMap) Aggregation {
	out := make([]models.ClassifiedRow, len(rows))
	copy(out, rows)
	consumed := make([]bool, len(rows))
	var absorptions []models.Absorption

	for i, r := range rows {
		if consumed[i] || r.Item == nil || r.Item.Ordinal <= 0 {
			continue
		}
		parent := r.Item.Ordinal
		children, subSeen := scanChildren(rows, i, parent, cols)
		if len(children) == 0 {
			continue
		}

		var pattern models.AbsorptionPattern
		switch {
		case r.IsParentHeading():
			pattern = models.PatternParentHeading
		case r.Tag == models.TagData && (subSeen || (r.Item.Quantity.IsZero() && r.Item.UnitPrice.IsZero())):
			pattern = models.PatternSubOrdinal
		default:
			continue
		}

		out[i] = foldParent(r, rows, children, pattern)
		for _, j := range children {
			consumed[j] = true
			out[j] = absorbChild(rows[j], r, pattern)
		}

		idx := make([]int, len(children))
		for k, j := range children {
			idx[k] = rows[j].Row.Index
		}
		absorptions = append(absorptions, models.Absorption{
			Parent:  r.Row.Index,
			Rows:    idx,
			Pattern: pattern,
		})
	}

	return Aggregation{Rows: out, Absorptions: absorptions}
}

// scanChildren collects the positions of rows that continue parent. It
// skips empty rows and stops at the first fresh item, a sub-form of another
// ordinal, or any non-data row.
func scanChildren(rows []models.ClassifiedRow, start, parent int, cols models.ColumnMap) (children []int, subSeen bool) {
	for j := start + 1; j < len(rows); j++ {
		c := rows[j]
		if c.Tag == models.TagEmpty {
			continue
		}
		if c.Tag != models.TagData || c.Item == nil || c.Item.Ordinal > 0 {
			break
		}
		ordText := strings.TrimSpace(c.Row.Cell(cols.Ordinal))
		if n, ok := SubOrdinalParent(ordText); ok {
			if n != parent {
				break
			}
			subSeen = true
		}
		children = append(children, j)
	}
	return children, subSeen
}

func foldParent(parent models.ClassifiedRow, rows []models.ClassifiedRow, children []int, pattern models.AbsorptionPattern) models.ClassifiedRow {
	qty, total := decimal.Zero, decimal.Zero
	unit := parent.Item.Unit
	descs := make([]string, 0, len(children))
	for _, j := range children {
		it := rows[j].Item
		qty = qty.Add(it.Quantity)
		total = total.Add(it.TotalPrice)
		if unit == "" {
			unit = it.Unit
		}
		if it.Description != "" {
			descs = append(descs, it.Description)
		}
	}
	qty, total = qty.Round(2), total.Round(2)

	unitPrice := parent.Item.UnitPrice
	if qty.IsPositive() {
		unitPrice = total.DivRound(qty, 2)
	}

	desc := parent.Item.Description
	if pattern == models.PatternParentHeading && len(descs) > 0 {
		if desc == "" {
			desc = strings.Join(descs, "; ")
		} else {
			desc = desc + ": " + strings.Join(descs, "; ")
		}
	}

	folded := parent
	folded.Item = &models.ParsedItem{
		Ordinal:     parent.Item.Ordinal,
		Description: desc,
		Unit:        unit,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		TotalPrice:  total,
	}
	folded.Tag = models.TagData
	folded.Reason = models.ReasonAggregated
	folded.Included = true
	return folded
}

func absorbChild(child, parent models.ClassifiedRow, pattern models.AbsorptionPattern) models.ClassifiedRow {
	item := *child.Item
	item.Ordinal = parent.Item.Ordinal
	if pattern == models.PatternParentHeading && parent.Item.Description != "" {
		if item.Description == "" {
			item.Description = parent.Item.Description
		} else {
			item.Description = parent.Item.Description + " - " + item.Description
		}
	}
	absorbed := child
	absorbed.Item = &item
	absorbed.Tag = models.TagSection
	absorbed.Reason = models.ReasonAbsorbed
	absorbed.Included = false
	return absorbed
}
