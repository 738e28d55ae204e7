// Package models defines data structures for bill of quantities extraction.
package models

// RawRow is one physical row of a sheet as plain cell text.
type RawRow struct {
	// Index is the 0-based row index. Unique within a sheet until the
	// workbook analyzer rebases it to a workbook-wide index.
	Index int `json:"index"`
	// Cells holds the cell text in column order. Blank cells are "".
	Cells []string `json:"cells"`
}

// Cell returns the text at col, or "" when col is unbound or out of range.
func (r RawRow) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col]
}

// RowTag is the structural class assigned to a row.
type RowTag string

const (
	TagTitle   RowTag = "title"
	TagHeader  RowTag = "header"
	TagSection RowTag = "section"
	TagFooter  RowTag = "footer"
	TagData    RowTag = "data"
	TagEmpty   RowTag = "empty"
)

// ClassifiedRow is a RawRow with its classification.
type ClassifiedRow struct {
	// Row is the source row.
	Row RawRow `json:"row"`
	// Tag is the row class.
	Tag RowTag `json:"tag"`
	// Reason is a short diagnostic explaining the tag.
	Reason string `json:"reason"`
	// Included reports whether the row contributes to the item list.
	Included bool `json:"included"`
	// Item is set for data rows and for parent headings, which keep their
	// ordinal and description for sub-item aggregation.
	Item *ParsedItem `json:"item,omitempty"`
}

// IsParentHeading reports whether the row is an ordinal heading without
// amounts of its own.
func (c ClassifiedRow) IsParentHeading() bool {
	return c.Tag == TagSection && c.Reason == ReasonParentHeading && c.Item != nil
}

// Classification reasons shared by the classifier and the aggregator.
const (
	ReasonEmpty         = "empty row"
	ReasonTitle         = "above header"
	ReasonHeader        = "header row"
	ReasonSectionMarker = "section marker"
	ReasonSectionText   = "section heading"
	ReasonFooter        = "footer"
	ReasonItem          = "item"
	ReasonParentHeading = "parent heading"
	ReasonHeadless      = "headless item"
	ReasonUnclassified  = "unclassified"
	ReasonAbsorbed      = "absorbed into parent"
	ReasonAggregated    = "aggregated sub-items"
)
