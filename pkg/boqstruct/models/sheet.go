package models

// SheetGrid is the raw text grid of one sheet, as produced by a grid reader.
type SheetGrid struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows holds cell text row by row. Rows may be ragged.
	Rows [][]string `json:"rows"`
}

// Counts summarizes row inclusion.
type Counts struct {
	// Rows is the number of rows seen.
	Rows int `json:"rows"`
	// Included is the number of rows contributing to items.
	Included int `json:"included"`
	// Skipped is Rows minus Included.
	Skipped int `json:"skipped"`
}

// Add returns the sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Rows:     c.Rows + o.Rows,
		Included: c.Included + o.Included,
		Skipped:  c.Skipped + o.Skipped,
	}
}

// SheetAnalysis is the result of analyzing one sheet.
type SheetAnalysis struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Offset is the workbook-wide index of the sheet's first row.
	Offset int `json:"offset"`
	// Skipped is set for sheets with fewer than two rows.
	Skipped bool `json:"skipped,omitempty"`
	// HeaderIndex is the workbook-wide index of the header row.
	HeaderIndex int `json:"header_index"`
	// HeaderFound is false when the default column map was used.
	HeaderFound bool `json:"header_found"`
	// Columns is the inferred column map.
	Columns ColumnMap `json:"columns"`
	// DataRange is the bounding range of non-empty cells, e.g. "A1:G40".
	DataRange string `json:"data_range,omitempty"`
	// Rows holds every classified row.
	Rows []ClassifiedRow `json:"rows,omitempty"`
	// Items holds the aggregated items of the sheet.
	Items []Item `json:"items,omitempty"`
	// Absorptions records sub-item folds.
	Absorptions []Absorption `json:"absorptions,omitempty"`
	// Warnings lists rows needing review.
	Warnings []Warning `json:"warnings,omitempty"`
	// Counts summarizes row inclusion.
	Counts Counts `json:"counts"`
}
