package models

import "github.com/shopspring/decimal"

// ParsedItem holds the typed fields of a data row.
type ParsedItem struct {
	// Ordinal is the item number. 0 means the ordinal is inherited from
	// the preceding item.
	Ordinal int `json:"ordinal"`
	// Description is the work description.
	Description string `json:"description"`
	// Unit is the unit of measure (m2, m3, kom, ...).
	Unit string `json:"unit"`
	// Quantity is the billed quantity.
	Quantity decimal.Decimal `json:"quantity"`
	// UnitPrice is the price per unit.
	UnitPrice decimal.Decimal `json:"unit_price"`
	// TotalPrice is the line total.
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Item is a billed item after sub-item aggregation.
type Item struct {
	ParsedItem
	// Sheet is the name of the sheet the item came from.
	Sheet string `json:"sheet"`
	// Row is the workbook-wide index of the item's source row.
	Row int `json:"row"`
	// Absorbed lists the workbook-wide indices of rows folded into the item.
	Absorbed []int `json:"absorbed,omitempty"`
}

// AbsorptionPattern names the rule that folded rows into a parent.
type AbsorptionPattern string

const (
	PatternParentHeading AbsorptionPattern = "parent_heading"
	PatternSubOrdinal    AbsorptionPattern = "sub_ordinal"
)

// Absorption records one fold of continuation rows into a parent row.
type Absorption struct {
	// Parent is the index of the parent row.
	Parent int `json:"parent"`
	// Rows are the indices of the absorbed rows.
	Rows []int `json:"rows"`
	// Pattern is the rule that applied.
	Pattern AbsorptionPattern `json:"pattern"`
}

// Warning flags a row that needs manual review.
type Warning struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
