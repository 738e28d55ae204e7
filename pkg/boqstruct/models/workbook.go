package models

// WorkbookAnalysis is the merged result over every sheet of a workbook.
type WorkbookAnalysis struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// HeaderIndex is the workbook-wide header index of the first sheet
	// that yielded items.
	HeaderIndex int `json:"header_index"`
	// Columns is the column map of the first sheet that yielded items.
	Columns ColumnMap `json:"columns"`
	// Sheets holds per-sheet results in source order.
	Sheets []SheetAnalysis `json:"sheets"`
	// Rows holds every classified row of every sheet under workbook-wide indices.
	Rows []ClassifiedRow `json:"rows"`
	// Items is the final item list with inherited ordinals resolved.
	Items []Item `json:"items"`
	// Warnings lists rows needing review across all sheets.
	Warnings []Warning `json:"warnings,omitempty"`
	// Counts summarizes row inclusion across all sheets.
	Counts Counts `json:"counts"`
}
