// Package output serializes analysis results.
package output

import (
	"encoding/json"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
)

// ToJSON serializes a workbook analysis. Per-sheet row lists are left out
// since the workbook already carries every row under workbook-wide indices.
func ToJSON(wb *models.WorkbookAnalysis, pretty bool) ([]byte, error) {
	view := *wb
	view.Sheets = make([]models.SheetAnalysis, len(wb.Sheets))
	for i, s := range wb.Sheets {
		s.Rows = nil
		view.Sheets[i] = s
	}
	return marshal(&view, pretty)
}

// SheetToJSON serializes one sheet analysis including its rows.
func SheetToJSON(sheet *models.SheetAnalysis, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// ItemsToJSON serializes the final item list only.
func ItemsToJSON(items []models.Item, pretty bool) ([]byte, error) {
	if items == nil {
		items = []models.Item{}
	}
	return marshal(items, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
