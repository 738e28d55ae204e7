package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
)

const (
	itemsSheet    = "Stavke"
	warningsSheet = "Upozorenja"
)

var itemHeader = []interface{}{"R.br.", "Opis", "Jed. mj.", "Količina", "Jed. cijena", "Ukupno"}

// WriteXLSX writes the normalized item list as a workbook: one items
// sheet with a header, one row per item and a grand total, plus a
// warnings sheet when the analysis flagged rows for review.
func WriteXLSX(w io.Writer, wb *models.WorkbookAnalysis) error {
	f, err := buildWorkbook(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveXLSX writes the normalized item list to path.
func SaveXLSX(path string, wb *models.WorkbookAnalysis) error {
	f, err := buildWorkbook(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func buildWorkbook(wb *models.WorkbookAnalysis) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeItems(f, wb.Items); err != nil {
		f.Close()
		return nil, fmt.Errorf("write items: %w", err)
	}
	if len(wb.Warnings) > 0 {
		if err := writeWarnings(f, wb.Warnings); err != nil {
			f.Close()
			return nil, fmt.Errorf("write warnings: %w", err)
		}
	}
	return f, nil
}

func writeItems(f *excelize.File, items []models.Item) error {
	if err := f.SetSheetRow(itemsSheet, "A1", &itemHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(itemsSheet, "A1", "F1", bold); err != nil {
		return err
	}

	grand := decimal.Zero
	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			it.Ordinal,
			it.Description,
			it.Unit,
			it.Quantity.InexactFloat64(),
			it.UnitPrice.InexactFloat64(),
			it.TotalPrice.InexactFloat64(),
		}
		if err := f.SetSheetRow(itemsSheet, cell, &row); err != nil {
			return err
		}
		grand = grand.Add(it.TotalPrice)
	}

	totalCell, err := excelize.CoordinatesToCellName(2, len(items)+2)
	if err != nil {
		return err
	}
	totalRow := []interface{}{"UKUPNO", "", "", "", grand.Round(2).InexactFloat64()}
	if err := f.SetSheetRow(itemsSheet, totalCell, &totalRow); err != nil {
		return err
	}
	return f.SetColWidth(itemsSheet, "B", "B", 60)
}

func writeWarnings(f *excelize.File, warnings []models.Warning) error {
	if _, err := f.NewSheet(warningsSheet); err != nil {
		return err
	}
	header := []interface{}{"List", "Indeks reda", "Razlog"}
	if err := f.SetSheetRow(warningsSheet, "A1", &header); err != nil {
		return err
	}
	for i, w := range warnings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{w.Sheet, w.Row, w.Reason}
		if err := f.SetSheetRow(warningsSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
