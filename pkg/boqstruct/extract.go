package boqstruct

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/analyzer"
	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/parser"
)

// Extract reads a bill of quantities file and recovers its items. Errors
// come only from reading the file; analysis itself never fails.
func Extract(path string, opts Options) (*models.WorkbookAnalysis, error) {
	grids, err := ReadGrids(path, opts)
	if err != nil {
		return nil, err
	}

	params := opts.Params
	if params.Logger == nil {
		params.Logger = opts.logger()
	}
	return analyzer.AnalyzeWorkbook(filepath.Base(path), grids, params), nil
}

// ReadGrids reads every wanted sheet of path as a text grid, in workbook order.
func ReadGrids(path string, opts Options) ([]models.SheetGrid, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	switch mode := resolveReader(path, opts.Reader); mode {
	case ReaderExcelize:
		return readExcelize(path, opts)
	case ReaderStream:
		grids, err := parser.StreamGrids(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return filterSheets(grids, opts), nil
	case ReaderCSV:
		grid, err := parser.ReadCSVFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return []models.SheetGrid{grid}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedReader, mode)
	}
}

func resolveReader(path string, mode ReaderMode) ReaderMode {
	if mode != "" && mode != ReaderAuto {
		return mode
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return ReaderCSV
	}
	return ReaderExcelize
}

func readExcelize(path string, opts Options) ([]models.SheetGrid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	log := opts.logger().With("book", filepath.Base(path))

	var printAreas map[string][]models.PrintArea
	if opts.ShouldClipToPrintArea() {
		printAreas = parser.ExtractPrintAreas(f)
	}

	var grids []models.SheetGrid
	for _, sheetName := range f.GetSheetList() {
		if !opts.wantsSheet(sheetName) {
			continue
		}
		rows, err := parser.ReadGrid(f, sheetName)
		if err != nil {
			// An unreadable sheet is analyzed as empty rather than failing the book.
			log.Warn("Failed to read sheet", "error", NewExtractionError(sheetName, "grid", err))
			rows = nil
		}
		if areas := printAreas[sheetName]; len(areas) > 0 {
			rows = parser.ClipToPrintAreas(rows, areas)
			log.Debug("Clipped sheet to print area", "sheet", sheetName, "areas", len(areas))
		}
		grids = append(grids, models.SheetGrid{Name: sheetName, Rows: rows})
	}
	return grids, nil
}

func filterSheets(grids []models.SheetGrid, opts Options) []models.SheetGrid {
	out := grids[:0]
	for _, g := range grids {
		if opts.wantsSheet(g.Name) {
			out = append(out, g)
		}
	}
	return out
}
