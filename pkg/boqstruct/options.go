// Package boqstruct extracts the priced items of a bill of quantities from
// spreadsheet files.
package boqstruct

import (
	"log/slog"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/analyzer"
)

// ReaderMode selects the grid reader.
type ReaderMode string

const (
	// ReaderExcelize reads xlsx files through excelize.
	ReaderExcelize ReaderMode = "excelize"
	// ReaderStream reads xlsx files row by row through xlsxreader.
	ReaderStream ReaderMode = "stream"
	// ReaderCSV reads a delimited text export as a single sheet.
	ReaderCSV ReaderMode = "csv"
	// ReaderAuto picks csv for .csv/.txt files and excelize otherwise.
	ReaderAuto ReaderMode = "auto"
)

// Options configures extraction behavior.
type Options struct {
	// Reader selects the grid reader.
	Reader ReaderMode
	// Params holds the analysis parameters and keyword table.
	Params analyzer.Params
	// Sheets restricts analysis to the named sheets. Empty means all.
	// Sheets left out are not read.
	Sheets []string
	// ClipToPrintArea blanks cells outside a sheet's print area.
	// If nil, defaults to false. Only the excelize reader supports it.
	ClipToPrintArea *bool
	// Logger receives extraction diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Reader: ReaderAuto,
		Params: analyzer.DefaultParams(),
	}
}

// ShouldClipToPrintArea returns whether to clip sheets to their print areas.
func (o Options) ShouldClipToPrintArea() bool {
	if o.ClipToPrintArea != nil {
		return *o.ClipToPrintArea
	}
	return false
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) wantsSheet(name string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, s := range o.Sheets {
		if s == name {
			return true
		}
	}
	return false
}
