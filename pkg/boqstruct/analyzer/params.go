// Package analyzer recovers billed items from raw bill of quantities grids.
//
// The pipeline per sheet is MapColumns, Classify for every row, then
// Aggregate. AnalyzeWorkbook runs it over every sheet and merges the
// results under workbook-wide row indices. Nothing in this package fails on
// malformed input: unparseable numbers read as zero, a missing header falls
// back to a default layout, and unrecognized rows are kept but excluded.
package analyzer

import "log/slog"

// Params holds analysis parameters.
type Params struct {
	// Keywords is the locale table used for header, section and footer detection.
	Keywords Keywords
	// HeaderScanRows is how many leading rows are searched for a header.
	HeaderScanRows int
	// HeaderMinMatches is the number of distinct header keywords a row
	// needs to be taken as the header.
	HeaderMinMatches int
	// HeaderMaxCellLen ignores longer cells while scoring header rows;
	// titles and notes are long, column captions are not.
	HeaderMaxCellLen int
	// SectionMaxCells is the most non-empty cells a text-only section row may have.
	SectionMaxCells int
	// Concurrency bounds how many sheets are analyzed at once. Values
	// below 2 analyze sheets one after another.
	Concurrency int
	// Logger receives analysis diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultParams returns default analysis parameters.
func DefaultParams() Params {
	return Params{
		Keywords:         DefaultKeywords(),
		HeaderScanRows:   15,
		HeaderMinMatches: 3,
		HeaderMaxCellLen: 48,
		SectionMaxCells:  3,
		Concurrency:      1,
	}
}

// withDefaults fills zero fields from DefaultParams, so a zero Params
// behaves like the defaults.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	p.Keywords = p.Keywords.withDefaults(d.Keywords)
	if p.HeaderScanRows <= 0 {
		p.HeaderScanRows = d.HeaderScanRows
	}
	if p.HeaderMinMatches <= 0 {
		p.HeaderMinMatches = d.HeaderMinMatches
	}
	if p.HeaderMaxCellLen <= 0 {
		p.HeaderMaxCellLen = d.HeaderMaxCellLen
	}
	if p.SectionMaxCells <= 0 {
		p.SectionMaxCells = d.SectionMaxCells
	}
	return p
}

func (p Params) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
