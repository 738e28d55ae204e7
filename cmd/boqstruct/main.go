// Package main provides the CLI entry point for boqstruct-go.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct"
	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/analyzer"
	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/output"
)

var (
	outputPath   string
	pretty       bool
	reader       string
	sheetsDir    string
	xlsxPath     string
	keywordsPath string
	sheetNames   []string
	printArea    bool
	itemsOnly    bool
	concurrency  int
	logLevel     string
	logFormat    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boqstruct [input.xlsx|input.csv]",
		Short: "Extract priced items from bill of quantities spreadsheets",
		Long: `boqstruct-go finds the header, sections, footers and items of a bill of
quantities (troškovnik) of unknown layout, folds sub-item rows into their
parent item, and outputs the item list as JSON.`,
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&reader, "reader", "auto", "Grid reader: auto, excelize, stream, csv")
	rootCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	rootCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the normalized item list to this .xlsx file")
	rootCmd.Flags().StringVar(&keywordsPath, "keywords", "", "YAML keyword table overriding the built-in one")
	rootCmd.Flags().StringSliceVar(&sheetNames, "sheet", nil, "Only analyze the named sheet (repeatable)")
	rootCmd.Flags().BoolVar(&printArea, "print-area", false, "Ignore cells outside each sheet's print area")
	rootCmd.Flags().BoolVar(&itemsOnly, "items-only", false, "Output only the item list")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 1, "Number of sheets analyzed in parallel")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $LOG_LEVEL or info)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	logger, err := newLogger(logLevel, logFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	decimal.MarshalJSONWithoutQuotes = true

	var readerMode boqstruct.ReaderMode
	switch reader {
	case "auto":
		readerMode = boqstruct.ReaderAuto
	case "excelize":
		readerMode = boqstruct.ReaderExcelize
	case "stream":
		readerMode = boqstruct.ReaderStream
	case "csv":
		readerMode = boqstruct.ReaderCSV
	default:
		return fmt.Errorf("invalid reader: %s (must be auto, excelize, stream, or csv)", reader)
	}

	params := analyzer.DefaultParams()
	params.Concurrency = concurrency
	params.Logger = logger
	if keywordsPath != "" {
		kw, err := analyzer.LoadKeywords(keywordsPath)
		if err != nil {
			return err
		}
		params.Keywords = kw
	}

	opts := boqstruct.Options{
		Reader:          readerMode,
		Params:          params,
		Sheets:          sheetNames,
		ClipToPrintArea: &printArea,
		Logger:          logger,
	}

	wb, err := boqstruct.Extract(inputPath, opts)
	if err != nil {
		if errors.Is(err, boqstruct.ErrFileNotFound) {
			return fmt.Errorf("file not found: %s", inputPath)
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	var jsonData []byte
	if itemsOnly {
		jsonData, err = output.ItemsToJSON(wb.Items, pretty)
	} else {
		jsonData, err = output.ToJSON(wb, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Println(string(jsonData))
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if xlsxPath != "" {
		if err := output.SaveXLSX(xlsxPath, wb); err != nil {
			return fmt.Errorf("failed to write xlsx: %w", err)
		}
	}

	return nil
}

func writeSheetFiles(wb *models.WorkbookAnalysis, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		jsonData, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("%02d_%s.json", i+1, safeFileName(sheet.Name)))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

// safeFileName replaces path separators and other characters that are not
// portable in file names.
func safeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}

func newLogger(level, format string) (*slog.Logger, error) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "", "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts)), nil
	}
	return nil, fmt.Errorf("invalid log format: %s (must be text or json)", format)
}
