package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeFixture saves a one-sheet bill and returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Zemljani radovi"); err != nil {
		t.Fatalf("SetSheetName failed: %v", err)
	}
	rows := [][]interface{}{
		{"R.br.", "Opis", "Jed. mj.", "Količina", "Jed. cijena", "Ukupno"},
		{1, "Iskop", "m3", 10, 5, 50},
		{2, "Odvoz", "m3", 10, 3, 30},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Zemljani radovi", cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "ponuda.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRunWritesOutputs(t *testing.T) {
	input := writeFixture(t)
	dir := t.TempDir()
	outFile := filepath.Join(dir, "items.json")
	sheetDir := filepath.Join(dir, "sheets")
	xlsxFile := filepath.Join(dir, "stavke.xlsx")

	err := execute(input,
		"--output", outFile,
		"--items-only",
		"--sheets-dir", sheetDir,
		"--xlsx", xlsxFile,
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	var items []struct {
		Ordinal    int     `json:"ordinal"`
		TotalPrice float64 `json:"total_price"`
	}
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("Expected a JSON item list, got %s: %v", data, err)
	}
	if len(items) != 2 || items[0].Ordinal != 1 || items[1].TotalPrice != 30 {
		t.Errorf("Unexpected items %+v", items)
	}

	sheetFile := filepath.Join(sheetDir, "01_Zemljani radovi.json")
	sheetData, err := os.ReadFile(sheetFile)
	if err != nil {
		t.Fatalf("Expected per-sheet file %s: %v", sheetFile, err)
	}
	if !strings.Contains(string(sheetData), `"rows"`) {
		t.Errorf("Expected per-sheet JSON to include rows")
	}

	f, err := excelize.OpenFile(xlsxFile)
	if err != nil {
		t.Fatalf("Expected xlsx export: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 1 || got[0] != "Stavke" {
		t.Errorf("Expected export sheets [Stavke], got %v", got)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	input := writeFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown reader", []string{input, "--reader", "pdf", "--log-level", "error"}, "invalid reader"},
		{"missing file", []string{filepath.Join(t.TempDir(), "nema.xlsx"), "--log-level", "error"}, "file not found"},
		{"bad log format", []string{input, "--log-level", "error", "--log-format", "xml"}, "invalid log format"},
	}
	for _, tt := range tests {
		err := execute(tt.args...)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}
