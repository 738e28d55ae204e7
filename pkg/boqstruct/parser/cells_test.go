package parser

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadGrid(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "  R.br. ")
	f.SetCellValue(sheetName, "B1", "Opis")
	f.SetCellValue(sheetName, "A2", 1)
	f.SetCellValue(sheetName, "B2", "Iskop")
	f.SetCellValue(sheetName, "D2", 1500.5)
	f.SetCellValue(sheetName, "A4", "Kraj")

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	rows, err := ReadGrid(f2, sheetName)
	if err != nil {
		t.Fatalf("ReadGrid failed: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "R.br." {
		t.Errorf("Expected trimmed 'R.br.', got %q", rows[0][0])
	}
	if rows[1][3] != "1500.5" {
		t.Errorf("Expected raw value '1500.5', got %q", rows[1][3])
	}
	if rows[1][2] != "" {
		t.Errorf("Expected blank C2, got %q", rows[1][2])
	}
	if len(rows[2]) != 0 {
		t.Errorf("Expected blank row 3, got %v", rows[2])
	}
}

func TestReadGridMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := ReadGrid(f, "Nema"); err == nil {
		t.Error("Expected error for missing sheet")
	}
}

func TestTrimRows(t *testing.T) {
	input := [][]string{
		{" a ", "", "b", " ", ""},
		{"", "  "},
		nil,
	}
	expected := [][]string{
		{"a", "", "b"},
		{},
		{},
	}

	got := trimRows(input)
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("trimRows = %q, expected %q", got, expected)
	}
}

func TestDataRange(t *testing.T) {
	tests := []struct {
		rows     [][]string
		expected string
	}{
		{[][]string{{"", ""}, {"", "x", "", "y"}, {"z"}}, "A2:D3"},
		{[][]string{{"", " "}}, ""},
		{nil, ""},
		{[][]string{{}, {}, {"", "", "k"}}, "C3:C3"},
	}

	for _, tt := range tests {
		if got := DataRange(tt.rows); got != tt.expected {
			t.Errorf("DataRange(%q) = %q, expected %q", tt.rows, got, tt.expected)
		}
	}
}
