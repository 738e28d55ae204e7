package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ReadCSVFile reads a delimited export as a single sheet named after the file.
func ReadCSVFile(path string) (models.SheetGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.SheetGrid{}, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadCSV(f, name)
}

// ReadCSV reads a delimited export. Input that is not valid UTF-8 is
// decoded as Windows-1250, the code page of legacy BCS exports. The
// delimiter is sniffed from the first line.
func ReadCSV(r io.Reader, name string) (models.SheetGrid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.SheetGrid{}, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		data, err = charmap.Windows1250.NewDecoder().Bytes(data)
		if err != nil {
			return models.SheetGrid{}, fmt.Errorf("decode windows-1250: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return models.SheetGrid{}, err
	}
	return models.SheetGrid{Name: name, Rows: trimRows(records)}, nil
}

// sniffDelimiter picks the most frequent of ';', tab and ',' in the first
// line. Semicolons win ties because decimal commas are common.
func sniffDelimiter(data []byte) rune {
	line, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	best, bestCount := ',', 0
	for _, d := range []rune{';', '\t', ','} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
