package inventory

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Table is one parsed tabular input. Columns are addressed by header name,
// not position; header matching is case-insensitive.
type Table struct {
	columns map[string]int
	rows    [][]string
}

func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("input has no header row")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("input header row is empty")
	}

	return &Table{columns: columns, rows: records[1:]}, nil
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[strings.ToLower(name)]
	return ok
}

// Get returns the trimmed cell value for the named column of a row, or ""
// when the column is absent or the row is short.
func (t *Table) Get(row int, name string) string {
	idx, ok := t.columns[strings.ToLower(name)]
	if !ok || row >= len(t.rows) || idx >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][idx])
}

// ReadTable parses an uploaded spreadsheet. ".xlsx" goes through excelize;
// anything else is treated as delimited text with the character encoding
// auto-detected before parsing.
func ReadTable(filename string, r io.Reader) (*Table, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return readXLSX(r)
	}
	return readDelimited(r)
}

func readXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheets[0], err)
	}
	return newTable(records)
}

func readDelimited(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Sniff the encoding from the raw bytes before any parsing.
	enc, _, _ := charset.DetermineEncoding(raw, "text/plain")
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("could not decode input text: %w", err)
	}
	decoded = bytes.TrimPrefix(decoded, []byte("\uFEFF"))

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = sniffDelimiter(decoded)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse delimited text: %w", err)
	}
	return newTable(records)
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab in the
// first line.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, cand := range []byte{';', '\t'} {
		if n := bytes.Count(line, []byte{cand}); n > bestCount {
			best, bestCount = rune(cand), n
		}
	}
	return best
}
