package inventory

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadTableCommaDelimitedHeaderLookup(t *testing.T) {
	input := "Item Number,Store Name,Quantity\nW-100,Central,5\n"

	table, err := ReadTable("stock.csv", strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	// Header lookup is by name, case-insensitive, not by position.
	require.Equal(t, "W-100", table.Get(0, "item number"))
	require.Equal(t, "Central", table.Get(0, "Store Name"))
	require.Equal(t, "5", table.Get(0, "QUANTITY"))
	require.False(t, table.HasColumn("product name"))
}

func TestReadTableSniffsSemicolonDelimiter(t *testing.T) {
	input := "item number;store name;quantity\nA-1;Harbor;12\n"

	table, err := ReadTable("export.txt", strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, "A-1", table.Get(0, "item number"))
	require.Equal(t, "12", table.Get(0, "quantity"))
}

func TestReadTableSniffsTabDelimiter(t *testing.T) {
	input := "item number\tstore name\tquantity\nA-1\tHarbor\t12\n"

	table, err := ReadTable("export.tsv", strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, "Harbor", table.Get(0, "store name"))
}

func TestReadTableDetectsNonUTF8Encoding(t *testing.T) {
	// "Café" with a Windows-1252 e-acute (0xE9), not valid UTF-8.
	input := append([]byte("item number,store name,quantity\nC-1,Caf"), 0xE9, ',', '3', '\n')

	table, err := ReadTable("legacy.csv", bytes.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, "Café", table.Get(0, "store name"))
}

func TestReadTableStripsUTF8BOM(t *testing.T) {
	input := "\uFEFFitem number,store name,quantity\nB-1,Central,9\n"

	table, err := ReadTable("bom.csv", strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, "B-1", table.Get(0, "item number"))
}

func TestReadTableXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Item Number", "Store Name", "Quantity"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"X-9", "Harbor", 7}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := ReadTable("stock.xlsx", &buf)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	require.Equal(t, "X-9", table.Get(0, "item number"))
	require.Equal(t, "7", table.Get(0, "quantity"))
}

func TestReadTableRejectsEmptyInput(t *testing.T) {
	_, err := ReadTable("empty.csv", strings.NewReader(""))
	require.Error(t, err)
}
