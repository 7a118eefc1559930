package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestParseWorkbookDecodesRows(t *testing.T) {
	src := buildWorkbook(t, [][]any{
		{"Order_number", "Item_no", "Order_Unit", "Pack", "Net_Price", "Invoice_Date"},
		{"1001", "TOY-1", "10", "12", "2.50", "2025-01-15"},
		{"1001", "TOY-2", "5", "6", "3.00", "2025-01-15"},
	})

	rows, err := ParseWorkbook(src)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1001", rows[0].Get(ColOrderNumber))
	assert.Equal(t, "TOY-1", rows[0].Get(ColItemNo))
	assert.Equal(t, "10", rows[0].Get(ColOrderUnit))
	// Date columns are reformatted during decoding.
	assert.Equal(t, "01/15/2025", rows[0].Get("Invoice_Date"))
}

func TestParseWorkbookSkipsBlankRows(t *testing.T) {
	src := buildWorkbook(t, [][]any{
		{"Order_number", "Item_no"},
		{"1001", "TOY-1"},
		{"", ""},
		{"1002", "TOY-2"},
	})

	rows, err := ParseWorkbook(src)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1002", rows[1].Get(ColOrderNumber))
}

func TestParseWorkbookShortRowsPadded(t *testing.T) {
	src := buildWorkbook(t, [][]any{
		{"Order_number", "Item_no", "Description"},
		{"1001"},
	})

	rows, err := ParseWorkbook(src)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get(ColItemNo))
	assert.Equal(t, "", rows[0].Get(ColDescription))
}

func TestParseWorkbookMissingOrderColumn(t *testing.T) {
	src := buildWorkbook(t, [][]any{
		{"Item_no", "Description"},
		{"TOY-1", "Toy Car"},
	})

	_, err := ParseWorkbook(src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingOrderColumn)
}

func TestParseWorkbookNotASpreadsheet(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("this is not an xlsx file")))
	require.Error(t, err)
}

func TestParseWorkbookHeaderOnly(t *testing.T) {
	src := buildWorkbook(t, [][]any{
		{"Order_number", "Item_no"},
	})

	rows, err := ParseWorkbook(src)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
