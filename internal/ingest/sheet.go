// Package ingest decodes order spreadsheets into row records and groups them
// by order number. All cell-level coercion lives here so the aggregation
// layer never sees raw spreadsheet text for numeric fields.
package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Canonical column names recognised in uploaded workbooks.
const (
	ColOrderNumber      = "Order_number"
	ColOrderUnit        = "Order_Unit"
	ColPack             = "Pack"
	ColNetPrice         = "Net_Price"
	ColTotalWT          = "Total_WT"
	ColVol              = "Vol"
	ColDiscount         = "Discount"
	ColShippingHandling = "Shipping_Handling"
	ColLineNumber       = "line_number"
	ColUnit             = "unit"
	ColItemNo           = "Item_no"
	ColDescription      = "Description"
	ColLoc              = "Loc"
)

// DateColumns are reformatted to MM/DD/YYYY during decoding.
var DateColumns = []string{"Invoice_Date", "SO_Date", "Date_Paid", "Ship_Date"}

var (
	// ErrMissingOrderColumn indicates the workbook has no Order_number
	// column, which makes grouping impossible. The whole parse fails.
	ErrMissingOrderColumn = errors.New("workbook missing Order_number column")
	// ErrEmptyWorkbook indicates the workbook has no sheets or no header row.
	ErrEmptyWorkbook = errors.New("workbook contains no data")
)

// Row is one spreadsheet record keyed by canonical column name. Cells keep
// their string form; numeric coercion happens at aggregation time.
type Row map[string]string

// Get returns the cell for a column, or "" when the column is absent.
func (r Row) Get(col string) string {
	return r[col]
}

// ParseWorkbook decodes the first sheet of an xlsx workbook into rows. The
// header row names the columns; unrecognised columns are carried through
// untouched and ignored downstream. A missing Order_number header is a
// structural error, individual bad cells never are.
func ParseWorkbook(src io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptyWorkbook
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyWorkbook
	}

	header := raw[0]
	hasOrderColumn := false
	for _, name := range header {
		if name == ColOrderNumber {
			hasOrderColumn = true
			break
		}
	}
	if !hasOrderColumn {
		return nil, ErrMissingOrderColumn
	}

	dateCols := make(map[string]struct{}, len(DateColumns))
	for _, c := range DateColumns {
		dateCols[c] = struct{}{}
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		if isBlankRow(cells) {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			if _, ok := dateCols[name]; ok {
				cell = CoerceDate(cell)
			}
			row[name] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
