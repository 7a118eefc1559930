package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DisplayDateFormat is the fixed form every recognised date is reformatted to.
const DisplayDateFormat = "01/02/2006"

// dateLayouts are the textual forms accepted by CoerceDate, tried in order.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2-Jan-2006",
	"01/02/06",
}

// naMarkers are cell values treated as explicitly not available.
var naMarkers = map[string]struct{}{
	"n/a": {}, "na": {}, "nan": {}, "none": {}, "null": {}, "-": {},
}

// CoerceInt converts a spreadsheet cell to an integer. Blank, absent or
// unparseable cells degrade to 0; negative values pass through unchanged.
func CoerceInt(cell string) int {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Sheets frequently store integers as "12.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// CoerceDecimal converts a spreadsheet cell to a decimal. Blank, absent,
// not-available markers and unparseable cells all degrade to zero.
func CoerceDecimal(cell string) decimal.Decimal {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero
	}
	if _, ok := naMarkers[strings.ToLower(s)]; ok {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CoerceDate reformats any recognisable date to MM/DD/YYYY. Cells that do not
// parse keep their original text, so downstream rendering shows what the
// spreadsheet contained.
func CoerceDate(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DisplayDateFormat)
		}
	}
	return s
}
