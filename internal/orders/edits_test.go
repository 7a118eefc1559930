package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() Order {
	return Order{
		OrderNumber:   "1001",
		RecipientName: "Jordan Lee",
		TotalAmount:   decimal.RequireFromString("390"),
		TotalQty:      150,
		LineItems: []LineItem{
			{LineNumber: "1", ItemNo: "TOY-A", NetPrice: decimal.RequireFromString("2.50"), ShipQty: 120, ExtendedPrice: decimal.RequireFromString("300")},
			{LineNumber: "2", ItemNo: "TOY-B", NetPrice: decimal.RequireFromString("3.00"), ShipQty: 30, ExtendedPrice: decimal.RequireFromString("90")},
		},
	}
}

func TestApplyEditsTopLevelField(t *testing.T) {
	order := sampleOrder()
	edited := ApplyEdits(order, FieldEdits{"Recipient_Name": "Sam Taylor"})

	assert.Equal(t, "Sam Taylor", edited.RecipientName)
	assert.Equal(t, "Jordan Lee", order.RecipientName, "input order must not be mutated")
}

func TestApplyEditsLineItemField(t *testing.T) {
	order := sampleOrder()
	edited := ApplyEdits(order, FieldEdits{
		"line_items.1.Description": "Deluxe Toy B",
		"line_items.0.Ship_Qty":    float64(100),
	})

	assert.Equal(t, "Deluxe Toy B", edited.LineItems[1].Description)
	assert.Equal(t, 100, edited.LineItems[0].ShipQty)
	assert.Equal(t, 120, order.LineItems[0].ShipQty)
}

func TestApplyEditsDoesNotRecomputeTotals(t *testing.T) {
	order := sampleOrder()
	edited := ApplyEdits(order, FieldEdits{"line_items.0.Net_Price": "9.99"})

	assert.Equal(t, "9.99", edited.LineItems[0].NetPrice.String())
	// Totals are overrides-only: editing a price never reprices the order.
	assert.Equal(t, "390", edited.TotalAmount.String())
	assert.Equal(t, "300", edited.LineItems[0].ExtendedPrice.String())
}

func TestApplyEditsOutOfRangeIndexDropped(t *testing.T) {
	order := sampleOrder()
	edited := ApplyEdits(order, FieldEdits{
		"line_items.5.Description":  "nope",
		"line_items.-1.Description": "nope",
	})

	assert.Equal(t, order, edited)
}

func TestApplyEditsMalformedPathsDropped(t *testing.T) {
	order := sampleOrder()
	edited := ApplyEdits(order, FieldEdits{
		"line_items.0":               "nope",
		"line_items.zero.Item_no":    "nope",
		"other.0.Item_no":            "nope",
		"line_items.0.Item_no.extra": "nope",
		"No_Such_Field":              "nope",
	})

	assert.Equal(t, order, edited)
}

func TestApplyEditsDeterministicOrder(t *testing.T) {
	// Two edits landing on the same field must resolve the same way every
	// time; sorted path order makes the later path win.
	order := sampleOrder()
	edits := FieldEdits{
		"Recipient_Name": "A",
	}
	for i := 0; i < 10; i++ {
		edited := ApplyEdits(order, edits)
		assert.Equal(t, "A", edited.RecipientName)
	}
}

func TestApplyEditsValueCoercion(t *testing.T) {
	order := sampleOrder()
	edited := ApplyEdits(order, FieldEdits{
		"Total_qty":            "250",
		"Total_Amount":         float64(412.75),
		"line_items.0.Pack":    float64(24),
		"line_items.0.Weight":  "12.5",
		"line_items.1.Item_no": nil,
	})

	assert.Equal(t, 250, edited.TotalQty)
	assert.Equal(t, "412.75", edited.TotalAmount.String())
	assert.Equal(t, 24, edited.LineItems[0].Pack)
	assert.Equal(t, "12.5", edited.LineItems[0].Weight.String())
	assert.Equal(t, "", edited.LineItems[1].ItemNo)
}

func TestApplyEditsEmptySet(t *testing.T) {
	order := sampleOrder()
	edited := ApplyEdits(order, nil)
	require.Equal(t, order, edited)
}
