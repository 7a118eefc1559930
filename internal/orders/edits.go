package orders

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldEdits maps a dotted path to a replacement value. A bare field name
// addresses an order-level field; "line_items.<index>.<field>" addresses one
// line item. Values arrive as decoded JSON, so numbers may be float64.
type FieldEdits map[string]any

// ApplyEdits returns a copy of the order with the edits applied. The input
// order is never mutated. Malformed paths and out-of-range line indexes are
// dropped silently. Edits are applied in sorted path order so the same edit
// set always produces the same record. Totals are intentionally not
// recomputed: edits are display overrides, not re-pricing.
func ApplyEdits(order Order, edits FieldEdits) Order {
	out := order.Clone()
	if len(edits) == 0 {
		return out
	}

	paths := make([]string, 0, len(edits))
	for p := range edits {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		value := edits[path]
		if !strings.Contains(path, ".") {
			setOrderField(&out, path, value)
			continue
		}
		parts := strings.Split(path, ".")
		if len(parts) != 3 || parts[0] != "line_items" {
			continue
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil || idx < 0 || idx >= len(out.LineItems) {
			continue
		}
		setLineItemField(&out.LineItems[idx], parts[2], value)
	}
	return out
}

func setOrderField(o *Order, field string, value any) {
	switch field {
	case "Order_number":
		o.OrderNumber = asString(value)
	case "Invoice_Date":
		o.InvoiceDate = asString(value)
	case "SO_Date":
		o.SODate = asString(value)
	case "Ship_Date":
		o.ShipDate = asString(value)
	case "Date_Paid":
		o.DatePaid = asString(value)
	case "Customer_ID":
		o.CustomerID = asString(value)
	case "SO_No":
		o.SONo = asString(value)
	case "PO_No":
		o.PONo = asString(value)
	case "Sales_rep":
		o.SalesRep = asString(value)
	case "ship_via":
		o.ShipVia = asString(value)
	case "Terms":
		o.Terms = asString(value)
	case "Recipient_Name":
		o.RecipientName = asString(value)
	case "Recipient_Company":
		o.RecipientCompany = asString(value)
	case "Address1":
		o.Address1 = asString(value)
	case "Address2":
		o.Address2 = asString(value)
	case "City":
		o.City = asString(value)
	case "State":
		o.State = asString(value)
	case "Postal_Code":
		o.PostalCode = asString(value)
	case "Country_Code":
		o.CountryCode = asString(value)
	case "Phone":
		o.Phone = asString(value)
	case "Fax":
		o.Fax = asString(value)
	case "Total_Case":
		o.TotalCase = asInt(value)
	case "Total_WT":
		o.TotalWeight = asDecimal(value)
	case "Vol":
		o.TotalVolume = asDecimal(value)
	case "Total_qty":
		o.TotalQty = asInt(value)
	case "Total_Amount":
		o.TotalAmount = asDecimal(value)
	case "Sales_Amount":
		o.SalesAmount = asDecimal(value)
	case "Discount":
		o.DiscountPercent = asDecimal(value)
	case "Total_Discount":
		o.TotalDiscount = asDecimal(value)
	case "Shipping_Handling":
		o.ShippingHandling = asDecimal(value)
	case "Total_Discounted_Amount":
		o.TotalDiscountedAmount = asDecimal(value)
	}
}

func setLineItemField(item *LineItem, field string, value any) {
	switch field {
	case "line_number":
		item.LineNumber = asString(value)
	case "Order_Unit":
		item.OrderUnit = asInt(value)
	case "unit":
		item.Unit = asString(value)
	case "Pack":
		item.Pack = asInt(value)
	case "Item_no":
		item.ItemNo = asString(value)
	case "Description":
		item.Description = asString(value)
	case "Ship_Qty":
		item.ShipQty = asInt(value)
	case "Net_Price":
		item.NetPrice = asDecimal(value)
	case "Extended_Price":
		item.ExtendedPrice = asDecimal(value)
	case "Weight":
		item.Weight = asDecimal(value)
	case "Volume":
		item.Volume = asDecimal(value)
	case "Loc":
		item.Loc = asString(value)
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	default:
		return 0
	}
}

func asDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero
		}
		return d
	case decimal.Decimal:
		return n
	default:
		return decimal.Zero
	}
}
