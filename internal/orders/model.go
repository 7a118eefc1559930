// Package orders turns grouped spreadsheet rows into aggregated order
// records and applies user field edits to them. The aggregation is the single
// source of truth for every derived quantity; callers never re-derive totals.
package orders

import "github.com/shopspring/decimal"

// JSON field names match the contract the frontend already speaks, which is
// also the namespace field-edit paths address.

// LineItem is one product row within an order.
type LineItem struct {
	LineNumber    string          `json:"line_number"`
	OrderUnit     int             `json:"Order_Unit"`
	Unit          string          `json:"unit"`
	Pack          int             `json:"Pack"`
	ItemNo        string          `json:"Item_no"`
	Description   string          `json:"Description"`
	ShipQty       int             `json:"Ship_Qty"`
	NetPrice      decimal.Decimal `json:"Net_Price"`
	ExtendedPrice decimal.Decimal `json:"Extended_Price"`
	Weight        decimal.Decimal `json:"Weight"`
	Volume        decimal.Decimal `json:"Volume"`
	Loc           string          `json:"Loc"`
}

// Order is the aggregate produced from one row group. Header fields are
// copied verbatim from the group's first row and are always present, empty
// when the spreadsheet had no value.
type Order struct {
	OrderNumber      string `json:"Order_number"`
	InvoiceDate      string `json:"Invoice_Date"`
	SODate           string `json:"SO_Date"`
	ShipDate         string `json:"Ship_Date"`
	DatePaid         string `json:"Date_Paid"`
	CustomerID       string `json:"Customer_ID"`
	SONo             string `json:"SO_No"`
	PONo             string `json:"PO_No"`
	SalesRep         string `json:"Sales_rep"`
	ShipVia          string `json:"ship_via"`
	Terms            string `json:"Terms"`
	RecipientName    string `json:"Recipient_Name"`
	RecipientCompany string `json:"Recipient_Company"`
	Address1         string `json:"Address1"`
	Address2         string `json:"Address2"`
	City             string `json:"City"`
	State            string `json:"State"`
	PostalCode       string `json:"Postal_Code"`
	CountryCode      string `json:"Country_Code"`
	Phone            string `json:"Phone"`
	Fax              string `json:"Fax"`

	LineItems []LineItem `json:"line_items"`

	TotalCase             int             `json:"Total_Case"`
	TotalWeight           decimal.Decimal `json:"Total_WT"`
	TotalVolume           decimal.Decimal `json:"Vol"`
	TotalQty              int             `json:"Total_qty"`
	TotalAmount           decimal.Decimal `json:"Total_Amount"`
	SalesAmount           decimal.Decimal `json:"Sales_Amount"`
	DiscountPercent       decimal.Decimal `json:"Discount"`
	TotalDiscount         decimal.Decimal `json:"Total_Discount"`
	ShippingHandling      decimal.Decimal `json:"Shipping_Handling"`
	TotalDiscountedAmount decimal.Decimal `json:"Total_Discounted_Amount"`
}

// Clone returns a deep copy; the line-item slice is the only reference field.
func (o Order) Clone() Order {
	out := o
	out.LineItems = make([]LineItem, len(o.LineItems))
	copy(out.LineItems, o.LineItems)
	return out
}
