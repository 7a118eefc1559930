package orders

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mjtoys/docgen/internal/ingest"
)

// Aggregate builds exactly one Order from a row group. Header fields come
// from the first row, line items keep row order, and every total is computed
// from the line items in full decimal precision. Rounding is a display
// concern and never happens here. A group with no rows yields an order with
// zero totals and no line items.
func Aggregate(group ingest.Group) Order {
	order := Order{
		OrderNumber:           group.Key,
		LineItems:             []LineItem{},
		TotalWeight:           decimal.Zero,
		TotalVolume:           decimal.Zero,
		TotalAmount:           decimal.Zero,
		SalesAmount:           decimal.Zero,
		DiscountPercent:       decimal.Zero,
		TotalDiscount:         decimal.Zero,
		ShippingHandling:      decimal.Zero,
		TotalDiscountedAmount: decimal.Zero,
	}
	if len(group.Rows) == 0 {
		return order
	}

	first := group.Rows[0]
	order.InvoiceDate = first.Get("Invoice_Date")
	order.SODate = first.Get("SO_Date")
	order.ShipDate = first.Get("Ship_Date")
	order.DatePaid = first.Get("Date_Paid")
	order.CustomerID = first.Get("Customer_ID")
	order.SONo = first.Get("SO_No")
	order.PONo = first.Get("PO_No")
	order.SalesRep = first.Get("Sales_rep")
	order.ShipVia = first.Get("ship_via")
	order.Terms = first.Get("Terms")
	order.RecipientName = first.Get("Recipient_Name")
	order.RecipientCompany = first.Get("Recipient_Company")
	order.Address1 = first.Get("Address1")
	order.Address2 = first.Get("Address2")
	order.City = first.Get("City")
	order.State = first.Get("State")
	order.PostalCode = first.Get("Postal_Code")
	order.CountryCode = first.Get("Country_Code")
	order.Phone = first.Get("Phone")
	order.Fax = first.Get("Fax")

	// Discount and shipping are order-level values read off the first row.
	// Both degrade to zero on blank or malformed cells.
	order.DiscountPercent = ingest.CoerceDecimal(first.Get(ingest.ColDiscount))
	order.ShippingHandling = ingest.CoerceDecimal(first.Get(ingest.ColShippingHandling))

	for i, row := range group.Rows {
		item := buildLineItem(row, i+1)

		order.TotalCase += item.OrderUnit
		order.TotalQty += item.ShipQty
		order.TotalWeight = order.TotalWeight.Add(item.Weight)
		order.TotalVolume = order.TotalVolume.Add(item.Volume)
		order.TotalAmount = order.TotalAmount.Add(item.ExtendedPrice)

		order.LineItems = append(order.LineItems, item)
	}

	order.SalesAmount = order.TotalAmount
	order.TotalDiscount = order.TotalAmount.Mul(order.DiscountPercent).Div(decimal.NewFromInt(100))
	order.TotalDiscountedAmount = order.TotalAmount.Sub(order.TotalDiscount).Add(order.ShippingHandling)

	return order
}

func buildLineItem(row ingest.Row, position int) LineItem {
	orderUnit := ingest.CoerceInt(row.Get(ingest.ColOrderUnit))
	pack := ingest.CoerceInt(row.Get(ingest.ColPack))
	shipQty := orderUnit * pack
	netPrice := ingest.CoerceDecimal(row.Get(ingest.ColNetPrice))

	lineNumber := row.Get(ingest.ColLineNumber)
	if lineNumber == "" {
		lineNumber = strconv.Itoa(position)
	}
	unit := row.Get(ingest.ColUnit)
	if unit == "" {
		unit = "CS"
	}

	return LineItem{
		LineNumber:    lineNumber,
		OrderUnit:     orderUnit,
		Unit:          unit,
		Pack:          pack,
		ItemNo:        row.Get(ingest.ColItemNo),
		Description:   row.Get(ingest.ColDescription),
		ShipQty:       shipQty,
		NetPrice:      netPrice,
		ExtendedPrice: netPrice.Mul(decimal.NewFromInt(int64(shipQty))),
		Weight:        ingest.CoerceDecimal(row.Get(ingest.ColTotalWT)),
		Volume:        ingest.CoerceDecimal(row.Get(ingest.ColVol)),
		Loc:           row.Get(ingest.ColLoc),
	}
}

// AggregateAll aggregates every group concurrently. Groups share no state,
// so the fan-out is free of ordering constraints; the result slice still
// follows group discovery order.
func AggregateAll(ctx context.Context, groups []ingest.Group) ([]Order, error) {
	result := make([]Order, len(groups))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, group := range groups {
		i, group := i, group
		g.Go(func() error {
			result[i] = Aggregate(group)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
