package render

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mjtoys/docgen/internal/orders"
	"github.com/mjtoys/docgen/internal/settings"
)

// minLineRows pads the rendered line-item table so the fixed Letter layout
// keeps the totals block at the bottom of the page.
const minLineRows = 16

// pricelistFactor is the fixed discount factor shown in the invoice
// "Pricelist" column next to the net price.
var pricelistFactor = decimal.NewFromFloat(0.86)

var printer = message.NewPrinter(language.AmericanEnglish)

// money formats currency: two fixed decimals with thousands separators.
func money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// count formats whole quantities with thousands separators.
func count(n int) string {
	return printer.Sprintf("%v", number.Decimal(n))
}

// dec2 and dec3 are the plain fixed-precision forms used inside tables.
func dec2(d decimal.Decimal) string {
	f, _ := d.Float64()
	return fmt.Sprintf("%.2f", f)
}

func dec3(d decimal.Decimal) string {
	f, _ := d.Float64()
	return fmt.Sprintf("%.3f", f)
}

// lineView carries one pre-formatted table row. Padding rows stay entirely
// blank, so templates never format numbers themselves.
type lineView struct {
	LineNumber    string
	OrderUnit     string
	Unit          string
	Pack          string
	ItemNo        string
	Description   string
	ShipQty       string
	Pricelist     string
	NetPrice      string
	ExtendedPrice string
	Weight        string
	Volume        string
	Loc           string
}

type orderView struct {
	OrderNumber      string
	InvoiceDate      string
	SODate           string
	ShipDate         string
	DatePaid         string
	CustomerID       string
	SONo             string
	PONo             string
	SalesRep         string
	ShipVia          string
	Terms            string
	RecipientName    string
	RecipientCompany string
	Address1         string
	Address2         string
	City             string
	State            string
	PostalCode       string
	CountryCode      string
	Phone            string
	Fax              string

	ItemCount       string
	TotalCase       string
	TotalQty        string
	TotalWeight     string
	TotalVolume     string
	SalesAmount     string
	DiscountPercent string
	TotalDiscount   string
	Shipping        string
	TotalDue        string
}

type documentData struct {
	Order    orderView
	Settings settings.Settings
	Lines    []lineView
	Footer   string
}

func buildOrderView(o orders.Order) orderView {
	return orderView{
		OrderNumber:      o.OrderNumber,
		InvoiceDate:      o.InvoiceDate,
		SODate:           o.SODate,
		ShipDate:         o.ShipDate,
		DatePaid:         o.DatePaid,
		CustomerID:       o.CustomerID,
		SONo:             o.SONo,
		PONo:             o.PONo,
		SalesRep:         o.SalesRep,
		ShipVia:          o.ShipVia,
		Terms:            o.Terms,
		RecipientName:    o.RecipientName,
		RecipientCompany: o.RecipientCompany,
		Address1:         o.Address1,
		Address2:         o.Address2,
		City:             o.City,
		State:            o.State,
		PostalCode:       o.PostalCode,
		CountryCode:      o.CountryCode,
		Phone:            o.Phone,
		Fax:              o.Fax,

		ItemCount:       strconv.Itoa(len(o.LineItems)),
		TotalCase:       count(o.TotalCase),
		TotalQty:        count(o.TotalQty),
		TotalWeight:     dec2(o.TotalWeight),
		TotalVolume:     dec2(o.TotalVolume),
		SalesAmount:     money(o.SalesAmount),
		DiscountPercent: o.DiscountPercent.Round(0).String(),
		TotalDiscount:   money(o.TotalDiscount.Neg()),
		Shipping:        money(o.ShippingHandling),
		TotalDue:        money(o.TotalDiscountedAmount),
	}
}

func buildLineViews(items []orders.LineItem) []lineView {
	lines := make([]lineView, 0, minLineRows)
	for _, item := range items {
		lines = append(lines, lineView{
			LineNumber:    item.LineNumber,
			OrderUnit:     count(item.OrderUnit),
			Unit:          item.Unit,
			Pack:          count(item.Pack),
			ItemNo:        item.ItemNo,
			Description:   item.Description,
			ShipQty:       count(item.ShipQty),
			Pricelist:     dec3(item.NetPrice.Mul(pricelistFactor)),
			NetPrice:      dec3(item.NetPrice),
			ExtendedPrice: dec3(item.ExtendedPrice),
			Weight:        dec2(item.Weight),
			Volume:        dec2(item.Volume),
			Loc:           item.Loc,
		})
	}
	for len(lines) < minLineRows {
		lines = append(lines, lineView{})
	}
	return lines
}
