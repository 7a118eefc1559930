// Package render binds aggregated orders and company settings into the two
// fixed document layouts. Rendering is pure: identical input produces
// byte-identical HTML, and no storage or network is touched here.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mjtoys/docgen/internal/orders"
	"github.com/mjtoys/docgen/internal/settings"
	"github.com/mjtoys/docgen/web"
)

// Kind selects a document layout.
type Kind string

const (
	KindInvoice     Kind = "invoice"
	KindPackingSlip Kind = "packing_slip"
)

// KindFromString maps request input to a layout. Anything that is not the
// invoice kind renders the packing slip, matching the existing API.
func KindFromString(s string) Kind {
	if s == string(KindInvoice) {
		return KindInvoice
	}
	return KindPackingSlip
}

const defaultInvoiceFooter = "ALL SALES ARE FINAL! Net prices included defective allowance discount. " +
	"Please contact us with in 7 days to claim for missing or damage caused by the Carriers. " +
	"Refused shipment will get bill for a 20% restocking fees, plus both ways freights. " +
	"Payment received after 10 days from due date will be subject for a $50 fee, or 2%" +
	"which ever is greater and additional periodic interest charges of up to 1.5% per month."

const defaultPackingSlipFooter = "Please carefully inspect the shipment quantities with this packing list , " +
	"and before you sign complete on the BOL to the Carriers. Missing or damage found, " +
	"your responsible to write on the BOL, and contact to us within 7 days."

// Engine renders document HTML from embedded templates.
type Engine struct {
	templates *template.Template
}

// NewEngine parses the embedded document templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.ParseFS(web.Templates, "templates/documents/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &Engine{templates: tpl}, nil
}

// Render produces the HTML document for one order, using the settings
// snapshot passed by the caller.
func (e *Engine) Render(order orders.Order, s settings.Settings, kind Kind) (string, error) {
	data := documentData{
		Order:    buildOrderView(order),
		Settings: s,
		Lines:    buildLineViews(order.LineItems),
	}

	var name string
	switch kind {
	case KindInvoice:
		name = "invoice.html"
		data.Footer = s.InvoiceFooter
		if data.Footer == "" {
			data.Footer = defaultInvoiceFooter
		}
	default:
		name = "packing_slip.html"
		data.Footer = s.PackingSlipFooter
		if data.Footer == "" {
			data.Footer = defaultPackingSlipFooter
		}
	}

	var buf strings.Builder
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
