// Package settings manages the company display record bound into every
// rendered document.
package settings

import "errors"

// ErrNotFound indicates no settings record is stored yet.
var ErrNotFound = errors.New("settings not found")

// Settings holds the company display fields. Extra carries settings-defined
// display strings that have no fixed slot in the templates.
type Settings struct {
	CompanyName       string            `json:"company_name" validate:"required"`
	CompanyWebsite    string            `json:"company_website"`
	CompanyAddress    string            `json:"company_address"`
	CompanyPhone      string            `json:"company_phone"`
	CompanyFax        string            `json:"company_fax"`
	LogoURL           string            `json:"logo_url" validate:"omitempty,url|startswith=memory://"`
	DefaultFOB        string            `json:"default_fob"`
	InvoiceFooter     string            `json:"invoice_footer,omitempty"`
	PackingSlipFooter string            `json:"packing_slip_footer,omitempty"`
	Extra             map[string]string `json:"extra,omitempty"`
}

// Defaults returns the hardcoded company record used when nothing is stored.
func Defaults() Settings {
	return Settings{
		CompanyName:    "M&J Toys Inc.",
		CompanyWebsite: "MJTOYSINC.COM",
		CompanyAddress: "16700 GALE AVE, CITY OF INDUSTRY, CA 91745",
		CompanyPhone:   "(626) 330-3882",
		CompanyFax:     "(626) 330-3108",
		LogoURL:        "https://prompt-images-nerd.s3.us-east-1.amazonaws.com/logo_toys.png",
		DefaultFOB:     "CITY OF INDUSTR",
	}
}
