// Package documents owns generated invoice / packing-slip documents: the
// generation pipeline, persistence, field-edit storage and the HTTP surface.
package documents

import (
	"time"

	"github.com/mjtoys/docgen/internal/orders"
	"github.com/mjtoys/docgen/internal/render"
)

// Document is one generated document: the order snapshot it was rendered
// from plus the rendered HTML. PDF bytes are materialised lazily by the
// background worker and are omitted from JSON.
type Document struct {
	ID          string       `json:"document_id"`
	Kind        render.Kind  `json:"document_type"`
	OrderNumber string       `json:"order_number"`
	Order       orders.Order `json:"order_data"`
	HTML        string       `json:"html_content"`
	PDF         []byte       `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
