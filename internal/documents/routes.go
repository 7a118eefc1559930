package documents

import "github.com/go-chi/chi/v5"

// MountRoutes attaches the document endpoints to the router. Paths mirror the
// client contract: action-style POST routes rather than REST resources.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/parse-excel", h.ParseExcel)
	r.Post("/generate-document", h.GenerateDocument)
	r.Post("/save-field-edit", h.SaveFieldEdit)
	r.Post("/get-field-edits", h.GetFieldEdits)
	r.Get("/get-history", h.GetHistory)
	r.Post("/get-document", h.GetDocument)
	r.Post("/generate-pdf", h.GeneratePDF)
}
