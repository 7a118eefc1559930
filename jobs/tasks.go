// Package jobs runs the Asynq worker that materialises PDFs for saved
// documents. Task types and payloads live next to the documents service that
// enqueues them.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/mjtoys/docgen/internal/documents"
)

// Converter turns rendered HTML into PDF bytes.
type Converter interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// RenderPDFHandler loads a document, converts its HTML and stores the PDF.
type RenderPDFHandler struct {
	Repo      documents.Repository
	Converter Converter
	Logger    *slog.Logger
}

// ProcessTask implements asynq.Handler for documents.TaskTypeRenderPDF.
func (h *RenderPDFHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload documents.RenderPDFPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	doc, err := h.Repo.GetDocument(ctx, payload.DocumentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			// Deleted between enqueue and processing; nothing to retry.
			return asynq.SkipRetry
		}
		return fmt.Errorf("load document %s: %w", payload.DocumentID, err)
	}

	pdf, err := h.Converter.RenderHTML(ctx, doc.HTML)
	if err != nil {
		return fmt.Errorf("convert document %s: %w", payload.DocumentID, err)
	}
	if err := h.Repo.SavePDF(ctx, payload.DocumentID, pdf); err != nil {
		return fmt.Errorf("store pdf %s: %w", payload.DocumentID, err)
	}

	h.Logger.Info("document pdf materialised",
		"document_id", payload.DocumentID, "bytes", len(pdf))
	return nil
}
