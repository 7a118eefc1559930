package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/mjtoys/docgen/internal/ingest"
	"github.com/mjtoys/docgen/internal/orders"
	"github.com/mjtoys/docgen/internal/render"
	"github.com/mjtoys/docgen/internal/settings"
)

// ErrPersistence indicates rendering succeeded but the document could not be
// stored. Callers must report this as a storage failure, not a generation
// failure: the rendered HTML in the returned document is valid.
var ErrPersistence = errors.New("document persistence failed")

// Converter turns rendered HTML into PDF bytes.
type Converter interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Service runs the full pipeline: workbook → orders → rendered documents,
// plus document and field-edit persistence.
type Service struct {
	repo      Repository
	settings  *settings.Service
	engine    *render.Engine
	converter Converter
	queue     *asynq.Client
	logger    *slog.Logger
}

// NewService constructs the service. queue may be nil when no background
// worker is deployed; converter may be nil when no PDF service is configured.
func NewService(
	repo Repository,
	settingsService *settings.Service,
	engine *render.Engine,
	converter Converter,
	queue *asynq.Client,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		settings:  settingsService,
		engine:    engine,
		converter: converter,
		queue:     queue,
		logger:    logger,
	}
}

// ParseWorkbook decodes a spreadsheet and aggregates one order per distinct
// order number, in group discovery order. Structural problems (missing
// Order_number column, unreadable workbook) fail the whole parse; individual
// malformed cells never do.
func (s *Service) ParseWorkbook(ctx context.Context, src io.Reader) ([]orders.Order, error) {
	rows, err := ingest.ParseWorkbook(src)
	if err != nil {
		return nil, err
	}
	groups := ingest.GroupByOrder(rows)
	return orders.AggregateAll(ctx, groups)
}

// Generate applies the transient field edits, renders the requested layout
// with the current settings snapshot and stores the result. The stored order
// snapshot is the effective (post-edit) record, matching what was rendered.
func (s *Service) Generate(ctx context.Context, order orders.Order, kind render.Kind, edits orders.FieldEdits) (*Document, error) {
	effective := orders.ApplyEdits(order, edits)

	snapshot, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	html, err := s.engine.Render(effective, snapshot, kind)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	now := time.Now().UTC()
	doc := &Document{
		ID:          uuid.NewString(),
		Kind:        kind,
		OrderNumber: effective.OrderNumber,
		Order:       effective,
		HTML:        html,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.SaveDocument(ctx, *doc); err != nil {
		return doc, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.enqueuePDF(doc.ID)
	return doc, nil
}

// enqueuePDF schedules background PDF materialisation. Best effort: the
// synchronous ConvertPDF endpoint stays available either way.
func (s *Service) enqueuePDF(documentID string) {
	if s.queue == nil {
		return
	}
	task, err := newRenderPDFTask(documentID)
	if err != nil {
		s.logger.Warn("build pdf task failed", "document_id", documentID, "error", err)
		return
	}
	if _, err := s.queue.Enqueue(task); err != nil {
		s.logger.Warn("enqueue pdf task failed", "document_id", documentID, "error", err)
	}
}

// Get returns one stored document.
func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	return s.repo.GetDocument(ctx, id)
}

// List returns all stored documents, newest first.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.repo.ListDocuments(ctx)
}

// SaveFieldEdits stores the edit set for a document; a blank id allocates a
// new one so edits can be captured before the document itself exists.
func (s *Service) SaveFieldEdits(ctx context.Context, documentID string, edits orders.FieldEdits) (string, error) {
	if documentID == "" {
		documentID = uuid.NewString()
	}
	if err := s.repo.SaveFieldEdits(ctx, documentID, edits); err != nil {
		return "", err
	}
	return documentID, nil
}

// GetFieldEdits returns the stored edit set, empty when none exists.
func (s *Service) GetFieldEdits(ctx context.Context, documentID string) (orders.FieldEdits, error) {
	return s.repo.GetFieldEdits(ctx, documentID)
}

// ConvertPDF converts rendered HTML through the external converter.
// Converter failures are returned verbatim and never retried here.
func (s *Service) ConvertPDF(ctx context.Context, html string) ([]byte, error) {
	if s.converter == nil {
		return nil, errors.New("pdf converter not configured")
	}
	return s.converter.RenderHTML(ctx, html)
}
