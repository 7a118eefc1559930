package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjtoys/docgen/internal/documents"
	"github.com/mjtoys/docgen/internal/orders"
)

type mockRepo struct {
	docs     map[string]documents.Document
	savedPDF map[string][]byte
	saveErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		docs:     make(map[string]documents.Document),
		savedPDF: make(map[string][]byte),
	}
}

func (m *mockRepo) SaveDocument(ctx context.Context, doc documents.Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockRepo) GetDocument(ctx context.Context, id string) (*documents.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, documents.ErrNotFound
	}
	return &doc, nil
}

func (m *mockRepo) ListDocuments(ctx context.Context) ([]documents.Document, error) {
	return nil, nil
}

func (m *mockRepo) SavePDF(ctx context.Context, id string, pdf []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedPDF[id] = pdf
	return nil
}

func (m *mockRepo) SaveFieldEdits(ctx context.Context, documentID string, edits orders.FieldEdits) error {
	return nil
}

func (m *mockRepo) GetFieldEdits(ctx context.Context, documentID string) (orders.FieldEdits, error) {
	return nil, nil
}

type stubConverter struct {
	pdf []byte
	err error
}

func (s *stubConverter) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pdf, nil
}

func renderTask(t *testing.T, documentID string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(documents.RenderPDFPayload{DocumentID: documentID})
	require.NoError(t, err)
	return asynq.NewTask(documents.TaskTypeRenderPDF, payload)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRenderPDFHandlerStoresPDF(t *testing.T) {
	repo := newMockRepo()
	repo.docs["doc-1"] = documents.Document{ID: "doc-1", HTML: "<html>invoice</html>"}

	h := &RenderPDFHandler{
		Repo:      repo,
		Converter: &stubConverter{pdf: []byte("%PDF-1.4")},
		Logger:    testLogger(),
	}

	err := h.ProcessTask(context.Background(), renderTask(t, "doc-1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), repo.savedPDF["doc-1"])
}

func TestRenderPDFHandlerSkipsMissingDocument(t *testing.T) {
	h := &RenderPDFHandler{
		Repo:      newMockRepo(),
		Converter: &stubConverter{},
		Logger:    testLogger(),
	}

	err := h.ProcessTask(context.Background(), renderTask(t, "gone"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestRenderPDFHandlerSkipsBadPayload(t *testing.T) {
	h := &RenderPDFHandler{
		Repo:      newMockRepo(),
		Converter: &stubConverter{},
		Logger:    testLogger(),
	}

	err := h.ProcessTask(context.Background(), asynq.NewTask(documents.TaskTypeRenderPDF, []byte("{broken")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestRenderPDFHandlerRetriesConverterFailure(t *testing.T) {
	repo := newMockRepo()
	repo.docs["doc-1"] = documents.Document{ID: "doc-1", HTML: "<html></html>"}

	h := &RenderPDFHandler{
		Repo:      repo,
		Converter: &stubConverter{err: errors.New("gotenberg unreachable")},
		Logger:    testLogger(),
	}

	err := h.ProcessTask(context.Background(), renderTask(t, "doc-1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestRenderPDFHandlerStorageFailure(t *testing.T) {
	repo := newMockRepo()
	repo.docs["doc-1"] = documents.Document{ID: "doc-1", HTML: "<html></html>"}
	repo.saveErr = errors.New("disk full")

	h := &RenderPDFHandler{
		Repo:      repo,
		Converter: &stubConverter{pdf: []byte("%PDF")},
		Logger:    testLogger(),
	}

	err := h.ProcessTask(context.Background(), renderTask(t, "doc-1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
