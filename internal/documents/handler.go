package documents

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mjtoys/docgen/internal/ingest"
	"github.com/mjtoys/docgen/internal/observability"
	"github.com/mjtoys/docgen/internal/orders"
	"github.com/mjtoys/docgen/internal/platform/httpx"
	"github.com/mjtoys/docgen/internal/render"
)

// DocumentService is the surface the handler needs; the concrete Service
// implements it, tests substitute a mock.
type DocumentService interface {
	ParseWorkbook(ctx context.Context, src io.Reader) ([]orders.Order, error)
	Generate(ctx context.Context, order orders.Order, kind render.Kind, edits orders.FieldEdits) (*Document, error)
	Get(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context) ([]Document, error)
	SaveFieldEdits(ctx context.Context, documentID string, edits orders.FieldEdits) (string, error)
	GetFieldEdits(ctx context.Context, documentID string) (orders.FieldEdits, error)
	ConvertPDF(ctx context.Context, html string) ([]byte, error)
}

// Handler exposes the document endpoints.
type Handler struct {
	logger   *slog.Logger
	service  DocumentService
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewHandler constructs the handler. metrics may be nil.
func NewHandler(logger *slog.Logger, service DocumentService, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, service: service, metrics: metrics, validate: validator.New()}
}

const maxUploadBytes = 32 << 20

type parseExcelRequest struct {
	FileContent string `json:"file_content"`
}

// ParseExcel accepts a workbook as a multipart "file" part or a base64
// "file_content" JSON field and returns the aggregated orders.
func (h *Handler) ParseExcel(w http.ResponseWriter, r *http.Request) {
	src, err := workbookReader(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "no file content provided", err.Error())
		return
	}

	parsed, err := h.service.ParseWorkbook(r.Context(), src)
	if err != nil {
		if errors.Is(err, ingest.ErrMissingOrderColumn) || errors.Is(err, ingest.ErrEmptyWorkbook) {
			httpx.Problem(w, http.StatusBadRequest, "workbook not parseable", err.Error())
			return
		}
		h.logger.Error("parse workbook failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "parse failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": parsed})
}

func workbookReader(r *http.Request) (io.Reader, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}

	var req parseExcelRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	if req.FileContent == "" {
		return nil, errors.New("file_content is empty")
	}
	data, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

type generateDocumentRequest struct {
	Type       string            `json:"type"`
	OrderData  *orders.Order     `json:"order_data" validate:"required"`
	FieldEdits orders.FieldEdits `json:"field_edits"`
}

// GenerateDocument renders and stores one document. A persistence failure
// after successful rendering is reported as such; the rendered content is
// not returned in that case so the client retries the save.
func (h *Handler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	var req generateDocumentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	doc, err := h.service.Generate(r.Context(), *req.OrderData, render.KindFromString(req.Type), req.FieldEdits)
	if err != nil {
		if errors.Is(err, ErrPersistence) {
			h.logger.Error("document persistence failed", "error", err)
			httpx.Problem(w, http.StatusBadGateway, "document not saved", err.Error())
			return
		}
		h.logger.Error("generate document failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "generation failed", err.Error())
		return
	}

	h.metrics.DocumentGenerated(string(doc.Kind))
	httpx.JSON(w, http.StatusOK, map[string]any{
		"document_id":  doc.ID,
		"html_content": doc.HTML,
		"order_data":   doc.Order,
	})
}

type fieldEditRequest struct {
	DocumentID string            `json:"document_id"`
	FieldEdits orders.FieldEdits `json:"field_edits"`
}

func (h *Handler) SaveFieldEdit(w http.ResponseWriter, r *http.Request) {
	var req fieldEditRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	id, err := h.service.SaveFieldEdits(r.Context(), req.DocumentID, req.FieldEdits)
	if err != nil {
		h.logger.Error("save field edits failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "field edits not saved", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"document_id": id, "message": "Field edits saved"})
}

func (h *Handler) GetFieldEdits(w http.ResponseWriter, r *http.Request) {
	var req fieldEditRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.DocumentID == "" {
		httpx.Problem(w, http.StatusBadRequest, "no document_id provided", "")
		return
	}
	edits, err := h.service.GetFieldEdits(r.Context(), req.DocumentID)
	if err != nil {
		h.logger.Error("get field edits failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "field edits unavailable", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"field_edits": edits})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list documents failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "history unavailable", err.Error())
		return
	}
	if docs == nil {
		docs = []Document{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"documents": docs})
}

type getDocumentRequest struct {
	DocumentID string `json:"document_id"`
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	var req getDocumentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.DocumentID == "" {
		httpx.Problem(w, http.StatusBadRequest, "no document_id provided", "")
		return
	}
	doc, err := h.service.Get(r.Context(), req.DocumentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "document not found", req.DocumentID)
			return
		}
		h.logger.Error("get document failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "document unavailable", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"document": doc})
}

type generatePDFRequest struct {
	HTMLContent string `json:"html_content" validate:"required"`
}

// GeneratePDF converts HTML through the external converter synchronously.
// Converter failures surface to the caller verbatim; no retries happen here.
func (h *Handler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req generatePDFRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "no HTML content provided", err.Error())
		return
	}
	pdf, err := h.service.ConvertPDF(r.Context(), req.HTMLContent)
	if err != nil {
		h.logger.Error("pdf conversion failed", "error", err)
		httpx.Problem(w, http.StatusBadGateway, "pdf conversion failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"pdf_content": base64.StdEncoding.EncodeToString(pdf),
	})
}
