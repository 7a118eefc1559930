package settings

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mjtoys/docgen/internal/platform/httpx"
)

// Handler exposes the settings endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches the settings endpoints. Paths mirror the API the
// frontend already calls.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/get-settings", h.Get)
	r.Post("/update-settings", h.Update)
	r.Post("/upload-logo", h.UploadLogo)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("get settings failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "settings unavailable", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"settings": s})
}

type updateRequest struct {
	Settings Settings `json:"settings"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), req.Settings); err != nil {
		h.logger.Error("update settings failed", "error", err)
		httpx.Problem(w, http.StatusBadRequest, "settings not updated", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "Settings updated successfully"})
}

type uploadLogoRequest struct {
	LogoContent string `json:"logo_content"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	var req uploadLogoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.LogoContent == "" {
		httpx.Problem(w, http.StatusBadRequest, "no logo content provided", "")
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.LogoContent)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "logo content is not valid base64", err.Error())
		return
	}
	url, err := h.service.UploadLogo(r.Context(), data, req.Filename, req.ContentType)
	if err != nil {
		h.logger.Error("upload logo failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "logo not uploaded", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"logo_url": url})
}
