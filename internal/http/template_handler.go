package http

import (
	"net/http"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/logger"
)

type TemplateHandler struct {
	service domain.TemplateService
	logger  logger.Logger
}

func NewTemplateHandler(service domain.TemplateService, logger logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TemplateHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.HandleFunc("/api/templates.list", h.handleList)
	mux.HandleFunc("/api/templates.get", h.handleGet)
	mux.HandleFunc("/api/templates.create", h.handleCreate)
	mux.HandleFunc("/api/templates.delete", h.handleDelete)
	mux.HandleFunc("/api/templates.preview", h.handlePreview)
}

func (h *TemplateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list templates")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
	})
}

func (h *TemplateHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetTemplateRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	template, err := h.service.GetTemplate(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateTemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	template, err := h.service.CreateTemplate(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create template")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Template created successfully",
		"template": template,
	})
}

func (h *TemplateHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.DeleteTemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), req.ID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Template deleted successfully",
	})
}

// handlePreview answers with the template rendered against sample data
func (h *TemplateHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetTemplateRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	preview, err := h.service.PreviewTemplate(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to render template preview")
		return
	}

	writeJSON(w, http.StatusOK, preview)
}
