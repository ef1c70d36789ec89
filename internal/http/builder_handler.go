package http

import (
	"errors"
	"mime"
	"net/http"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/logger"
)

type validator interface {
	Validate() error
}

// BuilderHandler exposes template builder sessions over RPC-style endpoints
type BuilderHandler struct {
	service domain.BuilderService
	logger  logger.Logger
}

func NewBuilderHandler(service domain.BuilderService, logger logger.Logger) *BuilderHandler {
	return &BuilderHandler{
		service: service,
		logger:  logger,
	}
}

func (h *BuilderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/builder.palette", h.handlePalette)
	mux.HandleFunc("/api/builder.create", h.handleCreate)
	mux.HandleFunc("/api/builder.get", h.handleGet)
	mux.HandleFunc("/api/builder.close", h.handleClose)
	mux.HandleFunc("/api/builder.drag", h.handleDrag)
	mux.HandleFunc("/api/builder.cancelDrag", h.handleCancelDrag)
	mux.HandleFunc("/api/builder.drop", h.handleDrop)
	mux.HandleFunc("/api/builder.select", h.handleSelect)
	mux.HandleFunc("/api/builder.updateProperty", h.handleUpdateProperty)
	mux.HandleFunc("/api/builder.move", h.handleMove)
	mux.HandleFunc("/api/builder.delete", h.handleDelete)
	mux.HandleFunc("/api/builder.setMetadata", h.handleSetMetadata)
	mux.HandleFunc("/api/builder.save", h.handleSave)
	mux.HandleFunc("/api/builder.preview", h.handlePreview)
	mux.HandleFunc("/api/builder.export", h.handleExport)
}

// decodePost enforces POST, decodes the body into req and validates it.
// It writes the error response itself and returns false on failure.
func (h *BuilderHandler) decodePost(w http.ResponseWriter, r *http.Request, req validator) bool {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := decodeJSON(w, r, req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return false
	}
	return true
}

// sessionIDParam reads session_id from the query string of a GET request
func (h *BuilderHandler) sessionIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return "", false
	}
	req := domain.SessionRequest{SessionID: r.URL.Query().Get("session_id")}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return "", false
	}
	return req.SessionID, true
}

func (h *BuilderHandler) handlePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"palette": h.service.Palette(),
	})
}

func (h *BuilderHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := h.service.CreateSession(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create builder session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
	})
}

func (h *BuilderHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionIDParam(w, r)
	if !ok {
		return
	}

	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get builder session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

func (h *BuilderHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	if err := h.service.CloseSession(r.Context(), req.SessionID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to close builder session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Session closed",
	})
}

func (h *BuilderHandler) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req domain.DragRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	session, err := h.service.StartDrag(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to start drag")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

func (h *BuilderHandler) handleCancelDrag(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	session, err := h.service.CancelDrag(r.Context(), req.SessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to cancel drag")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

func (h *BuilderHandler) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req domain.DropRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	result, err := h.service.Drop(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to drop block")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BuilderHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req domain.BlockRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	result, err := h.service.Select(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to select block")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BuilderHandler) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePropertyRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	result, err := h.service.UpdateProperty(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update block property")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BuilderHandler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req domain.MoveBlockRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	result, err := h.service.Move(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to move block")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BuilderHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req domain.BlockRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	result, err := h.service.Delete(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete block")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BuilderHandler) handleSetMetadata(w http.ResponseWriter, r *http.Request) {
	var req domain.SetMetadataRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	session, err := h.service.SetMetadata(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update template details")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

// handleSave relays the template store's own error text with 502 so the
// banner and the response agree
func (h *BuilderHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	result, err := h.service.Save(r.Context(), req.SessionID)
	if err != nil {
		var apiErr *domain.TemplateAPIError
		if errors.As(err, &apiErr) {
			h.logger.WithField("status_code", apiErr.StatusCode).Error("Template store rejected the template")
			WriteJSONError(w, apiErr.Message, http.StatusBadGateway)
			return
		}
		writeServiceError(w, h.logger, err, domain.MessageTemplateSaveFailed)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BuilderHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionIDParam(w, r)
	if !ok {
		return
	}

	html, err := h.service.Preview(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to preview template")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (h *BuilderHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionIDParam(w, r)
	if !ok {
		return
	}

	exported, err := h.service.Export(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to export template")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": exported.Filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(exported.HTML))
}
