package http

import (
	"net/http"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/logger"
)

type SendHandler struct {
	service domain.SendService
	logger  logger.Logger
}

func NewSendHandler(service domain.SendService, logger logger.Logger) *SendHandler {
	return &SendHandler{
		service: service,
		logger:  logger,
	}
}

func (h *SendHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/send.campaign", h.handleSendCampaign)
}

// handleSendCampaign answers 207 when part of the batch could not be delivered
func (h *SendHandler) handleSendCampaign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SendCampaignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	result, err := h.service.SendCampaign(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to send emails.")
		return
	}

	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, map[string]interface{}{
		"message": "Emails processed.",
		"details": result,
	})
}
