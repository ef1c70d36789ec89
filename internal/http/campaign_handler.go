package http

import (
	"fmt"
	"net/http"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/logger"
)

// CampaignHandler serves campaigns and the recipients attached to them
type CampaignHandler struct {
	service domain.CampaignService
	logger  logger.Logger
}

func NewCampaignHandler(service domain.CampaignService, logger logger.Logger) *CampaignHandler {
	return &CampaignHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CampaignHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/campaigns.list", h.handleList)
	mux.HandleFunc("/api/campaigns.create", h.handleCreate)
	mux.HandleFunc("/api/campaigns.update", h.handleUpdate)
	mux.HandleFunc("/api/campaigns.delete", h.handleDelete)

	mux.HandleFunc("/api/recipients.list", h.handleListRecipients)
	mux.HandleFunc("/api/recipients.add", h.handleAddRecipients)
	mux.HandleFunc("/api/recipients.update", h.handleUpdateRecipient)
	mux.HandleFunc("/api/recipients.delete", h.handleDeleteRecipient)
}

func (h *CampaignHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	campaigns, err := h.service.ListCampaigns(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list campaigns")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"campaigns": campaigns,
	})
}

func (h *CampaignHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateCampaignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	campaign, err := req.Validate()
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	if err := h.service.CreateCampaign(r.Context(), campaign); err != nil {
		writeServiceError(w, h.logger, err, "Failed to create campaign")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"campaign": campaign,
	})
}

func (h *CampaignHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateCampaignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	campaign, err := req.Validate()
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	if err := h.service.UpdateCampaign(r.Context(), campaign); err != nil {
		writeServiceError(w, h.logger, err, "Failed to update campaign")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"campaign": campaign,
	})
}

func (h *CampaignHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.DeleteCampaignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	if err := h.service.DeleteCampaign(r.Context(), req.CampaignID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete campaign")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Campaign deleted successfully",
	})
}

func (h *CampaignHandler) handleListRecipients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ListRecipientsRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	recipients, err := h.service.ListRecipients(r.Context(), req.CampaignID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list recipients")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipients": recipients,
	})
}

func (h *CampaignHandler) handleAddRecipients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.AddRecipientsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	recipients, err := req.Validate()
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	result, err := h.service.AddRecipients(r.Context(), req.CampaignID, recipients)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to add recipients")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   fmt.Sprintf("%d emails processed", result.Processed),
		"processed": result.Processed,
		"created":   result.Created,
	})
}

func (h *CampaignHandler) handleUpdateRecipient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateRecipientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	recipient, err := h.service.UpdateRecipient(r.Context(), req.CampaignID, req.EmailAddress, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update recipient")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipient": recipient,
	})
}

func (h *CampaignHandler) handleDeleteRecipient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.DeleteRecipientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request")
		return
	}

	if err := h.service.DeleteRecipient(r.Context(), req.CampaignID, req.EmailAddress); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete recipient")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Email deleted successfully",
	})
}
