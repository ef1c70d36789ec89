package domain

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_send_service.go -package mocks github.com/mailforge/mailforge/internal/domain SendService

// SendCampaignRequest sends a stored template to every recipient of a campaign
type SendCampaignRequest struct {
	CampaignID int64  `json:"campaign_id"`
	TemplateID int64  `json:"template_id"`
	Message    string `json:"message,omitempty"`
}

func (r *SendCampaignRequest) Validate() error {
	if r.CampaignID <= 0 {
		return NewValidationError("Campaign ID is required.")
	}
	if r.TemplateID <= 0 {
		return NewValidationError("Template ID is required.")
	}
	return nil
}

// SendResult counts the outcome of a bulk send
type SendResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// ErrNoRecipients is returned when a campaign has nobody to send to
type ErrNoRecipients struct {
	CampaignID int64
}

func (e *ErrNoRecipients) Error() string {
	return "No emails found for the given campaign."
}

// SendService delivers stored templates to campaign recipients
type SendService interface {
	SendCampaign(ctx context.Context, req SendCampaignRequest) (*SendResult, error)
}
