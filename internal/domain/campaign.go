package domain

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_campaign_service.go -package mocks github.com/mailforge/mailforge/internal/domain CampaignService
//go:generate mockgen -destination mocks/mock_campaign_repository.go -package mocks github.com/mailforge/mailforge/internal/domain CampaignRepository

// Campaign is a named grouping of recipients
type Campaign struct {
	ID        int64     `json:"campaign_id"`
	Name      string    `json:"campaign_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Campaign) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("invalid campaign: campaign_name is required")
	}
	if len(c.Name) > 255 {
		return fmt.Errorf("invalid campaign: campaign_name length must be between 1 and 255")
	}
	return nil
}

// Recipient is one email address attached to a campaign
type Recipient struct {
	EmailAddress string    `json:"email_address"`
	CampaignID   int64     `json:"campaign_id"`
	Name         string    `json:"name"`
	AddedAt      time.Time `json:"added_at"`
}

func (r *Recipient) Validate() error {
	if r.EmailAddress == "" {
		return fmt.Errorf("invalid recipient: email_address is required")
	}
	if !govalidator.IsEmail(r.EmailAddress) {
		return fmt.Errorf("invalid recipient: %s is not a valid email", r.EmailAddress)
	}
	if r.CampaignID <= 0 {
		return fmt.Errorf("invalid recipient: campaign_id is required")
	}
	if len(r.Name) > 255 {
		return fmt.Errorf("invalid recipient: name length must be at most 255")
	}
	return nil
}

// DisplayName returns the name used for personalization
func (r *Recipient) DisplayName() string {
	if strings.TrimSpace(r.Name) == "" {
		return "Valued Customer"
	}
	return r.Name
}

// Request/Response types
type CreateCampaignRequest struct {
	CampaignName string `json:"campaign_name"`
}

func (r *CreateCampaignRequest) Validate() (*Campaign, error) {
	campaign := &Campaign{Name: strings.TrimSpace(r.CampaignName)}
	if campaign.Name == "" {
		return nil, NewValidationError("Please enter a campaign name")
	}
	if err := campaign.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}
	return campaign, nil
}

type UpdateCampaignRequest struct {
	CampaignID   int64  `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
}

func (r *UpdateCampaignRequest) Validate() (*Campaign, error) {
	if r.CampaignID <= 0 || strings.TrimSpace(r.CampaignName) == "" {
		return nil, NewValidationError("campaign_id and campaign_name are required")
	}
	campaign := &Campaign{ID: r.CampaignID, Name: strings.TrimSpace(r.CampaignName)}
	if err := campaign.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}
	return campaign, nil
}

type DeleteCampaignRequest struct {
	CampaignID int64 `json:"campaign_id"`
}

func (r *DeleteCampaignRequest) Validate() error {
	if r.CampaignID <= 0 {
		return NewValidationError("campaign_id is required")
	}
	return nil
}

// RecipientInput is one row of an AddRecipientsRequest
type RecipientInput struct {
	EmailAddress string `json:"email_address"`
	Name         string `json:"name"`
}

type AddRecipientsRequest struct {
	CampaignID int64            `json:"campaign_id"`
	Recipients []RecipientInput `json:"recipients"`
}

// Validate trims inputs, drops rows without an address and rejects malformed ones
func (r *AddRecipientsRequest) Validate() ([]*Recipient, error) {
	if r.CampaignID <= 0 {
		return nil, NewValidationError("campaign_id is required")
	}
	if len(r.Recipients) == 0 {
		return nil, NewValidationError("recipients are required")
	}

	recipients := make([]*Recipient, 0, len(r.Recipients))
	for i, in := range r.Recipients {
		email := strings.TrimSpace(in.EmailAddress)
		if email == "" {
			continue
		}
		recipient := &Recipient{
			EmailAddress: email,
			CampaignID:   r.CampaignID,
			Name:         strings.TrimSpace(in.Name),
		}
		if err := recipient.Validate(); err != nil {
			return nil, NewValidationError(fmt.Sprintf("recipients[%d]: %s", i, err.Error()))
		}
		recipients = append(recipients, recipient)
	}
	if len(recipients) == 0 {
		return nil, NewValidationError("recipients are required")
	}
	return recipients, nil
}

// AddRecipientsResult reports how many rows were processed
type AddRecipientsResult struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
}

type ListRecipientsRequest struct {
	CampaignID int64 `json:"campaign_id"`
}

func (r *ListRecipientsRequest) FromURLParams(queryParams url.Values) error {
	id, err := parseID(queryParams.Get("campaign_id"), "campaign_id")
	if err != nil {
		return err
	}
	r.CampaignID = id
	return nil
}

type UpdateRecipientRequest struct {
	CampaignID   int64  `json:"campaign_id"`
	EmailAddress string `json:"email_address"`
	Name         string `json:"name"`
}

func (r *UpdateRecipientRequest) Validate() error {
	if r.CampaignID <= 0 || strings.TrimSpace(r.EmailAddress) == "" {
		return NewValidationError("email_address and campaign_id are required")
	}
	if len(r.Name) > 255 {
		return NewValidationError("name length must be at most 255")
	}
	return nil
}

type DeleteRecipientRequest struct {
	CampaignID   int64  `json:"campaign_id"`
	EmailAddress string `json:"email_address"`
}

func (r *DeleteRecipientRequest) Validate() error {
	if r.CampaignID <= 0 || strings.TrimSpace(r.EmailAddress) == "" {
		return NewValidationError("email_address and campaign_id are required")
	}
	return nil
}

// CampaignService manages campaigns and their recipients
type CampaignService interface {
	CreateCampaign(ctx context.Context, campaign *Campaign) error
	GetCampaign(ctx context.Context, id int64) (*Campaign, error)
	ListCampaigns(ctx context.Context) ([]*Campaign, error)
	UpdateCampaign(ctx context.Context, campaign *Campaign) error
	DeleteCampaign(ctx context.Context, id int64) error

	AddRecipients(ctx context.Context, campaignID int64, recipients []*Recipient) (*AddRecipientsResult, error)
	ListRecipients(ctx context.Context, campaignID int64) ([]*Recipient, error)
	UpdateRecipient(ctx context.Context, campaignID int64, emailAddress string, name string) (*Recipient, error)
	DeleteRecipient(ctx context.Context, campaignID int64, emailAddress string) error
}

// CampaignRepository provides database operations for campaigns and recipients
type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign *Campaign) error
	GetCampaignByID(ctx context.Context, id int64) (*Campaign, error)
	ListCampaigns(ctx context.Context) ([]*Campaign, error)
	UpdateCampaign(ctx context.Context, campaign *Campaign) error
	DeleteCampaign(ctx context.Context, id int64) error

	// AddRecipients inserts recipients, leaving existing (email, campaign) pairs untouched.
	// It returns the number of rows actually created.
	AddRecipients(ctx context.Context, recipients []*Recipient) (int, error)
	ListRecipients(ctx context.Context, campaignID int64) ([]*Recipient, error)
	UpdateRecipientName(ctx context.Context, campaignID int64, emailAddress string, name string) (*Recipient, error)
	DeleteRecipient(ctx context.Context, campaignID int64, emailAddress string) error
}

// ErrCampaignNotFound is returned when a campaign is not found
type ErrCampaignNotFound struct {
	Message string
}

func (e *ErrCampaignNotFound) Error() string {
	return e.Message
}

// ErrRecipientNotFound is returned when a recipient is not found
type ErrRecipientNotFound struct {
	Message string
}

func (e *ErrRecipientNotFound) Error() string {
	return e.Message
}
