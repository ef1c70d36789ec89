package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/logger"
	"github.com/mailforge/mailforge/pkg/tracing"
)

// CampaignService manages campaigns and the recipients attached to them
type CampaignService struct {
	repo   domain.CampaignRepository
	tracer tracing.Tracer
	logger logger.Logger
}

func NewCampaignService(repo domain.CampaignRepository, logger logger.Logger) *CampaignService {
	return &CampaignService{
		repo:   repo,
		tracer: tracing.GetTracer(),
		logger: logger,
	}
}

func (s *CampaignService) CreateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "CampaignService", "CreateCampaign")
	defer span.End()

	if err := campaign.Validate(); err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return domain.NewValidationError(strings.TrimPrefix(err.Error(), "invalid campaign: "))
	}

	now := time.Now().UTC()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	if err := s.repo.CreateCampaign(ctx, campaign); err != nil {
		s.tracer.MarkSpanError(ctx, err)
		s.logger.WithField("campaign_name", campaign.Name).Error(fmt.Sprintf("Failed to create campaign: %v", err))
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	s.tracer.AddAttribute(ctx, "campaign_id", campaign.ID)
	return nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	campaign, err := s.repo.GetCampaignByID(ctx, id)
	if err != nil {
		if isCampaignNotFound(err) {
			return nil, err
		}
		s.logger.WithField("campaign_id", id).Error(fmt.Sprintf("Failed to get campaign: %v", err))
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

func (s *CampaignService) ListCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	campaigns, err := s.repo.ListCampaigns(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list campaigns: %v", err))
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// UpdateCampaign renames a campaign
func (s *CampaignService) UpdateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	if err := campaign.Validate(); err != nil {
		return domain.NewValidationError(strings.TrimPrefix(err.Error(), "invalid campaign: "))
	}

	campaign.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateCampaign(ctx, campaign); err != nil {
		if isCampaignNotFound(err) {
			return err
		}
		s.logger.WithField("campaign_id", campaign.ID).Error(fmt.Sprintf("Failed to update campaign: %v", err))
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return nil
}

// DeleteCampaign removes a campaign; its recipients go with it
func (s *CampaignService) DeleteCampaign(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCampaign(ctx, id); err != nil {
		if isCampaignNotFound(err) {
			return err
		}
		s.logger.WithField("campaign_id", id).Error(fmt.Sprintf("Failed to delete campaign: %v", err))
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// AddRecipients attaches recipients to an existing campaign. Addresses already
// on the campaign are counted as processed but not created again.
func (s *CampaignService) AddRecipients(ctx context.Context, campaignID int64, recipients []*domain.Recipient) (*domain.AddRecipientsResult, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "CampaignService", "AddRecipients")
	defer span.End()
	s.tracer.AddAttribute(ctx, "campaign_id", campaignID)
	s.tracer.AddAttribute(ctx, "recipients", len(recipients))

	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return nil, err
	}

	// Addresses match exactly, like the recipients primary key. Within the
	// batch the first entry is kept and a later duplicate only updates its name.
	now := time.Now().UTC()
	seen := make(map[string]int, len(recipients))
	unique := make([]*domain.Recipient, 0, len(recipients))
	for _, r := range recipients {
		if i, ok := seen[r.EmailAddress]; ok {
			unique[i].Name = r.Name
			continue
		}
		r.CampaignID = campaignID
		r.AddedAt = now
		seen[r.EmailAddress] = len(unique)
		unique = append(unique, r)
	}

	created, err := s.repo.AddRecipients(ctx, unique)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		s.logger.WithField("campaign_id", campaignID).Error(fmt.Sprintf("Failed to add recipients: %v", err))
		return nil, fmt.Errorf("failed to add recipients: %w", err)
	}

	return &domain.AddRecipientsResult{
		Processed: len(recipients),
		Created:   created,
	}, nil
}

func (s *CampaignService) ListRecipients(ctx context.Context, campaignID int64) ([]*domain.Recipient, error) {
	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}

	recipients, err := s.repo.ListRecipients(ctx, campaignID)
	if err != nil {
		s.logger.WithField("campaign_id", campaignID).Error(fmt.Sprintf("Failed to list recipients: %v", err))
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	return recipients, nil
}

func (s *CampaignService) UpdateRecipient(ctx context.Context, campaignID int64, emailAddress string, name string) (*domain.Recipient, error) {
	recipient, err := s.repo.UpdateRecipientName(ctx, campaignID, strings.TrimSpace(emailAddress), strings.TrimSpace(name))
	if err != nil {
		if isRecipientNotFound(err) {
			return nil, err
		}
		s.logger.WithFields(map[string]interface{}{
			"campaign_id":   campaignID,
			"email_address": emailAddress,
		}).Error(fmt.Sprintf("Failed to update recipient: %v", err))
		return nil, fmt.Errorf("failed to update recipient: %w", err)
	}
	return recipient, nil
}

func (s *CampaignService) DeleteRecipient(ctx context.Context, campaignID int64, emailAddress string) error {
	if err := s.repo.DeleteRecipient(ctx, campaignID, strings.TrimSpace(emailAddress)); err != nil {
		if isRecipientNotFound(err) {
			return err
		}
		s.logger.WithFields(map[string]interface{}{
			"campaign_id":   campaignID,
			"email_address": emailAddress,
		}).Error(fmt.Sprintf("Failed to delete recipient: %v", err))
		return fmt.Errorf("failed to delete recipient: %w", err)
	}
	return nil
}

func isCampaignNotFound(err error) bool {
	var notFound *domain.ErrCampaignNotFound
	return errors.As(err, &notFound)
}

func isRecipientNotFound(err error) bool {
	var notFound *domain.ErrRecipientNotFound
	return errors.As(err, &notFound)
}
