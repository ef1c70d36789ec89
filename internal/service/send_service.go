package service

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/liquid"
	"github.com/mailforge/mailforge/pkg/logger"
	"github.com/mailforge/mailforge/pkg/mailer"
	"github.com/mailforge/mailforge/pkg/tracing"
)

// DefaultSendConcurrency bounds parallel deliveries when none is configured
const DefaultSendConcurrency = 5

// SendService renders a stored template for every recipient of a campaign and hands it to the mailer
type SendService struct {
	templateRepo domain.TemplateRepository
	campaignRepo domain.CampaignRepository
	renderer     liquid.Renderer
	mailer       mailer.Mailer
	eventBus     domain.EventBus
	concurrency  int
	tracer       tracing.Tracer
	logger       logger.Logger
}

func NewSendService(
	templateRepo domain.TemplateRepository,
	campaignRepo domain.CampaignRepository,
	renderer liquid.Renderer,
	mailer mailer.Mailer,
	eventBus domain.EventBus,
	concurrency int,
	logger logger.Logger,
) *SendService {
	if concurrency < 1 {
		concurrency = DefaultSendConcurrency
	}
	return &SendService{
		templateRepo: templateRepo,
		campaignRepo: campaignRepo,
		renderer:     renderer,
		mailer:       mailer,
		eventBus:     eventBus,
		concurrency:  concurrency,
		tracer:       tracing.GetTracer(),
		logger:       logger,
	}
}

// SendCampaign delivers the template to each recipient. A failed recipient is
// counted and logged; it never stops the others.
func (s *SendService) SendCampaign(ctx context.Context, req domain.SendCampaignRequest) (*domain.SendResult, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "SendService", "SendCampaign")
	defer span.End()

	if err := req.Validate(); err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return nil, err
	}

	s.tracer.AddAttribute(ctx, "campaign_id", req.CampaignID)
	s.tracer.AddAttribute(ctx, "template_id", req.TemplateID)

	log := s.logger.WithFields(map[string]interface{}{
		"campaign_id": req.CampaignID,
		"template_id": req.TemplateID,
	})

	if _, err := s.campaignRepo.GetCampaignByID(ctx, req.CampaignID); err != nil {
		s.tracer.MarkSpanError(ctx, err)
		if isCampaignNotFound(err) {
			return nil, &domain.ErrCampaignNotFound{Message: "Campaign not found."}
		}
		log.Error(fmt.Sprintf("Failed to load campaign: %v", err))
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	template, err := s.templateRepo.GetTemplateByID(ctx, req.TemplateID)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		if domain.IsNotFound(err) {
			return nil, &domain.ErrTemplateNotFound{Message: "Template not found."}
		}
		log.Error(fmt.Sprintf("Failed to load template: %v", err))
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	recipients, err := s.campaignRepo.ListRecipients(ctx, req.CampaignID)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		log.Error(fmt.Sprintf("Failed to list recipients: %v", err))
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil, &domain.ErrNoRecipients{CampaignID: req.CampaignID}
	}

	var sent, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, recipient := range recipients {
		recipient := recipient
		g.Go(func() error {
			if err := s.sendOne(gctx, template, recipient, req.Message); err != nil {
				failed.Add(1)
				log.WithField("email_address", recipient.EmailAddress).Error(fmt.Sprintf("Failed to send email: %v", err))
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	// workers never return errors
	_ = g.Wait()

	result := &domain.SendResult{
		Sent:   int(sent.Load()),
		Failed: int(failed.Load()),
	}

	tracing.RecordSendResult(ctx, result.Sent, result.Failed)
	s.tracer.AddAttribute(ctx, "sent", result.Sent)
	s.tracer.AddAttribute(ctx, "failed", result.Failed)

	log.Info(fmt.Sprintf("Campaign send finished: %d sent, %d failed", result.Sent, result.Failed))

	s.eventBus.Publish(ctx, domain.EventPayload{
		Type:     domain.EventCampaignSent,
		EntityID: strconv.FormatInt(req.CampaignID, 10),
		Data: map[string]interface{}{
			"template_id": req.TemplateID,
			"sent":        result.Sent,
			"failed":      result.Failed,
		},
	})

	return result, nil
}

func (s *SendService) sendOne(ctx context.Context, template *domain.Template, recipient *domain.Recipient, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := s.renderer.Render(ctx, template.HTMLContent, map[string]interface{}{
		"name":    recipient.DisplayName(),
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return s.mailer.SendEmail(ctx, mailer.Email{
		To:       recipient.EmailAddress,
		ToName:   recipient.Name,
		Subject:  template.Subject,
		HTMLBody: body,
	})
}
