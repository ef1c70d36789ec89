package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/liquid"
	"github.com/mailforge/mailforge/pkg/logger"
	"github.com/mailforge/mailforge/pkg/tracing"
)

// TemplateService stores templates locally and renders previews
type TemplateService struct {
	repo     domain.TemplateRepository
	renderer liquid.Renderer
	eventBus domain.EventBus
	tracer   tracing.Tracer
	logger   logger.Logger
}

func NewTemplateService(repo domain.TemplateRepository, renderer liquid.Renderer, eventBus domain.EventBus, logger logger.Logger) *TemplateService {
	return &TemplateService{
		repo:     repo,
		renderer: renderer,
		eventBus: eventBus,
		tracer:   tracing.GetTracer(),
		logger:   logger,
	}
}

// CreateTemplate validates and stores a template, then announces it on the event bus
func (s *TemplateService) CreateTemplate(ctx context.Context, req domain.CreateTemplateRequest) (*domain.Template, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TemplateService", "CreateTemplate")
	defer span.End()

	template, err := req.Validate()
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return nil, err
	}

	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		s.tracer.MarkSpanError(ctx, err)
		s.logger.WithField("template_name", template.Name).Error(fmt.Sprintf("Failed to create template: %v", err))
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.tracer.AddAttribute(ctx, "template_id", template.ID)

	s.eventBus.Publish(ctx, domain.EventPayload{
		Type:     domain.EventTemplateCreated,
		EntityID: strconv.FormatInt(template.ID, 10),
		Data: map[string]interface{}{
			"template_name": template.Name,
			"subject":       template.Subject,
		},
	})

	return template, nil
}

func (s *TemplateService) GetTemplate(ctx context.Context, id int64) (*domain.Template, error) {
	template, err := s.repo.GetTemplateByID(ctx, id)
	if err != nil {
		var notFound *domain.ErrTemplateNotFound
		if errors.As(err, &notFound) {
			return nil, err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to get template: %v", err))
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return template, nil
}

func (s *TemplateService) ListTemplates(ctx context.Context) ([]*domain.Template, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list templates: %v", err))
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		var notFound *domain.ErrTemplateNotFound
		if errors.As(err, &notFound) {
			return err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to delete template: %v", err))
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.eventBus.Publish(ctx, domain.EventPayload{
		Type:     domain.EventTemplateDeleted,
		EntityID: strconv.FormatInt(id, 10),
	})

	return nil
}

// PreviewTemplate renders the stored HTML with the sample personalization data
func (s *TemplateService) PreviewTemplate(ctx context.Context, id int64) (*domain.TemplatePreview, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TemplateService", "PreviewTemplate")
	defer span.End()
	s.tracer.AddAttribute(ctx, "template_id", id)

	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return nil, err
	}

	rendered, err := s.renderer.Render(ctx, template.HTMLContent, domain.PreviewSampleData())
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to render template preview: %v", err))
		return nil, fmt.Errorf("failed to render template preview: %w", err)
	}

	return &domain.TemplatePreview{
		TemplateName: template.Name,
		Subject:      template.Subject,
		HTMLContent:  rendered,
	}, nil
}
