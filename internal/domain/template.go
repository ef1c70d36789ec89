package domain

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_template_service.go -package mocks github.com/mailforge/mailforge/internal/domain TemplateService
//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/mailforge/mailforge/internal/domain TemplateRepository

// Template is a stored email template: a name, a subject and the generated HTML
type Template struct {
	ID          int64     `json:"template_id"`
	Name        string    `json:"template_name"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("invalid template: template_name is required")
	}
	if len(t.Name) > 255 {
		return fmt.Errorf("invalid template: template_name length must be between 1 and 255")
	}
	if strings.TrimSpace(t.Subject) == "" {
		return fmt.Errorf("invalid template: subject is required")
	}
	if len(t.Subject) > 255 {
		return fmt.Errorf("invalid template: subject length must be between 1 and 255")
	}
	if t.HTMLContent == "" {
		return fmt.Errorf("invalid template: html_content is required")
	}
	return nil
}

// PreviewSampleData returns the context used to render template previews
func PreviewSampleData() MapOfAny {
	return MapOfAny{
		"name":    "John Doe",
		"message": "This is a sample message for the template preview.",
	}
}

// Request/Response types
type CreateTemplateRequest struct {
	TemplateName string `json:"template_name"`
	Subject      string `json:"subject"`
	HTMLContent  string `json:"html_content"`
}

func (r *CreateTemplateRequest) Validate() (*Template, error) {
	template := &Template{
		Name:        r.TemplateName,
		Subject:     r.Subject,
		HTMLContent: r.HTMLContent,
	}
	if err := template.Validate(); err != nil {
		return nil, NewValidationError(strings.TrimPrefix(err.Error(), "invalid template: "))
	}
	return template, nil
}

type GetTemplateRequest struct {
	ID int64 `json:"template_id"`
}

func (r *GetTemplateRequest) FromURLParams(queryParams url.Values) error {
	id, err := parseID(queryParams.Get("template_id"), "Template ID")
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

type DeleteTemplateRequest struct {
	ID int64 `json:"template_id"`
}

func (r *DeleteTemplateRequest) Validate() error {
	if r.ID <= 0 {
		return NewValidationError("Template ID is required")
	}
	return nil
}

// TemplatePreview is a stored template rendered with sample data
type TemplatePreview struct {
	TemplateName string `json:"template_name"`
	Subject      string `json:"subject"`
	HTMLContent  string `json:"html_content"`
}

// TemplateService provides operations for managing stored templates
type TemplateService interface {
	TemplateCreator

	// GetTemplate retrieves a template by ID
	GetTemplate(ctx context.Context, id int64) (*Template, error)

	// ListTemplates retrieves all templates, newest first
	ListTemplates(ctx context.Context) ([]*Template, error)

	// DeleteTemplate deletes a template by ID
	DeleteTemplate(ctx context.Context, id int64) error

	// PreviewTemplate renders a template with sample personalization data
	PreviewTemplate(ctx context.Context, id int64) (*TemplatePreview, error)
}

// TemplateRepository provides database operations for templates
type TemplateRepository interface {
	CreateTemplate(ctx context.Context, template *Template) error
	GetTemplateByID(ctx context.Context, id int64) (*Template, error)
	ListTemplates(ctx context.Context) ([]*Template, error)
	DeleteTemplate(ctx context.Context, id int64) error
}

// ErrTemplateNotFound is returned when a template is not found
type ErrTemplateNotFound struct {
	Message string
}

func (e *ErrTemplateNotFound) Error() string {
	return e.Message
}

func parseID(raw string, label string) (int64, error) {
	if raw == "" {
		return 0, NewValidationError(fmt.Sprintf("%s is required", label))
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewValidationError(fmt.Sprintf("%s must be a positive integer", label))
	}
	return id, nil
}
