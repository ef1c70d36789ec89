package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/logger"
)

// TemplateAPIClient stores builder output in a remote template store
type TemplateAPIClient struct {
	httpClient domain.HTTPClient
	endpoint   string
	logger     logger.Logger
}

// NewTemplateAPIClient creates a client posting to <endpoint>/templates/create/
func NewTemplateAPIClient(httpClient domain.HTTPClient, endpoint string, logger logger.Logger) *TemplateAPIClient {
	return &TemplateAPIClient{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(endpoint, "/"),
		logger:     logger,
	}
}

// CreateTemplate posts the template. A non-2xx answer becomes a TemplateAPIError
// carrying the store's "error" field when it sent one.
func (c *TemplateAPIClient) CreateTemplate(ctx context.Context, req domain.CreateTemplateRequest) (*domain.Template, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/templates/create/", bytes.NewBuffer(jsonData))
	if err != nil {
		c.logger.Error(fmt.Sprintf("Failed to create request for template store: %v", err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error(fmt.Sprintf("Failed to execute request to template store: %v", err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithField("status", resp.StatusCode).Error(fmt.Sprintf("Template store returned non-OK status code %d: %s", resp.StatusCode, string(body)))
		message := domain.MessageTemplateSaveFailed
		if errField := gjson.GetBytes(body, "error"); errField.Exists() && errField.String() != "" {
			message = errField.String()
		}
		return nil, &domain.TemplateAPIError{StatusCode: resp.StatusCode, Message: message}
	}

	template := &domain.Template{
		Name:        req.TemplateName,
		Subject:     req.Subject,
		HTMLContent: req.HTMLContent,
	}
	// the store may answer with the created row or just a message
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		if id := parsed.Get("template_id"); id.Exists() {
			template.ID = id.Int()
		} else if id := parsed.Get("id"); id.Exists() {
			template.ID = id.Int()
		}
	}

	return template, nil
}
