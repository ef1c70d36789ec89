package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/logger"
)

// NotifiedEvents are forwarded to the event webhook when one is configured
var NotifiedEvents = []domain.EventType{
	domain.EventTemplateCreated,
	domain.EventTemplateDeleted,
	domain.EventCampaignSent,
}

// EventWebhookNotifier posts bus events to an external URL, signed with the
// Standard Webhooks scheme (webhook-id, webhook-timestamp, webhook-signature)
type EventWebhookNotifier struct {
	httpClient domain.HTTPClient
	url        string
	signer     *svix.Webhook
	now        func() time.Time
	logger     logger.Logger
}

// NewEventWebhookNotifier fails when secret is not a valid "whsec_" base64 key
func NewEventWebhookNotifier(httpClient domain.HTTPClient, url, secret string, logger logger.Logger) (*EventWebhookNotifier, error) {
	signer, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid event webhook secret: %w", err)
	}
	return &EventWebhookNotifier{
		httpClient: httpClient,
		url:        url,
		signer:     signer,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// Subscribe registers the notifier for every notified event type
func (n *EventWebhookNotifier) Subscribe(bus domain.EventBus) {
	for _, eventType := range NotifiedEvents {
		bus.Subscribe(eventType, n.Handle)
	}
}

// Handle delivers one event. Failures are logged, never retried.
func (n *EventWebhookNotifier) Handle(ctx context.Context, payload domain.EventPayload) {
	if err := n.Deliver(ctx, payload); err != nil {
		n.logger.WithFields(map[string]interface{}{
			"event_type": string(payload.Type),
			"entity_id":  payload.EntityID,
			"error":      err.Error(),
		}).Warn("Failed to deliver event webhook")
	}
}

// Deliver signs and posts the event envelope
func (n *EventWebhookNotifier) Deliver(ctx context.Context, payload domain.EventPayload) error {
	msgID := "msg_" + uuid.New().String()
	now := n.now().UTC()

	body, err := json.Marshal(map[string]interface{}{
		"id":        msgID,
		"type":      payload.Type,
		"entity_id": payload.EntityID,
		"timestamp": now.Format(time.RFC3339),
		"data":      payload.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	signature, err := n.signer.Sign(msgID, now, body)
	if err != nil {
		return fmt.Errorf("failed to sign event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("webhook-id", msgID)
	req.Header.Set("webhook-timestamp", fmt.Sprintf("%d", now.Unix()))
	req.Header.Set("webhook-signature", signature)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post event: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("event webhook returned HTTP %d", resp.StatusCode)
	}

	n.logger.WithField("event_type", string(payload.Type)).Debug("Event webhook delivered")
	return nil
}
