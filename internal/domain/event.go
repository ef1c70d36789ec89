package domain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

//go:generate mockgen -destination mocks/mock_event_bus.go -package mocks github.com/mailforge/mailforge/internal/domain EventBus

// EventType defines the type of an event
type EventType string

const (
	EventTemplateCreated EventType = "template.created"
	EventTemplateDeleted EventType = "template.deleted"
	EventCampaignSent    EventType = "campaign.sent"
)

// DefaultEventHandlerTimeout bounds each handler when the publisher waits for acknowledgement
const DefaultEventHandlerTimeout = 5 * time.Second

// EventPayload represents the data associated with an event
type EventPayload struct {
	Type     EventType              `json:"type"`
	EntityID string                 `json:"entity_id"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// EventHandler is a function that handles events
type EventHandler func(ctx context.Context, payload EventPayload)

// EventAckCallback is called once every subscriber has processed an event
type EventAckCallback func(err error)

// SubscriptionID identifies a handler registered on the bus
type SubscriptionID uint64

// EventBus lets application components publish and subscribe to events.
// One bus lives for the lifetime of the App.
type EventBus interface {
	// Publish sends an event to all subscribers without waiting
	Publish(ctx context.Context, event EventPayload)

	// PublishWithAck sends an event to all subscribers and calls callback
	// when all of them returned, timed out or panicked
	PublishWithAck(ctx context.Context, event EventPayload, callback EventAckCallback)

	// Subscribe registers a handler for a specific event type
	Subscribe(eventType EventType, handler EventHandler) SubscriptionID

	// Unsubscribe removes a handler registered with Subscribe
	Unsubscribe(eventType EventType, id SubscriptionID)
}

type subscription struct {
	id      SubscriptionID
	handler EventHandler
}

// InMemoryEventBus is a simple in-memory implementation of the EventBus
type InMemoryEventBus struct {
	subscribers map[EventType][]subscription
	nextID      SubscriptionID
	timeout     time.Duration
	mu          sync.RWMutex
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make(map[EventType][]subscription),
		timeout:     DefaultEventHandlerTimeout,
	}
}

// Publish sends an event to all subscribers
func (b *InMemoryEventBus) Publish(ctx context.Context, event EventPayload) {
	b.PublishWithAck(ctx, event, nil)
}

// PublishWithAck sends an event to all subscribers and calls the acknowledgment callback
func (b *InMemoryEventBus) PublishWithAck(ctx context.Context, event EventPayload, callback EventAckCallback) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subscribers[event.Type]))
	copy(subs, b.subscribers[event.Type])
	b.mu.RUnlock()

	if len(subs) == 0 {
		if callback != nil {
			callback(nil)
		}
		return
	}

	// Handlers outlive the publishing request, so they keep its values but not its cancellation
	ctx = context.WithoutCancel(ctx)

	if callback == nil {
		for _, sub := range subs {
			go func(h EventHandler) {
				handlerCtx, cancel := context.WithTimeout(ctx, b.timeout)
				defer cancel()
				defer func() {
					if r := recover(); r != nil {
						fmt.Printf("ERROR: Panic in event handler: %v\n", r)
					}
				}()
				h(handlerCtx, event)
			}(sub.handler)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(subs))
	errCh := make(chan error, len(subs))

	for _, sub := range subs {
		go func(h EventHandler) {
			defer wg.Done()

			handlerCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				defer func() {
					if r := recover(); r != nil {
						errCh <- fmt.Errorf("panic in event handler: %v", r)
					}
				}()
				h(handlerCtx, event)
			}()

			select {
			case <-done:
			case <-handlerCtx.Done():
				errCh <- fmt.Errorf("event handler timed out: %v", handlerCtx.Err())
			}
		}(sub.handler)
	}

	go func() {
		wg.Wait()
		close(errCh)

		var msgs []string
		for err := range errCh {
			msgs = append(msgs, err.Error())
		}
		if len(msgs) > 0 {
			callback(fmt.Errorf("%d errors occurred processing event %s: %s", len(msgs), event.Type, strings.Join(msgs, "; ")))
			return
		}
		callback(nil)
	}()
}

// Subscribe registers a handler for a specific event type
func (b *InMemoryEventBus) Subscribe(eventType EventType, handler EventHandler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subscribers[eventType] = append(b.subscribers[eventType], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes a handler for an event type
func (b *InMemoryEventBus) Unsubscribe(eventType EventType, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[eventType]
	for i, sub := range subs {
		if sub.id == id {
			remaining := make([]subscription, 0, len(subs)-1)
			remaining = append(remaining, subs[:i]...)
			remaining = append(remaining, subs[i+1:]...)
			b.subscribers[eventType] = remaining
			return
		}
	}
}
