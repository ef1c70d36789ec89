package tracing

import (
	"context"
	"net/http"

	"go.opencensus.io/trace"
)

// Tracer defines the tracing calls services make
type Tracer interface {
	// StartServiceSpan starts a new span for a service method
	StartServiceSpan(ctx context.Context, serviceName, methodName string) (context.Context, *trace.Span)

	// EndSpan ends a span and records any error
	EndSpan(span *trace.Span, err error)

	// AddAttribute adds an attribute to the current span
	AddAttribute(ctx context.Context, key string, value interface{})

	// MarkSpanError marks the current span as failed with the given error
	MarkSpanError(ctx context.Context, err error)

	// WrapHTTPClient wraps an http.Client with OpenCensus tracing
	WrapHTTPClient(client *http.Client) *http.Client
}

// DefaultTracer is the default implementation of the Tracer interface
type DefaultTracer struct{}

// NewTracer creates a new DefaultTracer
func NewTracer() Tracer {
	return &DefaultTracer{}
}

func (t *DefaultTracer) StartServiceSpan(ctx context.Context, serviceName, methodName string) (context.Context, *trace.Span) {
	return StartServiceSpan(ctx, serviceName, methodName)
}

func (t *DefaultTracer) EndSpan(span *trace.Span, err error) {
	EndSpan(span, err)
}

func (t *DefaultTracer) AddAttribute(ctx context.Context, key string, value interface{}) {
	AddAttribute(ctx, key, value)
}

func (t *DefaultTracer) MarkSpanError(ctx context.Context, err error) {
	MarkSpanError(ctx, err)
}

func (t *DefaultTracer) WrapHTTPClient(client *http.Client) *http.Client {
	return WrapHTTPClient(client)
}

var globalTracer Tracer = NewTracer()

// GetTracer returns the global tracer instance
func GetTracer() Tracer {
	return globalTracer
}

// SetTracer sets the global tracer instance
func SetTracer(tracer Tracer) {
	globalTracer = tracer
}
