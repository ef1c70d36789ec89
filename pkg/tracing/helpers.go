package tracing

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opencensus.io/trace"
)

// StartServiceSpan starts a span named "<service>.<method>"
func StartServiceSpan(ctx context.Context, serviceName, methodName string) (context.Context, *trace.Span) {
	return trace.StartSpan(ctx, fmt.Sprintf("%s.%s", serviceName, methodName))
}

// EndSpan ends a span, marking it failed when err is set
func EndSpan(span *trace.Span, err error) {
	if err != nil {
		span.SetStatus(errorStatus(err))
	}
	span.End()
}

// AddAttribute attaches key=value to the span carried by ctx, if any.
// Ids, counts and cursor coordinates keep their numeric type.
func AddAttribute(ctx context.Context, key string, value interface{}) {
	span := trace.FromContext(ctx)
	if span == nil {
		return
	}

	var attr trace.Attribute
	switch v := value.(type) {
	case string:
		attr = trace.StringAttribute(key, v)
	case int64:
		attr = trace.Int64Attribute(key, v)
	case int:
		attr = trace.Int64Attribute(key, int64(v))
	case float64:
		attr = trace.Float64Attribute(key, v)
	case bool:
		attr = trace.BoolAttribute(key, v)
	default:
		attr = trace.StringAttribute(key, fmt.Sprint(v))
	}
	span.AddAttributes(attr)
}

// MarkSpanError marks the span carried by ctx as failed
func MarkSpanError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if span := trace.FromContext(ctx); span != nil {
		span.SetStatus(errorStatus(err))
	}
}

func errorStatus(err error) trace.Status {
	return trace.Status{
		Code:    trace.StatusCodeUnknown,
		Message: err.Error(),
	}
}

// WrapHTTPClient returns a copy of client whose transport propagates spans.
// A nil client gets a 30s timeout.
func WrapHTTPClient(client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	transport := GetHTTPOptions()
	transport.Base = client.Transport

	return &http.Client{
		Transport:     &transport,
		Timeout:       client.Timeout,
		Jar:           client.Jar,
		CheckRedirect: client.CheckRedirect,
	}
}
