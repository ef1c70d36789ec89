package middleware

import (
	"context"
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware opens an OpenCensus server span per request, named after the RPC path
func TracingMiddleware(next http.Handler) http.Handler {
	handler := &ochttp.Handler{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if span := trace.FromContext(r.Context()); span != nil {
				span.AddAttributes(
					trace.StringAttribute("http.method", r.Method),
					trace.StringAttribute("http.path", r.URL.Path),
					trace.StringAttribute("http.user_agent", r.UserAgent()),
				)
				if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
					span.AddAttributes(trace.StringAttribute("builder.session_id", sessionID))
				}
				if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
					span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
				}
			}

			next.ServeHTTP(&statusRecorder{ResponseWriter: w, ctx: r.Context()}, r)
		}),
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}

	return handler
}

// statusRecorder marks the request span as failed on 4xx and 5xx answers
type statusRecorder struct {
	http.ResponseWriter
	ctx    context.Context
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code

	if span := trace.FromContext(s.ctx); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
		if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeUnknown,
				Message: http.StatusText(code),
			})
		}
	}

	s.ResponseWriter.WriteHeader(code)
}

var _ http.ResponseWriter = (*statusRecorder)(nil)
