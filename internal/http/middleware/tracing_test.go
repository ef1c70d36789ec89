package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opencensus.io/trace"
)

type recordingExporter struct {
	spans []*trace.SpanData
}

func (e *recordingExporter) ExportSpan(s *trace.SpanData) {
	e.spans = append(e.spans, s)
}

func TestTracingMiddleware(t *testing.T) {
	exporter := &recordingExporter{}
	trace.RegisterExporter(exporter)
	defer trace.UnregisterExporter(exporter)
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})

	t.Run("span is available to the handler", func(t *testing.T) {
		handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotNil(t, trace.FromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/builder.get?session_id=abc", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("error status marks the span", func(t *testing.T) {
		exporter.spans = nil
		handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/templates.get?template_id=9", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		if assert.NotEmpty(t, exporter.spans) {
			span := exporter.spans[len(exporter.spans)-1]
			assert.Equal(t, "GET /api/templates.get", span.Name)
			assert.NotEqual(t, int32(trace.StatusCodeOK), span.Status.Code)
		}
	})
}
