package tracing

import (
	"fmt"
	"net/http"

	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/mailforge/mailforge/config"
)

// Telemetry is what InitTracing registered with OpenCensus
type Telemetry struct {
	// MetricsHandler serves the prometheus scrape format, nil unless metrics are exported
	MetricsHandler http.Handler

	traceExporter trace.Exporter
	closeReporter func() error
}

// Close unregisters the trace exporter and flushes pending spans
func (t *Telemetry) Close() {
	if t == nil || t.traceExporter == nil {
		return
	}
	trace.UnregisterExporter(t.traceExporter)
	if f, ok := t.traceExporter.(interface{ Flush() }); ok {
		f.Flush()
	}
	if t.closeReporter != nil {
		_ = t.closeReporter()
	}
	t.traceExporter = nil
}

// InitTracing applies the sampler, registers the configured exporters and the
// HTTP, database and application views. Disabled tracing registers nothing.
func InitTracing(cfg *config.TracingConfig) (*Telemetry, error) {
	telemetry := &Telemetry{}
	if !cfg.Enabled {
		return telemetry, nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := telemetry.setTraceExporter(cfg); err != nil {
		return nil, err
	}

	handler, err := newMetricsHandler(cfg)
	if err != nil {
		telemetry.Close()
		return nil, err
	}
	telemetry.MetricsHandler = handler

	if err := RegisterHTTPServerViews(); err != nil {
		telemetry.Close()
		return nil, fmt.Errorf("failed to register HTTP server views: %w", err)
	}
	return telemetry, nil
}

func (t *Telemetry) setTraceExporter(cfg *config.TracingConfig) error {
	switch cfg.TraceExporter {
	case "none", "":
		return nil
	case "jaeger":
		if cfg.JaegerEndpoint == "" {
			return fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
		}
		exporter, err := jaeger.NewExporter(jaeger.Options{
			CollectorEndpoint: cfg.JaegerEndpoint,
			Process:           jaeger.Process{ServiceName: cfg.ServiceName},
		})
		if err != nil {
			return fmt.Errorf("failed to create Jaeger exporter: %w", err)
		}
		t.traceExporter = exporter
	case "zipkin":
		if cfg.ZipkinEndpoint == "" {
			return fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
		}
		reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
		t.traceExporter = zipkin.NewExporter(reporter, nil)
		t.closeReporter = reporter.Close
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	trace.RegisterExporter(t.traceExporter)
	return nil
}

// newMetricsHandler registers the prometheus exporter with the database and
// application views. It returns nil when no metrics exporter is configured.
func newMetricsHandler(cfg *config.TracingConfig) (http.Handler, error) {
	switch cfg.MetricsExporter {
	case "none", "":
		return nil, nil
	case "prometheus":
	default:
		return nil, fmt.Errorf("unsupported metrics exporter: %s", cfg.MetricsExporter)
	}

	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: cfg.ServiceName})
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	view.RegisterExporter(exporter)

	if err := registerCustomViews(); err != nil {
		return nil, err
	}
	return exporter, nil
}

// registerCustomViews registers database and application views
func registerCustomViews() error {
	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}
	if err := view.Register(ApplicationViews()...); err != nil {
		return fmt.Errorf("failed to register application views: %w", err)
	}
	return nil
}

// GetHTTPOptions names outgoing client spans "<METHOD> <path>"
func GetHTTPOptions() ochttp.Transport {
	return ochttp.Transport{
		FormatSpanName: func(req *http.Request) string {
			return fmt.Sprintf("%s %s", req.Method, req.URL.Path)
		},
	}
}

// RegisterHTTPServerViews registers views for HTTP server metrics
func RegisterHTTPServerViews() error {
	return view.Register(
		ochttp.ServerRequestCountView,
		ochttp.ServerLatencyView,
		ochttp.ServerResponseCountByStatusCode,
	)
}
