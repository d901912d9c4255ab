package requestor

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"netki/pkg/platform/metrics"
)

const (
	// DefaultTimeout bounds a single call when no http.Client is supplied.
	DefaultTimeout = 30 * time.Second

	DefaultUserAgent = "netki-go"
)

type doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Option configures an HTTPRequestor.
type Option func(r *HTTPRequestor)

// WithHTTPClient sets the raw http client used for every call.
func WithHTTPClient(c *http.Client) Option {
	return func(r *HTTPRequestor) {
		r.doer = c
	}
}

func withDoer(d doer) Option {
	return func(r *HTTPRequestor) {
		r.doer = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *HTTPRequestor) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *HTTPRequestor) {
		r.metrics = m
	}
}

// WithTracer overrides the global otel tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *HTTPRequestor) {
		r.tracer = t
	}
}

// WithUserAgent sets the User-Agent header. An empty value leaves net/http's default.
func WithUserAgent(ua string) Option {
	return func(r *HTTPRequestor) {
		r.userAgent = ua
	}
}
