// Package requestor issues authenticated calls against the partner API and
// normalizes every failure into a single error channel (pkg/domain-errors).
package requestor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "netki/pkg/domain-errors"
	"netki/pkg/platform/metrics"
)

// Requestor is the transport capability every entity depends on.
type Requestor interface {
	// RawRequest issues one call and returns the status code and body without
	// interpreting either. A nil body means the response carried no body; a
	// non-nil empty slice means it carried an empty one.
	RawRequest(ctx context.Context, url, method string, body []byte) (int, []byte, error)

	// AuthenticatedRequest sends the call with partner credentials and returns
	// the response object as JSON text, or a normalized error.
	AuthenticatedRequest(ctx context.Context, apiKey, partnerID, url, method string, body []byte) (string, error)
}

const (
	headerAuthorization = "Authorization"
	headerPartnerID     = "X-Partner-ID"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"

	contentTypeJSON = "application/json"
)

var supportedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodDelete: {},
}

// IsSupportedMethod reports whether the partner API accepts method.
// Matching is exact; "get" is not GET.
func IsSupportedMethod(method string) bool {
	_, ok := supportedMethods[method]
	return ok
}

// HTTPRequestor is the net/http implementation of Requestor. It holds no
// per-call state and is safe for concurrent use.
type HTTPRequestor struct {
	doer      doer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	userAgent string
}

// New constructs an HTTPRequestor.
func New(opts ...Option) *HTTPRequestor {
	r := &HTTPRequestor{
		doer:      &http.Client{Timeout: DefaultTimeout},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:    otel.Tracer("netki/requestor"),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *HTTPRequestor) RawRequest(ctx context.Context, url, method string, body []byte) (int, []byte, error) {
	resp, err := r.send(ctx, url, method, body, nil)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.ContentLength == 0 {
		return resp.StatusCode, nil, nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, dErrors.Wrap(err, dErrors.CodeTransport, "failed to read response body")
	}
	return resp.StatusCode, data, nil
}

func (r *HTTPRequestor) AuthenticatedRequest(ctx context.Context, apiKey, partnerID, url, method string, body []byte) (string, error) {
	if !IsSupportedMethod(method) {
		r.incrementRequest(method, metrics.OutcomeRejected)
		return "", dErrors.New(dErrors.CodeInvalidArgument, fmt.Sprintf("unsupported HTTP method: %s", method))
	}

	ctx, span := r.tracer.Start(ctx, "netki.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", url),
		))
	defer span.End()

	start := time.Now()
	status, result, err := r.authenticatedRequest(ctx, apiKey, partnerID, url, method, body)
	r.observe(ctx, span, method, url, status, start, err)
	return result, err
}

func (r *HTTPRequestor) authenticatedRequest(ctx context.Context, apiKey, partnerID, url, method string, body []byte) (int, string, error) {
	header := make(http.Header, 3)
	header.Set(headerAuthorization, apiKey)
	header.Set(headerPartnerID, partnerID)
	header.Set(headerContentType, contentTypeJSON)

	resp, err := r.send(ctx, url, method, body, header)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	// Nothing to parse for a successful delete.
	if method == http.MethodDelete && resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, "", nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", dErrors.Wrap(err, dErrors.CodeTransport, "failed to read response body")
	}

	result, err := ParseResponse(resp.StatusCode, data)
	return resp.StatusCode, result, err
}

func (r *HTTPRequestor) send(ctx context.Context, url, method string, body []byte, header http.Header) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument, "failed to build request")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if r.userAgent != "" {
		req.Header.Set(headerUserAgent, r.userAgent)
	}

	resp, err := r.doer.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTransport, fmt.Sprintf("%s %s failed", method, url))
	}
	return resp, nil
}

func (r *HTTPRequestor) observe(ctx context.Context, span trace.Span, method, url string, status int, start time.Time, err error) {
	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	if r.metrics != nil {
		r.metrics.ObserveRequest(method, start)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.incrementRequest(method, outcomeFor(err))
		r.logger.WarnContext(ctx, "partner api request failed",
			"method", method,
			"url", url,
			"status", status,
			"code", dErrors.GetCode(err),
			"error", err,
		)
		return
	}

	r.incrementRequest(method, metrics.OutcomeSuccess)
	r.logger.DebugContext(ctx, "partner api request",
		"method", method,
		"url", url,
		"status", status,
		"duration", time.Since(start),
	)
}

func (r *HTTPRequestor) incrementRequest(method, outcome string) {
	if r.metrics != nil {
		r.metrics.IncrementRequest(method, outcome)
	}
}

func outcomeFor(err error) string {
	switch dErrors.GetCode(err) {
	case dErrors.CodeAPI:
		return metrics.OutcomeAPIError
	case dErrors.CodeTransport:
		return metrics.OutcomeTransport
	case dErrors.CodeParse:
		return metrics.OutcomeParse
	default:
		return metrics.OutcomeRejected
	}
}
