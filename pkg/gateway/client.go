package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/stepflow/internal/logging"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 30 * time.Second

const (
	statusPath  = "/status"
	executePath = "/execute"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20
)

// Descriptions attached to status notifications.
const (
	StatusReadyDescription  = "you can continue with the flow."
	StatusFailedDescription = "an error occurred while validating the API."
)

// Client calls the execution backend.
type Client struct {
	baseURL  string
	headers  http.Header
	http     *http.Client
	logger   *slog.Logger
	metrics  *Metrics
	flowName string
	policy   StepPolicy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = &http.Client{Timeout: d}
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithHeaders adds every header in h.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		for k, v := range h {
			c.headers.Set(k, v)
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics records every call on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithFlowName overrides domain.DefaultFlowName.
func WithFlowName(name string) Option {
	return func(c *Client) {
		c.flowName = name
	}
}

// WithStepPolicy chooses how malformed nodes are handled.
func WithStepPolicy(p StepPolicy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		headers:  http.Header{"Content-Type": []string{"application/json"}},
		http:     &http.Client{Timeout: DefaultTimeout},
		logger:   logging.NewNop(),
		flowName: domain.DefaultFlowName,
		policy:   FailFast,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// CheckStatus asks the backend whether it can accept flows.
// A 2xx answer yields OutcomeReady, anything else OutcomeUnavailable.
func (c *Client) CheckStatus(ctx context.Context) domain.Outcome {
	start := time.Now()
	code, body, err := c.do(ctx, http.MethodGet, statusPath, nil)

	out := domain.Outcome{
		HTTPStatus: code,
		Notification: domain.Notification{
			Title:    body.Message,
			Duration: domain.StatusNotificationDuration,
			Closable: true,
		},
	}
	switch {
	case err != nil:
		out.Status = domain.OutcomeUnavailable
		out.Err = err
		out.Notification.Title = "API unavailable"
		out.Notification.Description = StatusFailedDescription
		out.Notification.Severity = domain.SeverityError
		c.logger.Error("Status check failed", "error", err)
	case isSuccess(code):
		out.Status = domain.OutcomeReady
		out.Notification.Description = StatusReadyDescription
		out.Notification.Severity = domain.SeveritySuccess
		c.logger.Debug("API response", "status", code, "message", body.Message)
	default:
		out.Status = domain.OutcomeUnavailable
		out.Err = &domain.TransportError{Endpoint: statusPath, StatusCode: code}
		out.Notification.Description = StatusFailedDescription
		out.Notification.Severity = domain.SeverityError
		c.logger.Warn("Status check rejected", "status", code, "message", body.Message)
	}
	if out.Notification.Title == "" {
		out.Notification.Title = http.StatusText(code)
	}

	c.metrics.observe(EndpointStatus, string(out.Status), time.Since(start).Seconds())
	return out
}

// SubmitFlow converts nodes into an execution request and posts it.
// Steps follow the order of nodes; edges are not consulted.
func (c *Client) SubmitFlow(ctx context.Context, nodes []domain.Node) domain.Outcome {
	start := time.Now()
	req, err := BuildRequest(c.flowName, nodes, c.policy, c.logger)
	if err != nil {
		c.logger.Error("Error building flow", "error", err)
		return c.notSubmitted(start, err)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		c.logger.Error("Error encoding flow", "error", err)
		return c.notSubmitted(start, fmt.Errorf("failed to encode flow: %w", err))
	}

	code, body, err := c.do(ctx, http.MethodPost, executePath, payload)
	out := domain.Outcome{
		HTTPStatus: code,
		Request:    &req,
		Notification: domain.Notification{
			Title:       body.Message,
			Description: body.Details,
			Duration:    domain.ExecuteNotificationDuration,
			Closable:    true,
		},
	}
	switch {
	case err != nil:
		out.Status = domain.OutcomeFailed
		out.Err = err
		out.Notification.Title = "Error executing flow"
		out.Notification.Description = err.Error()
		out.Notification.Severity = domain.SeverityError
		c.logger.Error("Error executing flow", "error", err)
	case isSuccess(code):
		out.Status = domain.OutcomeAccepted
		out.Notification.Severity = domain.SeveritySuccess
		c.logger.Debug("Flow data", "status", code, "message", body.Message, "steps", len(req.Steps))
	default:
		out.Status = domain.OutcomeRejected
		out.Err = &domain.TransportError{Endpoint: executePath, StatusCode: code}
		out.Notification.Severity = domain.SeverityError
		c.logger.Warn("Flow rejected", "status", code, "message", body.Message)
	}
	if out.Notification.Title == "" {
		out.Notification.Title = http.StatusText(code)
	}

	c.metrics.observe(EndpointExecute, string(out.Status), time.Since(start).Seconds())
	return out
}

func (c *Client) notSubmitted(start time.Time, err error) domain.Outcome {
	out := domain.Outcome{
		Status: domain.OutcomeFailed,
		Err:    err,
		Notification: domain.Notification{
			Title:       "Flow not submitted",
			Description: err.Error(),
			Severity:    domain.SeverityError,
			Duration:    domain.ExecuteNotificationDuration,
			Closable:    true,
		},
	}
	c.metrics.observe(EndpointExecute, string(out.Status), time.Since(start).Seconds())
	return out
}

// do performs one call. A non-nil error is always a *domain.TransportError for a
// request that got no usable answer; non-2xx codes are returned without error.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, domain.APIResponse, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, domain.APIResponse{}, &domain.TransportError{Endpoint: path, Err: err}
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, domain.APIResponse{}, &domain.TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	var apiResp domain.APIResponse
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, apiResp, &domain.TransportError{Endpoint: path, StatusCode: resp.StatusCode, Err: err}
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &apiResp); err != nil {
			c.logger.Debug("Response body is not JSON", "path", path, "status", resp.StatusCode, "error", err)
		}
	}
	return resp.StatusCode, apiResp, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
