// Package client provides the core QuickPin HTTP client with credential
// resolution, structured errors, and request metrics.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// API endpoint paths, relative to the configured base URL.
const (
	AuthPath    = "/api/authentication/"
	ProfilePath = "/api/profile/"
	SearchPath  = "/api/search/"
)

// authHeader carries the bearer token on every authenticated request.
const authHeader = "X-Auth"

// Prometheus metrics for QuickPin client operations.
var (
	qpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickpin_requests_total",
		Help: "Total QuickPin requests by endpoint and status",
	}, []string{"endpoint", "status"})

	qpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quickpin_request_duration_seconds",
		Help:    "QuickPin request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	qpErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickpin_errors_total",
		Help: "Total QuickPin client errors by kind",
	}, []string{"kind"})
)

// Client is an authenticated session against a QuickPin deployment. The base
// URL and token are set at construction and read-only afterwards.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     zerolog.Logger
}

// Config holds the client configuration. The caller supplies either a
// pre-resolved Token or a Username/Password pair to exchange for one.
type Config struct {
	// BaseURL of the QuickPin deployment, e.g. "https://quickpin.example.com".
	BaseURL string

	// Token, if non-empty, is used as-is and no login exchange is performed.
	Token string

	// Username and Password are exchanged for a token when Token is empty.
	Username string
	Password string

	// Timeout per HTTP request.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification. QuickPin
	// deployments commonly run with self-signed certificates, so this
	// defaults to true; set it to false in stricter environments.
	InsecureSkipVerify bool

	// HTTPClient overrides the default transport (for testing).
	HTTPClient *http.Client
}

// DefaultConfig returns a safe default configuration for the given base URL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:            baseURL,
		Timeout:            30 * time.Second,
		InsecureSkipVerify: true,
	}
}

// New creates a new QuickPin client. When no token is supplied the login
// exchange happens here, so construction can block on a network round trip
// and can fail with an authentication or transport error.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, newError(KindInvalidArgument, "base URL is required")
	}

	logger := log.With().Str("component", "quickpin-client").Logger()

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
	}

	token, err := resolveToken(ctx, httpClient, c.baseURL, cfg)
	if err != nil {
		return nil, err
	}
	c.token = token

	logger.Debug().
		Str("base_url", c.baseURL).
		Msg("Client initialized")

	return c, nil
}

// Token returns the resolved API token.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Post issues an authenticated POST with a JSON body and returns the raw
// response bytes.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{
			Kind:    KindInvalidArgument,
			Message: "encoding request body",
			Err:     err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Get issues an authenticated GET with the given query parameters and
// returns the parsed JSON body.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "creating request", Err: err}
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, &Error{Kind: KindTransport, Message: "response is not valid JSON"}
	}
	return json.RawMessage(body), nil
}

// do executes an authenticated request and maps failures onto the error
// taxonomy. Non-2xx responses surface as transport errors carrying the
// status code and body; callers never inspect status codes themselves.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.token == "" {
		qpErrorsTotal.WithLabelValues(string(KindNotAuthenticated)).Inc()
		return nil, newError(KindNotAuthenticated, "no token resolved, authenticate first")
	}
	req.Header.Set(authHeader, c.token)

	endpoint := req.URL.Path
	start := time.Now()
	defer func() {
		qpRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing QuickPin request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		qpErrorsTotal.WithLabelValues(string(KindTransport)).Inc()
		qpRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, &Error{Kind: KindTransport, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		qpErrorsTotal.WithLabelValues(string(KindTransport)).Inc()
		return nil, &Error{Kind: KindTransport, Message: "reading response body", Err: err}
	}

	qpRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("QuickPin request error")
		qpErrorsTotal.WithLabelValues(string(KindTransport)).Inc()
		return nil, &Error{
			Kind:       KindTransport,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			Body:       body,
		}
	}

	return body, nil
}
