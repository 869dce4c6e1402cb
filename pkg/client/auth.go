package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// loginRequest is the body sent to the authentication endpoint. QuickPin
// calls the field "email" even though it accepts plain usernames.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResolveToken obtains an API token for the given configuration. A non-empty
// cfg.Token is returned unchanged with zero network calls; otherwise the
// username/password pair is exchanged for a token via the authentication
// endpoint. A response that parses but lacks a token field means the service
// rejected the credentials, which is distinct from a transport failure.
func ResolveToken(ctx context.Context, cfg Config) (string, error) {
	if cfg.Token != "" {
		return cfg.Token, nil
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return "", newError(KindInvalidArgument, "base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}

	return resolveToken(ctx, httpClient, strings.TrimRight(cfg.BaseURL, "/"), cfg)
}

// newHTTPClient builds the default transport for a configuration.
func newHTTPClient(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
			},
		},
	}
}

// resolveToken performs the login exchange. The request is deliberately
// unauthenticated, it is the one call allowed before a token exists.
func resolveToken(ctx context.Context, httpClient *http.Client, baseURL string, cfg Config) (string, error) {
	if cfg.Token != "" {
		return cfg.Token, nil
	}

	logger := log.With().Str("component", "quickpin-client").Logger()

	payload, err := json.Marshal(loginRequest{
		Email:    cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		return "", &Error{Kind: KindInvalidArgument, Message: "encoding login request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+AuthPath, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "creating login request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug().Str("endpoint", AuthPath).Msg("Exchanging credentials for token")

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("Login request failed")
		qpErrorsTotal.WithLabelValues(string(KindTransport)).Inc()
		return "", &Error{Kind: KindTransport, Message: "login request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		qpErrorsTotal.WithLabelValues(string(KindTransport)).Inc()
		return "", &Error{Kind: KindTransport, Message: "reading login response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn().Int("status", resp.StatusCode).Msg("Login request error")
		qpErrorsTotal.WithLabelValues(string(KindTransport)).Inc()
		return "", &Error{
			Kind:       KindTransport,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			Body:       body,
		}
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &loginResp); err != nil || loginResp.Token == "" {
		logger.Warn().Msg("Login response has no token")
		qpErrorsTotal.WithLabelValues(string(KindAuthentication)).Inc()
		return "", newError(KindAuthentication, "Authentication failed")
	}

	return loginResp.Token, nil
}
