// Package client provides a Go client for the Ray dashboard events API.
//
// The client maps each call onto a single GET request against the events
// service and decodes the JSON envelope it returns. It does not retry, cache,
// paginate or deduplicate requests; every call is an independent exchange on
// the shared transport.
//
// Basic usage:
//
//	c := client.NewClient(client.Config{
//	    Host: "http://127.0.0.1:8265",
//	})
//
//	events, err := c.GetEvents(ctx, "02000000")
//	if errors.Is(err, client.ErrJobIDRequired) {
//	    // no request was sent
//	}
//
// When ClientID is set, the transport authenticates with the OAuth2
// client-credentials flow and reuses the token until it expires.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// defaultTimeout bounds every request made through the shared transport.
	defaultTimeout = 30 * time.Second

	// requestIDHeader carries a fresh identifier on every outbound request.
	requestIDHeader = "X-Request-Id"
)

// ErrJobIDRequired is returned by the job-scoped calls when the job ID is
// empty. No request is sent in that case.
var ErrJobIDRequired = errors.New("job id is required")

// Client is the events API client.
//
// The client holds no per-call state and is safe for concurrent use. Calls
// made from different goroutines produce independent requests and their
// responses may complete in any order.
type Client struct {
	httpClient *http.Client
	host       string
}

// Config contains the configuration for creating a new Client.
type Config struct {
	// Host is the base URL of the dashboard, e.g. "http://127.0.0.1:8265".
	Host string

	// Timeout for each request. Defaults to 30 seconds.
	Timeout time.Duration

	// Optional OAuth2 client credentials. When ClientID is empty the
	// transport sends unauthenticated requests.
	ClientID     string
	ClientSecret string
	TokenURL     string
	Audience     string
}

// NewClient creates a new events API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: newHTTPClient(cfg, timeout),
		host:       strings.TrimRight(cfg.Host, "/"),
	}
}

// newHTTPClient builds the shared transport. Authentication, when
// configured, lives entirely here so that the event calls stay unaware of it.
func newHTTPClient(cfg Config, timeout time.Duration) *http.Client {
	base := &http.Client{Timeout: timeout}
	if cfg.ClientID == "" {
		return base
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	if cfg.Audience != "" {
		cc.EndpointParams = url.Values{"audience": {cfg.Audience}}
	}

	// The token source uses the base client for its own token requests.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	authed := cc.Client(ctx)
	authed.Timeout = timeout
	return authed
}

// get performs a single GET request and decodes the response into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	reqURL := c.host + path
	if encoded := query.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return handleResponse(resp, result)
}

// APIError represents a non-2xx response from the events API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error is a 404 Not Found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsBadRequest returns true if the error is a 400 Bad Request error.
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true if the error is a 403 Forbidden error.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsClientError returns true if the error is a 4xx client error.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError returns true if the error is a 5xx server error.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// handleResponse processes an HTTP response and returns an error if not successful.
func handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
