// Package client is the Go client for the assistant API, plus the chat
// session state that a frontend drives.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/langdocs/assistant/models"
)

// defaultTimeout is the fixed per-request timeout. There is no retry policy;
// a timeout surfaces as a plain failure.
const defaultTimeout = 60 * time.Second

// ErrBackendUnavailable is returned for transport-level failures where the
// backend never produced a response body.
var ErrBackendUnavailable = errors.New("backend unavailable")

// Client wraps outbound HTTP calls to the assistant backend. Pure
// request/response mapping; no retry, no caching, no batching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendChatMessage submits a question scoped by the given filter and returns
// the answer with its sources.
func (c *Client) SendChatMessage(ctx context.Context, question string, filter models.ServiceFilter) (*models.ChatResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, errors.New("question must not be empty")
	}
	if filter == "" {
		filter = models.FilterAll
	}

	body, err := json.Marshal(models.ChatRequest{
		Question:      question,
		ServiceFilter: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var resp models.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckHealth fetches the backend readiness status.
func (c *Client) CheckHealth(ctx context.Context) (*models.HealthResponse, error) {
	var resp models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSources lists the documentation services the backend knows about.
func (c *Client) GetSources(ctx context.Context) ([]models.ServiceInfo, error) {
	var resp models.SourcesResponse
	if err := c.do(ctx, http.MethodGet, "/api/sources", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sources, nil
}

// ReindexDocuments triggers re-indexing of the named services, or all of them
// when none are given. The response payload is ignored; the call is
// fire-and-forget from the client's perspective.
func (c *Client) ReindexDocuments(ctx context.Context, services ...string) error {
	path := "/api/index"
	if len(services) > 0 {
		path += "?services=" + url.QueryEscape(strings.Join(services, ","))
	}
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses surface the backend-provided error message when present.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New(errorMessage(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the backend's error detail from a failed response,
// falling back to a generic message.
func errorMessage(resp *http.Response) string {
	bodyBytes, _ := io.ReadAll(resp.Body)

	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(bodyBytes, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}
