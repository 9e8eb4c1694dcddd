package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/pkg/log"
)

const maxBodyBytes = 8 << 20

var _ core.Backend = (*Client)(nil)

// APIError is a backend reply that was not a success.
type APIError struct {
	StatusCode int
	Method     string
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Config configures the backend client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client calls the admin REST backend and decodes its response envelope.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     log.Logger
}

// NewClient creates a backend client.
func NewClient(cfg Config, logger log.Logger) *Client {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		logger:     logger.WithName("backend"),
	}
}

// PerformAction sends payload as JSON and decodes the {data, success, message, error} envelope.
func (c *Client) PerformAction(ctx context.Context, method, endpoint string, payload any) (*model.Result, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: request failed: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response body: %w", method, endpoint, err)
	}
	c.logger.Debug("Backend call", "method", method, "endpoint", endpoint,
		"status", resp.StatusCode, "duration", time.Since(start))

	result := &model.Result{}
	decodeErr := json.Unmarshal(raw, result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil {
			msg = firstNonEmpty(result.Error, result.Message, http.StatusText(resp.StatusCode))
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Method: method, Endpoint: endpoint, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%s %s: failed to decode response: %w", method, endpoint, decodeErr)
	}
	if !result.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Endpoint:   endpoint,
			Message:    firstNonEmpty(result.Error, result.Message, "request was not successful"),
		}
	}
	return result, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
