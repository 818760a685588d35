// Package client is a Go client for the grading HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shreedharkb/Speechify/internal/api"
)

// APIError is a non-2xx response from the grading service.
type APIError struct {
	StatusCode int
	Code       string // the "error" field
	Message    string // the optional "message" field
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("grading service returned %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("grading service returned %d: %s", e.StatusCode, e.Code)
}

// Client calls a grading service at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client. A zero timeout means no client-side timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Health returns the service's health report.
func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var out api.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// Grade grades one answer.
func (c *Client) Grade(ctx context.Context, req api.GradeRequest) (api.GradeResponse, error) {
	var out api.GradeResponse
	err := c.do(ctx, http.MethodPost, "/grade", req, &out)
	return out, err
}

// BatchGrade grades several answers. Per-item failures are reported in the
// returned results, not as an error.
func (c *Client) BatchGrade(ctx context.Context, req api.BatchGradeRequest) (api.BatchGradeResponse, error) {
	var out api.BatchGradeResponse
	err := c.do(ctx, http.MethodPost, "/batch-grade", req, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Code: errBody.Error, Message: errBody.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
