package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"time"
)

// DefaultTimeout for HTTP requests
const DefaultTimeout = 10 * time.Second

// Client is a generic JSON HTTP client for communicating with external services
type Client struct {
	BaseURL    string
	HTTPClient *nethttp.Client
	headers    map[string]string
}

// NewClient creates a new HTTP client
func NewClient(serviceURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		BaseURL: serviceURL,
		HTTPClient: &nethttp.Client{
			Timeout: timeout,
		},
		headers: make(map[string]string),
	}
}

// SetHeader sets a header applied to every request, e.g. Authorization
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// PostJSON performs a POST request with a JSON body and decodes the JSON response
func (c *Client) PostJSON(ctx context.Context, endpoint string, body interface{}, result interface{}) (int, error) {
	return c.doJSON(ctx, nethttp.MethodPost, endpoint, body, result)
}

// GetJSON performs a GET request and decodes the JSON response
func (c *Client) GetJSON(ctx context.Context, endpoint string, result interface{}) (int, error) {
	return c.doJSON(ctx, nethttp.MethodGet, endpoint, nil, result)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body interface{}, result interface{}) (int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}

	return resp.StatusCode, nil
}
