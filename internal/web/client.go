package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"querybench/internal/benchmark"
)

// Client samples trials from a remote benchmark API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Sample runs one remote benchmark.
func (c *Client) Sample(ctx context.Context) (benchmark.Trial, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/benchmark", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("benchmark request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("benchmark API returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var trial benchmark.Trial
	if err := json.NewDecoder(resp.Body).Decode(&trial); err != nil {
		return nil, fmt.Errorf("failed to decode trial: %w", err)
	}
	return trial, nil
}
