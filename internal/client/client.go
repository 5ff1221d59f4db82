package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/airworthy/adcheck/internal/engine"
	"github.com/airworthy/adcheck/internal/rules"
)

// Client is an HTTP client for the adcheck API
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ExtractResult is the response of the extract endpoint.
type ExtractResult struct {
	Directive rules.Directive `json:"directive"`
	Warnings  []string        `json:"warnings,omitempty"`
	ETag      string          `json:"etag"`
}

// Extract submits raw directive text to the service for parsing and storage.
func (c *Client) Extract(ctx context.Context, text string) (*ExtractResult, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/directives:extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result ExtractResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// ListDirectives retrieves the full directive snapshot.
func (c *Client) ListDirectives(ctx context.Context) ([]rules.Directive, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/v1/directives", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result struct {
		Directives []rules.Directive `json:"directives"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Directives, nil
}

// GetDirective retrieves a single directive by ID.
func (c *Client) GetDirective(ctx context.Context, id string) (*rules.Directive, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/v1/directives/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("directive not found: %s", id)
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var d rules.Directive
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &d, nil
}

// EvaluateResult is the response of the evaluate endpoint.
type EvaluateResult struct {
	Aircraft  rules.AircraftConfig       `json:"aircraft"`
	Decisions []engine.DirectiveDecision `json:"decisions"`
	ETag      string                     `json:"etag"`
}

// Evaluate asks the service which stored directives affect the aircraft.
// directiveIDs restricts evaluation; empty means all.
func (c *Client) Evaluate(ctx context.Context, aircraft *rules.AircraftConfig, directiveIDs []string) (*EvaluateResult, error) {
	payload := struct {
		Aircraft     *rules.AircraftConfig `json:"aircraft"`
		DirectiveIDs []string              `json:"directiveIds,omitempty"`
	}{Aircraft: aircraft, DirectiveIDs: directiveIDs}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/evaluate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result EvaluateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}
