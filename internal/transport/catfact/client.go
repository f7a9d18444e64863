package catfact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
)

const (
	// DefaultBaseURL is the public cat fact API.
	DefaultBaseURL = "https://catfact.ninja"
	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 5 * time.Second
	// NoFact is returned when the API answers without a fact.
	NoFact = "Could not retrieve a cat fact."

	maxResponseBytes = 64 << 10
)

// Config holds the client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; its Timeout is left untouched.
	HTTPClient *http.Client
}

// Client fetches facts from a catfact.ninja-compatible API.
type Client struct {
	baseURL string
	http    *http.Client
}

type factResponse struct {
	Fact   string `json:"fact"`
	Length int    `json:"length"`
}

// New creates a fact client.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, http: hc}
}

// Fact implements domain.FactSource.
func (c *Client) Fact(ctx context.Context) (string, error) {
	var resp factResponse
	if err := c.get(ctx, "/fact", &resp); err != nil {
		return "", err
	}
	if resp.Fact == "" {
		return NoFact, nil
	}
	return resp.Fact, nil
}

// HealthCheck fetches one fact and discards it.
func (c *Client) HealthCheck(ctx context.Context) error {
	var resp factResponse
	return c.get(ctx, "/fact", &resp)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %v: %w", path, err, domain.ErrFactUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %v: %w", err, domain.ErrFactUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%d %s for url: %s: %w",
			resp.StatusCode, http.StatusText(resp.StatusCode), req.URL, domain.ErrFactUnavailable)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %v: %w", err, domain.ErrFactUnavailable)
	}
	return nil
}
