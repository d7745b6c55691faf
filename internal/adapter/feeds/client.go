// Package feeds fetches raw payloads from the three upstream space feeds.
package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/space-dashboard/internal/config"
	"github.com/couchcryptid/space-dashboard/internal/domain"
	"github.com/couchcryptid/space-dashboard/internal/observability"
)

// maxErrorBody caps how much of a failed response body is kept in the error.
const maxErrorBody = 512

// Client talks to the picture, launch and body providers. Every failure is
// returned as a *domain.FetchError.
type Client struct {
	apiKey      string
	httpClient  *http.Client
	apodURL     string
	launchesURL string
	bodiesURL   string
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates a feed client from the provider settings in cfg. A zero
// HTTPClientTimeout leaves requests bounded only by their context.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: cfg.NASAAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.HTTPClientTimeout,
		},
		apodURL:     cfg.APODBaseURL,
		launchesURL: cfg.LaunchesBaseURL,
		bodiesURL:   cfg.BodiesBaseURL,
		metrics:     metrics,
		logger:      logger,
	}
}

// getJSON issues a GET and decodes a 200 response into v.
func (c *Client) getJSON(ctx context.Context, provider domain.Provider, fullURL string, v any) error {
	start := time.Now()
	err := c.doRequest(ctx, provider, fullURL, v)
	c.metrics.FetchDuration.WithLabelValues(string(provider)).Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.FetchRequests.WithLabelValues(string(provider), outcome).Inc()
	return err
}

func (c *Client) doRequest(ctx context.Context, provider domain.Provider, fullURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return &domain.FetchError{Provider: provider, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.FetchError{Provider: provider, Err: fmt.Errorf("%s request: %w", provider, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.FetchError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s API error: %s", provider, body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &domain.FetchError{Provider: provider, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
