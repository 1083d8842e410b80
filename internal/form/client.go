package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/BerylCAtieno/scheme-recommender/internal/metrics"
	"github.com/BerylCAtieno/scheme-recommender/internal/models"
)

// SchemesPath is the recommendation endpoint, relative to the base URL.
const SchemesPath = "/get_schemes"

// Client posts profiles to a scheme-recommendation service.
type Client struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewClient creates a Client. A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  log.With(map[string]interface{}{"component": "schemes-client"}),
	}
}

// FetchSchemes makes one attempt to fetch recommendations for p. Any
// transport, status or decoding failure collapses into the generic
// models.FetchFailed response; the detail is only logged.
func (c *Client) FetchSchemes(ctx context.Context, p models.Profile) models.SchemeResponse {
	start := time.Now()
	defer func() { metrics.UpstreamDuration.Observe(time.Since(start).Seconds()) }()

	resp, err := c.post(ctx, p)
	if err != nil {
		c.logger.WithError(err).Error("fetch schemes failed", map[string]interface{}{
			"url": c.baseURL + SchemesPath,
		})
		return models.FetchFailed()
	}
	return *resp
}

func (c *Client) post(ctx context.Context, p models.Profile) (*models.SchemeResponse, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SchemesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out models.SchemeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
