package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ClientConfig holds configuration for the inventory client.
type ClientConfig struct {
	// BaseURL is the root of the catalog service.
	BaseURL string
	// Token is an optional bearer credential sent with every request.
	Token string
	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// Client fetches grouped inventory snapshots from the catalog service.
type Client struct {
	http *resty.Client
}

// NewClient creates a catalog client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)
	if cfg.Token != "" {
		c.SetAuthToken(cfg.Token)
	}

	return &Client{http: c}
}

// FetchInventory retrieves the current grouped inventory snapshot.
func (c *Client) FetchInventory(ctx context.Context) (Grouped, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/inventory")
	if err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch inventory: unexpected status %s", resp.Status())
	}

	var groups Grouped
	if err := json.Unmarshal(resp.Body(), &groups); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	return groups, nil
}
