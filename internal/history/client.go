package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tbessa/spotlight/internal/catalog"
)

// ClientConfig holds configuration for the history client.
type ClientConfig struct {
	// BaseURL is the root of the history service.
	BaseURL string
	// Token is an optional bearer credential sent with every request.
	Token string
	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// Client retrieves price-change history from the external history service.
type Client struct {
	http *resty.Client
}

// NewClient creates a history client. Every request bypasses intermediate
// caches: the widget must always observe the newest price changes.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Cache-Control", "no-cache").
		SetHeader("Pragma", "no-cache")
	if cfg.Token != "" {
		c.SetAuthToken(cfg.Token)
	}

	return &Client{http: c}
}

// Fetch retrieves the price-change history for the given item. A non-2xx
// status or transport failure returns an error; the response body is decoded
// leniently (see ParseEntries) and never fails on malformed records.
func (c *Client) Fetch(ctx context.Context, item catalog.InventoryItem) ([]Entry, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(item.ProductID, 10)).
		Get("/api/products/{id}/history")
	if err != nil {
		return nil, fmt.Errorf("fetch history for product %d: %w", item.ProductID, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch history for product %d: unexpected status %s", item.ProductID, resp.Status())
	}
	return ParseEntries(resp.Body()), nil
}
