// Package backend is the HTTP client for the restaurant REST backend that
// owns layout, table status, order, menu and inventory data.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"pos-floor-frontend/config"
	"pos-floor-frontend/internal/model"
)

// Client talks to the restaurant backend.
type Client struct {
	baseURL string
	headers map[string]string
	client  *http.Client
}

// NewClient creates a backend client from configuration.
func NewClient(cfg *config.BackendConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		headers: cfg.Headers,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// GetLayout fetches the persisted floor/table geometry document.
func (c *Client) GetLayout(ctx context.Context) (model.Layout, error) {
	var layout model.Layout
	err := c.getJSON(ctx, "/seating/layout", nil, &layout)
	return layout, err
}

// SaveLayout persists the entire layout document (full-document upsert).
func (c *Client) SaveLayout(ctx context.Context, layout model.Layout) error {
	return c.send(ctx, http.MethodPost, "/seating/layout", layout, nil)
}

// ListTableStatuses fetches all live table status records.
func (c *Client) ListTableStatuses(ctx context.Context) ([]model.TableStatus, error) {
	var statuses []model.TableStatus
	err := c.getJSON(ctx, "/tables", nil, &statuses)
	return statuses, err
}

// UpdateTableStatus updates the status of a single table.
func (c *Client) UpdateTableStatus(ctx context.Context, tableID string, status model.TableStatusValue) error {
	path := "/tables/" + url.PathEscape(tableID)
	body := map[string]model.TableStatusValue{"status": status}
	return c.send(ctx, http.MethodPut, path, body, nil)
}

// ListMenu fetches the menu feed.
func (c *Client) ListMenu(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := c.getJSON(ctx, "/menu", nil, &items)
	return items, err
}

// ListOrders fetches the orders feed.
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := c.getJSON(ctx, "/orders", nil, &orders)
	return orders, err
}

// ListCompletedOrders fetches only completed orders.
func (c *Client) ListCompletedOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := c.getJSON(ctx, "/orders", url.Values{"status": {"completed"}}, &orders)
	return orders, err
}

// ListInventory fetches the inventory feed.
func (c *Client) ListInventory(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := c.getJSON(ctx, "/inventory", nil, &items)
	return items, err
}

// GetDashboardStats fetches the server-computed statistics document.
func (c *Client) GetDashboardStats(ctx context.Context) (model.BackendStats, error) {
	var stats model.BackendStats
	err := c.getJSON(ctx, "/dashboard-stats", nil, &stats)
	return stats, err
}

// GetOperationalInsights fetches the AI insights feed.
func (c *Client) GetOperationalInsights(ctx context.Context) ([]model.OperationalInsight, error) {
	var insights []model.OperationalInsight
	err := c.getJSON(ctx, "/ai/operational-insights", nil, &insights)
	return insights, err
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.send(ctx, http.MethodGet, target, nil, out)
}

// send issues one request and decodes the response into out when non-nil.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response from %s: %w", path, err)
		}
	}
	return nil
}
