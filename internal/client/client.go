// Package client talks to the dashboard API on behalf of the feed gateway.
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

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/auth"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/pipeline"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/service"
)

type Client struct {
	baseURL string
	token   string
	role    string
	http    *http.Client
}

func New(baseURL, token, role string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		role:    role,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Health reports whether the API answers its liveness probe.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) Alerts(ctx context.Context, severity string) (*pipeline.Result, error) {
	params := url.Values{}
	if severity != "" {
		params.Set("severity", severity)
	}
	var out pipeline.Result
	if err := c.getJSON(ctx, "/api/alerts", &out, params); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Insights(ctx context.Context) (*service.InsightFeed, error) {
	var out service.InsightFeed
	if err := c.getJSON(ctx, "/api/insights", &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Energy(ctx context.Context) (*service.EnergySnapshot, error) {
	var out service.EnergySnapshot
	if err := c.getJSON(ctx, "/api/energy/live", &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResolveAlert(ctx context.Context, alertID string) (*domain.Alert, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/alerts/"+url.PathEscape(alertID)+"/resolve", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var out domain.Alert
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode resolved alert: %w", err)
	}
	return &out, nil
}

func (c *Client) SetLive(ctx context.Context, enabled bool) (*service.InsightFeed, error) {
	b, err := json.Marshal(map[string]bool{"enabled": enabled})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/insights/live", nil, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var out service.InsightFeed
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode insight feed: %w", err)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any, params url.Values) error {
	resp, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// do sends an authenticated request and turns non-2xx answers into errors.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Response, error) {
	u := c.baseURL + path
	if q := params.Encode(); q != "" {
		u += "?" + q
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(auth.HeaderToken, c.token)
	req.Header.Set(auth.HeaderRole, c.role)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}
	return resp, nil
}
