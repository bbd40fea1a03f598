// Package harbinger provides a Go SDK for the harbinger-trader dashboard
// API.
package harbinger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to the harbinger-trader HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:8090".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ---------------------------------------------------------------------------
// Response types
// ---------------------------------------------------------------------------

// Status describes the engine's current state.
type Status struct {
	Light        string  `json:"light"`
	Enabled      bool    `json:"enabled"`
	DryRun       bool    `json:"dryRun"`
	Instrument   string  `json:"instrument"`
	LastBeat     string  `json:"lastBeat"`
	LastTradeAt  string  `json:"lastTradeAt"`
	DailyLossUSD float64 `json:"dailyLossUsd"`
}

// Trade is one order attempt, real or simulated.
type Trade struct {
	ID         int64   `json:"id"`
	Time       string  `json:"time"`
	Instrument string  `json:"instrument"`
	Side       string  `json:"side"`
	Units      int     `json:"units"`
	EntryPrice float64 `json:"entryPrice"`
	TakeProfit float64 `json:"takeProfit"`
	StopLoss   float64 `json:"stopLoss"`
	OrderID    string  `json:"orderId"`
	FillPrice  float64 `json:"fillPrice"`
	Status     string  `json:"status"`
	Sentiment  float64 `json:"sentiment"`
	Headline   string  `json:"headline"`
}

// Article is one scored headline.
type Article struct {
	ID        int64   `json:"id"`
	Time      string  `json:"time"`
	Source    string  `json:"source"`
	Headline  string  `json:"headline"`
	URL       string  `json:"url"`
	Sentiment float64 `json:"sentiment"`
}

// Decision is one decision-cycle summary.
type Decision struct {
	Time      string  `json:"time"`
	Headline  string  `json:"headline"`
	Sentiment float64 `json:"sentiment"`
	Spread    float64 `json:"spread"`
	Admitted  bool    `json:"admitted"`
	Reason    string  `json:"reason"`
	Note      string  `json:"note"`
	Error     string  `json:"error"`
	Order     *Trade  `json:"order"`
}

type tradesResponse struct {
	Trades []Trade `json:"trades"`
}

type articlesResponse struct {
	Articles []Article `json:"articles"`
}

type datesResponse struct {
	Dates []string `json:"dates"`
}

type decisionsResponse struct {
	Decisions []Decision `json:"decisions"`
}

type controlRequest struct {
	Enabled bool `json:"enabled"`
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// GetStatus retrieves the engine status.
func (c *Client) GetStatus(ctx context.Context) (Status, error) {
	var s Status
	err := c.get(ctx, "/api/status", &s)
	return s, err
}

// GetTrades retrieves recent trades, newest first. status filters by order
// status when non-empty; limit <= 0 uses the server default.
func (c *Client) GetTrades(ctx context.Context, status string, limit int) ([]Trade, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/trades"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp tradesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Trades, nil
}

// GetArticles retrieves recently scored headlines, newest first.
func (c *Client) GetArticles(ctx context.Context, limit int) ([]Article, error) {
	path := "/api/articles"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp articlesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

// GetArticlesByDate retrieves archived headlines for a date (YYYY-MM-DD).
func (c *Client) GetArticlesByDate(ctx context.Context, date string) ([]Article, error) {
	var resp articlesResponse
	if err := c.get(ctx, "/api/articles/"+url.PathEscape(date), &resp); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

// GetDates lists dates with archived headlines.
func (c *Client) GetDates(ctx context.Context) ([]string, error) {
	var resp datesResponse
	if err := c.get(ctx, "/api/dates", &resp); err != nil {
		return nil, err
	}
	return resp.Dates, nil
}

// GetDecisions retrieves the recent decision summaries, oldest first.
func (c *Client) GetDecisions(ctx context.Context) ([]Decision, error) {
	var resp decisionsResponse
	if err := c.get(ctx, "/api/decisions", &resp); err != nil {
		return nil, err
	}
	return resp.Decisions, nil
}

// SetEnabled flips the persistent trading switch.
func (c *Client) SetEnabled(ctx context.Context, enabled bool) error {
	body, err := json.Marshal(controlRequest{Enabled: enabled})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/api/control/enabled", body, nil)
}

// ResetDailyLoss starts a new trading day for the daily-loss cap.
func (c *Client) ResetDailyLoss(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/control/reset-daily-loss", nil, nil)
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
