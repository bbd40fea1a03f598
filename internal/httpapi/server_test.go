package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"harbinger/internal/config"
	"harbinger/internal/domain"
	"harbinger/internal/engine"
	"harbinger/internal/heartbeat"
	"harbinger/internal/live"
	"harbinger/internal/store"
)

type fixture struct {
	srv   *httptest.Server
	db    *store.SQLiteStore
	feed  *live.Feed
	state *engine.EngineState
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	db, err := store.NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	feed := live.NewFeed(100)
	state := engine.NewEngineState(true)
	archive := store.NewArticleArchive(dir)
	hbPath := filepath.Join(dir, "heartbeat.json")

	s := NewDashboardServer("EUR_USD", state, feed, db, db, db, archive, hbPath, slog.Default())
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return &fixture{srv: srv, db: db, feed: feed, state: state}
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp
}

func TestStatusEndpoint(t *testing.T) {
	f := newFixture(t)

	var status StatusResponse
	resp := getJSON(t, f.srv.URL+"/api/status", &status)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if status.Enabled {
		t.Error("Enabled = true, engine must start disabled")
	}
	if !status.DryRun || status.Instrument != "EUR_USD" {
		t.Errorf("status = %+v", status)
	}
	if status.Light != "red" {
		t.Errorf("Light = %q, want red without a heartbeat", status.Light)
	}
}

func TestHeartbeatEndpoint(t *testing.T) {
	f := newFixture(t)

	resp := getJSON(t, f.srv.URL+"/api/heartbeat", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before first beat", resp.StatusCode)
	}
}

func TestHeartbeatEndpointAfterBeat(t *testing.T) {
	dir := t.TempDir()
	db, err := store.NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	defer db.Close()

	hbPath := filepath.Join(dir, "heartbeat.json")
	writer := heartbeat.NewWriter(hbPath, config.TradingConfig{Instrument: "EUR_USD", RiskUSD: 500})
	if err := writer.Beat(domain.DecisionSummary{Note: "no signal"}, 0); err != nil {
		t.Fatalf("Beat: %v", err)
	}

	s := NewDashboardServer("EUR_USD", engine.NewEngineState(true), live.NewFeed(10),
		db, db, db, store.NewArticleArchive(dir), hbPath, slog.Default())
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	var hb heartbeat.Payload
	resp := getJSON(t, srv.URL+"/api/heartbeat", &hb)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if hb.Instrument != "EUR_USD" || hb.RiskUSD != 500 {
		t.Errorf("heartbeat = %+v", hb)
	}
}

func TestTradesEndpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, rec := range []domain.OrderRecord{
		{Timestamp: time.Now().UTC(), Instrument: "EUR_USD", Side: domain.SideBuy, Units: 20000, Status: domain.OrderStatusFilled, OrderID: "42"},
		{Timestamp: time.Now().UTC(), Instrument: "EUR_USD", Side: domain.SideSell, Units: -20000, Status: domain.OrderStatusRejected},
	} {
		r := rec
		if err := f.db.SaveOrder(ctx, &r); err != nil {
			t.Fatalf("SaveOrder: %v", err)
		}
	}

	var trades TradesResponse
	getJSON(t, f.srv.URL+"/api/trades", &trades)
	if len(trades.Trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades.Trades))
	}

	getJSON(t, f.srv.URL+"/api/trades?status=FILLED", &trades)
	if len(trades.Trades) != 1 || trades.Trades[0].Status != "FILLED" {
		t.Fatalf("filtered trades = %+v", trades.Trades)
	}
	if trades.Trades[0].OrderID != "42" {
		t.Errorf("OrderID = %q", trades.Trades[0].OrderID)
	}
}

func TestArticlesEndpoints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec := domain.ArticleRecord{
		PublishedAt: time.Now().UTC(),
		Source:      "google",
		Headline:    "euro rallies",
		Sentiment:   0.5,
		Instrument:  "EUR_USD",
	}
	if err := f.db.SaveArticle(ctx, &rec); err != nil {
		t.Fatalf("SaveArticle: %v", err)
	}

	var articles ArticlesResponse
	getJSON(t, f.srv.URL+"/api/articles", &articles)
	if len(articles.Articles) != 1 || articles.Articles[0].Headline != "euro rallies" {
		t.Fatalf("articles = %+v", articles.Articles)
	}

	// Archive date with no file returns an empty list, not an error.
	resp := getJSON(t, f.srv.URL+"/api/articles/2026-01-05", &articles)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("archive status = %d", resp.StatusCode)
	}
	if len(articles.Articles) != 0 {
		t.Errorf("archive articles = %+v, want empty", articles.Articles)
	}

	resp = getJSON(t, f.srv.URL+"/api/articles/bogus", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", resp.StatusCode)
	}
}

func TestDecisionsAndStatsEndpoints(t *testing.T) {
	f := newFixture(t)

	f.feed.Publish(domain.DecisionSummary{Timestamp: time.Now().UTC(), Note: "no signal"})
	f.feed.Publish(domain.DecisionSummary{Timestamp: time.Now().UTC(), Reason: domain.ReasonSpreadTooWide, Spread: 0.0005})

	var decisions DecisionsResponse
	getJSON(t, f.srv.URL+"/api/decisions", &decisions)
	if len(decisions.Decisions) != 2 {
		t.Fatalf("got %d decisions, want 2", len(decisions.Decisions))
	}
	if decisions.Decisions[1].Reason != "SPREAD_TOO_WIDE" {
		t.Errorf("second decision = %+v", decisions.Decisions[1])
	}

	var stats StatsResponse
	getJSON(t, f.srv.URL+"/api/stats", &stats)
	if stats.Cycles != 2 || stats.NoSignal != 1 || stats.Rejected != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(stats.Rejections) != 1 || stats.Rejections[0].Reason != "SPREAD_TOO_WIDE" {
		t.Errorf("rejections = %+v", stats.Rejections)
	}
}

func TestControlEndpoints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	body, _ := json.Marshal(ControlRequest{Enabled: true})
	req, _ := http.NewRequest(http.MethodPut, f.srv.URL+"/api/control/enabled", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT enabled: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	enabled, err := f.db.ReadEnabledFlag(ctx)
	if err != nil || !enabled {
		t.Fatalf("enabled = %v err = %v, want persisted true", enabled, err)
	}

	// Daily loss reset.
	f.state.ObserveNAV(10000)
	f.state.ObserveNAV(9000)
	resp, err = http.Post(f.srv.URL+"/api/control/reset-daily-loss", "application/json", nil)
	if err != nil {
		t.Fatalf("POST reset: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	if loss := f.state.Snapshot().DailyLossUSD; loss != 0 {
		t.Errorf("DailyLossUSD = %v after reset, want 0", loss)
	}
}
