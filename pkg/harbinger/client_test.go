package harbinger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.String())
		fmt.Fprint(w, `{"light":"green","enabled":true,"dryRun":true,"instrument":"EUR_USD","dailyLossUsd":42.5}`)
	})
	mux.HandleFunc("GET /api/trades", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.String())
		fmt.Fprint(w, `{"trades":[{"id":1,"side":"BUY","units":20000,"status":"FILLED","orderId":"77"}]}`)
	})
	mux.HandleFunc("GET /api/articles/{date}", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.String())
		fmt.Fprintf(w, `{"date":%q,"articles":[{"headline":"gold soars","sentiment":0.5}]}`, r.PathValue("date"))
	})
	mux.HandleFunc("PUT /api/control/enabled", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.String())
		var body struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Enabled {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"enabled":true}`)
	})
	mux.HandleFunc("POST /api/control/reset-daily-loss", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.String())
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestGetStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	c := NewClient(srv.URL)

	s, err := c.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if s.Light != "green" || !s.Enabled || s.Instrument != "EUR_USD" || s.DailyLossUSD != 42.5 {
		t.Errorf("status = %+v", s)
	}
}

func TestGetTradesQuery(t *testing.T) {
	srv, calls := newTestServer(t)
	c := NewClient(srv.URL)

	trades, err := c.GetTrades(context.Background(), "FILLED", 10)
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(trades) != 1 || trades[0].OrderID != "77" {
		t.Errorf("trades = %+v", trades)
	}
	want := "GET /api/trades?limit=10&status=FILLED"
	if (*calls)[0] != want {
		t.Errorf("request = %q, want %q", (*calls)[0], want)
	}
}

func TestGetArticlesByDate(t *testing.T) {
	srv, _ := newTestServer(t)
	c := NewClient(srv.URL)

	articles, err := c.GetArticlesByDate(context.Background(), "2026-08-01")
	if err != nil {
		t.Fatalf("GetArticlesByDate: %v", err)
	}
	if len(articles) != 1 || articles[0].Headline != "gold soars" {
		t.Errorf("articles = %+v", articles)
	}
}

func TestControls(t *testing.T) {
	srv, calls := newTestServer(t)
	c := NewClient(srv.URL)

	if err := c.SetEnabled(context.Background(), true); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if err := c.ResetDailyLoss(context.Background()); err != nil {
		t.Fatalf("ResetDailyLoss: %v", err)
	}
	if len(*calls) != 2 {
		t.Fatalf("calls = %v", *calls)
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.GetStatus(context.Background()); err == nil {
		t.Fatal("expected error on 500")
	}
}
