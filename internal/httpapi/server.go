package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"harbinger/internal/dashboard"
	"harbinger/internal/domain"
	"harbinger/internal/engine"
	"harbinger/internal/heartbeat"
	"harbinger/internal/live"
	"harbinger/internal/store"
)

const defaultListLimit = 50

// DashboardServer serves the dashboard HTTP API.
type DashboardServer struct {
	instrument    string
	state         *engine.EngineState
	feed          *live.Feed
	orders        store.OrderStore
	articles      store.ArticleStore
	control       store.ControlStore
	archive       *store.ArticleArchive
	heartbeatPath string
	log           *slog.Logger
}

// NewDashboardServer creates the dashboard HTTP server.
func NewDashboardServer(
	instrument string,
	state *engine.EngineState,
	feed *live.Feed,
	orders store.OrderStore,
	articles store.ArticleStore,
	control store.ControlStore,
	archive *store.ArticleArchive,
	heartbeatPath string,
	log *slog.Logger,
) *DashboardServer {
	return &DashboardServer{
		instrument:    instrument,
		state:         state,
		feed:          feed,
		orders:        orders,
		articles:      articles,
		control:       control,
		archive:       archive,
		heartbeatPath: heartbeatPath,
		log:           log,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *DashboardServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/heartbeat", s.handleHeartbeat)
	mux.HandleFunc("GET /api/trades", s.handleTrades)
	mux.HandleFunc("GET /api/articles", s.handleArticles)
	mux.HandleFunc("GET /api/articles/{date}", s.handleArticlesByDate)
	mux.HandleFunc("GET /api/dates", s.handleDates)
	mux.HandleFunc("GET /api/decisions", s.handleDecisions)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("PUT /api/control/enabled", s.handleSetEnabled)
	mux.HandleFunc("POST /api/control/reset-daily-loss", s.handleResetDailyLoss)
}

// Handler returns an http.Handler with CORS middleware.
func (s *DashboardServer) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// parseLimit extracts the "limit" query param, clamped to [1, 500].
func parseLimit(r *http.Request) int {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return defaultListLimit
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return defaultListLimit
	}
	if n > 500 {
		n = 500
	}
	return n
}

func (s *DashboardServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	enabled, err := s.control.ReadEnabledFlag(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reading enabled flag")
		return
	}

	snap := s.state.Snapshot()
	resp := StatusResponse{
		Enabled:      enabled,
		DryRun:       snap.DryRun,
		Instrument:   s.instrument,
		DailyLossUSD: snap.DailyLossUSD,
		DayStartNAV:  snap.DayStartNAV,
	}
	if !snap.LastTradeAt.IsZero() {
		resp.LastTradeAt = snap.LastTradeAt.UTC().Format(time.RFC3339)
	}

	hb, err := heartbeat.Read(s.heartbeatPath)
	if err == nil {
		resp.LastBeat = hb.LastBeat.Format(time.RFC3339)
		resp.Light = dashboard.StatusLight(hb.LastBeat, time.Now().UTC())
	} else {
		resp.Light = dashboard.StatusLight(time.Time{}, time.Now().UTC())
	}

	writeJSON(w, resp)
}

func (s *DashboardServer) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	hb, err := heartbeat.Read(s.heartbeatPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "no heartbeat yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "reading heartbeat")
		return
	}
	writeJSON(w, hb)
}

func (s *DashboardServer) handleTrades(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	var (
		records []domain.OrderRecord
		err     error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		records, err = s.orders.ListOrdersByStatus(r.Context(), domain.OrderStatus(status), limit)
	} else {
		records, err = s.orders.ListRecentOrders(r.Context(), limit)
	}
	if err != nil {
		s.log.Error("listing orders", "error", err)
		writeError(w, http.StatusInternalServerError, "listing orders")
		return
	}

	trades := make([]OrderJSON, 0, len(records))
	for i := range records {
		trades = append(trades, *convertOrder(&records[i]))
	}
	writeJSON(w, TradesResponse{Trades: trades})
}

func (s *DashboardServer) handleArticles(w http.ResponseWriter, r *http.Request) {
	records, err := s.articles.ListRecentArticles(r.Context(), parseLimit(r))
	if err != nil {
		s.log.Error("listing articles", "error", err)
		writeError(w, http.StatusInternalServerError, "listing articles")
		return
	}

	articles := make([]ArticleJSON, 0, len(records))
	for i := range records {
		articles = append(articles, convertArticle(&records[i]))
	}
	writeJSON(w, ArticlesResponse{Articles: articles})
}

func (s *DashboardServer) handleArticlesByDate(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if len(date) != 10 {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	records, err := s.archive.ReadArticles(date)
	if err != nil {
		s.log.Error("reading article archive", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "reading archive")
		return
	}

	articles := make([]ArticleJSON, 0, len(records))
	for i := range records {
		articles = append(articles, convertArticle(&records[i]))
	}
	writeJSON(w, ArticlesResponse{Date: date, Articles: articles})
}

func (s *DashboardServer) handleDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.archive.ListDates()
	if err != nil {
		s.log.Error("listing archive dates", "error", err)
		writeError(w, http.StatusInternalServerError, "listing dates")
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, DatesResponse{Dates: dates})
}

func (s *DashboardServer) handleDecisions(w http.ResponseWriter, r *http.Request) {
	recent := s.feed.Recent()
	decisions := make([]DecisionJSON, 0, len(recent))
	for _, sum := range recent {
		decisions = append(decisions, convertDecision(sum))
	}
	writeJSON(w, DecisionsResponse{Decisions: decisions})
}

func (s *DashboardServer) handleStats(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.ListRecentOrders(r.Context(), 500)
	if err != nil {
		s.log.Error("listing orders for stats", "error", err)
		writeError(w, http.StatusInternalServerError, "listing orders")
		return
	}

	decisionStats := dashboard.AggregateDecisions(s.feed.Recent())
	orderStats := dashboard.AggregateOrders(orders)
	writeJSON(w, convertStats(decisionStats, orderStats))
}

func (s *DashboardServer) handleSetEnabled(w http.ResponseWriter, r *http.Request) {
	var req ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	if err := s.control.SetEnabled(r.Context(), req.Enabled); err != nil {
		s.log.Error("setting enabled flag", "error", err)
		writeError(w, http.StatusInternalServerError, "persisting enabled flag")
		return
	}

	s.log.Info("enabled flag changed", "enabled", req.Enabled)
	writeJSON(w, ControlResponse{Enabled: req.Enabled})
}

func (s *DashboardServer) handleResetDailyLoss(w http.ResponseWriter, r *http.Request) {
	s.state.ResetDailyLoss()
	s.log.Info("daily loss reset via api")
	w.WriteHeader(http.StatusNoContent)
}
