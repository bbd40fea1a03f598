// harbinger-trader is the all-in-one trading daemon: it runs the decision
// loop against the configured broker, persists trades and scored headlines,
// writes the heartbeat file, and serves the dashboard HTTP API and the gRPC
// decision stream.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"google.golang.org/grpc"

	"harbinger/internal/broker"
	"harbinger/internal/config"
	"harbinger/internal/domain"
	"harbinger/internal/engine"
	"harbinger/internal/heartbeat"
	"harbinger/internal/httpapi"
	"harbinger/internal/live"
	"harbinger/internal/news"
	"harbinger/internal/sentiment"
	"harbinger/internal/store"
	"harbinger/internal/util"
)

func main() {
	cfgPath := "config/harbinger.yaml"
	if p := os.Getenv("HARBINGER_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	// Persistence.
	db, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening sqlite store: %v", err)
	}
	defer db.Close()
	archive := store.NewArticleArchive(cfg.Storage.DataDir)

	// Broker. Without OANDA credentials the daemon falls back to the
	// in-memory simulator, which only makes sense together with dry_run.
	var b broker.Broker
	if cfg.OANDA.Token != "" {
		b = broker.NewOANDABroker(cfg.OANDA.Host, cfg.OANDA.Token, cfg.OANDA.AccountID)
	} else {
		if !cfg.Trading.DryRun {
			log.Fatal("live trading requires OANDA credentials")
		}
		logger.Warn("no OANDA credentials, using simulator quotes")
		b = broker.NewSimulatorBroker(
			domain.Pricing{Instrument: cfg.Trading.Instrument, Bid: 1.08490, Ask: 1.08505},
			domain.AccountSnapshot{Balance: 10000, NAV: 10000},
		)
	}

	// News pipeline.
	var mdc *marketdata.Client
	if cfg.Alpaca.APIKey != "" {
		mdc = marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    cfg.Alpaca.APIKey,
			APISecret: cfg.Alpaca.APISecret,
			BaseURL:   cfg.Alpaca.DataURL,
		})
	}
	signals := news.NewSource(
		cfg.Trading.Instrument,
		sentiment.NewLexiconScorer(),
		db, archive, mdc,
		cfg.News.RateLimitPerMin,
		cfg.News.MaxHeadlines,
	)

	eng := engine.New(engine.Params{
		Instrument:         cfg.Trading.Instrument,
		SentimentThreshold: cfg.Trading.SentimentThreshold,
		Risk: engine.RiskParams{
			MaxConcurrent:   cfg.Trading.MaxConcurrent,
			Cooldown:        time.Duration(cfg.Trading.CooldownMin * float64(time.Minute)),
			MaxSpread:       cfg.Trading.MinSpread,
			MaxDailyLossUSD: cfg.Trading.MaxDailyLossUSD,
		},
		TakeProfitPips: cfg.Trading.TakeProfitPips,
		StopLossPips:   cfg.Trading.StopLossPips,
		RiskUSD:        cfg.Trading.RiskUSD,
		CheckInterval:  time.Duration(cfg.Trading.CheckIntervalMin * float64(time.Minute)),
		DryRun:         cfg.Trading.DryRun,
	}, b, signals, db, db)

	// Cycle fan-out: heartbeat file and decision feed.
	feed := live.NewFeed(500)
	hbWriter := heartbeat.NewWriter(cfg.Storage.HeartbeatPath, cfg.Trading)
	eng.Notify(func(sum domain.DecisionSummary) {
		feed.Publish(sum)
		if err := hbWriter.Beat(sum, eng.State().Snapshot().DailyLossUSD); err != nil {
			logger.Error("writing heartbeat", "error", err)
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Dashboard HTTP API.
	dash := httpapi.NewDashboardServer(
		cfg.Trading.Instrument,
		eng.State(), feed,
		db, db, db, archive,
		cfg.Storage.HeartbeatPath,
		logger.With("component", "httpapi"),
	)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: dash.Handler(),
	}
	go func() {
		logger.Info("dashboard API listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	// gRPC decision stream.
	grpcAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatalf("listening on %s: %v", grpcAddr, err)
	}
	grpcServer := grpc.NewServer()
	live.NewServer(feed, logger.With("component", "live")).RegisterGRPC(grpcServer)
	go func() {
		logger.Info("decision stream listening", "addr", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", "error", err)
			cancel()
		}
	}()

	// Daily-loss reset at UTC midnight.
	go runDailyReset(ctx, eng.State(), logger)

	logger.Info("harbinger trader starting",
		"instrument", cfg.Trading.Instrument,
		"broker", b.Name(),
		"dryRun", cfg.Trading.DryRun)

	if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("engine stopped", "error", err)
	}

	logger.Info("shutting down")
	grpcServer.GracefulStop()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// runDailyReset resets the daily-loss window at every UTC midnight.
func runDailyReset(ctx context.Context, state *engine.EngineState, logger *slog.Logger) {
	for {
		next := util.NextUTCDayStart(time.Now().UTC())
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
			state.ResetDailyLoss()
			logger.Info("daily loss window reset", "day", next.Format("2006-01-02"))
		}
	}
}
