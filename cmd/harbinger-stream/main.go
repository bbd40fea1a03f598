// harbinger-stream tails the trader's gRPC decision stream and prints each
// cycle as it completes.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"harbinger/internal/dashboard"
	"harbinger/internal/domain"
	"harbinger/internal/live"
)

func main() {
	addr := "localhost:50051"
	if a := os.Getenv("STREAM_ADDR"); a != "" {
		addr = a
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	feed := live.NewFeed(500)
	client := live.NewClient(addr, feed, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Print every mirrored decision as it arrives.
	id, ch := feed.Subscribe(256)
	defer feed.Unsubscribe(id)
	go func() {
		for sum := range ch {
			printDecision(sum)
		}
	}()

	if err := client.Sync(ctx); err != nil && ctx.Err() == nil {
		logger.Error("stream error", "error", err)
		os.Exit(1)
	}
}

func printDecision(sum domain.DecisionSummary) {
	ts := sum.Timestamp.Format("15:04:05")
	switch {
	case sum.Error != "":
		slog.Error("cycle fault", "time", ts, "error", sum.Error)
	case sum.Order != nil:
		slog.Info("order",
			"time", ts,
			"side", sum.Order.Side,
			"units", dashboard.FormatInt(sum.Order.Units),
			"entry", dashboard.FormatPrice(sum.Order.Instrument, sum.Order.EntryPrice),
			"status", sum.Order.Status,
			"sentiment", dashboard.FormatSentiment(sum.Sentiment),
			"headline", sum.Headline)
	case sum.Note != "":
		slog.Info("idle", "time", ts, "note", sum.Note)
	default:
		slog.Info("rejected",
			"time", ts,
			"reason", sum.Reason,
			"sentiment", dashboard.FormatSentiment(sum.Sentiment),
			"headline", sum.Headline)
	}
}
