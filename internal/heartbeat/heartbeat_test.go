package heartbeat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"harbinger/internal/config"
	"harbinger/internal/domain"
)

func testTrading() config.TradingConfig {
	return config.TradingConfig{
		Instrument:         "EUR_USD",
		SentimentThreshold: 0.15,
		MinSpread:          0.0002,
		MaxConcurrent:      3,
		CooldownMin:        30,
		CheckIntervalMin:   5,
		TakeProfitPips:     50,
		StopLossPips:       25,
		RiskUSD:            500,
		MaxDailyLossUSD:    1500,
		DryRun:             true,
	}
}

func TestBeatAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime", "heartbeat.json")
	w := NewWriter(path, testTrading())

	sum := domain.DecisionSummary{
		Timestamp: time.Now().UTC(),
		Headline:  "euro rallies on upbeat data",
		Sentiment: 0.5,
		Spread:    0.00012,
		Admitted:  true,
		Reason:    domain.ReasonOK,
		Order:     &domain.OrderRecord{Side: domain.SideBuy},
	}
	if err := w.Beat(sum, 120.5); err != nil {
		t.Fatalf("Beat: %v", err)
	}

	p, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if p.LastBeat.IsZero() {
		t.Error("LastBeat is zero")
	}
	if p.Instrument != "EUR_USD" || !p.DryRun || p.RiskUSD != 500 {
		t.Errorf("static config not echoed: %+v", p)
	}
	if p.LastHeadline != sum.Headline || p.LastSentiment != 0.5 {
		t.Errorf("decision fields not carried: %+v", p)
	}
	if p.LastSide != "BUY" {
		t.Errorf("LastSide = %q, want BUY", p.LastSide)
	}
	if p.DailyLossUSD != 120.5 {
		t.Errorf("DailyLossUSD = %v, want 120.5", p.DailyLossUSD)
	}
}

func TestBeatOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartbeat.json")
	w := NewWriter(path, testTrading())

	if err := w.Beat(domain.DecisionSummary{Note: "no signal"}, 0); err != nil {
		t.Fatalf("first Beat: %v", err)
	}
	if err := w.Beat(domain.DecisionSummary{Reason: domain.ReasonSpreadTooWide, Spread: 0.0005}, 0); err != nil {
		t.Fatalf("second Beat: %v", err)
	}

	p, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if p.LastReason != string(domain.ReasonSpreadTooWide) {
		t.Errorf("LastReason = %q, want SPREAD_TOO_WIDE", p.LastReason)
	}
	if p.LastNote != "" {
		t.Errorf("LastNote = %q, stale field survived overwrite", p.LastNote)
	}

	// No temp file left behind after the rename.
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file still present: %v", err)
	}
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}
