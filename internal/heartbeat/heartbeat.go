// Package heartbeat maintains the liveness file the dashboard watches. The
// file is rewritten after every decision cycle via an atomic rename, so a
// reader always sees a complete JSON document.
package heartbeat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"harbinger/internal/config"
	"harbinger/internal/domain"
)

// Payload is the heartbeat document. The static half echoes the effective
// trading configuration; the rest reflects the most recent decision cycle.
type Payload struct {
	LastBeat           time.Time `json:"last_beat"`
	Instrument         string    `json:"instrument"`
	DryRun             bool      `json:"dry_run"`
	RiskUSD            float64   `json:"risk_usd"`
	SLPips             float64   `json:"sl_pips"`
	TPPips             float64   `json:"tp_pips"`
	CheckIntervalMin   float64   `json:"check_interval_min"`
	CooldownMin        float64   `json:"cooldown_min"`
	MinSpread          float64   `json:"min_spread"`
	SentimentThreshold float64   `json:"sentiment_threshold"`
	MaxConcurrent      int       `json:"max_concurrent_trades"`
	MaxDailyLoss       float64   `json:"max_daily_loss"`

	LastHeadline  string  `json:"last_headline,omitempty"`
	LastSentiment float64 `json:"last_sentiment,omitempty"`
	Spread        float64 `json:"spread,omitempty"`
	LastReason    string  `json:"last_reason,omitempty"`
	LastNote      string  `json:"last_note,omitempty"`
	LastError     string  `json:"last_error,omitempty"`
	LastSide      string  `json:"last_side,omitempty"`
	DailyLossUSD  float64 `json:"daily_loss_usd"`
}

// Writer publishes heartbeats to a fixed path.
type Writer struct {
	path   string
	static Payload
}

// NewWriter creates a heartbeat writer whose static fields echo the trading
// configuration.
func NewWriter(path string, cfg config.TradingConfig) *Writer {
	return &Writer{
		path: path,
		static: Payload{
			Instrument:         cfg.Instrument,
			DryRun:             cfg.DryRun,
			RiskUSD:            cfg.RiskUSD,
			SLPips:             cfg.StopLossPips,
			TPPips:             cfg.TakeProfitPips,
			CheckIntervalMin:   cfg.CheckIntervalMin,
			CooldownMin:        cfg.CooldownMin,
			MinSpread:          cfg.MinSpread,
			SentimentThreshold: cfg.SentimentThreshold,
			MaxConcurrent:      cfg.MaxConcurrent,
			MaxDailyLoss:       cfg.MaxDailyLossUSD,
		},
	}
}

// Beat writes the heartbeat for one completed decision cycle.
func (w *Writer) Beat(sum domain.DecisionSummary, dailyLossUSD float64) error {
	p := w.static
	p.LastBeat = time.Now().UTC()
	p.LastHeadline = sum.Headline
	p.LastSentiment = sum.Sentiment
	p.Spread = sum.Spread
	p.LastReason = string(sum.Reason)
	p.LastNote = sum.Note
	p.LastError = sum.Error
	p.DailyLossUSD = dailyLossUSD
	if sum.Order != nil {
		p.LastSide = string(sum.Order.Side)
	}
	return writeJSONAtomic(w.path, p)
}

// Read loads a heartbeat file. A missing file returns os.ErrNotExist.
func Read(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, err
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("parsing heartbeat %s: %w", path, err)
	}
	return p, nil
}

// writeJSONAtomic writes obj to path via a temp file and rename, so readers
// never observe a partially written document.
func writeJSONAtomic(path string, obj any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
