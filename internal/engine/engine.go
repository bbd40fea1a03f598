// Package engine implements the trading decision and risk-control core: the
// risk gate, position sizer, order executors, the process-wide engine state,
// and the decision loop that ties them to a broker and audit sinks.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"harbinger/internal/broker"
	"harbinger/internal/domain"
	"harbinger/internal/store"
	"harbinger/internal/util"
)

// Params is the engine's full parameter set, mapped from the trading section
// of the configuration at startup (already validated there).
type Params struct {
	Instrument         string
	SentimentThreshold float64
	Risk               RiskParams
	TakeProfitPips     float64
	StopLossPips       float64
	RiskUSD            float64
	CheckInterval      time.Duration
	DryRun             bool
}

// SignalSource supplies at most one scored signal per decision cycle.
// ok=false means "no signal this cycle", which is not an error.
type SignalSource interface {
	Next(ctx context.Context) (sig domain.Signal, ok bool, err error)
}

// EnabledSource is the externally persisted operator switch, polled once per
// cycle. store.ControlStore satisfies it.
type EnabledSource interface {
	ReadEnabledFlag(ctx context.Context) (bool, error)
}

// bounded timeouts and retry policy for the idempotent broker reads; order
// placement is never retried.
const (
	brokerCallTimeout = 10 * time.Second
	readRetries       = 3
	readRetryDelay    = 500 * time.Millisecond
)

// Engine is the decision loop. One instance per instrument; cycles are
// serialised so no two interleave their state reads and writes.
type Engine struct {
	params   Params
	broker   broker.Broker
	executor OrderExecutor
	signals  SignalSource
	enabled  EnabledSource
	orders   store.OrderStore
	state    *EngineState
	log      *slog.Logger

	cycleMu sync.Mutex

	notifyMu sync.Mutex
	notify   []func(domain.DecisionSummary)

	lastMu   sync.RWMutex
	lastSeen domain.DecisionSummary
}

// New creates an Engine. The executor variant is selected here, once, from
// the dry-run flag.
func New(params Params, b broker.Broker, signals SignalSource, enabled EnabledSource, orders store.OrderStore) *Engine {
	var exec OrderExecutor
	if params.DryRun {
		exec = NewSimulatedExecutor()
	} else {
		exec = NewLiveExecutor(b)
	}
	return &Engine{
		params:   params,
		broker:   b,
		executor: exec,
		signals:  signals,
		enabled:  enabled,
		orders:   orders,
		state:    NewEngineState(params.DryRun),
		log:      slog.Default().With("component", "engine", "instrument", params.Instrument),
	}
}

// State exposes the engine state for dashboard snapshots and the external
// daily-reset tick.
func (e *Engine) State() *EngineState { return e.state }

// LastDecision returns the most recent per-cycle summary.
func (e *Engine) LastDecision() domain.DecisionSummary {
	e.lastMu.RLock()
	defer e.lastMu.RUnlock()
	return e.lastSeen
}

// Notify registers a callback invoked with every cycle's summary (heartbeat
// writer, live stream feed). Callbacks must not block.
func (e *Engine) Notify(fn func(domain.DecisionSummary)) {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()
	e.notify = append(e.notify, fn)
}

// Run executes decision cycles on a fixed interval until ctx is cancelled.
// The first cycle runs immediately.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("decision loop starting",
		"interval", e.params.CheckInterval,
		"dryRun", e.params.DryRun,
		"executor", e.executorName())

	ticker := time.NewTicker(e.params.CheckInterval)
	defer ticker.Stop()

	for {
		e.RunCycle(ctx)

		select {
		case <-ctx.Done():
			e.log.Info("decision loop stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (e *Engine) executorName() string {
	if e.params.DryRun {
		return "simulated"
	}
	return "live"
}

// RunCycle executes one full IDLE→...→IDLE decision cycle and returns its
// summary. Cycles are mutually exclusive; external fetches happen before any
// state mutation, and the only mutation is the cooldown mark on an executed
// trade.
func (e *Engine) RunCycle(ctx context.Context) domain.DecisionSummary {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	now := time.Now().UTC()
	summary := domain.DecisionSummary{Timestamp: now}

	// Operator switch, polled fresh each cycle. When disabled there is
	// nothing to evaluate; the gate's first rule would reject anyway.
	enabled, err := e.enabled.ReadEnabledFlag(ctx)
	if err != nil {
		return e.finish(abort(summary, "reading enabled flag", err))
	}
	if !enabled {
		summary.Admitted = false
		summary.Reason = domain.ReasonDisabled
		e.log.Debug("engine disabled, skipping cycle")
		return e.finish(summary)
	}

	// EVALUATING: acquire the signal.
	sig, ok, err := e.signals.Next(ctx)
	if err != nil {
		return e.finish(abort(summary, "fetching signal", err))
	}
	if !ok {
		summary.Note = "no signal"
		return e.finish(summary)
	}
	summary.Headline = sig.Headline
	summary.Sentiment = sig.Sentiment

	intent, ok := domain.DeriveIntent(sig, e.params.SentimentThreshold)
	if !ok {
		// Not a rejection: the signal simply did not clear the threshold.
		summary.Note = "sentiment below threshold"
		e.log.Info("no intent",
			"sentiment", sig.Sentiment,
			"threshold", e.params.SentimentThreshold)
		return e.finish(summary)
	}

	// External reads, outside the state lock, with bounded retries.
	quote, err := e.fetchPricing(ctx)
	if err != nil {
		return e.finish(abort(summary, "fetching pricing", err))
	}
	summary.Spread = quote.Spread()

	acct, err := e.fetchAccount(ctx)
	if err != nil {
		return e.finish(abort(summary, "fetching account", err))
	}
	e.state.ObserveNAV(acct.NAV)

	// Risk gate over a consistent snapshot.
	snap := e.state.Snapshot()
	result := EvaluateRisk(GateState{
		Enabled:        true,
		OpenTradeCount: acct.OpenTradeCount,
		LastTradeAt:    snap.LastTradeAt,
		DailyLossUSD:   snap.DailyLossUSD,
	}, quote.Spread(), now, e.params.Risk)

	summary.Admitted = result.Admitted
	summary.Reason = result.Reason
	if !result.Admitted {
		e.log.Info("trade rejected",
			"reason", result.Reason,
			"spread", quote.Spread(),
			"openTrades", acct.OpenTradeCount,
			"dailyLoss", snap.DailyLossUSD)
		return e.finish(summary)
	}

	// ADMITTED → EXECUTING: size, then place.
	units, err := UnitsForRisk(e.params.RiskUSD, e.params.StopLossPips, domain.PipSize(intent.Instrument))
	if err != nil {
		return e.finish(abort(summary, "sizing position", err))
	}
	if units == 0 {
		summary.Note = "sized to zero units"
		e.log.Warn("risk budget sizes to zero units, skipping trade",
			"riskUSD", e.params.RiskUSD, "slPips", e.params.StopLossPips)
		return e.finish(summary)
	}
	if intent.Side == domain.SideSell {
		units = -units
	}
	intent.Units = units

	rec, execErr := e.executor.Execute(ctx, intent, quote, e.params.TakeProfitPips, e.params.StopLossPips)
	if execErr != nil {
		summary.Error = execErr.Error()
		e.log.Error("order execution failed", "error", execErr, "status", rec.Status)
	}

	// SETTLED: audit every attempt, then update cooldown state only for
	// orders that actually went through (real or simulated).
	if err := e.orders.SaveOrder(ctx, &rec); err != nil {
		e.log.Error("saving order record", "error", err)
	}
	summary.Order = &rec

	switch rec.Status {
	case domain.OrderStatusSimulated, domain.OrderStatusFilled:
		e.state.MarkTrade(now)
		e.log.Info("trade executed",
			"side", rec.Side,
			"units", rec.Units,
			"entry", rec.EntryPrice,
			"tp", rec.TakeProfit,
			"sl", rec.StopLoss,
			"status", rec.Status,
			"orderID", rec.OrderID)
	case domain.OrderStatusRejected:
		e.log.Warn("order rejected by broker", "orderID", rec.OrderID)
	}

	return e.finish(summary)
}

// fetchPricing reads the current quote with a bounded timeout and retry.
func (e *Engine) fetchPricing(ctx context.Context) (domain.Pricing, error) {
	cctx, cancel := context.WithTimeout(ctx, brokerCallTimeout)
	defer cancel()

	var quote domain.Pricing
	err := util.Retry(cctx, readRetries, readRetryDelay, func() error {
		var err error
		quote, err = e.broker.GetPricing(cctx, e.params.Instrument)
		return err
	})
	return quote, err
}

// fetchAccount reads the account snapshot with a bounded timeout and retry.
func (e *Engine) fetchAccount(ctx context.Context) (domain.AccountSnapshot, error) {
	cctx, cancel := context.WithTimeout(ctx, brokerCallTimeout)
	defer cancel()

	var acct domain.AccountSnapshot
	err := util.Retry(cctx, readRetries, readRetryDelay, func() error {
		var err error
		acct, err = e.broker.GetAccount(cctx)
		return err
	})
	return acct, err
}

// finish records and publishes the cycle summary.
func (e *Engine) finish(s domain.DecisionSummary) domain.DecisionSummary {
	e.lastMu.Lock()
	e.lastSeen = s
	e.lastMu.Unlock()

	e.notifyMu.Lock()
	subs := make([]func(domain.DecisionSummary), len(e.notify))
	copy(subs, e.notify)
	e.notifyMu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
	return s
}

// abort marks a cycle as failed by a transient collaborator error. No state
// was mutated; the next scheduled cycle retries naturally.
func abort(s domain.DecisionSummary, what string, err error) domain.DecisionSummary {
	s.Admitted = false
	s.Error = what + ": " + err.Error()
	return s
}
