package engine

import (
	"sync"
	"time"
)

// StateSnapshot is a consistent read of the engine's mutable state. External
// readers (dashboard) only ever see whole snapshots.
type StateSnapshot struct {
	DryRun       bool
	LastTradeAt  time.Time // zero if no trade yet
	DailyLossUSD float64
	DayStartNAV  float64
}

// EngineState is the single process-wide mutable state of the decision loop.
// The loop is the sole mutator; the dashboard reads concurrently through
// Snapshot. All external I/O happens outside this lock.
type EngineState struct {
	mu           sync.RWMutex
	dryRun       bool
	lastTradeAt  time.Time
	dailyLossUSD float64
	dayStartNAV  float64
}

// NewEngineState creates the state object. dryRun is fixed for the process
// lifetime.
func NewEngineState(dryRun bool) *EngineState {
	return &EngineState{dryRun: dryRun}
}

// Snapshot returns a consistent copy of the current state.
func (s *EngineState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StateSnapshot{
		DryRun:       s.dryRun,
		LastTradeAt:  s.lastTradeAt,
		DailyLossUSD: s.dailyLossUSD,
		DayStartNAV:  s.dayStartNAV,
	}
}

// MarkTrade records the timestamp of an admitted trade (real or simulated);
// this drives the cooldown rule.
func (s *EngineState) MarkTrade(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTradeAt = t
}

// ObserveNAV updates the realized daily loss from a fresh NAV reading. The
// first observation of a trading day anchors the day-start NAV; the loss is
// the drawdown against that anchor, floored at zero.
func (s *EngineState) ObserveNAV(nav float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dayStartNAV == 0 {
		s.dayStartNAV = nav
	}
	loss := s.dayStartNAV - nav
	if loss < 0 {
		loss = 0
	}
	s.dailyLossUSD = loss
}

// ResetDailyLoss starts a new trading day. Called by an external scheduler
// tick (UTC midnight) or the dashboard, never computed mid-decision.
func (s *EngineState) ResetDailyLoss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayStartNAV = 0
	s.dailyLossUSD = 0
}
