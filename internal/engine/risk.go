package engine

import (
	"time"

	"harbinger/internal/domain"
)

// RiskParams are the admission thresholds evaluated by the risk gate.
type RiskParams struct {
	MaxConcurrent int
	Cooldown      time.Duration
	// MaxSpread rejects quotes wider than this value. Configured by the
	// trading.min_spread knob; see config.TradingConfig for the naming note.
	MaxSpread       float64
	MaxDailyLossUSD float64
}

// GateState is everything the risk gate reads: the enabled switch, the
// broker-fresh open-trade count, and the engine state snapshot.
type GateState struct {
	Enabled        bool
	OpenTradeCount int
	LastTradeAt    time.Time // zero if no trade yet
	DailyLossUSD   float64
}

// EvaluateRisk applies the admission rules in fixed order and returns the
// first failing rule. Pure function: no clock reads, no I/O, no mutation.
//
// Rule order: DISABLED, MAX_CONCURRENT_REACHED, COOLDOWN_ACTIVE,
// SPREAD_TOO_WIDE, DAILY_LOSS_EXCEEDED. The cooldown boundary is inclusive:
// elapsed == Cooldown admits.
func EvaluateRisk(state GateState, spread float64, now time.Time, p RiskParams) domain.RiskCheckResult {
	if !state.Enabled {
		return reject(domain.ReasonDisabled)
	}
	if state.OpenTradeCount >= p.MaxConcurrent {
		return reject(domain.ReasonMaxConcurrentReached)
	}
	if !state.LastTradeAt.IsZero() && now.Sub(state.LastTradeAt) < p.Cooldown {
		return reject(domain.ReasonCooldownActive)
	}
	if spread > p.MaxSpread {
		return reject(domain.ReasonSpreadTooWide)
	}
	if state.DailyLossUSD >= p.MaxDailyLossUSD {
		return reject(domain.ReasonDailyLossExceeded)
	}
	return domain.RiskCheckResult{Admitted: true, Reason: domain.ReasonOK}
}

func reject(r domain.RejectReason) domain.RiskCheckResult {
	return domain.RiskCheckResult{Admitted: false, Reason: r}
}
