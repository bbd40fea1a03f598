package engine

import (
	"errors"
	"testing"
	"time"

	"harbinger/internal/domain"
)

var testParams = RiskParams{
	MaxConcurrent:   3,
	Cooldown:        30 * time.Minute,
	MaxSpread:       0.0002,
	MaxDailyLossUSD: 1500,
}

func admittedState() GateState {
	return GateState{
		Enabled:        true,
		OpenTradeCount: 1,
		LastTradeAt:    time.Time{}, // no prior trade
		DailyLossUSD:   0,
	}
}

func TestEvaluateRiskAdmits(t *testing.T) {
	now := time.Now()
	res := EvaluateRisk(admittedState(), 0.00015, now, testParams)
	if !res.Admitted || res.Reason != domain.ReasonOK {
		t.Fatalf("EvaluateRisk = %+v, want admitted OK", res)
	}
}

func TestEvaluateRiskSingleRules(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(*GateState, *float64)
		want   domain.RejectReason
	}{
		{"disabled", func(s *GateState, _ *float64) { s.Enabled = false }, domain.ReasonDisabled},
		{"max concurrent at limit", func(s *GateState, _ *float64) { s.OpenTradeCount = 3 }, domain.ReasonMaxConcurrentReached},
		{"max concurrent above limit", func(s *GateState, _ *float64) { s.OpenTradeCount = 5 }, domain.ReasonMaxConcurrentReached},
		{"cooldown active", func(s *GateState, _ *float64) { s.LastTradeAt = now.Add(-29 * time.Minute) }, domain.ReasonCooldownActive},
		{"spread too wide", func(_ *GateState, spread *float64) { *spread = 0.00025 }, domain.ReasonSpreadTooWide},
		{"daily loss at limit", func(s *GateState, _ *float64) { s.DailyLossUSD = 1500 }, domain.ReasonDailyLossExceeded},
		{"daily loss above limit", func(s *GateState, _ *float64) { s.DailyLossUSD = 2000 }, domain.ReasonDailyLossExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := admittedState()
			spread := 0.00015
			tt.mutate(&state, &spread)

			res := EvaluateRisk(state, spread, now, testParams)
			if res.Admitted {
				t.Fatalf("EvaluateRisk admitted, want rejection %s", tt.want)
			}
			if res.Reason != tt.want {
				t.Errorf("Reason = %s, want %s", res.Reason, tt.want)
			}
		})
	}
}

func TestEvaluateRiskPrecedence(t *testing.T) {
	now := time.Now()

	// Disabled AND spread too wide: first failing rule wins.
	state := admittedState()
	state.Enabled = false
	res := EvaluateRisk(state, 0.01, now, testParams)
	if res.Reason != domain.ReasonDisabled {
		t.Errorf("disabled+wide spread Reason = %s, want DISABLED", res.Reason)
	}

	// Everything failing at once still reports DISABLED.
	state = GateState{
		Enabled:        false,
		OpenTradeCount: 10,
		LastTradeAt:    now.Add(-time.Minute),
		DailyLossUSD:   99999,
	}
	res = EvaluateRisk(state, 0.01, now, testParams)
	if res.Reason != domain.ReasonDisabled {
		t.Errorf("all-failing Reason = %s, want DISABLED", res.Reason)
	}

	// With the gate enabled, concurrency outranks cooldown and spread.
	state.Enabled = true
	res = EvaluateRisk(state, 0.01, now, testParams)
	if res.Reason != domain.ReasonMaxConcurrentReached {
		t.Errorf("enabled all-failing Reason = %s, want MAX_CONCURRENT_REACHED", res.Reason)
	}
}

func TestEvaluateRiskCooldownBoundary(t *testing.T) {
	now := time.Now()

	// 29 minutes since the last trade: still cooling down.
	state := admittedState()
	state.LastTradeAt = now.Add(-29 * time.Minute)
	res := EvaluateRisk(state, 0.00015, now, testParams)
	if res.Reason != domain.ReasonCooldownActive {
		t.Errorf("at 29min Reason = %s, want COOLDOWN_ACTIVE", res.Reason)
	}

	// Exactly 30 minutes: the boundary is inclusive, admit.
	state.LastTradeAt = now.Add(-30 * time.Minute)
	res = EvaluateRisk(state, 0.00015, now, testParams)
	if !res.Admitted {
		t.Errorf("at exactly 30min Reason = %s, want admitted", res.Reason)
	}
}

func TestEvaluateRiskSpreadBoundary(t *testing.T) {
	now := time.Now()
	state := admittedState()

	// A spread equal to the configured limit is acceptable.
	res := EvaluateRisk(state, 0.0002, now, testParams)
	if !res.Admitted {
		t.Errorf("spread == limit Reason = %s, want admitted", res.Reason)
	}
	res = EvaluateRisk(state, 0.00020001, now, testParams)
	if res.Reason != domain.ReasonSpreadTooWide {
		t.Errorf("spread just above limit Reason = %s, want SPREAD_TOO_WIDE", res.Reason)
	}
}

func TestEvaluateRiskIdempotent(t *testing.T) {
	now := time.Now()
	state := admittedState()
	state.LastTradeAt = now.Add(-10 * time.Minute)

	first := EvaluateRisk(state, 0.00015, now, testParams)
	second := EvaluateRisk(state, 0.00015, now, testParams)
	if first != second {
		t.Errorf("EvaluateRisk not idempotent: %+v != %+v", first, second)
	}
}

func TestUnitsForRisk(t *testing.T) {
	tests := []struct {
		name     string
		riskUSD  float64
		slPips   float64
		pipValue float64
		want     int
		wantErr  bool
	}{
		{"unit pip value", 500, 25, 1.0, 20, false},
		{"eurusd pip value", 500, 25, 0.0001, 200000, false},
		{"floors down", 100, 30, 1.0, 3, false},
		{"zero budget", 0, 25, 1.0, 0, false},
		{"tiny budget sizes to zero", 0.5, 25, 1.0, 0, false},
		{"zero stop loss", 500, 0, 1.0, 0, true},
		{"negative stop loss", 500, -5, 1.0, 0, true},
		{"zero pip value", 500, 25, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnitsForRisk(tt.riskUSD, tt.slPips, tt.pipValue)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSizing) {
					t.Fatalf("err = %v, want ErrInvalidSizing", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnitsForRisk: %v", err)
			}
			if got != tt.want {
				t.Errorf("UnitsForRisk = %d, want %d", got, tt.want)
			}
			if got < 0 {
				t.Errorf("UnitsForRisk = %d, must never be negative", got)
			}
		})
	}
}
