// Package domain defines the shared value types of the harbinger trading
// system: signals, trade intents, risk-check results, order records, and the
// per-cycle decision summary exposed to the dashboard.
package domain

import "time"

// ---------------------------------------------------------------------------
// Sides and statuses
// ---------------------------------------------------------------------------

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderStatus is the terminal status of an order attempt.
type OrderStatus string

const (
	// OrderStatusSimulated marks a dry-run order that never reached a broker.
	OrderStatusSimulated OrderStatus = "SIMULATED"
	// OrderStatusFilled marks a live order accepted and filled by the broker.
	OrderStatusFilled OrderStatus = "FILLED"
	// OrderStatusRejected marks a live order the broker refused.
	OrderStatusRejected OrderStatus = "REJECTED"
	// OrderStatusError marks a transport failure or timeout with unknown
	// broker-side outcome. Never retried automatically.
	OrderStatusError OrderStatus = "ERROR"
)

// ---------------------------------------------------------------------------
// Signals and intents
// ---------------------------------------------------------------------------

// Signal is one externally-scored (headline, sentiment) observation that
// drives a single decision cycle. Sentiment is in [-1, 1].
type Signal struct {
	Timestamp  time.Time
	Instrument string
	Source     string
	Headline   string
	URL        string
	Sentiment  float64
}

// TradeIntent is a Signal that cleared the sentiment threshold. Units are
// signed: positive for BUY, negative for SELL.
type TradeIntent struct {
	Instrument string
	Side       Side
	Sentiment  float64
	Headline   string
	Units      int
}

// DeriveIntent converts a signal into a trade intent, or returns ok=false if
// the sentiment magnitude does not strictly exceed the threshold. Units are
// left zero; sizing happens after risk admission.
func DeriveIntent(sig Signal, threshold float64) (TradeIntent, bool) {
	switch {
	case sig.Sentiment > threshold:
		return TradeIntent{
			Instrument: sig.Instrument,
			Side:       SideBuy,
			Sentiment:  sig.Sentiment,
			Headline:   sig.Headline,
		}, true
	case sig.Sentiment < -threshold:
		return TradeIntent{
			Instrument: sig.Instrument,
			Side:       SideSell,
			Sentiment:  sig.Sentiment,
			Headline:   sig.Headline,
		}, true
	default:
		return TradeIntent{}, false
	}
}

// ---------------------------------------------------------------------------
// Risk check
// ---------------------------------------------------------------------------

// RejectReason identifies which admission rule failed, or OK.
type RejectReason string

const (
	ReasonOK                   RejectReason = "OK"
	ReasonDisabled             RejectReason = "DISABLED"
	ReasonMaxConcurrentReached RejectReason = "MAX_CONCURRENT_REACHED"
	ReasonCooldownActive       RejectReason = "COOLDOWN_ACTIVE"
	ReasonSpreadTooWide        RejectReason = "SPREAD_TOO_WIDE"
	ReasonDailyLossExceeded    RejectReason = "DAILY_LOSS_EXCEEDED"
)

// RiskCheckResult is the outcome of the risk gate for one decision cycle.
// Admitted is true iff Reason == ReasonOK.
type RiskCheckResult struct {
	Admitted bool
	Reason   RejectReason
}

// ---------------------------------------------------------------------------
// Market and account snapshots
// ---------------------------------------------------------------------------

// Pricing is a bid/ask quote for an instrument.
type Pricing struct {
	Instrument string
	Bid        float64
	Ask        float64
}

// Spread returns ask minus bid.
func (p Pricing) Spread() float64 { return p.Ask - p.Bid }

// AccountSnapshot is the broker-side account state fetched fresh each cycle.
type AccountSnapshot struct {
	Balance        float64
	NAV            float64
	OpenTradeCount int
}

// ---------------------------------------------------------------------------
// Order records
// ---------------------------------------------------------------------------

// OrderRecord is the immutable audit record of one order attempt, real or
// simulated. OrderID is empty for simulated orders.
type OrderRecord struct {
	ID         int64
	Timestamp  time.Time
	Instrument string
	Side       Side
	Units      int
	EntryPrice float64
	TakeProfit float64
	StopLoss   float64
	OrderID    string
	FillPrice  float64
	Status     OrderStatus
	Sentiment  float64
	Headline   string
}

// ArticleRecord is the audit record of one scored headline. Every fetched
// headline is recorded, not only the one that drove a trade.
type ArticleRecord struct {
	ID          int64
	PublishedAt time.Time
	Source      string
	Headline    string
	URL         string
	Sentiment   float64
	Instrument  string
}

// ---------------------------------------------------------------------------
// Decision summary (heartbeat payload)
// ---------------------------------------------------------------------------

// DecisionSummary is the last-decision snapshot published once per cycle so
// an operator can tell "not trading by policy" from "not trading by fault".
// Reason is set only when the risk gate ran (or the engine was disabled);
// Note covers the non-rejection outcomes ("no signal", "sentiment below
// threshold", "sized to zero units"); Error carries transient faults.
type DecisionSummary struct {
	Timestamp time.Time
	Headline  string
	Sentiment float64
	Spread    float64
	Admitted  bool
	Reason    RejectReason
	Note      string
	Error     string
	Order     *OrderRecord
}

// ---------------------------------------------------------------------------
// Instrument tables
// ---------------------------------------------------------------------------

var pipSizes = map[string]float64{
	"EUR_USD": 0.0001,
	"GBP_USD": 0.0001,
	"USD_JPY": 0.01,
	"XAU_USD": 0.1,
}

var priceDigits = map[string]int{
	"EUR_USD": 5,
	"GBP_USD": 5,
	"USD_JPY": 3,
	"XAU_USD": 2,
}

// PipSize returns the pip increment for an instrument, defaulting to 0.0001.
func PipSize(instrument string) float64 {
	if p, ok := pipSizes[instrument]; ok {
		return p
	}
	return 0.0001
}

// PriceDigits returns the decimal places used when formatting prices for an
// instrument, defaulting to 5.
func PriceDigits(instrument string) int {
	if d, ok := priceDigits[instrument]; ok {
		return d
	}
	return 5
}
