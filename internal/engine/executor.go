package engine

import (
	"context"
	"fmt"
	"time"

	"harbinger/internal/broker"
	"harbinger/internal/domain"
)

// OrderExecutor places (or simulates) a sized market order with attached
// take-profit and stop-loss. The variant is chosen once at construction from
// the dry-run flag; business logic never branches on it.
type OrderExecutor interface {
	// Execute turns a sized intent into an order record. The record is always
	// returned, with Status reflecting the outcome; a non-nil error
	// accompanies Status ERROR and describes the transport failure.
	Execute(ctx context.Context, intent domain.TradeIntent, quote domain.Pricing, tpPips, slPips float64) (domain.OrderRecord, error)
}

// Compile-time interface checks.
var _ OrderExecutor = (*SimulatedExecutor)(nil)
var _ OrderExecutor = (*LiveExecutor)(nil)

// bracket computes entry, take-profit, and stop-loss prices for an intent.
// Buys enter at the ask with TP above and SL below; sells are the mirror.
func bracket(intent domain.TradeIntent, quote domain.Pricing, tpPips, slPips float64) (entry, tp, sl float64) {
	pip := domain.PipSize(intent.Instrument)
	if intent.Side == domain.SideBuy {
		entry = quote.Ask
		tp = entry + tpPips*pip
		sl = entry - slPips*pip
		return
	}
	entry = quote.Bid
	tp = entry - tpPips*pip
	sl = entry + slPips*pip
	return
}

// newRecord assembles the common fields of an order record.
func newRecord(intent domain.TradeIntent, entry, tp, sl float64) domain.OrderRecord {
	return domain.OrderRecord{
		Timestamp:  time.Now().UTC(),
		Instrument: intent.Instrument,
		Side:       intent.Side,
		Units:      intent.Units,
		EntryPrice: entry,
		TakeProfit: tp,
		StopLoss:   sl,
		Sentiment:  intent.Sentiment,
		Headline:   intent.Headline,
	}
}

// ---------------------------------------------------------------------------
// Simulated executor (dry-run)
// ---------------------------------------------------------------------------

// SimulatedExecutor produces SIMULATED order records without any broker
// round-trip. Its state transitions are identical to the live path.
type SimulatedExecutor struct{}

// NewSimulatedExecutor creates the dry-run executor.
func NewSimulatedExecutor() *SimulatedExecutor { return &SimulatedExecutor{} }

// Execute returns a SIMULATED record priced off the supplied quote. No
// network call is made.
func (e *SimulatedExecutor) Execute(_ context.Context, intent domain.TradeIntent, quote domain.Pricing, tpPips, slPips float64) (domain.OrderRecord, error) {
	entry, tp, sl := bracket(intent, quote, tpPips, slPips)
	rec := newRecord(intent, entry, tp, sl)
	rec.Status = domain.OrderStatusSimulated
	return rec, nil
}

// ---------------------------------------------------------------------------
// Live executor
// ---------------------------------------------------------------------------

// LiveExecutor submits orders through a Broker. Broker-reported refusals map
// to REJECTED; transport failures (including timeouts with unknown broker
// outcome) map to ERROR and are never retried here.
type LiveExecutor struct {
	broker broker.Broker
}

// NewLiveExecutor creates an executor bound to the given broker.
func NewLiveExecutor(b broker.Broker) *LiveExecutor {
	return &LiveExecutor{broker: b}
}

// Execute submits a market order with attached TP/SL. Exactly one attempt.
func (e *LiveExecutor) Execute(ctx context.Context, intent domain.TradeIntent, quote domain.Pricing, tpPips, slPips float64) (domain.OrderRecord, error) {
	entry, tp, sl := bracket(intent, quote, tpPips, slPips)
	rec := newRecord(intent, entry, tp, sl)

	res, err := e.broker.PlaceMarketOrder(ctx, broker.OrderRequest{
		Instrument: intent.Instrument,
		Units:      intent.Units,
		TakeProfit: tp,
		StopLoss:   sl,
	})
	if err != nil {
		rec.Status = domain.OrderStatusError
		return rec, fmt.Errorf("placing %s order: %w", intent.Side, err)
	}
	if res.Rejected {
		rec.Status = domain.OrderStatusRejected
		rec.OrderID = res.OrderID
		return rec, nil
	}

	rec.Status = domain.OrderStatusFilled
	rec.OrderID = res.OrderID
	rec.FillPrice = res.FillPrice
	return rec, nil
}
