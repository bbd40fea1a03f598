// Package broker defines the Broker interface and provides implementations
// for pricing, account queries, and market-order execution.
package broker

import (
	"context"

	"harbinger/internal/domain"
)

// OrderRequest is a market order with attached take-profit and stop-loss.
// Units are signed: positive buys, negative sells.
type OrderRequest struct {
	Instrument string
	Units      int
	TakeProfit float64
	StopLoss   float64
}

// OrderResult is the broker's answer to a placed order. Rejected carries a
// broker-reported refusal; transport failures surface as errors instead.
type OrderResult struct {
	OrderID      string
	FillPrice    float64
	Rejected     bool
	RejectReason string
}

// Broker abstracts brokerage operations. All calls may block on network I/O
// and honour context cancellation; callers bound them with timeouts.
type Broker interface {
	// Name returns the broker identifier (e.g. "oanda", "simulator").
	Name() string

	// GetPricing returns the current bid/ask quote for an instrument.
	GetPricing(ctx context.Context, instrument string) (domain.Pricing, error)

	// GetAccount returns a snapshot of balance, NAV, and open-trade count.
	GetAccount(ctx context.Context) (domain.AccountSnapshot, error)

	// PlaceMarketOrder submits a market order with attached TP/SL. It is
	// never retried by callers: an ambiguous timeout must not turn into a
	// duplicate order.
	PlaceMarketOrder(ctx context.Context, req OrderRequest) (OrderResult, error)
}
