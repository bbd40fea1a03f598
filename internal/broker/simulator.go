package broker

import (
	"context"
	"fmt"
	"sync"

	"harbinger/internal/domain"
)

// Compile-time interface check.
var _ Broker = (*SimulatorBroker)(nil)

// SimulatorBroker implements the Broker interface in memory, for paper
// environments without broker credentials and for tests. Quotes and account
// state are settable; every call is counted so tests can assert that dry-run
// paths never touch the broker.
type SimulatorBroker struct {
	mu      sync.Mutex
	pricing domain.Pricing
	account domain.AccountSnapshot
	orders  []OrderRequest

	nextOrderID int

	// Call counters.
	pricingCalls int
	accountCalls int
	orderCalls   int

	// Optional scripted failures.
	pricingErr error
	accountErr error
	orderErr   error
	rejectNext bool
}

// NewSimulatorBroker creates a simulator with the given starting quote and
// account snapshot.
func NewSimulatorBroker(pricing domain.Pricing, account domain.AccountSnapshot) *SimulatorBroker {
	return &SimulatorBroker{
		pricing:     pricing,
		account:     account,
		nextOrderID: 1,
	}
}

// Name returns "simulator".
func (b *SimulatorBroker) Name() string { return "simulator" }

// GetPricing returns the configured quote.
func (b *SimulatorBroker) GetPricing(_ context.Context, instrument string) (domain.Pricing, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pricingCalls++
	if b.pricingErr != nil {
		return domain.Pricing{}, b.pricingErr
	}
	p := b.pricing
	p.Instrument = instrument
	return p, nil
}

// GetAccount returns the configured account snapshot.
func (b *SimulatorBroker) GetAccount(_ context.Context) (domain.AccountSnapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accountCalls++
	if b.accountErr != nil {
		return domain.AccountSnapshot{}, b.accountErr
	}
	return b.account, nil
}

// PlaceMarketOrder records the order and fills it at the configured quote:
// buys at ask, sells at bid.
func (b *SimulatorBroker) PlaceMarketOrder(_ context.Context, req OrderRequest) (OrderResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orderCalls++
	if b.orderErr != nil {
		return OrderResult{}, b.orderErr
	}
	if b.rejectNext {
		b.rejectNext = false
		return OrderResult{Rejected: true, RejectReason: "SIMULATED_REJECT"}, nil
	}

	b.orders = append(b.orders, req)
	id := b.nextOrderID
	b.nextOrderID++
	b.account.OpenTradeCount++

	fill := b.pricing.Ask
	if req.Units < 0 {
		fill = b.pricing.Bid
	}
	return OrderResult{OrderID: fmt.Sprintf("sim-%d", id), FillPrice: fill}, nil
}

// ---------------------------------------------------------------------------
// Test/configuration hooks
// ---------------------------------------------------------------------------

// SetPricing replaces the quote returned by GetPricing.
func (b *SimulatorBroker) SetPricing(p domain.Pricing) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pricing = p
}

// SetAccount replaces the snapshot returned by GetAccount.
func (b *SimulatorBroker) SetAccount(a domain.AccountSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.account = a
}

// FailPricing makes GetPricing return err until cleared with nil.
func (b *SimulatorBroker) FailPricing(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pricingErr = err
}

// FailAccount makes GetAccount return err until cleared with nil.
func (b *SimulatorBroker) FailAccount(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accountErr = err
}

// FailOrders makes PlaceMarketOrder return err until cleared with nil.
func (b *SimulatorBroker) FailOrders(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orderErr = err
}

// RejectNextOrder makes the next PlaceMarketOrder report a broker rejection.
func (b *SimulatorBroker) RejectNextOrder() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejectNext = true
}

// Orders returns a copy of all accepted orders.
func (b *SimulatorBroker) Orders() []OrderRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]OrderRequest, len(b.orders))
	copy(out, b.orders)
	return out
}

// Calls returns the pricing, account, and order call counts.
func (b *SimulatorBroker) Calls() (pricing, account, orders int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pricingCalls, b.accountCalls, b.orderCalls
}
