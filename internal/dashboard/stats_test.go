package dashboard

import (
	"testing"
	"time"

	"harbinger/internal/domain"
)

func TestAggregateOrders(t *testing.T) {
	records := []domain.OrderRecord{
		{Side: domain.SideBuy, Units: 20000, Status: domain.OrderStatusFilled, Sentiment: 0.4},
		{Side: domain.SideSell, Units: -10000, Status: domain.OrderStatusSimulated, Sentiment: -0.6},
		{Side: domain.SideBuy, Units: 20000, Status: domain.OrderStatusRejected, Sentiment: 0.9},
		{Side: domain.SideBuy, Units: 20000, Status: domain.OrderStatusError, Sentiment: 0.3},
	}

	s := AggregateOrders(records)
	if s.Total != 4 || s.Filled != 1 || s.Simulated != 1 || s.Rejected != 1 || s.Errored != 1 {
		t.Errorf("stats = %+v", s)
	}
	if s.Buys != 3 || s.Sells != 1 {
		t.Errorf("sides = %d buys / %d sells", s.Buys, s.Sells)
	}
	// Only executed orders count towards exposure: 20000 - 10000.
	if s.NetUnits != 10000 {
		t.Errorf("NetUnits = %d, want 10000", s.NetUnits)
	}
	// Mean |sentiment| of the two executed orders: (0.4 + 0.6) / 2.
	if s.AvgSentiment != 0.5 {
		t.Errorf("AvgSentiment = %v, want 0.5", s.AvgSentiment)
	}
}

func TestAggregateOrdersEmpty(t *testing.T) {
	s := AggregateOrders(nil)
	if s.Total != 0 || s.AvgSentiment != 0 {
		t.Errorf("stats = %+v, want zero value", s)
	}
}

func TestAggregateDecisions(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	summaries := []domain.DecisionSummary{
		{Timestamp: base, Admitted: true, Reason: domain.ReasonOK},
		{Timestamp: base.Add(time.Minute), Note: "no signal"},
		{Timestamp: base.Add(2 * time.Minute), Note: "sentiment below threshold"},
		{Timestamp: base.Add(3 * time.Minute), Reason: domain.ReasonSpreadTooWide},
		{Timestamp: base.Add(4 * time.Minute), Reason: domain.ReasonSpreadTooWide},
		{Timestamp: base.Add(5 * time.Minute), Reason: domain.ReasonCooldownActive},
		{Timestamp: base.Add(6 * time.Minute), Error: "fetching pricing: timeout"},
	}

	s := AggregateDecisions(summaries)
	if s.Cycles != 7 || s.Admitted != 1 || s.NoSignal != 1 || s.BelowBar != 1 || s.Faults != 1 || s.Rejected != 3 {
		t.Errorf("stats = %+v", s)
	}
	if s.ByReason[domain.ReasonSpreadTooWide] != 2 || s.ByReason[domain.ReasonCooldownActive] != 1 {
		t.Errorf("ByReason = %v", s.ByReason)
	}
	if !s.LastCycle.Equal(base.Add(6 * time.Minute)) {
		t.Errorf("LastCycle = %v", s.LastCycle)
	}

	table := s.RejectionTable()
	if len(table) != 2 || table[0].Reason != domain.ReasonSpreadTooWide || table[0].Count != 2 {
		t.Errorf("RejectionTable = %v", table)
	}
}

func TestStatusLight(t *testing.T) {
	now := time.Now()
	if got := StatusLight(now.Add(-time.Minute), now); got != "green" {
		t.Errorf("fresh beat = %s, want green", got)
	}
	if got := StatusLight(now.Add(-time.Hour), now); got != "red" {
		t.Errorf("stale beat = %s, want red", got)
	}
	if got := StatusLight(time.Time{}, now); got != "red" {
		t.Errorf("missing beat = %s, want red", got)
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"}, {999, "999"}, {1000, "1,000"}, {200000, "200,000"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatInt(tt.in); got != tt.want {
			t.Errorf("FormatInt(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice("EUR_USD", 1.08505); got != "1.08505" {
		t.Errorf("EUR_USD price = %q", got)
	}
	if got := FormatPrice("USD_JPY", 147.1234); got != "147.123" {
		t.Errorf("USD_JPY price = %q", got)
	}
	if got := FormatPrice("EUR_USD", 0); got != "-" {
		t.Errorf("zero price = %q", got)
	}
}

func TestFormatSpreadPips(t *testing.T) {
	if got := FormatSpreadPips("EUR_USD", 0.00015); got != "1.5p" {
		t.Errorf("spread = %q, want 1.5p", got)
	}
	if got := FormatSpreadPips("USD_JPY", 0.02); got != "2.0p" {
		t.Errorf("spread = %q, want 2.0p", got)
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.5, "$12.50"}, {1500, "$1.5K"}, {2500000, "$2.5M"},
	}
	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
