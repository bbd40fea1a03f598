// Package dashboard provides aggregation and formatting for the operator
// dashboard: per-day order statistics, rejection breakdowns, and the status
// light derived from heartbeat freshness.
package dashboard

import (
	"sort"
	"time"

	"harbinger/internal/domain"
)

// OrderStats aggregates a set of order records.
type OrderStats struct {
	Total     int
	Filled    int
	Simulated int
	Rejected  int
	Errored   int
	Buys      int
	Sells     int
	// NetUnits is the sum of signed units across executed orders (filled or
	// simulated); rejected and errored attempts do not count.
	NetUnits int
	// AvgSentiment is the mean sentiment magnitude of executed orders.
	AvgSentiment float64
}

// DecisionStats aggregates a window of decision summaries.
type DecisionStats struct {
	Cycles    int
	Admitted  int
	NoSignal  int
	BelowBar  int
	Faults    int
	Rejected  int
	ByReason  map[domain.RejectReason]int
	LastCycle time.Time
}

// ReasonBreakdown is one row of the rejection table, for rendering.
type ReasonBreakdown struct {
	Reason domain.RejectReason
	Count  int
}

// AggregateOrders computes order statistics for a day's records.
func AggregateOrders(records []domain.OrderRecord) OrderStats {
	var s OrderStats
	sentSum := 0.0
	executed := 0
	for i := range records {
		r := &records[i]
		s.Total++
		if r.Side == domain.SideBuy {
			s.Buys++
		} else {
			s.Sells++
		}
		switch r.Status {
		case domain.OrderStatusFilled:
			s.Filled++
		case domain.OrderStatusSimulated:
			s.Simulated++
		case domain.OrderStatusRejected:
			s.Rejected++
		case domain.OrderStatusError:
			s.Errored++
		}
		if r.Status == domain.OrderStatusFilled || r.Status == domain.OrderStatusSimulated {
			s.NetUnits += r.Units
			if r.Sentiment < 0 {
				sentSum += -r.Sentiment
			} else {
				sentSum += r.Sentiment
			}
			executed++
		}
	}
	if executed > 0 {
		s.AvgSentiment = sentSum / float64(executed)
	}
	return s
}

// AggregateDecisions computes cycle statistics for a window of summaries.
func AggregateDecisions(summaries []domain.DecisionSummary) DecisionStats {
	s := DecisionStats{ByReason: make(map[domain.RejectReason]int)}
	for i := range summaries {
		d := &summaries[i]
		s.Cycles++
		if d.Timestamp.After(s.LastCycle) {
			s.LastCycle = d.Timestamp
		}
		switch {
		case d.Error != "":
			s.Faults++
		case d.Admitted:
			s.Admitted++
		case d.Note == "no signal":
			s.NoSignal++
		case d.Note != "":
			s.BelowBar++
		case d.Reason != "" && d.Reason != domain.ReasonOK:
			s.Rejected++
			s.ByReason[d.Reason]++
		}
	}
	return s
}

// RejectionTable returns the per-reason counts sorted by count descending,
// ties broken by reason name for stable output.
func (s DecisionStats) RejectionTable() []ReasonBreakdown {
	rows := make([]ReasonBreakdown, 0, len(s.ByReason))
	for reason, count := range s.ByReason {
		rows = append(rows, ReasonBreakdown{Reason: reason, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Reason < rows[j].Reason
	})
	return rows
}

// heartbeatStale is how old a heartbeat may be before the status light turns
// red. Twice the default check interval plus slack.
const heartbeatStale = 12 * time.Minute

// StatusLight classifies heartbeat freshness: "green" for a recent beat,
// "red" for stale or absent.
func StatusLight(lastBeat time.Time, now time.Time) string {
	if lastBeat.IsZero() || now.Sub(lastBeat) > heartbeatStale {
		return "red"
	}
	return "green"
}
