// Package httpapi provides the dashboard HTTP REST API: engine status,
// trade and article history, decision summaries, and the operator controls.
package httpapi

import (
	"time"

	"harbinger/internal/dashboard"
	"harbinger/internal/domain"
)

// OrderJSON is the JSON representation of an order record.
type OrderJSON struct {
	ID         int64   `json:"id"`
	Time       string  `json:"time"`
	Instrument string  `json:"instrument"`
	Side       string  `json:"side"`
	Units      int     `json:"units"`
	EntryPrice float64 `json:"entryPrice"`
	TakeProfit float64 `json:"takeProfit"`
	StopLoss   float64 `json:"stopLoss"`
	OrderID    string  `json:"orderId,omitempty"`
	FillPrice  float64 `json:"fillPrice,omitempty"`
	Status     string  `json:"status"`
	Sentiment  float64 `json:"sentiment"`
	Headline   string  `json:"headline,omitempty"`
}

// ArticleJSON is the JSON representation of a scored headline.
type ArticleJSON struct {
	ID        int64   `json:"id,omitempty"`
	Time      string  `json:"time"`
	Source    string  `json:"source"`
	Headline  string  `json:"headline"`
	URL       string  `json:"url,omitempty"`
	Sentiment float64 `json:"sentiment"`
}

// DecisionJSON is the JSON representation of one decision cycle.
type DecisionJSON struct {
	Time      string     `json:"time"`
	Headline  string     `json:"headline,omitempty"`
	Sentiment float64    `json:"sentiment"`
	Spread    float64    `json:"spread"`
	Admitted  bool       `json:"admitted"`
	Reason    string     `json:"reason,omitempty"`
	Note      string     `json:"note,omitempty"`
	Error     string     `json:"error,omitempty"`
	Order     *OrderJSON `json:"order,omitempty"`
}

// StatusResponse describes the engine's current state.
type StatusResponse struct {
	Light        string  `json:"light"` // green or red, from heartbeat freshness
	Enabled      bool    `json:"enabled"`
	DryRun       bool    `json:"dryRun"`
	Instrument   string  `json:"instrument"`
	LastBeat     string  `json:"lastBeat,omitempty"`
	LastTradeAt  string  `json:"lastTradeAt,omitempty"`
	DailyLossUSD float64 `json:"dailyLossUsd"`
	DayStartNAV  float64 `json:"dayStartNav,omitempty"`
}

// TradesResponse lists order records.
type TradesResponse struct {
	Trades []OrderJSON `json:"trades"`
}

// ArticlesResponse lists scored headlines, optionally for an archive date.
type ArticlesResponse struct {
	Date     string        `json:"date,omitempty"`
	Articles []ArticleJSON `json:"articles"`
}

// DatesResponse lists available archive dates.
type DatesResponse struct {
	Dates []string `json:"dates"`
}

// DecisionsResponse lists recent decision cycles.
type DecisionsResponse struct {
	Decisions []DecisionJSON `json:"decisions"`
}

// ReasonCountJSON is one row of the rejection breakdown.
type ReasonCountJSON struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// StatsResponse aggregates today's activity.
type StatsResponse struct {
	Cycles       int               `json:"cycles"`
	Admitted     int               `json:"admitted"`
	NoSignal     int               `json:"noSignal"`
	BelowBar     int               `json:"belowThreshold"`
	Faults       int               `json:"faults"`
	Rejected     int               `json:"rejected"`
	Rejections   []ReasonCountJSON `json:"rejections"`
	Orders       int               `json:"orders"`
	Filled       int               `json:"filled"`
	Simulated    int               `json:"simulated"`
	NetUnits     int               `json:"netUnits"`
	AvgSentiment float64           `json:"avgSentiment"`
}

// ControlRequest is the body for the enabled switch.
type ControlRequest struct {
	Enabled bool `json:"enabled"`
}

// ControlResponse echoes the applied control change.
type ControlResponse struct {
	Enabled bool `json:"enabled"`
}

func convertOrder(r *domain.OrderRecord) *OrderJSON {
	if r == nil {
		return nil
	}
	return &OrderJSON{
		ID:         r.ID,
		Time:       r.Timestamp.UTC().Format(time.RFC3339),
		Instrument: r.Instrument,
		Side:       string(r.Side),
		Units:      r.Units,
		EntryPrice: r.EntryPrice,
		TakeProfit: r.TakeProfit,
		StopLoss:   r.StopLoss,
		OrderID:    r.OrderID,
		FillPrice:  r.FillPrice,
		Status:     string(r.Status),
		Sentiment:  r.Sentiment,
		Headline:   r.Headline,
	}
}

func convertArticle(r *domain.ArticleRecord) ArticleJSON {
	return ArticleJSON{
		ID:        r.ID,
		Time:      r.PublishedAt.UTC().Format(time.RFC3339),
		Source:    r.Source,
		Headline:  r.Headline,
		URL:       r.URL,
		Sentiment: r.Sentiment,
	}
}

func convertDecision(s domain.DecisionSummary) DecisionJSON {
	reason := string(s.Reason)
	if s.Reason == domain.ReasonOK {
		reason = ""
	}
	return DecisionJSON{
		Time:      s.Timestamp.UTC().Format(time.RFC3339),
		Headline:  s.Headline,
		Sentiment: s.Sentiment,
		Spread:    s.Spread,
		Admitted:  s.Admitted,
		Reason:    reason,
		Note:      s.Note,
		Error:     s.Error,
		Order:     convertOrder(s.Order),
	}
}

func convertStats(d dashboard.DecisionStats, o dashboard.OrderStats) StatsResponse {
	rejections := make([]ReasonCountJSON, 0, len(d.ByReason))
	for _, row := range d.RejectionTable() {
		rejections = append(rejections, ReasonCountJSON{Reason: string(row.Reason), Count: row.Count})
	}
	return StatsResponse{
		Cycles:       d.Cycles,
		Admitted:     d.Admitted,
		NoSignal:     d.NoSignal,
		BelowBar:     d.BelowBar,
		Faults:       d.Faults,
		Rejected:     d.Rejected,
		Rejections:   rejections,
		Orders:       o.Total,
		Filled:       o.Filled,
		Simulated:    o.Simulated,
		NetUnits:     o.NetUnits,
		AvgSentiment: o.AvgSentiment,
	}
}
