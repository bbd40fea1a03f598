// Package live holds the in-memory feed of decision summaries and the gRPC
// server and client that stream it, so monitoring tools can mirror the
// engine's activity in real time.
package live

import (
	"sync"

	"harbinger/internal/domain"
)

// Feed retains the most recent decision summaries and fans new ones out to
// subscribers. The engine is the sole publisher via its Notify hook.
type Feed struct {
	mu     sync.RWMutex
	recent []domain.DecisionSummary
	cap    int

	subsMu    sync.Mutex
	nextSubID int
	subs      map[int]chan domain.DecisionSummary
}

// NewFeed creates a feed retaining up to capacity summaries.
func NewFeed(capacity int) *Feed {
	if capacity < 1 {
		capacity = 1
	}
	return &Feed{
		cap:  capacity,
		subs: make(map[int]chan domain.DecisionSummary),
	}
}

// Publish appends a summary to the retained window and notifies subscribers.
// Slow subscribers drop events rather than block the decision loop.
func (f *Feed) Publish(sum domain.DecisionSummary) {
	f.mu.Lock()
	f.recent = append(f.recent, sum)
	if len(f.recent) > f.cap {
		f.recent = f.recent[len(f.recent)-f.cap:]
	}
	f.mu.Unlock()

	f.subsMu.Lock()
	for _, ch := range f.subs {
		select {
		case ch <- sum:
		default:
			// Slow subscriber, drop event.
		}
	}
	f.subsMu.Unlock()
}

// Recent returns a copy of the retained summaries, oldest first.
func (f *Feed) Recent() []domain.DecisionSummary {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]domain.DecisionSummary, len(f.recent))
	copy(out, f.recent)
	return out
}

// Last returns the most recent summary, or ok=false if nothing has been
// published yet.
func (f *Feed) Last() (domain.DecisionSummary, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.recent) == 0 {
		return domain.DecisionSummary{}, false
	}
	return f.recent[len(f.recent)-1], true
}

// Subscribe creates a subscription channel for new summaries.
func (f *Feed) Subscribe(bufSize int) (id int, ch <-chan domain.DecisionSummary) {
	f.subsMu.Lock()
	defer f.subsMu.Unlock()
	id = f.nextSubID
	f.nextSubID++
	c := make(chan domain.DecisionSummary, bufSize)
	f.subs[id] = c
	return id, c
}

// Unsubscribe removes a subscription and closes its channel.
func (f *Feed) Unsubscribe(id int) {
	f.subsMu.Lock()
	defer f.subsMu.Unlock()
	if ch, ok := f.subs[id]; ok {
		close(ch)
		delete(f.subs, id)
	}
}
