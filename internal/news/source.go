package news

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"harbinger/internal/domain"
	"harbinger/internal/sentiment"
	"harbinger/internal/store"
	"harbinger/internal/util"
)

// lookback is how far back a headline may be published and still count as a
// fresh signal.
const lookback = 2 * time.Hour

// Source fetches, scores, and audits headlines, and hands the decision loop
// the single strongest signal per cycle (largest sentiment magnitude). Every
// fetched headline is persisted, not only the winner, so the audit trail
// shows what the engine chose against.
type Source struct {
	instrument   string
	scorer       sentiment.Scorer
	articles     store.ArticleStore
	archive      *store.ArticleArchive
	alpaca       *marketdata.Client // nil when no Alpaca credentials are configured
	limiter      *util.RateLimiter
	maxHeadlines int
	log          *slog.Logger

	seen map[string]time.Time
}

// NewSource creates a signal source for one instrument. alpaca may be nil;
// Google News needs no credentials and is always queried.
func NewSource(instrument string, scorer sentiment.Scorer, articles store.ArticleStore, archive *store.ArticleArchive, alpaca *marketdata.Client, ratePerMin, maxHeadlines int) *Source {
	return &Source{
		instrument:   instrument,
		scorer:       scorer,
		articles:     articles,
		archive:      archive,
		alpaca:       alpaca,
		limiter:      util.NewRateLimiter(ratePerMin),
		maxHeadlines: maxHeadlines,
		log:          slog.Default().With("component", "news", "instrument", instrument),
		seen:         make(map[string]time.Time),
	}
}

// Next fetches the current batch of headlines and returns the one with the
// largest absolute sentiment. ok=false means no fresh headline this cycle.
// An error is returned only when every source failed.
func (s *Source) Next(ctx context.Context) (domain.Signal, bool, error) {
	now := time.Now().UTC()
	start := now.Add(-lookback)

	batch, err := s.fetch(ctx, start, now)
	if err != nil {
		return domain.Signal{}, false, err
	}
	batch = s.dedupe(batch, now)
	if len(batch) == 0 {
		return domain.Signal{}, false, nil
	}
	if len(batch) > s.maxHeadlines {
		batch = batch[:s.maxHeadlines]
	}

	records := make([]domain.ArticleRecord, 0, len(batch))
	best := -1
	for i, a := range batch {
		score := s.scorer.Score(a.Headline + " " + a.Content)
		records = append(records, domain.ArticleRecord{
			PublishedAt: a.Time,
			Source:      a.Source,
			Headline:    a.Headline,
			URL:         a.URL,
			Sentiment:   score,
			Instrument:  s.instrument,
		})
		if best < 0 || math.Abs(score) > math.Abs(records[best].Sentiment) {
			best = i
		}
	}
	s.audit(ctx, records)

	win := records[best]
	s.log.Debug("signal selected",
		"headline", win.Headline,
		"sentiment", win.Sentiment,
		"candidates", len(records))
	return domain.Signal{
		Timestamp:  win.PublishedAt,
		Instrument: s.instrument,
		Source:     win.Source,
		Headline:   win.Headline,
		URL:        win.URL,
		Sentiment:  win.Sentiment,
	}, true, nil
}

// fetch queries every configured source, rate-limited per request. Partial
// results are fine; only a total blackout is an error.
func (s *Source) fetch(ctx context.Context, start, end time.Time) ([]Article, error) {
	var all []Article
	var lastErr error
	attempts := 0

	for _, q := range QueryTerms(s.instrument) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		attempts++
		articles, err := FetchGoogleNews(q, start, end)
		if err != nil {
			lastErr = err
			s.log.Warn("google news fetch failed", "query", q, "error", err)
			continue
		}
		all = append(all, articles...)
	}

	if s.alpaca != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		attempts++
		articles, err := FetchAlpacaNews(s.alpaca, start, end)
		if err != nil {
			lastErr = err
			s.log.Warn("alpaca news fetch failed", "error", err)
		} else {
			all = append(all, articles...)
		}
	}

	if len(all) == 0 && lastErr != nil && attempts > 0 {
		return nil, lastErr
	}
	return all, nil
}

// dedupe drops headlines already seen in a recent cycle and expires old
// entries so the set stays bounded.
func (s *Source) dedupe(batch []Article, now time.Time) []Article {
	for k, t := range s.seen {
		if now.Sub(t) > 2*lookback {
			delete(s.seen, k)
		}
	}

	out := batch[:0]
	for _, a := range batch {
		key := a.Source + "|" + a.Headline
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = now
		out = append(out, a)
	}
	return out
}

// audit persists scored headlines to the database and the daily Parquet
// archive. Audit failures are logged, never fatal to the cycle.
func (s *Source) audit(ctx context.Context, records []domain.ArticleRecord) {
	for i := range records {
		if err := s.articles.SaveArticle(ctx, &records[i]); err != nil {
			s.log.Error("saving article", "error", err)
		}
	}
	if s.archive != nil {
		if err := s.archive.WriteArticles(records); err != nil {
			s.log.Error("archiving articles", "error", err)
		}
	}
}
