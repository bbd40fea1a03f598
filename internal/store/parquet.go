package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"harbinger/internal/domain"
)

// ArticleArchive stores the day-partitioned scored-headline history as
// Parquet files. The live audit trail lives in SQLite; the archive is the
// long-term, dashboard-queryable copy.
type ArticleArchive struct {
	DataDir string
}

// NewArticleArchive creates an archive rooted at the given data directory.
func NewArticleArchive(dataDir string) *ArticleArchive {
	return &ArticleArchive{DataDir: dataDir}
}

// articleParquet is the on-disk Parquet schema for archived articles.
type articleParquet struct {
	PublishedAt int64   `parquet:"published_at,timestamp(millisecond)"` // Unix ms
	Source      string  `parquet:"source"`
	Headline    string  `parquet:"headline"`
	URL         string  `parquet:"url"`
	Sentiment   float64 `parquet:"sentiment"`
	Instrument  string  `parquet:"instrument"`
}

// WriteArticles appends articles to their per-day archive files, merging with
// any existing records. Layout: <DataDir>/news/<YYYY-MM-DD>.parquet
func (a *ArticleArchive) WriteArticles(articles []domain.ArticleRecord) error {
	if len(articles) == 0 {
		return nil
	}

	groups := make(map[string][]articleParquet)
	for _, art := range articles {
		date := art.PublishedAt.UTC().Format("2006-01-02")
		groups[date] = append(groups[date], articleParquet{
			PublishedAt: art.PublishedAt.UnixMilli(),
			Source:      art.Source,
			Headline:    art.Headline,
			URL:         art.URL,
			Sentiment:   art.Sentiment,
			Instrument:  art.Instrument,
		})
	}

	for date, records := range groups {
		path := a.articlePath(date)

		existing, _ := readParquetFile[articleParquet](path)
		merged := mergeArticleRecords(existing, records)

		if err := writeParquetFile(path, merged); err != nil {
			return fmt.Errorf("writing article archive for %s: %w", date, err)
		}
	}
	return nil
}

// ReadArticles returns the archived articles for a date (YYYY-MM-DD), oldest
// first. A missing day file yields an empty slice, not an error.
func (a *ArticleArchive) ReadArticles(date string) ([]domain.ArticleRecord, error) {
	records, err := readParquetFile[articleParquet](a.articlePath(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]domain.ArticleRecord, 0, len(records))
	for _, r := range records {
		out = append(out, domain.ArticleRecord{
			PublishedAt: time.UnixMilli(r.PublishedAt).UTC(),
			Source:      r.Source,
			Headline:    r.Headline,
			URL:         r.URL,
			Sentiment:   r.Sentiment,
			Instrument:  r.Instrument,
		})
	}
	return out, nil
}

// ListDates returns all archived dates in ascending order.
func (a *ArticleArchive) ListDates() ([]string, error) {
	dir := filepath.Join(a.DataDir, "news")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".parquet") {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".parquet"))
	}
	sort.Strings(dates)
	return dates, nil
}

// articlePath returns the archive file path for a date.
// Layout: <dataDir>/news/<YYYY-MM-DD>.parquet
func (a *ArticleArchive) articlePath(date string) string {
	return filepath.Join(a.DataDir, "news", date+".parquet")
}

// ---------------------------------------------------------------------------
// Parquet file helpers
// ---------------------------------------------------------------------------

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// mergeArticleRecords deduplicates by (source, published_at, headline),
// preferring incoming records. Results are sorted by publish time.
func mergeArticleRecords(existing, incoming []articleParquet) []articleParquet {
	type key struct {
		source   string
		ts       int64
		headline string
	}
	seen := make(map[key]articleParquet, len(existing)+len(incoming))
	for _, r := range existing {
		seen[key{r.Source, r.PublishedAt, r.Headline}] = r
	}
	for _, r := range incoming {
		seen[key{r.Source, r.PublishedAt, r.Headline}] = r
	}

	merged := make([]articleParquet, 0, len(seen))
	for _, r := range seen {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].PublishedAt < merged[j].PublishedAt
	})
	return merged
}
