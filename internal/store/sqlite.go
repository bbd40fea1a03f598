package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"harbinger/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface checks.
var _ OrderStore = (*SQLiteStore)(nil)
var _ ArticleStore = (*SQLiteStore)(nil)
var _ ControlStore = (*SQLiteStore)(nil)

// SQLiteStore implements OrderStore, ArticleStore, and ControlStore backed by
// a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	ts          TEXT    NOT NULL,
	instrument  TEXT    NOT NULL,
	side        TEXT    NOT NULL,
	units       INTEGER NOT NULL,
	entry_price REAL    NOT NULL,
	take_profit REAL    NOT NULL,
	stop_loss   REAL    NOT NULL,
	order_id    TEXT,
	fill_price  REAL,
	status      TEXT    NOT NULL,
	sentiment   REAL    NOT NULL,
	headline    TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders(ts);

CREATE TABLE IF NOT EXISTS articles (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	published_at TEXT NOT NULL,
	source       TEXT NOT NULL,
	headline     TEXT NOT NULL,
	url          TEXT,
	sentiment    REAL NOT NULL,
	instrument   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);

CREATE TABLE IF NOT EXISTS control (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	enabled    INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT    NOT NULL
);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, runs the
// schema migration, and seeds the single control row (disabled).
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	// The engine starts disabled until an operator flips the switch.
	_, err = db.Exec(
		`INSERT OR IGNORE INTO control (id, enabled, updated_at) VALUES (1, 0, ?)`,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding control row: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// OrderStore implementation
// ---------------------------------------------------------------------------

// SaveOrder appends an order record and assigns its ID.
func (s *SQLiteStore) SaveOrder(ctx context.Context, rec *domain.OrderRecord) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO orders
			(ts, instrument, side, units, entry_price, take_profit, stop_loss,
			 order_id, fill_price, status, sentiment, headline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.Instrument, string(rec.Side), rec.Units,
		rec.EntryPrice, rec.TakeProfit, rec.StopLoss,
		rec.OrderID, rec.FillPrice, string(rec.Status),
		rec.Sentiment, rec.Headline,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading order id: %w", err)
	}
	return nil
}

// ListRecentOrders returns up to limit order records, newest first.
func (s *SQLiteStore) ListRecentOrders(ctx context.Context, limit int) ([]domain.OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, instrument, side, units, entry_price, take_profit,
		       stop_loss, order_id, fill_price, status, sentiment, headline
		FROM orders ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListOrdersByStatus returns order records with the given status, newest first.
func (s *SQLiteStore) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, instrument, side, units, entry_price, take_profit,
		       stop_loss, order_id, fill_price, status, sentiment, headline
		FROM orders WHERE status = ? ORDER BY id DESC LIMIT ?`, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("querying orders by status: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.OrderRecord, error) {
	var out []domain.OrderRecord
	for rows.Next() {
		var rec domain.OrderRecord
		var ts, side, status string
		var orderID sql.NullString
		var fillPrice sql.NullFloat64
		if err := rows.Scan(
			&rec.ID, &ts, &rec.Instrument, &side, &rec.Units,
			&rec.EntryPrice, &rec.TakeProfit, &rec.StopLoss,
			&orderID, &fillPrice, &status, &rec.Sentiment, &rec.Headline,
		); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		rec.Side = domain.Side(side)
		rec.Status = domain.OrderStatus(status)
		rec.OrderID = orderID.String
		rec.FillPrice = fillPrice.Float64
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// ArticleStore implementation
// ---------------------------------------------------------------------------

// SaveArticle appends an article record and assigns its ID.
func (s *SQLiteStore) SaveArticle(ctx context.Context, rec *domain.ArticleRecord) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (published_at, source, headline, url, sentiment, instrument)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.PublishedAt.UTC().Format(time.RFC3339Nano),
		rec.Source, rec.Headline, rec.URL, rec.Sentiment, rec.Instrument,
	)
	if err != nil {
		return fmt.Errorf("inserting article: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading article id: %w", err)
	}
	return nil
}

// ListRecentArticles returns up to limit article records, newest first.
func (s *SQLiteStore) ListRecentArticles(ctx context.Context, limit int) ([]domain.ArticleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, published_at, source, headline, url, sentiment, instrument
		FROM articles ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var out []domain.ArticleRecord
	for rows.Next() {
		var rec domain.ArticleRecord
		var published string
		var url sql.NullString
		if err := rows.Scan(&rec.ID, &published, &rec.Source, &rec.Headline,
			&url, &rec.Sentiment, &rec.Instrument); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		rec.URL = url.String
		rec.PublishedAt, _ = time.Parse(time.RFC3339Nano, published)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// ControlStore implementation
// ---------------------------------------------------------------------------

// ReadEnabledFlag returns the operator enable/disable switch.
func (s *SQLiteStore) ReadEnabledFlag(ctx context.Context) (bool, error) {
	var enabled int
	err := s.db.QueryRowContext(ctx,
		`SELECT enabled FROM control WHERE id = 1`).Scan(&enabled)
	if err != nil {
		return false, fmt.Errorf("reading enabled flag: %w", err)
	}
	return enabled != 0, nil
}

// SetEnabled flips the operator enable/disable switch.
func (s *SQLiteStore) SetEnabled(ctx context.Context, enabled bool) error {
	v := 0
	if enabled {
		v = 1
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE control SET enabled = ?, updated_at = ? WHERE id = 1`,
		v, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("setting enabled flag: %w", err)
	}
	return nil
}
