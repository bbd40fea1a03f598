// Package store defines the audit-sink interfaces of the trading system and
// their SQLite and Parquet implementations. The engine appends order and
// article records here; it never reads them back for decisions.
package store

import (
	"context"

	"harbinger/internal/domain"
)

// OrderStore is the append-only order audit sink.
type OrderStore interface {
	// SaveOrder appends an order record and assigns its ID.
	SaveOrder(ctx context.Context, rec *domain.OrderRecord) error

	// ListRecentOrders returns up to limit order records, newest first.
	ListRecentOrders(ctx context.Context, limit int) ([]domain.OrderRecord, error)

	// ListOrdersByStatus returns order records with the given status, newest first.
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.OrderRecord, error)
}

// ArticleStore is the append-only scored-headline audit sink.
type ArticleStore interface {
	// SaveArticle appends an article record and assigns its ID.
	SaveArticle(ctx context.Context, rec *domain.ArticleRecord) error

	// ListRecentArticles returns up to limit article records, newest first.
	ListRecentArticles(ctx context.Context, limit int) ([]domain.ArticleRecord, error)
}

// ControlStore persists the operator enable/disable switch. The engine polls
// ReadEnabledFlag once per cycle; the dashboard and CLI flip it.
type ControlStore interface {
	ReadEnabledFlag(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) error
}
