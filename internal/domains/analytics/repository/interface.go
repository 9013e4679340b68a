package repository

import (
	"context"
	"time"

	"artstore-backend/internal/domains/analytics/model"
)

type RepositoryInterface interface {
	Insert(ctx context.Context, entry *model.ActivityLog) error

	// All aggregate reads take a window start; the zero time means
	// all-time.
	CountFunnel(ctx context.Context, since time.Time) (model.FunnelCounts, error)
	TopViewedProducts(ctx context.Context, since time.Time, limit int) ([]model.ProductViewStat, error)
	DailySeries(ctx context.Context, since time.Time) ([]model.DailyStat, error)

	// RevenueStats reads the orders table, not purchase events.
	RevenueStats(ctx context.Context, since time.Time) ([]model.RevenueStat, error)

	AbandonedSessions(ctx context.Context, since time.Time) ([]model.AbandonedSession, error)

	PurgeOlderThan(ctx context.Context, retentionDays int) (int, error)
}
