package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"artstore-backend/internal/domains/analytics/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Insert(ctx context.Context, entry *model.ActivityLog) error {
	query := `
		INSERT INTO activity_log (id, session_id, event_type, product_id, order_id, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		entry.ID, entry.SessionID, entry.EventType, entry.ProductID, entry.OrderID, entry.Quantity,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

// sinceClause keeps the all-time path out of every query's WHERE.
func sinceClause(since time.Time, column string, argPos int) (string, []interface{}) {
	if since.IsZero() {
		return "", nil
	}
	return fmt.Sprintf(" AND %s >= $%d", column, argPos), []interface{}{since}
}

func (r *postgresRepository) CountFunnel(ctx context.Context, since time.Time) (model.FunnelCounts, error) {
	clause, args := sinceClause(since, "created_at", 1)
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE event_type = 'view'),
			COUNT(*) FILTER (WHERE event_type = 'add_to_cart'),
			COUNT(*) FILTER (WHERE event_type = 'checkout_start'),
			COUNT(*) FILTER (WHERE event_type = 'purchase')
		FROM activity_log
		WHERE 1=1%s
	`, clause)

	var counts model.FunnelCounts
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&counts.Views, &counts.AddToCarts, &counts.CheckoutStarts, &counts.Purchases,
	)
	if err != nil {
		return model.FunnelCounts{}, fmt.Errorf("failed to count funnel events: %w", err)
	}

	return counts, nil
}

func (r *postgresRepository) TopViewedProducts(ctx context.Context, since time.Time, limit int) ([]model.ProductViewStat, error) {
	clause, args := sinceClause(since, "a.created_at", 2)
	query := fmt.Sprintf(`
		SELECT a.product_id, p.title, COUNT(*) AS views
		FROM activity_log a
		JOIN products p ON p.id = a.product_id
		WHERE a.event_type = 'view' AND a.product_id IS NOT NULL%s
		GROUP BY a.product_id, p.title
		ORDER BY views DESC
		LIMIT $1
	`, clause)

	rows, err := r.pool.Query(ctx, query, append([]interface{}{limit}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var stats []model.ProductViewStat
	for rows.Next() {
		var s model.ProductViewStat
		if err := rows.Scan(&s.ProductID, &s.Title, &s.Views); err != nil {
			return nil, fmt.Errorf("failed to scan product view stat: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, nil
}

func (r *postgresRepository) DailySeries(ctx context.Context, since time.Time) ([]model.DailyStat, error) {
	clause, args := sinceClause(since, "created_at", 1)
	query := fmt.Sprintf(`
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*) FILTER (WHERE event_type = 'view') AS views,
		       COUNT(*) FILTER (WHERE event_type = 'purchase') AS purchases
		FROM activity_log
		WHERE 1=1%s
		GROUP BY day
		ORDER BY day
	`, clause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily series: %w", err)
	}
	defer rows.Close()

	var series []model.DailyStat
	for rows.Next() {
		var d model.DailyStat
		if err := rows.Scan(&d.Day, &d.Views, &d.Purchases); err != nil {
			return nil, fmt.Errorf("failed to scan daily stat: %w", err)
		}
		series = append(series, d)
	}

	return series, nil
}

// RevenueStats sums the orders table. Pending, failed and fully refunded
// orders are excluded so the dashboard matches what was actually collected.
func (r *postgresRepository) RevenueStats(ctx context.Context, since time.Time) ([]model.RevenueStat, error) {
	clause, args := sinceClause(since, "created_at", 1)
	query := fmt.Sprintf(`
		SELECT currency, COUNT(*) AS order_count, COALESCE(SUM(total), 0) AS revenue
		FROM orders
		WHERE payment_status IN ('paid', 'partially_refunded')%s
		GROUP BY currency
		ORDER BY currency
	`, clause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue: %w", err)
	}
	defer rows.Close()

	var stats []model.RevenueStat
	for rows.Next() {
		var s model.RevenueStat
		if err := rows.Scan(&s.Currency, &s.OrderCount, &s.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue stat: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, nil
}

func (r *postgresRepository) AbandonedSessions(ctx context.Context, since time.Time) ([]model.AbandonedSession, error) {
	query := `
		SELECT session_id,
		       MAX(created_at) AS last_activity,
		       COUNT(*) FILTER (WHERE event_type = 'add_to_cart') AS cart_adds
		FROM activity_log
		WHERE created_at >= $1
		GROUP BY session_id
		HAVING COUNT(*) FILTER (WHERE event_type = 'add_to_cart') > 0
		   AND COUNT(*) FILTER (WHERE event_type = 'purchase') = 0
		ORDER BY last_activity DESC
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query abandoned sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.AbandonedSession
	for rows.Next() {
		var s model.AbandonedSession
		if err := rows.Scan(&s.SessionID, &s.LastActivity, &s.CartAdds); err != nil {
			return nil, fmt.Errorf("failed to scan abandoned session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}

func (r *postgresRepository) PurgeOlderThan(ctx context.Context, retentionDays int) (int, error) {
	query := "DELETE FROM activity_log WHERE created_at < NOW() - make_interval(days => $1)"

	tag, err := r.pool.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to purge activity log: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
