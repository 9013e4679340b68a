package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"artstore-backend/internal/domains/coupon/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// =====================================================
// COUPONS
// =====================================================

const couponColumns = `
	id, code, type, value, is_active, starts_at, expires_at,
	usage_limit, used_count, customer_email, created_at, updated_at
`

func scanCoupon(row pgx.Row, c *model.Coupon) error {
	return row.Scan(
		&c.ID, &c.Code, &c.Type, &c.Value, &c.IsActive, &c.StartsAt, &c.ExpiresAt,
		&c.UsageLimit, &c.UsedCount, &c.CustomerEmail, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, type, value, is_active, starts_at, expires_at, usage_limit, customer_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING used_count, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		coupon.ID, coupon.Code, coupon.Type, coupon.Value, coupon.IsActive,
		coupon.StartsAt, coupon.ExpiresAt, coupon.UsageLimit, coupon.CustomerEmail,
	).Scan(&coupon.UsedCount, &coupon.CreatedAt, &coupon.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrCodeAlreadyExists
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := fmt.Sprintf("SELECT %s FROM coupons WHERE id = $1", couponColumns)

	var c model.Coupon
	if err := scanCoupon(r.pool.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return r.getByCode(ctx, r.pool, code)
}

func (r *postgresRepository) GetByCodeWithTx(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error) {
	return r.getByCode(ctx, tx, code)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *postgresRepository) getByCode(ctx context.Context, q rowQuerier, code string) (*model.Coupon, error) {
	query := fmt.Sprintf("SELECT %s FROM coupons WHERE code = $1", couponColumns)

	var c model.Coupon
	if err := scanCoupon(q.QueryRow(ctx, query, model.NormalizeCode(code)), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context, page, limit int) ([]model.Coupon, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM coupons").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM coupons
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, couponColumns)

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := scanCoupon(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	return coupons, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	query := `
		UPDATE coupons
		SET value = $2, is_active = $3, starts_at = $4, expires_at = $5,
		    usage_limit = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		coupon.ID, coupon.Value, coupon.IsActive,
		coupon.StartsAt, coupon.ExpiresAt, coupon.UsageLimit,
	).Scan(&coupon.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCouponNotFound
		}
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	return nil
}

// RedeemWithTx increments used_count with the limit check folded into the
// WHERE clause, so two concurrent checkouts cannot both take the last slot.
func (r *postgresRepository) RedeemWithTx(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) error {
	query := `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)
	`

	tag, err := tx.Exec(ctx, query, couponID)
	if err != nil {
		return fmt.Errorf("failed to redeem coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponLimitReached
	}

	return nil
}

func (r *postgresRepository) DeactivateExpired(ctx context.Context) (int, error) {
	query := `
		UPDATE coupons
		SET is_active = false, updated_at = NOW()
		WHERE is_active = true AND expires_at < NOW()
	`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired coupons: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// =====================================================
// CAMPAIGNS
// =====================================================

const campaignColumns = `
	id, title, slug, banner_url, starts_at, ends_at, coupon_id, created_at, updated_at
`

func scanCampaign(row pgx.Row, c *model.Campaign) error {
	return row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.BannerURL, &c.StartsAt, &c.EndsAt,
		&c.CouponID, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *postgresRepository) CreateCampaign(ctx context.Context, campaign *model.Campaign) error {
	query := `
		INSERT INTO campaigns (id, title, slug, banner_url, starts_at, ends_at, coupon_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		campaign.ID, campaign.Title, campaign.Slug, campaign.BannerURL,
		campaign.StartsAt, campaign.EndsAt, campaign.CouponID,
	).Scan(&campaign.CreatedAt, &campaign.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return model.ErrCampaignSlugExists
			}
			if pgErr.Code == "23503" {
				return model.ErrCampaignCouponMissing
			}
		}
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetCampaignBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	query := fmt.Sprintf("SELECT %s FROM campaigns WHERE slug = $1", campaignColumns)

	var c model.Campaign
	if err := scanCampaign(r.pool.QueryRow(ctx, query, slug), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	return r.listCampaigns(ctx, "1=1")
}

func (r *postgresRepository) ListRunningCampaigns(ctx context.Context) ([]model.Campaign, error) {
	return r.listCampaigns(ctx, "starts_at <= NOW() AND ends_at >= NOW()")
}

func (r *postgresRepository) listCampaigns(ctx context.Context, where string) ([]model.Campaign, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM campaigns
		WHERE %s
		ORDER BY starts_at DESC
	`, campaignColumns, where)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		var c model.Campaign
		if err := scanCampaign(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, nil
}

func (r *postgresRepository) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM campaigns WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCampaignNotFound
	}
	return nil
}
