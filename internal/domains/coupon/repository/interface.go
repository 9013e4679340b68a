package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"artstore-backend/internal/domains/coupon/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	GetByCodeWithTx(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error)
	List(ctx context.Context, page, limit int) ([]model.Coupon, int, error)
	Update(ctx context.Context, coupon *model.Coupon) error

	// RedeemWithTx advances used_count only while the limit still holds.
	// It returns model.ErrCouponLimitReached when the conditional update
	// affects no rows.
	RedeemWithTx(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) error

	// DeactivateExpired flips is_active off for coupons past their window
	// and returns how many rows changed.
	DeactivateExpired(ctx context.Context) (int, error)

	CreateCampaign(ctx context.Context, campaign *model.Campaign) error
	GetCampaignBySlug(ctx context.Context, slug string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	ListRunningCampaigns(ctx context.Context) ([]model.Campaign, error)
	DeleteCampaign(ctx context.Context, id uuid.UUID) error
}
