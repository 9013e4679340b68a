package service

import (
	"context"

	"github.com/google/uuid"

	"artstore-backend/internal/domains/coupon/model"
)

type ServiceInterface interface {
	// Storefront
	ValidateCoupon(ctx context.Context, req *model.ValidateCouponRequest) (*model.CouponQuote, error)
	ListRunningCampaigns(ctx context.Context) ([]model.Campaign, error)
	GetCampaignBySlug(ctx context.Context, slug string) (*model.Campaign, error)

	// Admin
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	List(ctx context.Context, page, limit int) ([]model.Coupon, int, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	CreateCampaign(ctx context.Context, req *model.CreateCampaignRequest) (*model.Campaign, error)
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	DeleteCampaign(ctx context.Context, id uuid.UUID) error

	// DeactivateExpired is invoked by the scheduled job.
	DeactivateExpired(ctx context.Context) (int, error)
}
