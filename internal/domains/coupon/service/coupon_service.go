package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"artstore-backend/internal/domains/coupon/model"
	repo "artstore-backend/internal/domains/coupon/repository"
	"artstore-backend/internal/shared/utils"
)

type couponService struct {
	repository repo.RepositoryInterface
}

func NewCouponService(repository repo.RepositoryInterface) ServiceInterface {
	return &couponService{repository: repository}
}

// ValidateCoupon resolves a code and prices the discount against the given
// subtotal. It never mutates used_count; redemption happens inside the order
// transaction.
func (s *couponService) ValidateCoupon(ctx context.Context, req *model.ValidateCouponRequest) (*model.CouponQuote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	coupon, err := s.repository.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	if err := coupon.CheckRedeemable(time.Now(), req.CustomerEmail); err != nil {
		return nil, err
	}

	return &model.CouponQuote{
		Code:     coupon.Code,
		Type:     coupon.Type,
		Value:    coupon.Value,
		Discount: coupon.CalculateDiscount(req.Subtotal),
	}, nil
}

func (s *couponService) ListRunningCampaigns(ctx context.Context) ([]model.Campaign, error) {
	return s.repository.ListRunningCampaigns(ctx)
}

func (s *couponService) GetCampaignBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	return s.repository.GetCampaignBySlug(ctx, slug)
}

func (s *couponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		ID:            uuid.New(),
		Code:          model.NormalizeCode(req.Code),
		Type:          model.DiscountType(req.Type),
		Value:         req.Value,
		IsActive:      true,
		StartsAt:      req.StartsAt,
		ExpiresAt:     req.ExpiresAt,
		UsageLimit:    req.UsageLimit,
		CustomerEmail: req.CustomerEmail,
	}

	if err := s.repository.Create(ctx, coupon); err != nil {
		return nil, err
	}

	return coupon, nil
}

func (s *couponService) List(ctx context.Context, page, limit int) ([]model.Coupon, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repository.List(ctx, page, limit)
}

func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	coupon, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Value != nil {
		coupon.Value = *req.Value
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if req.StartsAt != nil {
		coupon.StartsAt = *req.StartsAt
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = *req.ExpiresAt
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = req.UsageLimit
	}

	if err := s.repository.Update(ctx, coupon); err != nil {
		return nil, err
	}

	return coupon, nil
}

func (s *couponService) Deactivate(ctx context.Context, id uuid.UUID) error {
	coupon, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	coupon.IsActive = false
	return s.repository.Update(ctx, coupon)
}

func (s *couponService) CreateCampaign(ctx context.Context, req *model.CreateCampaignRequest) (*model.Campaign, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	campaign := &model.Campaign{
		ID:        uuid.New(),
		Title:     req.Title,
		Slug:      utils.GenerateSlug(req.Title),
		BannerURL: req.BannerURL,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		CouponID:  req.CouponID,
	}

	if err := s.repository.CreateCampaign(ctx, campaign); err != nil {
		return nil, err
	}

	return campaign, nil
}

func (s *couponService) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	return s.repository.ListCampaigns(ctx)
}

func (s *couponService) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	return s.repository.DeleteCampaign(ctx, id)
}

func (s *couponService) DeactivateExpired(ctx context.Context) (int, error) {
	count, err := s.repository.DeactivateExpired(ctx)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		log.Info().Int("count", count).Msg("Deactivated expired coupons")
	}

	return count, nil
}
