package service

import (
	"github.com/shopspring/decimal"

	"artstore-backend/internal/config"
	"artstore-backend/internal/domains/checkout/model"
	"artstore-backend/internal/shared"
)

// ShippingEstimator prices shipping from the cart's total desi. Rates come
// from configuration so ops can adjust them without a deploy.
type ShippingEstimator struct {
	cfg config.ShippingConfig
}

func NewShippingEstimator(cfg config.ShippingConfig) *ShippingEstimator {
	return &ShippingEstimator{cfg: cfg}
}

// Estimate computes base + per-desi on the rounded-up desi total. Orders at
// or above the region's threshold ship free. Merchandise subtotal decides
// the threshold, before any coupon discount.
func (e *ShippingEstimator) Estimate(region string, subtotal, totalDesi decimal.Decimal) model.ShippingEstimate {
	base, perDesi, threshold := e.cfg.BaseUSD, e.cfg.PerDesiUSD, e.cfg.FreeThresholdUSD
	if region == shared.RegionTR {
		base, perDesi, threshold = e.cfg.BaseTRY, e.cfg.PerDesiTRY, e.cfg.FreeThresholdTRY
	}

	estimate := model.ShippingEstimate{
		Region:        region,
		Currency:      shared.CurrencyForRegion(region),
		Subtotal:      subtotal,
		TotalDesi:     totalDesi,
		FreeThreshold: threshold,
	}

	if subtotal.GreaterThanOrEqual(threshold) {
		estimate.Cost = decimal.Zero
		estimate.IsFree = true
		return estimate
	}

	estimate.Cost = base.Add(perDesi.Mul(totalDesi.Ceil()))
	return estimate
}
