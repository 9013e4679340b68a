package model

import "errors"

var (
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponNotStarted    = errors.New("coupon is not active yet")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponLimitReached  = errors.New("coupon usage limit reached")
	ErrCouponNotAuthorized = errors.New("coupon is restricted to another customer")
	ErrCodeAlreadyExists   = errors.New("coupon code already exists")

	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrCampaignSlugExists    = errors.New("campaign slug already exists")
	ErrCampaignCouponMissing = errors.New("linked coupon does not exist")
	ErrCampaignWindowInvalid = errors.New("campaign window is invalid")
)
