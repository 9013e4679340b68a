package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"artstore-backend/internal/domains/analytics/model"
	repo "artstore-backend/internal/domains/analytics/repository"
	"artstore-backend/pkg/logger"
)

const (
	topProductsLimit  = 5
	abandonedLookback = 7 * 24 * time.Hour
)

type analyticsService struct {
	repository repo.RepositoryInterface
}

func NewAnalyticsService(repository repo.RepositoryInterface) ServiceInterface {
	return &analyticsService{repository: repository}
}

func (s *analyticsService) RecordEvent(ctx context.Context, sessionID string, req *model.RecordEventRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.repository.Insert(ctx, &model.ActivityLog{
		ID:        uuid.New(),
		SessionID: sessionID,
		EventType: req.EventType,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
}

func (s *analyticsService) Stats(ctx context.Context, period string) (*model.StatsResponse, error) {
	p, err := model.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	since := p.Since(time.Now())

	funnel, err := s.repository.CountFunnel(ctx, since)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repository.RevenueStats(ctx, since)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.repository.TopViewedProducts(ctx, since, topProductsLimit)
	if err != nil {
		return nil, err
	}
	daily, err := s.repository.DailySeries(ctx, since)
	if err != nil {
		return nil, err
	}

	return &model.StatsResponse{
		Period:              string(p),
		Funnel:              funnel,
		ConversionRate:      funnel.ConversionRate(),
		CartAbandonmentRate: funnel.CartAbandonmentRate(),
		Revenue:             revenue,
		TopProducts:         topProducts,
		Daily:               daily,
	}, nil
}

func (s *analyticsService) AbandonedSessions(ctx context.Context) ([]model.AbandonedSession, error) {
	return s.repository.AbandonedSessions(ctx, time.Now().Add(-abandonedLookback))
}

func (s *analyticsService) Purge(ctx context.Context, retentionDays int) (int, error) {
	return s.repository.PurgeOlderThan(ctx, retentionDays)
}

// =====================================================
// SERVER-SIDE EVENT HOOKS
// =====================================================

// The cart and checkout services report their own events through these
// hooks. Failures are logged and dropped; analytics must never break a
// sale.

func (s *analyticsService) RecordAddToCart(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) {
	s.record(ctx, &model.ActivityLog{
		ID:        uuid.New(),
		SessionID: sessionID,
		EventType: model.EventAddToCart,
		ProductID: &productID,
		Quantity:  &quantity,
	})
}

func (s *analyticsService) RecordCheckoutStart(ctx context.Context, sessionID string) {
	s.record(ctx, &model.ActivityLog{
		ID:        uuid.New(),
		SessionID: sessionID,
		EventType: model.EventCheckoutStart,
	})
}

func (s *analyticsService) RecordPurchase(ctx context.Context, sessionID string, orderID uuid.UUID) {
	s.record(ctx, &model.ActivityLog{
		ID:        uuid.New(),
		SessionID: sessionID,
		EventType: model.EventPurchase,
		OrderID:   &orderID,
	})
}

func (s *analyticsService) record(ctx context.Context, entry *model.ActivityLog) {
	if err := s.repository.Insert(ctx, entry); err != nil {
		logger.Error("Failed to record activity event", err)
	}
}
