package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"samsariya/internal/domain"
	"samsariya/internal/dto"
	apperrors "samsariya/internal/errors"
)

const topItemsLimit = 5

type OrderSource interface {
	FindCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Order, error)
}

type AnalyticsService struct {
	orders OrderSource
	now    func() time.Time
	logger *zap.Logger
}

func NewAnalyticsService(orders OrderSource, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		orders: orders,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// WithClock overrides the time source, for tests.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// PeriodWindow maps a period name to its creation-time window ending now.
func PeriodWindow(period string, now time.Time) (time.Time, error) {
	switch period {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, 0, -30), nil
	}
	return time.Time{}, apperrors.NewValidationError(
		fmt.Sprintf("unknown period %q", period),
		apperrors.ValidationDetail{Field: "period", Message: "period must be one of: today, week, month"})
}

// Summary aggregates the period's orders: total without cancellations,
// completed count, revenue and average check over completed orders, and the
// most ordered items.
func (s *AnalyticsService) Summary(ctx context.Context, period string) (*dto.AnalyticsSummary, error) {
	now := s.now()
	start, err := PeriodWindow(period, now)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.FindCreatedBetween(ctx, start, now)
	if err != nil {
		return nil, err
	}

	summary := &dto.AnalyticsSummary{Period: period}
	itemTotals := map[string]int{}
	for _, order := range orders {
		if order.Status == domain.StatusCancelled || order.Status == domain.StatusPaymentFailed {
			continue
		}
		summary.OrdersTotal++
		for key, qty := range order.Items {
			itemTotals[key] += qty
		}
		if order.Status == domain.StatusCompleted {
			summary.OrdersCompleted++
			summary.RevenueCompleted += order.Total
		}
	}
	if summary.OrdersCompleted > 0 {
		summary.AvgCheckCompleted = summary.RevenueCompleted / summary.OrdersCompleted
	}
	summary.TopItems = topItems(itemTotals, topItemsLimit)

	return summary, nil
}

// Earnings returns the revenue over completed orders in the period.
func (s *AnalyticsService) Earnings(ctx context.Context, period string) (int, error) {
	now := s.now()
	start, err := PeriodWindow(period, now)
	if err != nil {
		return 0, err
	}

	orders, err := s.orders.FindCreatedBetween(ctx, start, now)
	if err != nil {
		return 0, err
	}

	revenue := 0
	for _, order := range orders {
		if order.Status == domain.StatusCompleted {
			revenue += order.Total
		}
	}
	return revenue, nil
}

func topItems(totals map[string]int, limit int) []dto.ItemCount {
	items := make([]dto.ItemCount, 0, len(totals))
	for key, qty := range totals {
		items = append(items, dto.ItemCount{Key: key, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].Key < items[j].Key
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
