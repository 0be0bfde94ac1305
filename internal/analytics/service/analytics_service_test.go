package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"samsariya/internal/domain"
	"samsariya/internal/dto"
	apperrors "samsariya/internal/errors"
)

type mockOrderSource struct {
	orders []*domain.Order

	start time.Time
	end   time.Time
}

func (m *mockOrderSource) FindCreatedBetween(_ context.Context, start, end time.Time) ([]*domain.Order, error) {
	m.start = start
	m.end = end
	return m.orders, nil
}

func analyticsOrder(status domain.Status, total int, items map[string]int) *domain.Order {
	order := &domain.Order{Status: status, Total: total, Items: items}
	order.Normalize()
	return order
}

func fixedClock() (func() time.Time, time.Time) {
	now := time.Date(2026, 8, 30, 15, 30, 0, 0, time.UTC)
	return func() time.Time { return now }, now
}

func TestPeriodWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 30, 0, 0, time.UTC)

	start, err := PeriodWindow("today", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), start)

	start, err = PeriodWindow("week", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), start)

	start, err = PeriodWindow("month", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30), start)
}

func TestPeriodWindow_UnknownPeriod(t *testing.T) {
	_, err := PeriodWindow("year", time.Now())

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestSummary_AggregatesCompletedAndSkipsCancelled(t *testing.T) {
	source := &mockOrderSource{orders: []*domain.Order{
		analyticsOrder(domain.StatusCompleted, 90000, map[string]int{"самса с мясом": 3}),
		analyticsOrder(domain.StatusCompleted, 60000, map[string]int{"самса с мясом": 1, "самса с сыром": 1}),
		analyticsOrder(domain.StatusNew, 30000, map[string]int{"самса с сыром": 1}),
		analyticsOrder(domain.StatusCancelled, 150000, map[string]int{"плов": 10}),
		analyticsOrder(domain.StatusPaymentFailed, 45000, map[string]int{"плов": 3}),
	}}
	clock, _ := fixedClock()
	svc := NewAnalyticsService(source, zap.NewNop()).WithClock(clock)

	summary, err := svc.Summary(context.Background(), "week")

	require.NoError(t, err)
	assert.Equal(t, 3, summary.OrdersTotal)
	assert.Equal(t, 2, summary.OrdersCompleted)
	assert.Equal(t, 150000, summary.RevenueCompleted)
	assert.Equal(t, 75000, summary.AvgCheckCompleted)
	assert.Equal(t, []dto.ItemCount{
		{Key: "самса с мясом", Quantity: 4},
		{Key: "самса с сыром", Quantity: 2},
	}, summary.TopItems)
}

func TestSummary_QueriesTheRequestedWindow(t *testing.T) {
	source := &mockOrderSource{}
	clock, now := fixedClock()
	svc := NewAnalyticsService(source, zap.NewNop()).WithClock(clock)

	_, err := svc.Summary(context.Background(), "today")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), source.start)
	assert.Equal(t, now, source.end)
}

func TestSummary_NoCompletedOrders(t *testing.T) {
	source := &mockOrderSource{orders: []*domain.Order{
		analyticsOrder(domain.StatusNew, 30000, map[string]int{"самса с сыром": 1}),
	}}
	clock, _ := fixedClock()
	svc := NewAnalyticsService(source, zap.NewNop()).WithClock(clock)

	summary, err := svc.Summary(context.Background(), "week")

	require.NoError(t, err)
	assert.Equal(t, 1, summary.OrdersTotal)
	assert.Equal(t, 0, summary.OrdersCompleted)
	assert.Equal(t, 0, summary.AvgCheckCompleted)
}

func TestSummary_TopItemsLimitedToFive(t *testing.T) {
	items := map[string]int{"a": 7, "b": 6, "c": 5, "d": 4, "e": 3, "f": 2, "g": 1}
	source := &mockOrderSource{orders: []*domain.Order{
		analyticsOrder(domain.StatusCompleted, 10000, items),
	}}
	clock, _ := fixedClock()
	svc := NewAnalyticsService(source, zap.NewNop()).WithClock(clock)

	summary, err := svc.Summary(context.Background(), "month")

	require.NoError(t, err)
	require.Len(t, summary.TopItems, 5)
	assert.Equal(t, dto.ItemCount{Key: "a", Quantity: 7}, summary.TopItems[0])
	assert.Equal(t, dto.ItemCount{Key: "e", Quantity: 3}, summary.TopItems[4])
}

func TestEarnings_SumsOnlyCompleted(t *testing.T) {
	source := &mockOrderSource{orders: []*domain.Order{
		analyticsOrder(domain.StatusCompleted, 90000, nil),
		analyticsOrder(domain.StatusCompleted, 60000, nil),
		analyticsOrder(domain.StatusReady, 45000, nil),
		analyticsOrder(domain.StatusCancelled, 150000, nil),
	}}
	clock, _ := fixedClock()
	svc := NewAnalyticsService(source, zap.NewNop()).WithClock(clock)

	revenue, err := svc.Earnings(context.Background(), "week")

	require.NoError(t, err)
	assert.Equal(t, 150000, revenue)
}

func TestEarnings_UnknownPeriod(t *testing.T) {
	svc := NewAnalyticsService(&mockOrderSource{}, zap.NewNop())

	_, err := svc.Earnings(context.Background(), "quarter")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}
