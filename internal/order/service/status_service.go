package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"samsariya/internal/domain"
	apperrors "samsariya/internal/errors"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindNew(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (bool, error)
}

// Notifier delivers the customer-facing status update. Implementations are
// best-effort and never report failure back.
type Notifier interface {
	Notify(ctx context.Context, order *domain.Order, status domain.Status)
}

// StatusService is the order lifecycle state machine. All status mutations
// go through Transition.
type StatusService struct {
	orders   OrderRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewStatusService(orders OrderRepository, notifier Notifier, logger *zap.Logger) *StatusService {
	return &StatusService{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// Transition validates and applies a status change, then notifies the
// customer. Notification failure never fails the transition; the two
// concerns are reported separately.
func (s *StatusService) Transition(ctx context.Context, orderID string, target domain.Status) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(order.Status, target) {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, target))
	}

	changed, err := s.orders.UpdateStatus(ctx, orderID, target)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Another actor moved the order between our read and write.
		return nil, apperrors.NewConflictError("order status was already changed")
	}

	s.logger.Info("order status updated",
		zap.String("orderId", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(target)))

	order.Status = target
	order.UpdatedAt = time.Now().UTC()

	s.notifier.Notify(ctx, order, target)

	return order, nil
}

func (s *StatusService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// ListNew returns pending orders newest first, card-verification orders
// ahead of the rest so they are reviewed first.
func (s *StatusService) ListNew(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orders.FindNew(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.NeedsPaymentCheck {
			sorted = append(sorted, o)
		}
	}
	for _, o := range orders {
		if !o.NeedsPaymentCheck {
			sorted = append(sorted, o)
		}
	}
	return sorted, nil
}
