package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"samsariya/internal/domain"
	apperrors "samsariya/internal/errors"
)

type mockOrderRepository struct {
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Order, error)
	FindNewFunc      func(ctx context.Context) ([]*domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.Status) (bool, error)

	updateCalls []domain.Status
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) FindNew(ctx context.Context) ([]*domain.Order, error) {
	return m.FindNewFunc(ctx)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (bool, error) {
	m.updateCalls = append(m.updateCalls, status)
	return m.UpdateStatusFunc(ctx, id, status)
}

type recordingNotifier struct {
	notified []domain.Status
}

func (n *recordingNotifier) Notify(_ context.Context, _ *domain.Order, status domain.Status) {
	n.notified = append(n.notified, status)
}

func newTestOrder(status domain.Status) *domain.Order {
	order := &domain.Order{
		Status: status,
		Items:  map[string]int{"самса": 3},
		Total:  90000,
		Method: "💵 Наличные",
	}
	order.Normalize()
	return order
}

func TestTransition_Success(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*domain.Order, error) {
			return newTestOrder(domain.StatusNew), nil
		},
		UpdateStatusFunc: func(_ context.Context, _ string, _ domain.Status) (bool, error) {
			return true, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := NewStatusService(repo, notifier, zap.NewNop())

	order, err := svc.Transition(context.Background(), "abc", domain.StatusAccepted)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, order.Status)
	assert.Equal(t, []domain.Status{domain.StatusAccepted}, repo.updateCalls)
	assert.Equal(t, []domain.Status{domain.StatusAccepted}, notifier.notified)
}

func TestTransition_InvalidTransitionIsConflict(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*domain.Order, error) {
			return newTestOrder(domain.StatusNew), nil
		},
		UpdateStatusFunc: func(_ context.Context, _ string, _ domain.Status) (bool, error) {
			t.Fatal("update must not be called for an invalid transition")
			return false, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := NewStatusService(repo, notifier, zap.NewNop())

	_, err := svc.Transition(context.Background(), "abc", domain.StatusCompleted)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Empty(t, repo.updateCalls)
	assert.Empty(t, notifier.notified)
}

func TestTransition_TerminalOrderCannotMove(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*domain.Order, error) {
			return newTestOrder(domain.StatusCancelled), nil
		},
		UpdateStatusFunc: func(_ context.Context, _ string, _ domain.Status) (bool, error) {
			return true, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := NewStatusService(repo, notifier, zap.NewNop())

	_, err := svc.Transition(context.Background(), "abc", domain.StatusAccepted)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Empty(t, repo.updateCalls)
}

func TestTransition_NotFound(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}
	svc := NewStatusService(repo, &recordingNotifier{}, zap.NewNop())

	_, err := svc.Transition(context.Background(), "missing", domain.StatusAccepted)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestTransition_RacedUpdateIsConflict(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*domain.Order, error) {
			return newTestOrder(domain.StatusNew), nil
		},
		UpdateStatusFunc: func(_ context.Context, _ string, _ domain.Status) (bool, error) {
			return false, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := NewStatusService(repo, notifier, zap.NewNop())

	_, err := svc.Transition(context.Background(), "abc", domain.StatusAccepted)

	conflictErr, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "order status was already changed", conflictErr.Message)
	assert.Empty(t, notifier.notified)
}

func TestTransition_RepositoryError(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*domain.Order, error) {
			return newTestOrder(domain.StatusNew), nil
		},
		UpdateStatusFunc: func(_ context.Context, _ string, _ domain.Status) (bool, error) {
			return false, errors.New("write failed")
		},
	}
	notifier := &recordingNotifier{}
	svc := NewStatusService(repo, notifier, zap.NewNop())

	_, err := svc.Transition(context.Background(), "abc", domain.StatusAccepted)

	assert.Error(t, err)
	assert.Empty(t, notifier.notified)
}

func TestTransition_FullLifecycleNotifiesEachStep(t *testing.T) {
	order := newTestOrder(domain.StatusNew)
	repo := &mockOrderRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*domain.Order, error) {
			copied := *order
			return &copied, nil
		},
		UpdateStatusFunc: func(_ context.Context, _ string, status domain.Status) (bool, error) {
			order.Status = status
			return true, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := NewStatusService(repo, notifier, zap.NewNop())

	steps := []domain.Status{
		domain.StatusAccepted,
		domain.StatusInProgress,
		domain.StatusReady,
		domain.StatusCompleted,
	}
	for _, target := range steps {
		_, err := svc.Transition(context.Background(), "abc", target)
		require.NoError(t, err, "transition to %s", target)
	}
	assert.Equal(t, steps, notifier.notified)

	_, err := svc.Transition(context.Background(), "abc", domain.StatusCancelled)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok, "completed order must stay completed")
}

func TestTransition_CardPaymentConfirmThenDoubleConfirmFails(t *testing.T) {
	order := newTestOrder(domain.StatusNew)
	order.Method = "💳 Карта"
	order.Normalize()

	repo := &mockOrderRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*domain.Order, error) {
			copied := *order
			return &copied, nil
		},
		UpdateStatusFunc: func(_ context.Context, _ string, status domain.Status) (bool, error) {
			order.Status = status
			return true, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := NewStatusService(repo, notifier, zap.NewNop())

	_, err := svc.Transition(context.Background(), "abc", domain.StatusAccepted)
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), "abc", domain.StatusAccepted)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, []domain.Status{domain.StatusAccepted}, notifier.notified)
}

func TestListNew_PaymentCheckOrdersFirst(t *testing.T) {
	cash := newTestOrder(domain.StatusNew)
	card := newTestOrder(domain.StatusNew)
	card.Method = "💳 Карта"
	card.Normalize()

	repo := &mockOrderRepository{
		FindNewFunc: func(_ context.Context) ([]*domain.Order, error) {
			return []*domain.Order{cash, card}, nil
		},
	}
	svc := NewStatusService(repo, &recordingNotifier{}, zap.NewNop())

	orders, err := svc.ListNew(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].NeedsPaymentCheck)
	assert.False(t, orders[1].NeedsPaymentCheck)
}
