package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"samsariya/internal/domain"
)

type mockOrderStore struct {
	FindNewFunc func(ctx context.Context) ([]*domain.Order, error)

	synced []string
}

func (m *mockOrderStore) FindNew(ctx context.Context) ([]*domain.Order, error) {
	return m.FindNewFunc(ctx)
}

func (m *mockOrderStore) MarkSheetSynced(_ context.Context, orderID string) (bool, error) {
	m.synced = append(m.synced, orderID)
	return true, nil
}

type mockChannel struct {
	SendFunc func(ctx context.Context, chatID int64, text string) (int, error)

	sentTo []int64
}

func (m *mockChannel) Send(ctx context.Context, chatID int64, text string) (int, error) {
	m.sentTo = append(m.sentTo, chatID)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, chatID, text)
	}
	return 1, nil
}

func (m *mockChannel) Edit(context.Context, int64, int, string) error {
	return nil
}

type mockSheetSync struct {
	pushed []string
	ok     bool
}

func (m *mockSheetSync) Push(_ context.Context, order *domain.Order) bool {
	m.pushed = append(m.pushed, order.ID.Hex())
	return m.ok
}

func pollerOrder() *domain.Order {
	order := &domain.Order{
		ID:     primitive.NewObjectID(),
		Status: domain.StatusNew,
		Items:  map[string]int{"самса": 2},
		Total:  60000,
	}
	order.Normalize()
	return order
}

func boolPtr(b bool) *bool { return &b }

func TestTick_AnnouncesOnlyUnseenOrders(t *testing.T) {
	seenOrder := pollerOrder()
	newOrder := pollerOrder()

	store := &mockOrderStore{
		FindNewFunc: func(_ context.Context) ([]*domain.Order, error) {
			return []*domain.Order{seenOrder, newOrder}, nil
		},
	}
	channel := &mockChannel{}
	sheets := &mockSheetSync{ok: true}
	seen := NewMemorySeenStore()
	seen.MarkSeen(seenOrder.ID.Hex())

	p := New(store, seen, channel, sheets, []int64{1, 2}, time.Second, zap.NewNop())
	p.Tick(context.Background())

	assert.Equal(t, []int64{1, 2}, channel.sentTo)
	assert.Equal(t, []string{newOrder.ID.Hex()}, sheets.pushed)
	assert.Equal(t, []string{newOrder.ID.Hex()}, store.synced)
	assert.True(t, seen.Seen(newOrder.ID.Hex()))
}

func TestTick_SecondPassIsQuiet(t *testing.T) {
	order := pollerOrder()
	store := &mockOrderStore{
		FindNewFunc: func(_ context.Context) ([]*domain.Order, error) {
			return []*domain.Order{order}, nil
		},
	}
	channel := &mockChannel{}
	sheets := &mockSheetSync{ok: true}

	p := New(store, NewMemorySeenStore(), channel, sheets, []int64{1}, time.Second, zap.NewNop())
	p.Tick(context.Background())
	p.Tick(context.Background())

	assert.Len(t, channel.sentTo, 1)
	assert.Len(t, sheets.pushed, 1)
}

func TestTick_PerAdminFailureDoesNotStopFanout(t *testing.T) {
	order := pollerOrder()
	store := &mockOrderStore{
		FindNewFunc: func(_ context.Context) ([]*domain.Order, error) {
			return []*domain.Order{order}, nil
		},
	}
	channel := &mockChannel{
		SendFunc: func(_ context.Context, chatID int64, _ string) (int, error) {
			if chatID == 1 {
				return 0, errors.New("blocked by user")
			}
			return 1, nil
		},
	}
	sheets := &mockSheetSync{ok: true}

	p := New(store, NewMemorySeenStore(), channel, sheets, []int64{1, 2, 3}, time.Second, zap.NewNop())
	p.Tick(context.Background())

	assert.Equal(t, []int64{1, 2, 3}, channel.sentTo)
	assert.Len(t, sheets.pushed, 1)
}

func TestTick_FailedSheetPushIsRetriedButNotReannounced(t *testing.T) {
	order := pollerOrder()
	store := &mockOrderStore{
		FindNewFunc: func(_ context.Context) ([]*domain.Order, error) {
			return []*domain.Order{order}, nil
		},
	}
	channel := &mockChannel{}
	sheets := &mockSheetSync{ok: false}
	seen := NewMemorySeenStore()

	p := New(store, seen, channel, sheets, []int64{1}, time.Second, zap.NewNop())
	p.Tick(context.Background())

	assert.Len(t, channel.sentTo, 1)
	assert.Len(t, sheets.pushed, 1)
	assert.Empty(t, store.synced)
	assert.True(t, seen.Seen(order.ID.Hex()))
}

func TestTick_AlreadySyncedOrderSkipsPush(t *testing.T) {
	order := pollerOrder()
	order.SheetSynced = boolPtr(true)

	store := &mockOrderStore{
		FindNewFunc: func(_ context.Context) ([]*domain.Order, error) {
			return []*domain.Order{order}, nil
		},
	}
	channel := &mockChannel{}
	sheets := &mockSheetSync{ok: true}

	p := New(store, NewMemorySeenStore(), channel, sheets, []int64{1}, time.Second, zap.NewNop())
	p.Tick(context.Background())

	assert.Len(t, channel.sentTo, 1)
	assert.Empty(t, sheets.pushed)
	assert.Empty(t, store.synced)
}

func TestTick_ScanErrorLeavesStateUntouched(t *testing.T) {
	store := &mockOrderStore{
		FindNewFunc: func(_ context.Context) ([]*domain.Order, error) {
			return nil, errors.New("connection reset")
		},
	}
	channel := &mockChannel{}

	p := New(store, NewMemorySeenStore(), channel, &mockSheetSync{}, []int64{1}, time.Second, zap.NewNop())
	p.Tick(context.Background())

	assert.Empty(t, channel.sentTo)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	store := &mockOrderStore{
		FindNewFunc: func(_ context.Context) ([]*domain.Order, error) {
			return nil, nil
		},
	}

	p := New(store, NewMemorySeenStore(), &mockChannel{}, &mockSheetSync{}, nil, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Start(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}
