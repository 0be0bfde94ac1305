package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"samsariya/internal/domain"
	"samsariya/internal/notifier"
)

type OrderStore interface {
	FindNew(ctx context.Context) ([]*domain.Order, error)
	MarkSheetSynced(ctx context.Context, orderID string) (bool, error)
}

type SeenStore interface {
	Seen(orderID string) bool
	MarkSeen(orderID string)
}

type SheetSync interface {
	Push(ctx context.Context, order *domain.Order) bool
}

// Poller periodically scans for new orders, announces each one to every
// admin and pushes it to the sheet webhook. A failure on one order never
// blocks the rest of the batch.
type Poller struct {
	orders   OrderStore
	seen     SeenStore
	channel  notifier.Channel
	sheets   SheetSync
	adminIDs []int64
	interval time.Duration
	logger   *zap.Logger
}

func New(orders OrderStore, seen SeenStore, channel notifier.Channel, sheets SheetSync, adminIDs []int64, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		orders:   orders,
		seen:     seen,
		channel:  channel,
		sheets:   sheets,
		adminIDs: adminIDs,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the polling loop until the context is cancelled.
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("order poller started", zap.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("order poller stopped")
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick performs a single scan pass.
func (p *Poller) Tick(ctx context.Context) {
	orders, err := p.orders.FindNew(ctx)
	if err != nil {
		p.logger.Error("scanning for new orders failed", zap.Error(err))
		return
	}

	for _, order := range orders {
		id := order.ID.Hex()
		if p.seen.Seen(id) {
			continue
		}
		p.notifyAdmins(ctx, order)
		p.seen.MarkSeen(id)
		p.syncSheet(ctx, order)
	}
}

func (p *Poller) notifyAdmins(ctx context.Context, order *domain.Order) {
	text := notifier.NewOrderMessage(order)
	for _, adminID := range p.adminIDs {
		if _, err := p.channel.Send(ctx, adminID, text); err != nil {
			p.logger.Warn("announcing order to admin failed",
				zap.String("orderId", order.ID.Hex()),
				zap.Int64("adminId", adminID),
				zap.Error(err))
		}
	}
}

func (p *Poller) syncSheet(ctx context.Context, order *domain.Order) {
	if order.SheetIsSynced() {
		return
	}
	id := order.ID.Hex()
	if !p.sheets.Push(ctx, order) {
		p.logger.Warn("sheet sync failed, will retry on a later scan", zap.String("orderId", id))
		return
	}
	if _, err := p.orders.MarkSheetSynced(ctx, id); err != nil {
		p.logger.Warn("marking order sheet-synced failed", zap.String("orderId", id), zap.Error(err))
	}
}
