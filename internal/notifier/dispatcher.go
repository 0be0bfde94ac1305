package notifier

import (
	"context"

	"go.uber.org/zap"

	"samsariya/internal/domain"
)

// MessageStore persists the handle of the last customer-facing message so
// later status changes edit it instead of sending a new one.
type MessageStore interface {
	SetClientMessageID(ctx context.Context, orderID string, messageID int) (bool, error)
}

// Dispatcher delivers status updates to the customer channel. Delivery is
// best-effort: every failure is logged and swallowed, never surfaced to the
// transition that triggered it.
type Dispatcher struct {
	channel Channel
	orders  MessageStore
	logger  *zap.Logger
}

func NewDispatcher(channel Channel, orders MessageStore, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		channel: channel,
		orders:  orders,
		logger:  logger,
	}
}

// Notify edits the previously sent message when a handle exists; when the
// edit fails (the customer may have deleted the message) it falls back to
// sending a new message and replaces the stored handle.
func (d *Dispatcher) Notify(ctx context.Context, order *domain.Order, status domain.Status) {
	orderID := order.ID.Hex()
	text := StatusMessage(order, status)

	if order.ClientMessageID != nil {
		err := d.channel.Edit(ctx, order.UserID, *order.ClientMessageID, text)
		if err == nil {
			d.logger.Info("edited client message",
				zap.String("orderId", orderID),
				zap.Int64("userId", order.UserID),
				zap.Int("messageId", *order.ClientMessageID))
			return
		}
		d.logger.Warn("editing client message failed, sending new",
			zap.String("orderId", orderID),
			zap.Int64("userId", order.UserID),
			zap.Error(err))
	}

	messageID, err := d.channel.Send(ctx, order.UserID, text)
	if err != nil {
		d.logger.Error("sending client notification failed",
			zap.String("orderId", orderID),
			zap.Int64("userId", order.UserID),
			zap.Error(err))
		return
	}

	if _, err := d.orders.SetClientMessageID(ctx, orderID, messageID); err != nil {
		d.logger.Error("storing client message id failed",
			zap.String("orderId", orderID),
			zap.Int("messageId", messageID),
			zap.Error(err))
		return
	}
	order.ClientMessageID = &messageID
}
