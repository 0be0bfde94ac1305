package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Channel delivers messages to a chat and returns an opaque message handle
// that later calls can edit in place.
type Channel interface {
	Send(ctx context.Context, chatID int64, text string) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, text string) error
}

type TelegramChannel struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramChannel(token string) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &TelegramChannel{bot: bot}, nil
}

// The Bot API client does not take a context; the deadline is handled by
// its underlying http.Client.
func (c *TelegramChannel) Send(_ context.Context, chatID int64, text string) (int, error) {
	msg, err := c.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, fmt.Errorf("sending telegram message: %w", err)
	}
	return msg.MessageID, nil
}

func (c *TelegramChannel) Edit(_ context.Context, chatID int64, messageID int, text string) error {
	if _, err := c.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		return fmt.Errorf("editing telegram message: %w", err)
	}
	return nil
}

// DisabledChannel stands in when no bot token is configured. Every delivery
// fails, which the dispatcher logs and swallows.
type DisabledChannel struct{}

func NewDisabledChannel() *DisabledChannel {
	return &DisabledChannel{}
}

func (*DisabledChannel) Send(context.Context, int64, string) (int, error) {
	return 0, fmt.Errorf("notification channel not configured")
}

func (*DisabledChannel) Edit(context.Context, int64, int, string) error {
	return fmt.Errorf("notification channel not configured")
}
