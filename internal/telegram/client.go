package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// pollTimeoutSeconds is the long-poll timeout for GetUpdates.
const pollTimeoutSeconds = 60

// MessageHandler processes one inbound text message.
type MessageHandler func(ctx context.Context, chatID int64, text string)

// Client wraps the Telegram bot API connection.
type Client struct {
	api    *tgbotapi.BotAPI
	logger *slog.Logger
}

// NewClient authenticates against the Telegram Bot API with the given
// token.
func NewClient(token string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	return &Client{api: api, logger: logger}, nil
}

// Username returns the bot account's username.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// Reply sends a text message to the chat. It satisfies the dispatcher's
// Replier interface.
func (c *Client) Reply(chatID int64, text string) error {
	if _, err := c.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Poll long-polls for updates and invokes handle for every text message
// until the context is cancelled. Non-text updates (stickers, joins, edits)
// are skipped. Poll returns when the update channel closes.
func (c *Client) Poll(ctx context.Context, handle MessageHandler) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds

	updates := c.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			c.logger.Info("stopped polling for updates")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			handle(ctx, update.Message.Chat.ID, update.Message.Text)
		}
	}
}
