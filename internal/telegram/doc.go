// Package telegram wraps the Telegram Bot API transport. It long-polls for
// updates, hands text messages to the bot's handler and sends replies.
package telegram
