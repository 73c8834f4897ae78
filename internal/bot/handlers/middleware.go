// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// OwnerOnly creates a middleware that restricts a command to the bot owner.
// Non-owners get a "not owner" reply and processing stops.
func OwnerOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			userID := update.Message.From.ID
			if !deps.State.IsOwner(userID) {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "OwnerOnly")
				log.WarnContext(ctx, "Owner-only command attempted", "user_id", userID, "chat_id", chatID)

				reply(ctx, b, deps, chatID, deps.Config.Messages.NotOwner)
				return
			}

			next(ctx, b, update)
		}
	}
}

// PrivilegedOnly creates a middleware that restricts a command to the bot
// owner or an administrator of the chat the command was issued in. This is
// the command-boundary permission check for operations whose state layer is
// deliberately unconditional.
func PrivilegedOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			userID := update.Message.From.ID
			chatID := update.Message.Chat.ID
			log := deps.Logger.With("middleware", "PrivilegedOnly")

			privileged, err := deps.State.IsPrivileged(ctx, userID, chatID)
			if err != nil {
				log.ErrorContext(ctx, "Failed to resolve privileges", "user_id", userID, "chat_id", chatID, "error", err)
				reply(ctx, b, deps, chatID, deps.Config.Messages.GeneralError)
				return
			}
			if !privileged {
				log.WarnContext(ctx, "Privileged command attempted", "user_id", userID, "chat_id", chatID)
				reply(ctx, b, deps, chatID, deps.Config.Messages.NotPrivileged)
				return
			}

			next(ctx, b, update)
		}
	}
}

// reply sends a plain text reply, logging delivery failures.
func reply(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to send reply", "chat_id", chatID, "error", err)
	}
}
