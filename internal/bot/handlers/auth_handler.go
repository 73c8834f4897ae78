package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/groupwarden/groupwarden/internal/state"
)

// NewAuthHandler returns a handler for the /auth command. In a group the
// requestor (owner or chat admin) grants a chat-scoped exemption; in a
// direct chat the bot owner grants a global one.
func NewAuthHandler(deps HandlerDeps) bot.HandlerFunc {
	return authHandler{deps}.Handle
}

type authHandler struct {
	deps HandlerDeps
}

func (h authHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "auth")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID
	requestor := msg.From.ID

	target, err := targetUserID(msg)
	if err != nil {
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.UsageAuth)
		return
	}

	if isPrivateChat(msg) {
		err = h.deps.State.GrantGlobal(ctx, requestor, target)
	} else {
		err = h.deps.State.GrantGroup(ctx, requestor, chatID, target)
	}

	switch {
	case errors.Is(err, state.ErrPermissionDenied):
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.NotPrivileged)
	case err != nil:
		log.ErrorContext(ctx, "Failed to authorize user", "chat_id", chatID, "target", target, "error", err)
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.GeneralError)
	default:
		log.InfoContext(ctx, "User authorized", "chat_id", chatID, "requestor", requestor, "target", target)
		reply(ctx, b, h.deps, chatID, fmt.Sprintf(h.deps.Config.Messages.UserAuthorized, target))
	}
}
