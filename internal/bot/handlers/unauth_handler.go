package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/groupwarden/groupwarden/internal/state"
)

// NewUnauthHandler returns a handler for the /unauth command, the mirror of
// /auth. Revoking a user who was never authorized is reported back as
// informational, not as an error.
func NewUnauthHandler(deps HandlerDeps) bot.HandlerFunc {
	return unauthHandler{deps}.Handle
}

type unauthHandler struct {
	deps HandlerDeps
}

func (h unauthHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "unauth")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID
	requestor := msg.From.ID

	target, err := targetUserID(msg)
	if err != nil {
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.UsageUnauth)
		return
	}

	if isPrivateChat(msg) {
		err = h.deps.State.RevokeGlobal(ctx, requestor, target)
	} else {
		err = h.deps.State.RevokeGroup(ctx, requestor, chatID, target)
	}

	switch {
	case errors.Is(err, state.ErrPermissionDenied):
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.NotPrivileged)
	case errors.Is(err, state.ErrNotAuthorized):
		reply(ctx, b, h.deps, chatID, fmt.Sprintf(h.deps.Config.Messages.UserNotInList, target))
	case err != nil:
		log.ErrorContext(ctx, "Failed to unauthorize user", "chat_id", chatID, "target", target, "error", err)
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.GeneralError)
	default:
		log.InfoContext(ctx, "User unauthorized", "chat_id", chatID, "requestor", requestor, "target", target)
		reply(ctx, b, h.deps, chatID, fmt.Sprintf(h.deps.Config.Messages.UserUnauthorized, target))
	}
}
