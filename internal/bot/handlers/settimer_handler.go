package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/groupwarden/groupwarden/internal/state"
)

// NewSetTimerHandler returns a handler for the /settimer command. The state
// layer enforces the owner/admin requirement and the positive-minutes rule.
// Setting a timer also enables auto-delete for the chat.
func NewSetTimerHandler(deps HandlerDeps) bot.HandlerFunc {
	return setTimerHandler{deps}.Handle
}

type setTimerHandler struct {
	deps HandlerDeps
}

func (h setTimerHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "settimer")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID

	minutes, err := minutesArg(msg)
	if err != nil {
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.UsageSetTimer)
		return
	}

	err = h.deps.State.SetDeleteDelay(ctx, msg.From.ID, chatID, minutes)
	switch {
	case errors.Is(err, state.ErrPermissionDenied):
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.NotPrivileged)
	case errors.Is(err, state.ErrInvalidArgument):
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.InvalidMinutes)
	case err != nil:
		log.ErrorContext(ctx, "Failed to set delete delay", "chat_id", chatID, "error", err)
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.GeneralError)
	default:
		log.InfoContext(ctx, "Delete delay updated", "chat_id", chatID, "minutes", minutes)
		reply(ctx, b, h.deps, chatID, fmt.Sprintf(h.deps.Config.Messages.TimerSet, minutes))
	}
}
