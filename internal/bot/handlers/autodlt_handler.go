package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewAutoDeleteHandler returns a handler for the /autodlt command. The
// toggle itself is unconditional in the state layer; the owner/admin check
// happens here at the command boundary via the PrivilegedOnly middleware.
// Turning auto-delete off does not cancel deletions already scheduled.
func NewAutoDeleteHandler(deps HandlerDeps) bot.HandlerFunc {
	return autoDeleteHandler{deps}.Handle
}

type autoDeleteHandler struct {
	deps HandlerDeps
}

func (h autoDeleteHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "autodlt")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID

	args := commandArgs(msg.Text)
	if len(args) == 0 {
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.UsageAutoDel)
		return
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.UsageAutoDel)
		return
	}

	if err := h.deps.State.SetAutoDelete(ctx, chatID, enabled); err != nil {
		log.ErrorContext(ctx, "Failed to toggle auto-delete", "chat_id", chatID, "error", err)
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Auto-delete toggled", "chat_id", chatID, "enabled", enabled)
	if enabled {
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.AutoDeleteOn)
	} else {
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.AutoDeleteOff)
	}
}
