package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCountUserHandler returns a handler for the owner-only /countuser
// command reporting how many users have ever started the bot.
func NewCountUserHandler(deps HandlerDeps) bot.HandlerFunc {
	return countUserHandler{deps}.Handle
}

type countUserHandler struct {
	deps HandlerDeps
}

func (h countUserHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	count := h.deps.State.StartedUserCount()
	reply(ctx, b, h.deps, update.Message.Chat.ID, fmt.Sprintf(h.deps.Config.Messages.UserCountReport, count))
}
