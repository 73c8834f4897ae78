package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewListGroupHandler returns a handler for the owner-only /listgroup
// command. Chat titles are resolved through the transport; a failed lookup
// degrades to the bare chat ID instead of failing the listing.
func NewListGroupHandler(deps HandlerDeps) bot.HandlerFunc {
	return listGroupHandler{deps}.Handle
}

type listGroupHandler struct {
	deps HandlerDeps
}

func (h listGroupHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "listgroup")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	chats := h.deps.State.KnownChats()
	if len(chats) == 0 {
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.GroupListEmpty)
		return
	}

	var sb strings.Builder
	sb.WriteString(h.deps.Config.Messages.GroupListHeader)
	for _, knownChat := range chats {
		title, err := h.deps.Chats.ChatTitle(ctx, knownChat)
		if err != nil {
			log.WarnContext(ctx, "Failed to resolve chat title", "chat_id", knownChat, "error", err)
			sb.WriteString(fmt.Sprintf("\nUnknown Chat (ID: %d)", knownChat))
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s (ID: %d)", title, knownChat))
	}

	reply(ctx, b, h.deps, chatID, sb.String())
}
