package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/groupwarden/groupwarden/internal/moderation"
)

// NewBroadcastHandler returns a handler for the owner-only /broadcast
// command. It fans the replied-to message out to every started user and
// known chat and reports the per-recipient tally.
func NewBroadcastHandler(deps HandlerDeps) bot.HandlerFunc {
	return broadcastHandler{deps}.Handle
}

type broadcastHandler struct {
	deps HandlerDeps
}

func (h broadcastHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "broadcast")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID

	if msg.ReplyToMessage == nil {
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.UsageBroadcast)
		return
	}

	payload := payloadFromMessage(msg.ReplyToMessage)
	recipients := h.deps.State.Recipients()

	log.InfoContext(ctx, "Starting broadcast", "recipients", len(recipients))

	result, err := h.deps.Broadcaster.Broadcast(ctx, payload, recipients)
	if err != nil {
		if errors.Is(err, moderation.ErrUnsupportedPayload) {
			reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.BroadcastBadMedia)
			return
		}
		log.ErrorContext(ctx, "Broadcast failed", "error", err)
		reply(ctx, b, h.deps, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	reply(ctx, b, h.deps, chatID, fmt.Sprintf(h.deps.Config.Messages.BroadcastReport, result.Sent, result.Failed))
}
