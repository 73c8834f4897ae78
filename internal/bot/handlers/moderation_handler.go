package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewModerationHandler returns the default handler processing everything
// that is not a registered command: new messages are scheduled for deferred
// deletion, edited messages are deleted immediately with an announcement,
// and membership changes keep the known-chat set current.
//
// It takes a pointer because the default handler must be constructed before
// the state manager and schedulers exist; the remaining deps fields are
// filled in before the bot starts receiving updates.
func NewModerationHandler(deps *HandlerDeps) bot.HandlerFunc {
	return moderationHandler{deps}.Handle
}

type moderationHandler struct {
	deps *HandlerDeps
}

func (h moderationHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.EditedMessage != nil:
		h.handleEdited(ctx, b, update.EditedMessage)
	case update.Message != nil:
		h.handleNew(ctx, update.Message)
	case update.MyChatMember != nil:
		h.handleMembershipChange(ctx, b, update.MyChatMember)
	}
}

// handleNew schedules the deferred deletion of an ordinary message unless
// its sender is exempt. The chat's settings are read once, here at schedule
// time.
func (h moderationHandler) handleNew(ctx context.Context, msg *models.Message) {
	log := h.deps.Logger.With("handler", "moderation")

	if !isPrivateChat(msg) {
		h.deps.State.TrackChat(ctx, msg.Chat.ID)
	}

	if len(msg.NewChatMembers) > 0 || msg.From == nil {
		return
	}

	if h.deps.State.IsExempt(msg.From.ID, msg.Chat.ID) {
		log.DebugContext(ctx, "Sender exempt, skipping moderation",
			"chat_id", msg.Chat.ID, "user_id", msg.From.ID)
		return
	}

	h.deps.Scheduler.ScheduleDeletion(msg.Chat.ID, msg.ID)
}

// handleEdited deletes an edited message immediately and announces it,
// bypassing the deferred timer entirely. Exemption rules are the same as
// for new messages.
func (h moderationHandler) handleEdited(ctx context.Context, b *bot.Bot, msg *models.Message) {
	log := h.deps.Logger.With("handler", "moderation")

	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID

	if h.deps.State.IsExempt(msg.From.ID, chatID) {
		log.DebugContext(ctx, "Sender exempt, keeping edited message",
			"chat_id", chatID, "user_id", msg.From.ID)
		return
	}

	announcement := fmt.Sprintf(h.deps.Config.Messages.EditAnnouncement, displayName(msg.From))
	reply(ctx, b, *h.deps, chatID, announcement)

	if err := h.deps.Deleter.DeleteMessage(ctx, chatID, msg.ID); err != nil {
		// Best-effort: the message may already be gone or the bot may lack
		// delete rights in this chat.
		log.WarnContext(ctx, "Failed to delete edited message",
			"chat_id", chatID, "message_id", msg.ID, "error", err)
		return
	}

	log.InfoContext(ctx, "Deleted edited message", "chat_id", chatID, "message_id", msg.ID)
}

// handleMembershipChange greets the group and records it when the bot is
// added.
func (h moderationHandler) handleMembershipChange(ctx context.Context, b *bot.Bot, change *models.ChatMemberUpdated) {
	log := h.deps.Logger.With("handler", "moderation")

	added := change.NewChatMember.Member != nil || change.NewChatMember.Administrator != nil
	if !added {
		return
	}

	chatID := change.Chat.ID
	h.deps.State.TrackChat(ctx, chatID)
	log.InfoContext(ctx, "Bot added to chat", "chat_id", chatID, "added_by", change.From.ID)

	greeting := fmt.Sprintf(h.deps.Config.Messages.AddedToGroup, change.From.Username)
	reply(ctx, b, *h.deps, chatID, greeting)
}
