package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Client adapts the go-telegram/bot API to the narrow transport interfaces
// consumed by the state manager (admin lookup), the deletion scheduler
// (message removal), and the broadcaster (payload delivery).
type Client struct {
	bot    *bot.Bot
	logger *slog.Logger
}

// NewClient wraps an already connected bot instance.
func NewClient(b *bot.Bot, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		bot:    b,
		logger: logger.With("component", "telegram_client"),
	}
}

// IsChatAdministrator reports whether userID is the creator or an
// administrator of chatID.
func (c *Client) IsChatAdministrator(ctx context.Context, chatID, userID int64) (bool, error) {
	admins, err := c.bot.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{
		ChatID: chatID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to get chat administrators for chat %d: %w", chatID, err)
	}

	for _, member := range admins {
		switch {
		case member.Owner != nil && member.Owner.User.ID == userID:
			return true, nil
		case member.Administrator != nil && member.Administrator.User.ID == userID:
			return true, nil
		}
	}
	return false, nil
}

// DeleteMessage removes one message from a chat.
func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	ok, err := c.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete message %d in chat %d: %w", messageID, chatID, err)
	}
	if !ok {
		return fmt.Errorf("delete of message %d in chat %d was refused", messageID, chatID)
	}
	return nil
}

// SendText sends a plain text message.
func (c *Client) SendText(ctx context.Context, recipient int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: recipient,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to send text to %d: %w", recipient, err)
	}
	return nil
}

// SendPhoto re-sends a photo by its file ID.
func (c *Client) SendPhoto(ctx context.Context, recipient int64, fileID, caption string) error {
	_, err := c.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  recipient,
		Photo:   &models.InputFileString{Data: fileID},
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("failed to send photo to %d: %w", recipient, err)
	}
	return nil
}

// SendVideo re-sends a video by its file ID.
func (c *Client) SendVideo(ctx context.Context, recipient int64, fileID, caption string) error {
	_, err := c.bot.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:  recipient,
		Video:   &models.InputFileString{Data: fileID},
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("failed to send video to %d: %w", recipient, err)
	}
	return nil
}

// SendDocument re-sends a document by its file ID.
func (c *Client) SendDocument(ctx context.Context, recipient int64, fileID, caption string) error {
	_, err := c.bot.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   recipient,
		Document: &models.InputFileString{Data: fileID},
		Caption:  caption,
	})
	if err != nil {
		return fmt.Errorf("failed to send document to %d: %w", recipient, err)
	}
	return nil
}

// SendSticker re-sends a sticker by its file ID.
func (c *Client) SendSticker(ctx context.Context, recipient int64, fileID string) error {
	_, err := c.bot.SendSticker(ctx, &bot.SendStickerParams{
		ChatID:  recipient,
		Sticker: &models.InputFileString{Data: fileID},
	})
	if err != nil {
		return fmt.Errorf("failed to send sticker to %d: %w", recipient, err)
	}
	return nil
}

// ChatTitle resolves a chat's display title.
func (c *Client) ChatTitle(ctx context.Context, chatID int64) (string, error) {
	chat, err := c.bot.GetChat(ctx, &bot.GetChatParams{ChatID: chatID})
	if err != nil {
		return "", fmt.Errorf("failed to get chat %d: %w", chatID, err)
	}
	return chat.Title, nil
}
