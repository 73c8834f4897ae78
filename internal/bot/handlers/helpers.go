package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/groupwarden/groupwarden/internal/moderation"
)

// commandArgs returns the whitespace-separated arguments after the command
// itself.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// targetUserID resolves the user a command operates on: the sender of the
// replied-to message if present, otherwise the first numeric argument.
// Username strings are not accepted; username resolution is a transport
// concern and the registries key exclusively by user ID.
func targetUserID(msg *models.Message) (int64, error) {
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		return msg.ReplyToMessage.From.ID, nil
	}

	args := commandArgs(msg.Text)
	if len(args) == 0 {
		return 0, fmt.Errorf("no target given")
	}
	raw := strings.TrimPrefix(args[0], "@")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("target %q is not a user ID", args[0])
	}
	return userID, nil
}

// minutesArg parses the positive-minutes argument of /settimer.
func minutesArg(msg *models.Message) (int, error) {
	args := commandArgs(msg.Text)
	if len(args) == 0 {
		return 0, fmt.Errorf("no minutes given")
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("minutes %q is not a number", args[0])
	}
	return minutes, nil
}

// payloadFromMessage selects the broadcast payload variant from a source
// message's content. Exactly one branch wins; content the engine cannot
// re-send maps to the unsupported kind.
func payloadFromMessage(msg *models.Message) moderation.Payload {
	switch {
	case len(msg.Photo) > 0:
		// Telegram lists photo sizes ascending; the last one is the original.
		return moderation.Payload{
			Kind:    moderation.PayloadPhoto,
			FileID:  msg.Photo[len(msg.Photo)-1].FileID,
			Caption: msg.Caption,
		}
	case msg.Video != nil:
		return moderation.Payload{
			Kind:    moderation.PayloadVideo,
			FileID:  msg.Video.FileID,
			Caption: msg.Caption,
		}
	case msg.Sticker != nil:
		return moderation.Payload{
			Kind:   moderation.PayloadSticker,
			FileID: msg.Sticker.FileID,
		}
	case msg.Document != nil:
		return moderation.Payload{
			Kind:    moderation.PayloadDocument,
			FileID:  msg.Document.FileID,
			Caption: msg.Caption,
		}
	case msg.Text != "":
		return moderation.Payload{
			Kind: moderation.PayloadText,
			Text: msg.Text,
		}
	default:
		return moderation.Payload{Kind: moderation.PayloadUnsupported}
	}
}

// displayName returns the best human-readable handle for a user.
func displayName(user *models.User) string {
	if user == nil {
		return "someone"
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	return strconv.FormatInt(user.ID, 10)
}

// isPrivateChat reports whether the message was sent in a direct chat with
// the bot.
func isPrivateChat(msg *models.Message) bool {
	return msg.Chat.Type == "private"
}
