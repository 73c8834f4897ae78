package moderation

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// ErrUnsupportedPayload indicates a source message whose content kind cannot
// be broadcast. No sends are attempted.
var ErrUnsupportedPayload = errors.New("unsupported broadcast payload")

// PayloadKind tags the content variant of a broadcast payload.
type PayloadKind int

const (
	PayloadUnsupported PayloadKind = iota
	PayloadText
	PayloadPhoto
	PayloadVideo
	PayloadDocument
	PayloadSticker
)

// Payload is the tagged content of one broadcast. Exactly one variant is
// active, selected from the source message's content.
type Payload struct {
	Kind    PayloadKind
	Text    string
	FileID  string
	Caption string
}

// Sender delivers a single payload variant to one recipient. Implemented by
// the Telegram transport adapter. A recipient may be a user or a chat; the
// two identifier spaces are disjoint.
type Sender interface {
	SendText(ctx context.Context, recipient int64, text string) error
	SendPhoto(ctx context.Context, recipient int64, fileID, caption string) error
	SendVideo(ctx context.Context, recipient int64, fileID, caption string) error
	SendDocument(ctx context.Context, recipient int64, fileID, caption string) error
	SendSticker(ctx context.Context, recipient int64, fileID string) error
}

// Result tallies a completed broadcast.
type Result struct {
	Sent   int
	Failed int
}

// Broadcaster fans one payload out to many recipients with per-recipient
// failure isolation: a failed send is counted and the remaining recipients
// are still attempted.
type Broadcaster struct {
	logger *slog.Logger
	sender Sender
}

// NewBroadcaster creates a Broadcaster sending through sender.
func NewBroadcaster(logger *slog.Logger, sender Sender) *Broadcaster {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Broadcaster{
		logger: logger.With("component", "broadcaster"),
		sender: sender,
	}
}

// Broadcast sends payload to every recipient in order. It returns
// ErrUnsupportedPayload without attempting any sends when the payload kind
// is unsupported; otherwise it always attempts all recipients and returns
// the success/failure tally.
func (b *Broadcaster) Broadcast(ctx context.Context, payload Payload, recipients []int64) (Result, error) {
	if payload.Kind == PayloadUnsupported {
		return Result{}, ErrUnsupportedPayload
	}

	var result Result
	for _, recipient := range recipients {
		if err := b.send(ctx, recipient, payload); err != nil {
			b.logger.WarnContext(ctx, "Failed to send broadcast to recipient",
				"recipient", recipient, "error", err)
			broadcastSendsTotal.WithLabelValues("failed").Inc()
			result.Failed++
			continue
		}
		broadcastSendsTotal.WithLabelValues("sent").Inc()
		result.Sent++
	}

	b.logger.InfoContext(ctx, "Broadcast completed",
		"recipients", len(recipients), "sent", result.Sent, "failed", result.Failed)
	return result, nil
}

func (b *Broadcaster) send(ctx context.Context, recipient int64, payload Payload) error {
	switch payload.Kind {
	case PayloadText:
		return b.sender.SendText(ctx, recipient, payload.Text)
	case PayloadPhoto:
		return b.sender.SendPhoto(ctx, recipient, payload.FileID, payload.Caption)
	case PayloadVideo:
		return b.sender.SendVideo(ctx, recipient, payload.FileID, payload.Caption)
	case PayloadDocument:
		return b.sender.SendDocument(ctx, recipient, payload.FileID, payload.Caption)
	case PayloadSticker:
		return b.sender.SendSticker(ctx, recipient, payload.FileID)
	default:
		return ErrUnsupportedPayload
	}
}
