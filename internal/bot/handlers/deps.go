package handlers

import (
	"context"
	"log/slog"

	"github.com/groupwarden/groupwarden/internal/config"
	"github.com/groupwarden/groupwarden/internal/moderation"
	"github.com/groupwarden/groupwarden/internal/state"
)

// ChatInfoResolver resolves chat display information through the transport.
type ChatInfoResolver interface {
	ChatTitle(ctx context.Context, chatID int64) (string, error)
}

// HandlerDeps provides dependencies for Telegram command and message handlers.
type HandlerDeps struct {
	Logger      *slog.Logger
	Config      *config.Config
	State       *state.Manager
	Scheduler   *moderation.Scheduler
	Broadcaster *moderation.Broadcaster
	Deleter     moderation.Deleter
	Chats       ChatInfoResolver
}
