// Package tasks implements the periodic background tasks run by the bot's
// scheduler, along with their dependencies and registration.
package tasks

import (
	"log/slog"

	"github.com/groupwarden/groupwarden/internal/config"
	"github.com/groupwarden/groupwarden/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
