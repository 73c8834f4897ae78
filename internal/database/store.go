package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for durable bot state operations.
// Methods should accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// LoadState reads the full persisted state. A freshly migrated database
	// yields the empty state, never an error.
	LoadState(ctx context.Context) (*BotState, error)

	// SaveState replaces the full persisted state in a single transaction.
	SaveState(ctx context.Context, state *BotState) error

	// RunMaintenance performs database maintenance tasks like VACUUM.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// LoadState reads the full persisted state from all state tables.
func (s *sqlxStore) LoadState(ctx context.Context) (*BotState, error) {
	state := NewBotState()

	if err := s.db.SelectContext(ctx, &state.StartedUsers, `SELECT user_id FROM started_users ORDER BY user_id;`); err != nil {
		return nil, fmt.Errorf("failed to load started users: %w", err)
	}
	if err := s.db.SelectContext(ctx, &state.KnownChats, `SELECT chat_id FROM known_chats ORDER BY chat_id;`); err != nil {
		return nil, fmt.Errorf("failed to load known chats: %w", err)
	}
	if err := s.db.SelectContext(ctx, &state.GlobalAuthorized, `SELECT user_id FROM global_authorized ORDER BY user_id;`); err != nil {
		return nil, fmt.Errorf("failed to load global authorizations: %w", err)
	}

	var groupRows []groupAuthorizedRow
	if err := s.db.SelectContext(ctx, &groupRows, `SELECT chat_id, user_id FROM group_authorized ORDER BY chat_id, user_id;`); err != nil {
		return nil, fmt.Errorf("failed to load group authorizations: %w", err)
	}
	for _, row := range groupRows {
		state.GroupAuthorized[row.ChatID] = append(state.GroupAuthorized[row.ChatID], row.UserID)
	}

	var configRows []groupConfigRow
	if err := s.db.SelectContext(ctx, &configRows, `SELECT chat_id, delete_delay_seconds, auto_delete_enabled FROM group_configs ORDER BY chat_id;`); err != nil {
		return nil, fmt.Errorf("failed to load group configs: %w", err)
	}
	for _, row := range configRows {
		state.GroupConfigs[row.ChatID] = GroupConfigRecord{
			DeleteDelaySeconds: row.DeleteDelaySeconds,
			AutoDeleteEnabled:  row.AutoDeleteEnabled,
		}
	}

	s.logger.DebugContext(ctx, "Loaded bot state",
		"started_users", len(state.StartedUsers),
		"known_chats", len(state.KnownChats),
		"global_authorized", len(state.GlobalAuthorized),
		"group_configs", len(state.GroupConfigs))
	return state, nil
}

// SaveState replaces the full persisted state in a single transaction.
// Either the whole snapshot lands or none of it does; a torn write is
// impossible from the reader's point of view.
func (s *sqlxStore) SaveState(ctx context.Context, state *BotState) error {
	if state == nil {
		return fmt.Errorf("cannot save nil state")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for saving state", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				if !errors.Is(rollbackErr, sql.ErrTxDone) {
					s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
				}
			}
		}
	}()

	for _, table := range []string{"started_users", "known_chats", "global_authorized", "group_authorized", "group_configs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+";"); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	for _, userID := range state.StartedUsers {
		if _, err := tx.ExecContext(ctx, `INSERT INTO started_users (user_id) VALUES (?);`, userID); err != nil {
			return fmt.Errorf("failed to save started user %d: %w", userID, err)
		}
	}
	for _, chatID := range state.KnownChats {
		if _, err := tx.ExecContext(ctx, `INSERT INTO known_chats (chat_id) VALUES (?);`, chatID); err != nil {
			return fmt.Errorf("failed to save known chat %d: %w", chatID, err)
		}
	}
	for _, userID := range state.GlobalAuthorized {
		if _, err := tx.ExecContext(ctx, `INSERT INTO global_authorized (user_id) VALUES (?);`, userID); err != nil {
			return fmt.Errorf("failed to save global authorization for user %d: %w", userID, err)
		}
	}
	for chatID, userIDs := range state.GroupAuthorized {
		for _, userID := range userIDs {
			if _, err := tx.ExecContext(ctx, `INSERT INTO group_authorized (chat_id, user_id) VALUES (?, ?);`, chatID, userID); err != nil {
				return fmt.Errorf("failed to save group authorization for user %d in chat %d: %w", userID, chatID, err)
			}
		}
	}
	for chatID, cfg := range state.GroupConfigs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_configs (chat_id, delete_delay_seconds, auto_delete_enabled) VALUES (?, ?, ?);`,
			chatID, cfg.DeleteDelaySeconds, cfg.AutoDeleteEnabled); err != nil {
			return fmt.Errorf("failed to save group config for chat %d: %w", chatID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit state snapshot", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "State snapshot saved",
		"started_users", len(state.StartedUsers),
		"known_chats", len(state.KnownChats))
	return nil
}

// RunMaintenance performs SQLite maintenance (VACUUM and ANALYZE).
func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		return fmt.Errorf("failed to run VACUUM: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE;"); err != nil {
		return fmt.Errorf("failed to run ANALYZE: %w", err)
	}
	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}
