package database

// BotState is the persisted aggregate of all mutable bot state. It is the
// sole unit of durability: every registry mutation is reflected here and
// written through as a whole before the mutation is considered committed.
type BotState struct {
	// StartedUsers holds every user who has ever started a direct session
	// with the bot.
	StartedUsers []int64

	// KnownChats holds every chat the bot has observed itself in.
	KnownChats []int64

	// GlobalAuthorized holds users exempt from moderation everywhere.
	GlobalAuthorized []int64

	// GroupAuthorized holds per-chat exemptions, keyed by chat.
	GroupAuthorized map[int64][]int64

	// GroupConfigs holds explicitly configured per-chat moderation settings,
	// keyed by chat. Chats without an entry use the implicit default.
	GroupConfigs map[int64]GroupConfigRecord
}

// GroupConfigRecord is the persisted form of a chat's moderation settings.
type GroupConfigRecord struct {
	DeleteDelaySeconds int64 `db:"delete_delay_seconds"`
	AutoDeleteEnabled  bool  `db:"auto_delete_enabled"`
}

// NewBotState returns an empty, fully initialized state aggregate.
func NewBotState() *BotState {
	return &BotState{
		GroupAuthorized: make(map[int64][]int64),
		GroupConfigs:    make(map[int64]GroupConfigRecord),
	}
}

// groupAuthorizedRow maps one row of the group_authorized table.
type groupAuthorizedRow struct {
	ChatID int64 `db:"chat_id"`
	UserID int64 `db:"user_id"`
}

// groupConfigRow maps one row of the group_configs table.
type groupConfigRow struct {
	ChatID             int64 `db:"chat_id"`
	DeleteDelaySeconds int64 `db:"delete_delay_seconds"`
	AutoDeleteEnabled  bool  `db:"auto_delete_enabled"`
}
