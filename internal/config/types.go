// Package config manages application configuration from environment variables,
// config files, and default values.
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g., BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Messages   MessagesConfig   `mapstructure:"messages"`
}

// LogConfig controls log verbosity and output format.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot credentials and the owner identity.
// The owner is the single distinguished user with global administrative
// rights over the bot.
type TelegramConfig struct {
	Token   string `mapstructure:"token"    validate:"required"`
	OwnerID int64  `mapstructure:"owner_id" validate:"required,gt=0"`

	// BotInfo is populated at startup via GetMe; it is not read from config.
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ModerationConfig holds the implicit per-chat defaults applied to chats
// that have never been explicitly configured.
type ModerationConfig struct {
	DefaultDeleteDelay time.Duration `mapstructure:"default_delete_delay" validate:"required,min=1m"`
	AutoDeleteDefault  bool          `mapstructure:"auto_delete_default"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

// SchedulerConfig holds the periodic task configuration, keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a single periodic task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds all user-visible reply texts. Entries with format
// verbs are filled in by the handlers.
type MessagesConfig struct {
	Welcome       string `mapstructure:"welcome"        validate:"required"`
	AddedToGroup  string `mapstructure:"added_to_group" validate:"required"`
	NotOwner      string `mapstructure:"not_owner"      validate:"required"`
	NotPrivileged string `mapstructure:"not_privileged" validate:"required"`
	GeneralError  string `mapstructure:"general_error"  validate:"required"`

	UsageAuth      string `mapstructure:"usage_auth"      validate:"required"`
	UsageUnauth    string `mapstructure:"usage_unauth"    validate:"required"`
	UsageSetTimer  string `mapstructure:"usage_settimer"  validate:"required"`
	UsageAutoDel   string `mapstructure:"usage_autodlt"   validate:"required"`
	UsageBroadcast string `mapstructure:"usage_broadcast" validate:"required"`

	UserAuthorized     string `mapstructure:"user_authorized"      validate:"required"`
	UserUnauthorized   string `mapstructure:"user_unauthorized"    validate:"required"`
	UserNotInList      string `mapstructure:"user_not_in_list"     validate:"required"`
	TimerSet           string `mapstructure:"timer_set"            validate:"required"`
	AutoDeleteOn       string `mapstructure:"auto_delete_on"       validate:"required"`
	AutoDeleteOff      string `mapstructure:"auto_delete_off"      validate:"required"`
	EditAnnouncement   string `mapstructure:"edit_announcement"    validate:"required"`
	BroadcastReport    string `mapstructure:"broadcast_report"     validate:"required"`
	BroadcastBadMedia  string `mapstructure:"broadcast_bad_media"  validate:"required"`
	UserCountReport    string `mapstructure:"user_count_report"    validate:"required"`
	GroupListHeader    string `mapstructure:"group_list_header"    validate:"required"`
	GroupListEmpty     string `mapstructure:"group_list_empty"     validate:"required"`
	InvalidMinutes     string `mapstructure:"invalid_minutes"      validate:"required"`
}
