package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. The YAML file at configPath (optional)
// 3. BOT_* environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to Unmarshal unless bound explicitly.
	_ = v.BindEnv("telegram.token")
	_ = v.BindEnv("telegram.owner_id")

	// Allow missing config file; defaults and environment still apply.
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values for optional configuration parameters.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("moderation.default_delete_delay", DefaultDeleteDelay)
	v.SetDefault("moderation.auto_delete_default", DefaultAutoDeleteDefault)

	v.SetDefault("metrics.enabled", DefaultMetricsEnabled)
	v.SetDefault("metrics.addr", DefaultMetricsAddr)

	for name, task := range DefaultTasks {
		v.SetDefault("scheduler.tasks."+name+".enabled", task.Enabled)
		v.SetDefault("scheduler.tasks."+name+".schedule", task.Schedule)
	}

	v.SetDefault("messages.welcome", DefaultMessages.Welcome)
	v.SetDefault("messages.added_to_group", DefaultMessages.AddedToGroup)
	v.SetDefault("messages.not_owner", DefaultMessages.NotOwner)
	v.SetDefault("messages.not_privileged", DefaultMessages.NotPrivileged)
	v.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	v.SetDefault("messages.usage_auth", DefaultMessages.UsageAuth)
	v.SetDefault("messages.usage_unauth", DefaultMessages.UsageUnauth)
	v.SetDefault("messages.usage_settimer", DefaultMessages.UsageSetTimer)
	v.SetDefault("messages.usage_autodlt", DefaultMessages.UsageAutoDel)
	v.SetDefault("messages.usage_broadcast", DefaultMessages.UsageBroadcast)
	v.SetDefault("messages.user_authorized", DefaultMessages.UserAuthorized)
	v.SetDefault("messages.user_unauthorized", DefaultMessages.UserUnauthorized)
	v.SetDefault("messages.user_not_in_list", DefaultMessages.UserNotInList)
	v.SetDefault("messages.timer_set", DefaultMessages.TimerSet)
	v.SetDefault("messages.auto_delete_on", DefaultMessages.AutoDeleteOn)
	v.SetDefault("messages.auto_delete_off", DefaultMessages.AutoDeleteOff)
	v.SetDefault("messages.edit_announcement", DefaultMessages.EditAnnouncement)
	v.SetDefault("messages.broadcast_report", DefaultMessages.BroadcastReport)
	v.SetDefault("messages.broadcast_bad_media", DefaultMessages.BroadcastBadMedia)
	v.SetDefault("messages.user_count_report", DefaultMessages.UserCountReport)
	v.SetDefault("messages.group_list_header", DefaultMessages.GroupListHeader)
	v.SetDefault("messages.group_list_empty", DefaultMessages.GroupListEmpty)
	v.SetDefault("messages.invalid_minutes", DefaultMessages.InvalidMinutes)
}
