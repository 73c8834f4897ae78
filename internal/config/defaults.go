package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	// Database defaults
	DefaultDBPath = "groupwarden.db"

	// Moderation defaults
	DefaultDeleteDelay       = 30 * time.Minute
	DefaultAutoDeleteDefault = true

	// Metrics defaults
	DefaultMetricsEnabled = false
	DefaultMetricsAddr    = ":9090"
)

// DefaultMessages holds the default user-visible reply texts.
var DefaultMessages = MessagesConfig{
	Welcome: "Hello! I can help manage your group by:\n" +
		"- Deleting edited messages and announcing them.\n" +
		"- Automatically deleting messages after the configured delay.\n" +
		"- Ignoring authorized users specified by the owner or admins.\n" +
		"Commands (owner or admins only):\n" +
		"/auth <user_id or reply> - Authorize a user.\n" +
		"/unauth <user_id or reply> - Unauthorize a user.\n" +
		"/settimer <minutes> - Set the auto-delete delay.\n" +
		"/autodlt <on|off> - Toggle auto-delete.",
	AddedToGroup: "Hello! I was added by @%s.\n" +
		"/start me first\n" +
		"I will manage this group by:\n" +
		"- Deleting edited messages and announcing them.\n" +
		"- Automatically deleting messages after the configured delay.\n" +
		"- Ignoring authorized users specified by the group owner or admins.",
	NotOwner:      "Only the bot owner can use this command.",
	NotPrivileged: "Only the group owner or admins can use this command.",
	GeneralError:  "An error occurred. Please try again later.",

	UsageAuth:      "Usage: /auth <user_id> or reply to a message with /auth",
	UsageUnauth:    "Usage: /unauth <user_id> or reply to a message with /unauth",
	UsageSetTimer:  "Usage: /settimer <minutes>",
	UsageAutoDel:   "Usage: /autodlt <on|off>",
	UsageBroadcast: "Please reply to a message to broadcast it.",

	UserAuthorized:    "User %d has been authorized. I will now ignore this user.",
	UserUnauthorized:  "User %d has been unauthorized.",
	UserNotInList:     "User %d is not in the authorization list.",
	TimerSet:          "Auto-delete timer set to %d minutes.",
	AutoDeleteOn:      "Auto-delete is now enabled.",
	AutoDeleteOff:     "Auto-delete is now disabled.",
	EditAnnouncement:  "%s edited a message. I deleted it!",
	BroadcastReport:   "Broadcast completed.\n\nSuccessfully sent to: %d\nFailed to send to: %d",
	BroadcastBadMedia: "This message type cannot be broadcast.",
	UserCountReport:   "Total number of users who started the bot: %d",
	GroupListHeader:   "Groups where bot is added:",
	GroupListEmpty:    "The bot is not added to any groups yet.",
	InvalidMinutes:    "The delay must be a positive number of minutes.",
}

// DefaultTasks holds the default periodic task configuration.
var DefaultTasks = map[string]TaskConfig{
	"db_maintenance": {Enabled: true, Schedule: "0 4 * * *"},
}
