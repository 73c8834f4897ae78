// Package state implements the mutable bot state: authorization exemptions,
// per-chat moderation settings, and first-observation tracking of users and
// chats. All mutations go through a single Manager guarding the state with a
// mutex and writing the full snapshot through the durable store.
package state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/groupwarden/groupwarden/internal/database"
)

// GroupConfig holds a chat's moderation settings.
type GroupConfig struct {
	// DeleteDelay is how long an ordinary message lives before the bot
	// deletes it.
	DeleteDelay time.Duration

	// AutoDelete controls whether new messages are scheduled for deletion
	// at all.
	AutoDelete bool
}

// AdminChecker resolves whether a user is an administrator of a chat.
// It is implemented by the Telegram transport adapter.
type AdminChecker interface {
	IsChatAdministrator(ctx context.Context, chatID, userID int64) (bool, error)
}

// Manager owns all mutable bot state. Mutations are serialized by a mutex
// and written through to the store as a full snapshot before the mutating
// call returns; a persistence failure is logged and the in-memory mutation
// stands, trading a bounded durability gap for availability.
type Manager struct {
	logger   *slog.Logger
	store    database.Store
	admins   AdminChecker
	ownerID  int64
	defaults GroupConfig

	mu           sync.Mutex
	startedUsers map[int64]struct{}
	knownChats   map[int64]struct{}
	globalAuth   map[int64]struct{}
	groupAuth    map[int64]map[int64]struct{}
	groupConfigs map[int64]GroupConfig
}

// NewManager creates a Manager with the given owner identity, admin lookup,
// and implicit per-chat defaults. Call Load before serving traffic.
func NewManager(logger *slog.Logger, store database.Store, admins AdminChecker, ownerID int64, defaults GroupConfig) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		logger:       logger.With("component", "state_manager"),
		store:        store,
		admins:       admins,
		ownerID:      ownerID,
		defaults:     defaults,
		startedUsers: make(map[int64]struct{}),
		knownChats:   make(map[int64]struct{}),
		globalAuth:   make(map[int64]struct{}),
		groupAuth:    make(map[int64]map[int64]struct{}),
		groupConfigs: make(map[int64]GroupConfig),
	}
}

// Load hydrates the in-memory state from the durable store.
func (m *Manager) Load(ctx context.Context) error {
	persisted, err := m.store.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load persisted state: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, userID := range persisted.StartedUsers {
		m.startedUsers[userID] = struct{}{}
	}
	for _, chatID := range persisted.KnownChats {
		m.knownChats[chatID] = struct{}{}
	}
	for _, userID := range persisted.GlobalAuthorized {
		m.globalAuth[userID] = struct{}{}
	}
	for chatID, userIDs := range persisted.GroupAuthorized {
		set := make(map[int64]struct{}, len(userIDs))
		for _, userID := range userIDs {
			set[userID] = struct{}{}
		}
		m.groupAuth[chatID] = set
	}
	for chatID, record := range persisted.GroupConfigs {
		m.groupConfigs[chatID] = GroupConfig{
			DeleteDelay: time.Duration(record.DeleteDelaySeconds) * time.Second,
			AutoDelete:  record.AutoDeleteEnabled,
		}
	}

	m.logger.Info("State loaded",
		"started_users", len(m.startedUsers),
		"known_chats", len(m.knownChats),
		"global_authorized", len(m.globalAuth),
		"group_configs", len(m.groupConfigs))
	return nil
}

// IsOwner reports whether userID is the configured bot owner.
func (m *Manager) IsOwner(userID int64) bool {
	return userID == m.ownerID
}

// IsPrivileged reports whether userID is the bot owner or an administrator
// of chatID. The admin lookup is delegated to the transport.
func (m *Manager) IsPrivileged(ctx context.Context, userID, chatID int64) (bool, error) {
	if m.IsOwner(userID) {
		return true, nil
	}
	isAdmin, err := m.admins.IsChatAdministrator(ctx, chatID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve chat administrators: %w", err)
	}
	return isAdmin, nil
}

// IsExempt reports whether userID is exempt from moderation in chatID.
// Global exemption wins and is checked first; group exemption is scoped to
// the one chat and never leaks across chats.
func (m *Manager) IsExempt(userID, chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.globalAuth[userID]; ok {
		return true
	}
	if chatSet, ok := m.groupAuth[chatID]; ok {
		if _, ok := chatSet[userID]; ok {
			return true
		}
	}
	return false
}

// GrantGlobal exempts target from moderation in every chat. Owner-only.
func (m *Manager) GrantGlobal(ctx context.Context, requestor, target int64) error {
	if !m.IsOwner(requestor) {
		return ErrPermissionDenied
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.globalAuth[target] = struct{}{}
	m.persistLocked(ctx)

	m.logger.InfoContext(ctx, "Granted global exemption", "target", target)
	return nil
}

// RevokeGlobal removes target's global exemption. Owner-only. Revoking an
// absent entry returns ErrNotAuthorized so the caller can report it, but no
// state changes.
func (m *Manager) RevokeGlobal(ctx context.Context, requestor, target int64) error {
	if !m.IsOwner(requestor) {
		return ErrPermissionDenied
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.globalAuth[target]; !ok {
		return ErrNotAuthorized
	}
	delete(m.globalAuth, target)
	m.persistLocked(ctx)

	m.logger.InfoContext(ctx, "Revoked global exemption", "target", target)
	return nil
}

// GrantGroup exempts target from moderation in chatID only. The requestor
// must be the bot owner or an administrator of the chat.
func (m *Manager) GrantGroup(ctx context.Context, requestor, chatID, target int64) error {
	if err := m.requirePrivileged(ctx, requestor, chatID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	chatSet, ok := m.groupAuth[chatID]
	if !ok {
		chatSet = make(map[int64]struct{})
		m.groupAuth[chatID] = chatSet
	}
	chatSet[target] = struct{}{}
	m.persistLocked(ctx)

	m.logger.InfoContext(ctx, "Granted group exemption", "chat_id", chatID, "target", target)
	return nil
}

// RevokeGroup removes target's exemption in chatID. Same permission rules as
// GrantGroup; an absent entry returns ErrNotAuthorized.
func (m *Manager) RevokeGroup(ctx context.Context, requestor, chatID, target int64) error {
	if err := m.requirePrivileged(ctx, requestor, chatID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	chatSet, ok := m.groupAuth[chatID]
	if !ok {
		return ErrNotAuthorized
	}
	if _, ok := chatSet[target]; !ok {
		return ErrNotAuthorized
	}
	delete(chatSet, target)
	if len(chatSet) == 0 {
		delete(m.groupAuth, chatID)
	}
	m.persistLocked(ctx)

	m.logger.InfoContext(ctx, "Revoked group exemption", "chat_id", chatID, "target", target)
	return nil
}

// GroupConfig returns the chat's stored moderation settings, or the implicit
// default if the chat was never explicitly configured. It never fails, and
// it never materializes the default into the persisted state.
func (m *Manager) GroupConfig(chatID int64) GroupConfig {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg, ok := m.groupConfigs[chatID]; ok {
		return cfg
	}
	return m.defaults
}

// SetDeleteDelay sets the chat's auto-delete delay to the given number of
// minutes. The requestor must be the owner or a chat administrator, and
// minutes must be positive. Setting an explicit timer implies intent to use
// it, so this also enables auto-delete for the chat.
func (m *Manager) SetDeleteDelay(ctx context.Context, requestor, chatID int64, minutes int) error {
	if err := m.requirePrivileged(ctx, requestor, chatID); err != nil {
		return err
	}
	if minutes <= 0 {
		return ErrInvalidArgument
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.groupConfigs[chatID] = GroupConfig{
		DeleteDelay: time.Duration(minutes) * time.Minute,
		AutoDelete:  true,
	}
	m.persistLocked(ctx)

	m.logger.InfoContext(ctx, "Set auto-delete delay", "chat_id", chatID, "minutes", minutes)
	return nil
}

// SetAutoDelete toggles auto-delete for the chat, preserving any previously
// set delay and materializing the default delay if none existed. Permission
// for this operation is enforced at the command boundary, not here.
func (m *Manager) SetAutoDelete(ctx context.Context, chatID int64, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, ok := m.groupConfigs[chatID]
	if !ok {
		cfg = m.defaults
	}
	cfg.AutoDelete = enabled
	m.groupConfigs[chatID] = cfg
	m.persistLocked(ctx)

	m.logger.InfoContext(ctx, "Toggled auto-delete", "chat_id", chatID, "enabled", enabled)
	return nil
}

// TrackUser records a user who started a direct session with the bot.
func (m *Manager) TrackUser(ctx context.Context, userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.startedUsers[userID]; ok {
		return
	}
	m.startedUsers[userID] = struct{}{}
	m.persistLocked(ctx)
}

// TrackChat records a chat the bot has observed itself in.
func (m *Manager) TrackChat(ctx context.Context, chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.knownChats[chatID]; ok {
		return
	}
	m.knownChats[chatID] = struct{}{}
	m.persistLocked(ctx)
}

// StartedUserCount returns how many users have ever started the bot.
func (m *Manager) StartedUserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.startedUsers)
}

// KnownChats returns all observed chats in ascending order.
func (m *Manager) KnownChats() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedKeys(m.knownChats)
}

// Recipients returns the broadcast fan-out set: every started user plus
// every known chat, in ascending order. The two identifier spaces are
// disjoint (group chat IDs are negative), so the union has no duplicates.
func (m *Manager) Recipients() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	recipients := make([]int64, 0, len(m.startedUsers)+len(m.knownChats))
	for userID := range m.startedUsers {
		recipients = append(recipients, userID)
	}
	for chatID := range m.knownChats {
		recipients = append(recipients, chatID)
	}
	slices.Sort(recipients)
	return recipients
}

func (m *Manager) requirePrivileged(ctx context.Context, requestor, chatID int64) error {
	privileged, err := m.IsPrivileged(ctx, requestor, chatID)
	if err != nil {
		return err
	}
	if !privileged {
		return ErrPermissionDenied
	}
	return nil
}

// persistLocked writes the full state snapshot through the store. The caller
// must hold m.mu. A write failure is logged and swallowed: the in-memory
// mutation stands so the bot stays responsive, at the cost of possibly
// losing that mutation on a crash.
func (m *Manager) persistLocked(ctx context.Context) {
	if err := m.store.SaveState(ctx, m.snapshotLocked()); err != nil {
		m.logger.ErrorContext(ctx, "Failed to persist state snapshot", "error", err)
	}
}

// snapshotLocked builds the persistable snapshot. The caller must hold m.mu.
func (m *Manager) snapshotLocked() *database.BotState {
	snapshot := database.NewBotState()
	snapshot.StartedUsers = sortedKeys(m.startedUsers)
	snapshot.KnownChats = sortedKeys(m.knownChats)
	snapshot.GlobalAuthorized = sortedKeys(m.globalAuth)
	for chatID, chatSet := range m.groupAuth {
		snapshot.GroupAuthorized[chatID] = sortedKeys(chatSet)
	}
	for chatID, cfg := range m.groupConfigs {
		snapshot.GroupConfigs[chatID] = database.GroupConfigRecord{
			DeleteDelaySeconds: int64(cfg.DeleteDelay / time.Second),
			AutoDeleteEnabled:  cfg.AutoDelete,
		}
	}
	return snapshot
}

func sortedKeys(set map[int64]struct{}) []int64 {
	keys := make([]int64, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
