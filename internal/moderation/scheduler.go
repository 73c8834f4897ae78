// Package moderation implements the moderation engine: deferred message
// deletion and broadcast fan-out. Both talk to Telegram only through narrow
// transport interfaces so they can be exercised without the network.
package moderation

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/groupwarden/groupwarden/internal/state"
)

// Deleter removes a single message from a chat. Implemented by the Telegram
// transport adapter.
type Deleter interface {
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// ConfigSource yields a chat's moderation settings at schedule time.
type ConfigSource interface {
	GroupConfig(chatID int64) state.GroupConfig
}

type pendingKey struct {
	chatID    int64
	messageID int
}

// pendingTask identifies one in-flight deletion timer. Cleanup is keyed on
// the task's identity, not just the map key, so a superseded task never
// removes its replacement's entry.
type pendingTask struct {
	cancel context.CancelFunc
}

// Scheduler owns one deferred deletion task per qualifying message. Each
// task is an independent goroutine that sleeps the chat's configured delay
// and then issues a single best-effort delete. Configuration is read once,
// at schedule time; later changes to a chat's delay or enablement do not
// affect timers already in flight.
type Scheduler struct {
	logger  *slog.Logger
	configs ConfigSource
	deleter Deleter

	baseCtx context.Context
	stop    context.CancelFunc

	mu      sync.Mutex
	pending map[pendingKey]*pendingTask
	wg      sync.WaitGroup
}

// NewScheduler creates a Scheduler reading per-chat settings from configs
// and deleting through deleter.
func NewScheduler(logger *slog.Logger, configs ConfigSource, deleter Deleter) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	baseCtx, stop := context.WithCancel(context.Background())
	return &Scheduler{
		logger:  logger.With("component", "deletion_scheduler"),
		configs: configs,
		deleter: deleter,
		baseCtx: baseCtx,
		stop:    stop,
		pending: make(map[pendingKey]*pendingTask),
	}
}

// ScheduleDeletion arranges one deferred deletion attempt for the message
// after the chat's configured delay. If auto-delete is disabled for the chat
// at this moment, no task is created. Scheduling a message that already has
// a pending timer cancels the earlier timer and restarts the delay. The call
// never blocks on the timer.
func (s *Scheduler) ScheduleDeletion(chatID int64, messageID int) {
	cfg := s.configs.GroupConfig(chatID)
	if !cfg.AutoDelete {
		s.logger.Debug("Auto-delete disabled, not scheduling", "chat_id", chatID, "message_id", messageID)
		return
	}

	key := pendingKey{chatID: chatID, messageID: messageID}
	taskCtx, cancel := context.WithCancel(s.baseCtx)
	task := &pendingTask{cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.pending[key]; ok {
		prev.cancel()
	}
	s.pending[key] = task
	s.mu.Unlock()
	pendingDeletions.Inc()

	s.logger.Debug("Scheduled deletion", "chat_id", chatID, "message_id", messageID, "delay", cfg.DeleteDelay)

	s.wg.Add(1)
	go s.runDeletion(taskCtx, key, task, cfg.DeleteDelay)
}

func (s *Scheduler) runDeletion(ctx context.Context, key pendingKey, task *pendingTask, delay time.Duration) {
	defer s.wg.Done()
	defer s.finish(key, task)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		deletionsTotal.WithLabelValues("cancelled").Inc()
		return
	case <-timer.C:
	}

	if err := s.deleter.DeleteMessage(ctx, key.chatID, key.messageID); err != nil {
		// Expected steady-state outcome: the message may already be gone,
		// the bot may lack permission, or the chat may be unreachable.
		s.logger.Warn("Failed to delete message",
			"chat_id", key.chatID, "message_id", key.messageID, "error", err)
		deletionsTotal.WithLabelValues("failed").Inc()
		return
	}

	deletionsTotal.WithLabelValues("deleted").Inc()
	s.logger.Debug("Deleted message", "chat_id", key.chatID, "message_id", key.messageID)
}

// finish releases one task's resources. The map entry is removed only when
// it still belongs to this task; a superseding schedule may have replaced it.
func (s *Scheduler) finish(key pendingKey, task *pendingTask) {
	s.mu.Lock()
	if current, ok := s.pending[key]; ok && current == task {
		delete(s.pending, key)
	}
	s.mu.Unlock()

	task.cancel()
	pendingDeletions.Dec()
}

// Cancel aborts the pending deletion for (chatID, messageID), if any, and
// reports whether a task was found. The command surface does not use this
// today; timers run to completion by default.
func (s *Scheduler) Cancel(chatID int64, messageID int) bool {
	s.mu.Lock()
	task, ok := s.pending[pendingKey{chatID: chatID, messageID: messageID}]
	s.mu.Unlock()

	if ok {
		task.cancel()
	}
	return ok
}

// PendingCount returns the number of deletion timers currently in flight.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Shutdown cancels all in-flight timers and waits for their goroutines to
// exit. Pending deletions are lost across restarts by design.
func (s *Scheduler) Shutdown() {
	s.stop()
	s.wg.Wait()
	s.logger.Info("Deletion scheduler stopped")
}
