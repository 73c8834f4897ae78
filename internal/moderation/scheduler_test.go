package moderation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/groupwarden/groupwarden/internal/moderation"
	"github.com/groupwarden/groupwarden/internal/state"
)

// fakeConfigs serves a mutable GroupConfig so tests can change settings
// after scheduling.
type fakeConfigs struct {
	mu  sync.Mutex
	cfg state.GroupConfig
}

func (f *fakeConfigs) GroupConfig(chatID int64) state.GroupConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg
}

func (f *fakeConfigs) set(cfg state.GroupConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
}

type deletedMessage struct {
	chatID    int64
	messageID int
}

// fakeDeleter reports every delete attempt on a channel.
type fakeDeleter struct {
	calls chan deletedMessage
	err   error
}

func newFakeDeleter() *fakeDeleter {
	return &fakeDeleter{calls: make(chan deletedMessage, 16)}
}

func (f *fakeDeleter) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	f.calls <- deletedMessage{chatID: chatID, messageID: messageID}
	return f.err
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestScheduleDeletionFires(t *testing.T) {
	t.Parallel()

	configs := &fakeConfigs{cfg: state.GroupConfig{DeleteDelay: 20 * time.Millisecond, AutoDelete: true}}
	deleter := newFakeDeleter()
	sched := moderation.NewScheduler(nil, configs, deleter)
	defer sched.Shutdown()

	sched.ScheduleDeletion(-500, 42)

	select {
	case got := <-deleter.calls:
		if got.chatID != -500 || got.messageID != 42 {
			t.Errorf("deleted wrong message: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("deletion never fired")
	}

	waitFor(t, time.Second, func() bool { return sched.PendingCount() == 0 })
}

func TestScheduleDeletionDisabled(t *testing.T) {
	t.Parallel()

	configs := &fakeConfigs{cfg: state.GroupConfig{DeleteDelay: time.Millisecond, AutoDelete: false}}
	deleter := newFakeDeleter()
	sched := moderation.NewScheduler(nil, configs, deleter)
	defer sched.Shutdown()

	sched.ScheduleDeletion(-500, 42)

	if got := sched.PendingCount(); got != 0 {
		t.Errorf("expected no pending task with auto-delete disabled, got %d", got)
	}
	select {
	case got := <-deleter.calls:
		t.Errorf("unexpected delete attempt: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestScheduleDeletionSnapshotSemantics(t *testing.T) {
	t.Parallel()

	configs := &fakeConfigs{cfg: state.GroupConfig{DeleteDelay: 150 * time.Millisecond, AutoDelete: true}}
	deleter := newFakeDeleter()
	sched := moderation.NewScheduler(nil, configs, deleter)
	defer sched.Shutdown()

	start := time.Now()
	sched.ScheduleDeletion(-500, 42)

	// A later config change must not affect the already-scheduled timer.
	configs.set(state.GroupConfig{DeleteDelay: time.Millisecond, AutoDelete: true})

	select {
	case <-deleter.calls:
		if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
			t.Errorf("deletion fired after %v, before the originally scheduled delay", elapsed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("deletion never fired")
	}
}

func TestScheduleDeletionIndependentTimers(t *testing.T) {
	t.Parallel()

	configs := &fakeConfigs{cfg: state.GroupConfig{DeleteDelay: 10 * time.Millisecond, AutoDelete: true}}
	deleter := newFakeDeleter()
	sched := moderation.NewScheduler(nil, configs, deleter)
	defer sched.Shutdown()

	sched.ScheduleDeletion(-500, 1)
	sched.ScheduleDeletion(-600, 2)

	seen := make(map[deletedMessage]bool)
	for range 2 {
		select {
		case got := <-deleter.calls:
			seen[got] = true
		case <-time.After(2 * time.Second):
			t.Fatal("expected two deletions")
		}
	}
	if !seen[deletedMessage{-500, 1}] || !seen[deletedMessage{-600, 2}] {
		t.Errorf("unexpected deletion set: %v", seen)
	}
}

func TestScheduleDeletionFailureSwallowed(t *testing.T) {
	t.Parallel()

	configs := &fakeConfigs{cfg: state.GroupConfig{DeleteDelay: 5 * time.Millisecond, AutoDelete: true}}
	deleter := newFakeDeleter()
	deleter.err = errors.New("message to delete not found")
	sched := moderation.NewScheduler(nil, configs, deleter)
	defer sched.Shutdown()

	sched.ScheduleDeletion(-500, 42)

	select {
	case <-deleter.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("deletion attempt never happened")
	}

	// The failed task is terminal for itself only; no retry, no escalation.
	waitFor(t, time.Second, func() bool { return sched.PendingCount() == 0 })
	select {
	case got := <-deleter.calls:
		t.Errorf("unexpected retry: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestScheduleDeletionSameMessageSupersedes(t *testing.T) {
	t.Parallel()

	configs := &fakeConfigs{cfg: state.GroupConfig{DeleteDelay: 30 * time.Second, AutoDelete: true}}
	deleter := newFakeDeleter()
	sched := moderation.NewScheduler(nil, configs, deleter)
	defer sched.Shutdown()

	sched.ScheduleDeletion(-500, 42)
	sched.ScheduleDeletion(-500, 42)

	waitFor(t, time.Second, func() bool { return sched.PendingCount() == 1 })

	// Cancelling the surviving task must leave nothing behind; the
	// superseded timer already exited without deleting anything.
	if !sched.Cancel(-500, 42) {
		t.Fatal("expected Cancel to find the rescheduled task")
	}
	waitFor(t, time.Second, func() bool { return sched.PendingCount() == 0 })

	select {
	case got := <-deleter.calls:
		t.Errorf("unexpected delete attempt: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelPendingDeletion(t *testing.T) {
	t.Parallel()

	configs := &fakeConfigs{cfg: state.GroupConfig{DeleteDelay: 30 * time.Second, AutoDelete: true}}
	deleter := newFakeDeleter()
	sched := moderation.NewScheduler(nil, configs, deleter)
	defer sched.Shutdown()

	sched.ScheduleDeletion(-500, 42)
	if !sched.Cancel(-500, 42) {
		t.Fatal("expected Cancel to find the pending task")
	}
	if sched.Cancel(-500, 43) {
		t.Error("expected Cancel to report false for an unknown message")
	}

	waitFor(t, time.Second, func() bool { return sched.PendingCount() == 0 })
	select {
	case got := <-deleter.calls:
		t.Errorf("cancelled task still deleted: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestShutdownCancelsAllTimers(t *testing.T) {
	t.Parallel()

	configs := &fakeConfigs{cfg: state.GroupConfig{DeleteDelay: 30 * time.Second, AutoDelete: true}}
	deleter := newFakeDeleter()
	sched := moderation.NewScheduler(nil, configs, deleter)

	for i := range 5 {
		sched.ScheduleDeletion(-500, i)
	}
	sched.Shutdown()

	if got := sched.PendingCount(); got != 0 {
		t.Errorf("expected no pending tasks after shutdown, got %d", got)
	}
	select {
	case got := <-deleter.calls:
		t.Errorf("unexpected delete after shutdown: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}
