package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/go-telegram/bot/models"
)

type deletedRecord struct {
	chatID    int64
	messageID int
}

// stubDeleter records every delete routed through the transport interface.
type stubDeleter struct {
	mu    sync.Mutex
	calls []deletedRecord
}

func (d *stubDeleter) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, deletedRecord{chatID: chatID, messageID: messageID})
	return nil
}

func (d *stubDeleter) recorded() []deletedRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]deletedRecord(nil), d.calls...)
}

func editedUpdate(userID, chatID int64, messageID int) *models.Update {
	return &models.Update{
		EditedMessage: &models.Message{
			ID:   messageID,
			Text: "edited text",
			From: &models.User{ID: userID, Username: "bob"},
			Chat: models.Chat{ID: chatID, Type: "supergroup"},
		},
	}
}

func TestEditedMessageDeletedThroughTransport(t *testing.T) {
	b, rec := newTestBot(t)
	deps := newTestDeps(t)
	deleter := &stubDeleter{}
	deps.Deleter = deleter

	h := NewModerationHandler(&deps)
	h(context.Background(), b, editedUpdate(testPlainID, testChatID, 9))

	calls := deleter.recorded()
	if len(calls) != 1 {
		t.Fatalf("expected one delete through the transport interface, got %d", len(calls))
	}
	if calls[0].chatID != testChatID || calls[0].messageID != 9 {
		t.Errorf("deleted wrong message: %+v", calls[0])
	}
	if !rec.sawText("@bob") {
		t.Error("expected the edit announcement to name the user")
	}
}

func TestEditedMessageExemptUserKept(t *testing.T) {
	b, rec := newTestBot(t)
	deps := newTestDeps(t)
	deleter := &stubDeleter{}
	deps.Deleter = deleter

	if err := deps.State.GrantGlobal(context.Background(), testOwnerID, testPlainID); err != nil {
		t.Fatalf("GrantGlobal returned error: %v", err)
	}

	h := NewModerationHandler(&deps)
	h(context.Background(), b, editedUpdate(testPlainID, testChatID, 9))

	if got := deleter.recorded(); len(got) != 0 {
		t.Errorf("exempt user's edited message was deleted: %+v", got)
	}
	if rec.requestCount() != 0 {
		t.Errorf("expected no announcement for an exempt user, saw %d requests", rec.requestCount())
	}
}
