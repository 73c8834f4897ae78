package moderation_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/groupwarden/groupwarden/internal/moderation"
)

// fakeSender records send attempts in order and can fail for chosen
// recipients.
type fakeSender struct {
	attempts []int64
	failFor  map[int64]bool
	kinds    []string
}

func (f *fakeSender) record(kind string, recipient int64) error {
	f.attempts = append(f.attempts, recipient)
	f.kinds = append(f.kinds, kind)
	if f.failFor[recipient] {
		return fmt.Errorf("send to %d failed", recipient)
	}
	return nil
}

func (f *fakeSender) SendText(ctx context.Context, recipient int64, text string) error {
	return f.record("text", recipient)
}

func (f *fakeSender) SendPhoto(ctx context.Context, recipient int64, fileID, caption string) error {
	return f.record("photo", recipient)
}

func (f *fakeSender) SendVideo(ctx context.Context, recipient int64, fileID, caption string) error {
	return f.record("video", recipient)
}

func (f *fakeSender) SendDocument(ctx context.Context, recipient int64, fileID, caption string) error {
	return f.record("document", recipient)
}

func (f *fakeSender) SendSticker(ctx context.Context, recipient int64, fileID string) error {
	return f.record("sticker", recipient)
}

func TestBroadcastPartialFailure(t *testing.T) {
	t.Parallel()

	recipients := []int64{1, 2, 3, 4, 5}
	sender := &fakeSender{failFor: map[int64]bool{3: true}}
	b := moderation.NewBroadcaster(nil, sender)

	result, err := b.Broadcast(context.Background(), moderation.Payload{
		Kind: moderation.PayloadText,
		Text: "hello",
	}, recipients)
	if err != nil {
		t.Fatalf("Broadcast returned error: %v", err)
	}

	if result.Sent != 4 || result.Failed != 1 {
		t.Errorf("expected 4 sent / 1 failed, got %d / %d", result.Sent, result.Failed)
	}
	if len(sender.attempts) != 5 {
		t.Errorf("expected all 5 recipients attempted, got %d", len(sender.attempts))
	}
	for i, recipient := range recipients {
		if sender.attempts[i] != recipient {
			t.Errorf("attempt %d went to %d, expected %d", i, sender.attempts[i], recipient)
		}
	}
}

func TestBroadcastUnsupportedPayload(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	b := moderation.NewBroadcaster(nil, sender)

	_, err := b.Broadcast(context.Background(), moderation.Payload{Kind: moderation.PayloadUnsupported}, []int64{1, 2})
	if !errors.Is(err, moderation.ErrUnsupportedPayload) {
		t.Fatalf("expected ErrUnsupportedPayload, got %v", err)
	}
	if len(sender.attempts) != 0 {
		t.Errorf("expected zero send attempts, got %d", len(sender.attempts))
	}
}

func TestBroadcastVariantDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload moderation.Payload
		want    string
	}{
		{"text", moderation.Payload{Kind: moderation.PayloadText, Text: "hi"}, "text"},
		{"photo", moderation.Payload{Kind: moderation.PayloadPhoto, FileID: "f1"}, "photo"},
		{"video", moderation.Payload{Kind: moderation.PayloadVideo, FileID: "f2"}, "video"},
		{"document", moderation.Payload{Kind: moderation.PayloadDocument, FileID: "f3"}, "document"},
		{"sticker", moderation.Payload{Kind: moderation.PayloadSticker, FileID: "f4"}, "sticker"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sender := &fakeSender{}
			b := moderation.NewBroadcaster(nil, sender)

			result, err := b.Broadcast(context.Background(), tc.payload, []int64{7})
			if err != nil {
				t.Fatalf("Broadcast returned error: %v", err)
			}
			if result.Sent != 1 || result.Failed != 0 {
				t.Errorf("expected 1 sent / 0 failed, got %d / %d", result.Sent, result.Failed)
			}
			if len(sender.kinds) != 1 || sender.kinds[0] != tc.want {
				t.Errorf("expected %q send, got %v", tc.want, sender.kinds)
			}
		})
	}
}

func TestBroadcastNoRecipients(t *testing.T) {
	t.Parallel()

	b := moderation.NewBroadcaster(nil, &fakeSender{})

	result, err := b.Broadcast(context.Background(), moderation.Payload{Kind: moderation.PayloadText, Text: "hi"}, nil)
	if err != nil {
		t.Fatalf("Broadcast returned error: %v", err)
	}
	if result.Sent != 0 || result.Failed != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}
