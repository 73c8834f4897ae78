package handlers

import (
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/groupwarden/groupwarden/internal/moderation"
)

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "no args", text: "/settimer", want: nil},
		{name: "single arg", text: "/settimer 45", want: []string{"45"}},
		{name: "multiple args", text: "/auth 123 extra", want: []string{"123", "extra"}},
		{name: "extra whitespace", text: "/auth   123  ", want: []string{"123"}},
		{name: "empty text", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commandArgs(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("commandArgs(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("commandArgs(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTargetUserID(t *testing.T) {
	tests := []struct {
		name    string
		msg     *models.Message
		want    int64
		wantErr bool
	}{
		{
			name: "reply takes precedence over argument",
			msg: &models.Message{
				Text:           "/auth 999",
				ReplyToMessage: &models.Message{From: &models.User{ID: 42}},
			},
			want: 42,
		},
		{
			name: "numeric argument",
			msg:  &models.Message{Text: "/auth 12345"},
			want: 12345,
		},
		{
			name: "argument with @ prefix",
			msg:  &models.Message{Text: "/auth @12345"},
			want: 12345,
		},
		{
			name:    "username argument rejected",
			msg:     &models.Message{Text: "/auth @someuser"},
			wantErr: true,
		},
		{
			name:    "negative id rejected",
			msg:     &models.Message{Text: "/auth -5"},
			wantErr: true,
		},
		{
			name:    "no target at all",
			msg:     &models.Message{Text: "/auth"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := targetUserID(tt.msg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("targetUserID() = %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("targetUserID() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("targetUserID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMinutesArg(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{name: "valid", text: "/settimer 45", want: 45},
		{name: "zero parses", text: "/settimer 0", want: 0},
		{name: "missing", text: "/settimer", wantErr: true},
		{name: "not a number", text: "/settimer soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := minutesArg(&models.Message{Text: tt.text})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("minutesArg(%q) = %d, want error", tt.text, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("minutesArg(%q) unexpected error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("minutesArg(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestPayloadFromMessage(t *testing.T) {
	tests := []struct {
		name       string
		msg        *models.Message
		wantKind   moderation.PayloadKind
		wantFileID string
		wantText   string
	}{
		{
			name: "photo uses largest size and caption",
			msg: &models.Message{
				Photo:   []models.PhotoSize{{FileID: "small"}, {FileID: "large"}},
				Caption: "look",
			},
			wantKind:   moderation.PayloadPhoto,
			wantFileID: "large",
		},
		{
			name:       "video",
			msg:        &models.Message{Video: &models.Video{FileID: "vid"}},
			wantKind:   moderation.PayloadVideo,
			wantFileID: "vid",
		},
		{
			name:       "sticker",
			msg:        &models.Message{Sticker: &models.Sticker{FileID: "stk"}},
			wantKind:   moderation.PayloadSticker,
			wantFileID: "stk",
		},
		{
			name:       "document",
			msg:        &models.Message{Document: &models.Document{FileID: "doc"}},
			wantKind:   moderation.PayloadDocument,
			wantFileID: "doc",
		},
		{
			name:     "plain text",
			msg:      &models.Message{Text: "hello"},
			wantKind: moderation.PayloadText,
			wantText: "hello",
		},
		{
			name:     "empty message unsupported",
			msg:      &models.Message{},
			wantKind: moderation.PayloadUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payloadFromMessage(tt.msg)
			if got.Kind != tt.wantKind {
				t.Fatalf("payloadFromMessage() kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.FileID != tt.wantFileID {
				t.Errorf("payloadFromMessage() file ID = %q, want %q", got.FileID, tt.wantFileID)
			}
			if got.Text != tt.wantText {
				t.Errorf("payloadFromMessage() text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want string
	}{
		{name: "username preferred", user: &models.User{ID: 7, Username: "alice", FirstName: "Alice"}, want: "@alice"},
		{name: "first name fallback", user: &models.User{ID: 7, FirstName: "Alice"}, want: "Alice"},
		{name: "id fallback", user: &models.User{ID: 7}, want: "7"},
		{name: "nil user", user: nil, want: "someone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayName(tt.user); got != tt.want {
				t.Errorf("displayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
