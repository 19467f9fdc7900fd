package gmail

import (
	"strings"
	"testing"
	"time"

	gmail "google.golang.org/api/gmail/v1"
)

func TestUnreadQuery(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name     string
		within   time.Duration
		expected string
	}{
		{
			name:     "24 hour window",
			within:   24 * time.Hour,
			expected: "is:unread after:1699913600",
		},
		{
			name:     "1 hour window",
			within:   time.Hour,
			expected: "is:unread after:1699996400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unreadQuery(now, tt.within); got != tt.expected {
				t.Errorf("unreadQuery() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHeaderValue(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "Alice <alice@example.com>"},
				{Name: "subject", Value: "Invoice #12345"},
			},
		},
	}

	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{
			name:     "exact case",
			header:   "From",
			expected: "Alice <alice@example.com>",
		},
		{
			name:     "case insensitive lookup",
			header:   "Subject",
			expected: "Invoice #12345",
		},
		{
			name:     "missing header yields empty string",
			header:   "Reply-To",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headerValue(msg, tt.header); got != tt.expected {
				t.Errorf("headerValue(%q) = %q, want %q", tt.header, got, tt.expected)
			}
		})
	}
}

func TestHeaderValueNilPayload(t *testing.T) {
	if got := headerValue(&gmail.Message{}, "From"); got != "" {
		t.Errorf("expected empty string for nil payload, got %q", got)
	}
}

func TestProviderName(t *testing.T) {
	c := &Client{}
	if c.Provider() != "gmail" {
		t.Errorf("unexpected provider name %q", c.Provider())
	}
	if !strings.EqualFold(c.Provider(), "GMAIL") {
		t.Error("provider name comparison should be usable case-insensitively")
	}
}
