package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/inboxping/inboxping/internal/classify"
)

// SnippetLimit bounds the body preview carried in a notification.
const SnippetLimit = 100

// MessageRef is the opaque identifier for one mailbox entry, as issued
// by the mailbox provider's listing call.
type MessageRef string

// MessageDetail is the normalized view of one message used by the
// pipeline. Missing From or Subject headers are represented as empty
// strings, never as errors.
type MessageDetail struct {
	Ref     MessageRef
	Sender  string
	Subject string
	Snippet string
}

// Mailbox is the mail-retrieval and mail-mutation collaborator.
type Mailbox interface {
	// ListUnread returns refs for unread messages received within the
	// given window, in provider order. Failures are reported as *ListError.
	ListUnread(ctx context.Context, within time.Duration) ([]MessageRef, error)

	// GetDetails fetches and normalizes one message. Failures are
	// reported as *DetailFetchError carrying the ref.
	GetDetails(ctx context.Context, ref MessageRef) (*MessageDetail, error)

	// MarkProcessed marks the message read so later runs skip it.
	// Failures are reported as *MarkError.
	MarkProcessed(ctx context.Context, ref MessageRef) error

	// Provider names the mailbox backend for logs and metrics.
	Provider() string
}

// Sender is the delivery collaborator: a one-shot text send to the
// configured notification channel.
type Sender interface {
	// Deliver sends the payload and returns a channel-specific delivery
	// id. Failures are reported as *DeliveryError.
	Deliver(ctx context.Context, payload string) (string, error)

	// Channel names the delivery backend for logs and metrics.
	Channel() string
}

// Renderer turns a categorized message into the payload text handed to
// the Sender. Implementations must be pure formatting and never fail.
type Renderer interface {
	Render(category classify.Category, detail *MessageDetail) string
}

// NormalizeSnippet collapses whitespace in a body preview and truncates
// it to SnippetLimit runes. A trailing ellipsis is appended only when
// truncation occurred.
func NormalizeSnippet(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	joined := strings.Join(fields, " ")
	runes := []rune(joined)
	if len(runes) <= SnippetLimit {
		return joined
	}
	return string(runes[:SnippetLimit]) + "..."
}
