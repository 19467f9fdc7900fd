package notify

import (
	"strings"

	"github.com/inboxping/inboxping/internal/classify"
	"github.com/inboxping/inboxping/internal/monitor"
)

// AlertRenderer formats a categorized message into the notification
// block shared by all delivery channels:
//
//	*<category>*
//	*From:* <sender display name>
//	*Subject:* <subject>
//	<snippet>
//
// The snippet line is omitted when the snippet is empty. Channel
// decoration (banners, signatures) is the sender's concern.
type AlertRenderer struct{}

// NewAlertRenderer returns the standard renderer.
func NewAlertRenderer() *AlertRenderer {
	return &AlertRenderer{}
}

// Render implements monitor.Renderer. Pure formatting, never fails.
func (r *AlertRenderer) Render(category classify.Category, detail *monitor.MessageDetail) string {
	var b strings.Builder
	b.WriteString("*" + string(category) + "*\n")
	b.WriteString("*From:* " + senderDisplay(detail.Sender) + "\n")
	b.WriteString("*Subject:* " + strings.TrimSpace(detail.Subject))
	if detail.Snippet != "" {
		b.WriteString("\n" + detail.Snippet)
	}
	return b.String()
}

// senderDisplay reduces a From header to its display-name part: the
// text before the first "<", trimmed. A bare address passes through
// unchanged.
func senderDisplay(from string) string {
	name, _, found := strings.Cut(from, "<")
	name = strings.TrimSpace(name)
	if found && name == "" {
		// "<addr>" with no display part: fall back to the raw header.
		return strings.TrimSpace(from)
	}
	return name
}
