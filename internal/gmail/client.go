package gmail

import (
	"context"
	"fmt"
	"strings"
	"time"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/inboxping/inboxping/internal/google"
	"github.com/inboxping/inboxping/internal/monitor"
)

const providerName = "gmail"

// Client wraps the Gmail Users service as a monitor.Mailbox.
type Client struct {
	svc *gmail.UsersService
}

// NewClient creates a Gmail mailbox client authenticated with the
// cached OAuth token from store. Fails with a google.AuthError when no
// valid token is available.
func NewClient(ctx context.Context, credentialsFile string, store google.TokenStore) (*Client, error) {
	conf, err := google.LoadOAuthConfig(credentialsFile)
	if err != nil {
		return nil, err
	}

	ts, err := google.TokenSource(ctx, conf, store)
	if err != nil {
		return nil, err
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("cannot create gmail service: %w", err)
	}

	return &Client{svc: svc.Users}, nil
}

// Provider implements monitor.Mailbox.
func (c *Client) Provider() string { return providerName }

// ListUnread returns refs for unread messages received within the
// window, in the API's (reverse-chronological) order.
func (c *Client) ListUnread(ctx context.Context, within time.Duration) ([]monitor.MessageRef, error) {
	query := unreadQuery(time.Now(), within)

	var refs []monitor.MessageRef
	pageToken := ""
	for {
		req := c.svc.Messages.List("me").Q(query).Context(ctx)
		if pageToken != "" {
			req.PageToken(pageToken)
		}
		res, err := req.Do()
		if err != nil {
			return nil, &monitor.ListError{Provider: providerName, Err: err}
		}
		for _, m := range res.Messages {
			refs = append(refs, monitor.MessageRef(m.Id))
		}
		if res.NextPageToken == "" {
			return refs, nil
		}
		pageToken = res.NextPageToken
	}
}

// GetDetails fetches one message in metadata format and normalizes it.
// The metadata get already carries the provider-computed snippet, so
// the full body is never fetched.
func (c *Client) GetDetails(ctx context.Context, ref monitor.MessageRef) (*monitor.MessageDetail, error) {
	msg, err := c.svc.Messages.Get("me", string(ref)).
		Format("metadata").
		MetadataHeaders("From", "Subject").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &monitor.DetailFetchError{Ref: ref, Err: err}
	}

	return &monitor.MessageDetail{
		Ref:     ref,
		Sender:  headerValue(msg, "From"),
		Subject: headerValue(msg, "Subject"),
		Snippet: monitor.NormalizeSnippet(msg.Snippet),
	}, nil
}

// MarkProcessed removes the UNREAD label so later runs skip the message.
func (c *Client) MarkProcessed(ctx context.Context, ref monitor.MessageRef) error {
	_, err := c.svc.Messages.Modify("me", string(ref), &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return &monitor.MarkError{Ref: ref, Err: err}
	}
	return nil
}

// unreadQuery builds the Gmail search query for unread messages newer
// than the window. Gmail's after: operator takes a Unix timestamp.
func unreadQuery(now time.Time, within time.Duration) string {
	cutoff := now.Add(-within).Unix()
	return fmt.Sprintf("is:unread after:%d", cutoff)
}

// headerValue extracts a header value from a message, tolerating
// missing headers and case differences in header names.
func headerValue(msg *gmail.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
