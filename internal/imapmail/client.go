package imapmail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"

	"github.com/inboxping/inboxping/internal/monitor"
)

const providerName = "imap"

// Config holds the IMAP server settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Client implements monitor.Mailbox over an IMAP server.
type Client struct {
	cfg Config
}

// NewClient validates the configuration and returns an IMAP mailbox client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("imap host is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("imap username and password are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 993
	}
	return &Client{cfg: cfg}, nil
}

// Provider implements monitor.Mailbox.
func (c *Client) Provider() string { return providerName }

// connect dials the server, authenticates, and selects INBOX.
// The caller is responsible for logging out the returned client.
func (c *Client) connect(readOnly bool) (*imapclient.Client, error) {
	addr := c.cfg.Host + ":" + strconv.Itoa(c.cfg.Port)

	client, err := imapclient.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(c.cfg.Username, c.cfg.Password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("IMAP login failed for %s: %w", c.cfg.Username, err)
	}

	var opts *imap.SelectOptions
	if readOnly {
		opts = &imap.SelectOptions{ReadOnly: true}
	}
	if _, err := client.Select("INBOX", opts).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("selecting INBOX: %w", err)
	}

	return client, nil
}

// ListUnread searches for unseen messages received within the window
// and returns their UIDs in mailbox order.
func (c *Client) ListUnread(_ context.Context, within time.Duration) ([]monitor.MessageRef, error) {
	client, err := c.connect(true)
	if err != nil {
		return nil, &monitor.ListError{Provider: providerName, Err: err}
	}
	defer func() { _ = client.Logout().Wait() }()

	// IMAP SINCE is day-granular; filter to the exact cutoff after the
	// envelope fetch.
	cutoff := time.Now().Add(-within)
	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
		Since:   time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, cutoff.Location()),
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, &monitor.ListError{Provider: providerName, Err: fmt.Errorf("searching unseen messages: %w", err)}
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	uidSet := imap.UIDSetNum(uids...)
	msgs, err := client.Fetch(uidSet, &imap.FetchOptions{Envelope: true, UID: true}).Collect()
	if err != nil {
		return nil, &monitor.ListError{Provider: providerName, Err: fmt.Errorf("fetching envelopes: %w", err)}
	}

	var refs []monitor.MessageRef
	for _, m := range msgs {
		if m.Envelope != nil && m.Envelope.Date.Before(cutoff) {
			continue
		}
		refs = append(refs, monitor.MessageRef(strconv.FormatUint(uint64(m.UID), 10)))
	}
	return refs, nil
}

// GetDetails fetches envelope and body for one UID and normalizes them.
// The body fetch peeks so the preview does not set \Seen.
func (c *Client) GetDetails(_ context.Context, ref monitor.MessageRef) (*monitor.MessageDetail, error) {
	uid, err := parseUID(ref)
	if err != nil {
		return nil, &monitor.DetailFetchError{Ref: ref, Err: err}
	}

	client, err := c.connect(true)
	if err != nil {
		return nil, &monitor.DetailFetchError{Ref: ref, Err: err}
	}
	defer func() { _ = client.Logout().Wait() }()

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchOpts := &imap.FetchOptions{
		Envelope:    true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	fetchCmd := client.Fetch(imap.UIDSetNum(uid), fetchOpts)
	msg := fetchCmd.Next()
	if msg == nil {
		_ = fetchCmd.Close()
		return nil, &monitor.DetailFetchError{Ref: ref, Err: fmt.Errorf("message UID %d not found", uid)}
	}

	buf, err := msg.Collect()
	if err != nil {
		_ = fetchCmd.Close()
		return nil, &monitor.DetailFetchError{Ref: ref, Err: fmt.Errorf("collecting message data: %w", err)}
	}
	if err := fetchCmd.Close(); err != nil {
		return nil, &monitor.DetailFetchError{Ref: ref, Err: fmt.Errorf("closing fetch: %w", err)}
	}

	detail := &monitor.MessageDetail{Ref: ref}
	if buf.Envelope != nil {
		detail.Subject = buf.Envelope.Subject
		detail.Sender = formatSender(buf.Envelope.From)
	}
	if raw := buf.FindBodySection(bodySection); raw != nil {
		detail.Snippet = monitor.NormalizeSnippet(extractTextBody(raw))
	}
	return detail, nil
}

// MarkProcessed stores the \Seen flag on the message.
func (c *Client) MarkProcessed(_ context.Context, ref monitor.MessageRef) error {
	uid, err := parseUID(ref)
	if err != nil {
		return &monitor.MarkError{Ref: ref, Err: err}
	}

	client, err := c.connect(false)
	if err != nil {
		return &monitor.MarkError{Ref: ref, Err: err}
	}
	defer func() { _ = client.Logout().Wait() }()

	storeCmd := client.Store(imap.UIDSetNum(uid), &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Silent: true,
		Flags:  []imap.Flag{imap.FlagSeen},
	}, nil)
	if err := storeCmd.Close(); err != nil {
		return &monitor.MarkError{Ref: ref, Err: fmt.Errorf("storing \\Seen flag: %w", err)}
	}
	return nil
}

func parseUID(ref monitor.MessageRef) (imap.UID, error) {
	n, err := strconv.ParseUint(string(ref), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid IMAP UID %q: %w", ref, err)
	}
	return imap.UID(n), nil
}

// formatSender renders the first From address the way a mail client
// would show it: "Name <addr>", or just the address without a display
// name.
func formatSender(from []imap.Address) string {
	if len(from) == 0 {
		return ""
	}
	addr := from[0]
	if addr.Name != "" {
		return addr.Name + " <" + addr.Addr() + ">"
	}
	return addr.Addr()
}

// extractTextBody parses a raw RFC 5322 message and returns the first
// inline text/plain part, falling back to the raw bytes when the MIME
// structure cannot be parsed.
func extractTextBody(raw []byte) string {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return string(raw)
	}
	defer mr.Close()

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		if !strings.HasPrefix(contentType, "text/plain") {
			continue
		}
		body, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		return string(body)
	}
	return ""
}
