package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inboxping/inboxping/internal/logging"
	"github.com/inboxping/inboxping/internal/monitor"
)

const slackChannelName = "slack"

const defaultSlackTimeout = 10 * time.Second

// slackPayload is the JSON body POSTed to the incoming webhook.
type slackPayload struct {
	Text string `json:"text"`
}

// SlackSender delivers alerts by POSTing to a Slack incoming webhook.
type SlackSender struct {
	httpClient *http.Client
	webhookURL string
	logger     logging.Logger
}

// NewSlackSender validates the webhook URL and returns a SlackSender.
// If logger is nil, the default logger is used.
func NewSlackSender(webhookURL string, logger logging.Logger) (*SlackSender, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("slack webhook URL is required")
	}
	u, err := url.Parse(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid slack webhook URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("slack webhook URL must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("slack webhook URL must include a host")
	}
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return &SlackSender{
		httpClient: &http.Client{Timeout: defaultSlackTimeout},
		webhookURL: webhookURL,
		logger:     logger,
	}, nil
}

// Channel implements monitor.Sender.
func (s *SlackSender) Channel() string { return slackChannelName }

// Deliver POSTs the payload as the webhook's text field. Single
// attempt: any transport error or non-2xx status is a DeliveryError.
func (s *SlackSender) Deliver(ctx context.Context, payload string) (string, error) {
	body, err := json.Marshal(slackPayload{Text: payload})
	if err != nil {
		return "", &monitor.DeliveryError{Channel: slackChannelName, Err: fmt.Errorf("encoding payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return "", &monitor.DeliveryError{Channel: slackChannelName, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &monitor.DeliveryError{Channel: slackChannelName, Err: err}
	}
	defer resp.Body.Close()

	// Slack answers "ok" on success; keep the short response as the
	// delivery id. Drain regardless so the connection can be reused.
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &monitor.DeliveryError{
			Channel: slackChannelName,
			Err:     fmt.Errorf("webhook returned %s: %s", resp.Status, strings.TrimSpace(string(respBody))),
		}
	}

	s.logger.Debug("slack webhook accepted", "status", resp.StatusCode)

	id := strings.TrimSpace(string(respBody))
	if id == "" {
		id = "ok"
	}
	return id, nil
}
