package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/inboxping/inboxping/internal/logging"
	"github.com/inboxping/inboxping/internal/monitor"
)

const whatsappChannelName = "whatsapp"

// TwilioConfig holds the Twilio messaging credentials and the two
// WhatsApp numbers, both in the "whatsapp:+E164" form.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
}

// TwilioSender delivers alerts as WhatsApp messages through the Twilio
// messaging API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	to     string
	logger logging.Logger
}

// NewTwilioSender validates the configuration and returns a TwilioSender.
// If logger is nil, the default logger is used.
func NewTwilioSender(cfg TwilioConfig, logger logging.Logger) (*TwilioSender, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("twilio account SID and auth token are required")
	}
	if cfg.From == "" || cfg.To == "" {
		return nil, fmt.Errorf("twilio from and to numbers are required")
	}
	if !strings.HasPrefix(cfg.From, "whatsapp:+") {
		return nil, fmt.Errorf("twilio from number must use the whatsapp:+E164 form, got %q", cfg.From)
	}
	if !strings.HasPrefix(cfg.To, "whatsapp:+") {
		return nil, fmt.Errorf("twilio to number must use the whatsapp:+E164 form, got %q", cfg.To)
	}
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioSender{
		client: client,
		from:   cfg.From,
		to:     cfg.To,
		logger: logger,
	}, nil
}

// Channel implements monitor.Sender.
func (s *TwilioSender) Channel() string { return whatsappChannelName }

// Deliver wraps the payload with the WhatsApp banner and sends it.
// The returned delivery id is the Twilio message SID.
func (s *TwilioSender) Deliver(ctx context.Context, payload string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(s.to)
	params.SetBody(whatsappBody(payload))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", &monitor.DeliveryError{Channel: whatsappChannelName, Err: err}
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	s.logger.Debug("whatsapp message sent", "sid", sid)
	return sid, nil
}

// whatsappBody decorates the shared alert block with the channel's
// banner and signature.
func whatsappBody(payload string) string {
	return "🚨 *New Email Alert*\n\n" + payload + "\n\n---\n_Sent by inboxping_"
}
