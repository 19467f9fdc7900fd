package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inboxping/inboxping/internal/config"
	"github.com/inboxping/inboxping/internal/gmail"
	"github.com/inboxping/inboxping/internal/google"
	"github.com/inboxping/inboxping/internal/imapmail"
	"github.com/inboxping/inboxping/internal/instrumentation"
	"github.com/inboxping/inboxping/internal/logging"
	"github.com/inboxping/inboxping/internal/monitor"
	"github.com/inboxping/inboxping/internal/notify"
)

// buildMailbox constructs the Mailbox adapter for the configured provider.
func buildMailbox(ctx context.Context, cfg *config.Config) (monitor.Mailbox, error) {
	switch cfg.Provider {
	case config.ProviderGmail:
		store, err := google.NewTokenStore(cfg.TokenStore, cfg.GoogleTokenFile)
		if err != nil {
			return nil, err
		}
		client, err := gmail.NewClient(ctx, cfg.GoogleCredentialsFile, store)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gmail client: %w", err)
		}
		return client, nil

	case config.ProviderIMAP:
		client, err := imapmail.NewClient(imapmail.Config{
			Host:     cfg.IMAPHost,
			Port:     cfg.IMAPPort,
			Username: cfg.IMAPUsername,
			Password: cfg.IMAPPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create IMAP client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unknown mailbox provider %q", cfg.Provider)
	}
}

// buildSender constructs the Sender for the configured channel.
func buildSender(cfg *config.Config, logger *slog.Logger) (monitor.Sender, error) {
	adapter := logging.NewSlogAdapter(logger)

	switch cfg.Channel {
	case config.ChannelSlack:
		sender, err := notify.NewSlackSender(cfg.SlackWebhookURL, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create Slack sender: %w", err)
		}
		return sender, nil

	case config.ChannelWhatsApp:
		sender, err := notify.NewTwilioSender(notify.TwilioConfig{
			AccountSID: cfg.TwilioSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioFrom,
			To:         cfg.TwilioTo,
		}, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create Twilio sender: %w", err)
		}
		return sender, nil

	default:
		return nil, fmt.Errorf("unknown notification channel %q", cfg.Channel)
	}
}

// buildDispatcher wires mailbox, sender, and renderer into a Dispatcher.
func buildDispatcher(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *instrumentation.Metrics) (*monitor.Dispatcher, error) {
	mailbox, err := buildMailbox(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sender, err := buildSender(cfg, logger)
	if err != nil {
		return nil, err
	}

	return monitor.NewDispatcher(monitor.DispatcherConfig{
		Mailbox:  mailbox,
		Sender:   sender,
		Renderer: notify.NewAlertRenderer(),
		Lookback: cfg.Lookback,
		Logger:   logger,
		Metrics:  metrics,
	})
}
