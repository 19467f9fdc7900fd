package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Notification channel names.
const (
	ChannelSlack    = "slack"
	ChannelWhatsApp = "whatsapp"
)

// Mailbox provider names.
const (
	ProviderGmail = "gmail"
	ProviderIMAP  = "imap"
)

// Token store kinds.
const (
	TokenStoreFile    = "file"
	TokenStoreKeyring = "keyring"
)

// Defaults applied when the environment leaves a value unset.
const (
	DefaultLookback      = 24 * time.Hour
	DefaultWatchInterval = 5 * time.Minute
	DefaultIMAPPort      = 993
	DefaultMetricsAddr   = ":9090"
)

// Config is the resolved inboxping configuration.
type Config struct {
	// Notification
	Channel         string
	SlackWebhookURL string
	TwilioSID       string
	TwilioAuthToken string
	TwilioFrom      string
	TwilioTo        string

	// Mailbox
	Provider              string
	GoogleCredentialsFile string
	GoogleTokenFile       string
	TokenStore            string
	IMAPHost              string
	IMAPPort              int
	IMAPUsername          string
	IMAPPassword          string

	// Pipeline
	Lookback      time.Duration
	WatchInterval time.Duration

	// Ambient
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// Load reads the configuration from the environment, honoring a .env
// file when one exists, and validates it for the selected channel and
// provider.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		Channel:         getEnv("NOTIFY_CHANNEL", ChannelSlack),
		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		TwilioSID:       getEnv("TWILIO_SID", ""),
		TwilioAuthToken: getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:      getEnv("TWILIO_FROM", ""),
		TwilioTo:        getEnv("TWILIO_TO", ""),

		Provider:              getEnv("MAILBOX_PROVIDER", ProviderGmail),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		GoogleTokenFile:       getEnv("GOOGLE_TOKEN_FILE", "token.json"),
		TokenStore:            getEnv("TOKEN_STORE", TokenStoreFile),
		IMAPHost:              getEnv("IMAP_HOST", ""),
		IMAPUsername:          getEnv("IMAP_USERNAME", ""),
		IMAPPassword:          getEnv("IMAP_PASSWORD", ""),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		MetricsAddr: getEnv("METRICS_ADDR", DefaultMetricsAddr),
	}

	var err error
	if cfg.IMAPPort, err = getEnvInt("IMAP_PORT", DefaultIMAPPort); err != nil {
		return nil, err
	}

	lookbackHours, err := getEnvInt("LOOKBACK_HOURS", 0)
	if err != nil {
		return nil, err
	}
	if lookbackHours > 0 {
		cfg.Lookback = time.Duration(lookbackHours) * time.Hour
	} else {
		cfg.Lookback = DefaultLookback
	}

	if cfg.WatchInterval, err = getEnvDuration("WATCH_INTERVAL", DefaultWatchInterval); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for the selected channel and
// provider. Missing required values are fatal setup errors.
func (c *Config) Validate() error {
	switch c.Channel {
	case ChannelSlack:
		if c.SlackWebhookURL == "" {
			return fmt.Errorf("SLACK_WEBHOOK_URL is required when NOTIFY_CHANNEL is %q", ChannelSlack)
		}
	case ChannelWhatsApp:
		if c.TwilioSID == "" || c.TwilioAuthToken == "" {
			return fmt.Errorf("TWILIO_SID and TWILIO_AUTH_TOKEN are required when NOTIFY_CHANNEL is %q", ChannelWhatsApp)
		}
		if c.TwilioFrom == "" || c.TwilioTo == "" {
			return fmt.Errorf("TWILIO_FROM and TWILIO_TO are required when NOTIFY_CHANNEL is %q", ChannelWhatsApp)
		}
	default:
		return fmt.Errorf("invalid NOTIFY_CHANNEL %q, must be one of: slack, whatsapp", c.Channel)
	}

	switch c.Provider {
	case ProviderGmail:
		if c.GoogleCredentialsFile == "" {
			return fmt.Errorf("GOOGLE_CREDENTIALS_FILE is required when MAILBOX_PROVIDER is %q", ProviderGmail)
		}
	case ProviderIMAP:
		if c.IMAPHost == "" {
			return fmt.Errorf("IMAP_HOST is required when MAILBOX_PROVIDER is %q", ProviderIMAP)
		}
		if c.IMAPUsername == "" || c.IMAPPassword == "" {
			return fmt.Errorf("IMAP_USERNAME and IMAP_PASSWORD are required when MAILBOX_PROVIDER is %q", ProviderIMAP)
		}
	default:
		return fmt.Errorf("invalid MAILBOX_PROVIDER %q, must be one of: gmail, imap", c.Provider)
	}

	if c.TokenStore != TokenStoreFile && c.TokenStore != TokenStoreKeyring {
		return fmt.Errorf("invalid TOKEN_STORE %q, must be one of: file, keyring", c.TokenStore)
	}

	if c.Lookback <= 0 {
		return fmt.Errorf("LOOKBACK_HOURS must be positive, got %s", c.Lookback)
	}
	if c.WatchInterval <= 0 {
		return fmt.Errorf("WATCH_INTERVAL must be positive, got %s", c.WatchInterval)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}
