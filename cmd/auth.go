package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/inboxping/inboxping/internal/google"
	"github.com/inboxping/inboxping/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var credentialsFile, tokenFile, tokenStore string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Run the interactive Google OAuth flow and cache the token",
		Long: `Print the Google consent URL, wait for the authorization code, exchange
it for a token, and cache the token in the configured store. Required
once before the gmail provider can be used; run and watch refresh the
cached token automatically afterwards.

Only the Google settings are read here, so auth works before the
notification channel is configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

			if credentialsFile == "" {
				credentialsFile = envOrDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
			}
			if tokenFile == "" {
				tokenFile = envOrDefault("GOOGLE_TOKEN_FILE", "token.json")
			}
			if tokenStore == "" {
				tokenStore = envOrDefault("TOKEN_STORE", "file")
			}

			conf, err := google.LoadOAuthConfig(credentialsFile)
			if err != nil {
				return err
			}

			store, err := google.NewTokenStore(tokenStore, tokenFile)
			if err != nil {
				return err
			}

			if err := google.Authorize(cmd.Context(), conf, store); err != nil {
				return err
			}

			fmt.Println("Authorization complete; token cached.")
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialsFile, "credentials", "", "OAuth client credentials file (default: GOOGLE_CREDENTIALS_FILE or credentials.json)")
	cmd.Flags().StringVar(&tokenFile, "token-file", "", "Token cache file (default: GOOGLE_TOKEN_FILE or token.json)")
	cmd.Flags().StringVar(&tokenStore, "token-store", "", "Token store kind, file or keyring (default: TOKEN_STORE or file)")
	return cmd
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
