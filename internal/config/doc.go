// Package config loads the inboxping configuration from the
// environment, honoring a .env file in the working directory.
//
// Validation is channel- and provider-aware: only the variables the
// selected notification channel and mailbox provider need are required,
// and a missing one fails setup before any message is touched.
package config
