// Package google handles Google OAuth2 credentials for the Gmail
// mailbox provider.
//
// The OAuth client configuration is read from a credentials.json file
// downloaded from the Google Cloud Console. The user's token is cached
// between runs through the TokenStore interface, with a JSON file store
// (the default, compatible with the usual token.json layout) and an OS
// keyring store.
//
// Run and watch modes are headless: they require a cached token and
// fail with an AuthError when none is valid. The interactive
// authorization exchange lives behind Authorize and is driven only by
// the auth command.
package google
