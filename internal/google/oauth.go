package google

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
)

// LoadOAuthConfig reads the OAuth client configuration from a
// credentials.json file downloaded from the Google Cloud Console.
// The requested scopes cover reading unread mail and clearing the
// UNREAD label, nothing more.
func LoadOAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("cannot read %s", credentialsFile), Err: err}
	}

	conf, err := google.ConfigFromJSON(b,
		gmail.GmailReadonlyScope,
		gmail.GmailModifyScope,
	)
	if err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("cannot parse %s", credentialsFile), Err: err}
	}
	return conf, nil
}

// TokenSource returns a validated, auto-refreshing token source backed
// by the cached token in store. Refreshed tokens are written back to
// the store so the next run skips the refresh round trip.
// Fails with an AuthError when no cached token exists or the cached
// token can no longer be refreshed.
func TokenSource(ctx context.Context, conf *oauth2.Config, store TokenStore) (oauth2.TokenSource, error) {
	cached, err := store.Load()
	if err != nil {
		return nil, &AuthError{Reason: "no cached token; run `inboxping auth` first", Err: err}
	}

	ts := conf.TokenSource(ctx, cached)

	// Validate up front so a dead refresh token aborts the run before
	// any message is touched.
	fresh, err := ts.Token()
	if err != nil {
		return nil, &AuthError{Reason: "cached token is invalid", Err: err}
	}
	if fresh.AccessToken != cached.AccessToken {
		if err := store.Save(fresh); err != nil {
			return nil, fmt.Errorf("cannot persist refreshed token: %w", err)
		}
	}

	return &savingTokenSource{source: ts, store: store, last: fresh}, nil
}

// Authorize runs the interactive authorization-code exchange and saves
// the resulting token through store. It prompts on stdout and reads the
// code from stdin.
func Authorize(ctx context.Context, conf *oauth2.Config, store TokenStore) error {
	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("1) Open this URL in your browser:")
	fmt.Println(authURL)
	fmt.Println("\n2) Sign in and accept the permissions.")
	fmt.Print("3) Paste the authorization code here: ")

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return fmt.Errorf("cannot read auth code: %w", err)
	}

	tok, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return &AuthError{Reason: "cannot exchange auth code", Err: err}
	}

	if err := store.Save(tok); err != nil {
		return fmt.Errorf("cannot save token: %w", err)
	}
	return nil
}

// savingTokenSource persists refreshed tokens back to the store so the
// cached token stays usable across runs.
type savingTokenSource struct {
	source oauth2.TokenSource
	store  TokenStore

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		if err := s.store.Save(tok); err != nil {
			return nil, fmt.Errorf("cannot persist refreshed token: %w", err)
		}
		s.last = tok
	}
	return tok, nil
}
