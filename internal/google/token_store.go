package google

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
	"golang.org/x/oauth2"
)

const keyringService = "inboxping"

// TokenStore persists the single cached OAuth token between runs.
// It is the only state that survives a process invocation.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
}

// NewTokenStore returns a TokenStore for the given kind: "file"
// (default) or "keyring". file is the token file path used by the file
// store and by the keyring store's file fallback backend.
func NewTokenStore(kind, file string) (TokenStore, error) {
	switch kind {
	case "", "file":
		return NewFileTokenStore(file), nil
	case "keyring":
		return NewKeyringTokenStore(filepath.Dir(file)), nil
	default:
		return nil, fmt.Errorf("unknown token store %q, must be file or keyring", kind)
	}
}

// FileTokenStore caches the token as JSON in a local file, matching the
// token.json layout used by the Google OAuth client libraries.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a file-backed token store at the given path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load reads and decodes the cached token.
func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("cannot read token file %s: %w", s.path, err)
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("invalid token file %s: %w", s.path, err)
	}
	return &tok, nil
}

// Save writes the token with owner-only permissions.
func (s *FileTokenStore) Save(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("cannot encode token: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("cannot create token directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("cannot write token file %s: %w", s.path, err)
	}
	return nil
}

// Path returns the token file location.
func (s *FileTokenStore) Path() string { return s.path }

// KeyringTokenStore caches the token in the OS keyring, falling back to
// an encrypted file backend on platforms without a native keyring.
type KeyringTokenStore struct {
	fileDir string
}

// NewKeyringTokenStore creates a keyring-backed token store. fileDir is
// where the file fallback backend keeps its data.
func NewKeyringTokenStore(fileDir string) *KeyringTokenStore {
	return &KeyringTokenStore{fileDir: fileDir}
}

func (s *KeyringTokenStore) open() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: keyringService,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  s.fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(keyringService + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Load reads and decodes the cached token from the keyring.
func (s *KeyringTokenStore) Load() (*oauth2.Token, error) {
	ring, err := s.open()
	if err != nil {
		return nil, err
	}

	item, err := ring.Get("google-token")
	if err != nil {
		return nil, fmt.Errorf("getting token from keyring: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(item.Data, &tok); err != nil {
		return nil, fmt.Errorf("invalid token in keyring: %w", err)
	}
	return &tok, nil
}

// Save stores the token in the keyring.
func (s *KeyringTokenStore) Save(token *oauth2.Token) error {
	ring, err := s.open()
	if err != nil {
		return err
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("cannot encode token: %w", err)
	}

	if err := ring.Set(keyring.Item{Key: "google-token", Data: data}); err != nil {
		return fmt.Errorf("setting token in keyring: %w", err)
	}
	return nil
}
