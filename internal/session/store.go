package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/crewdeck/crewdeck/internal/config"
	"github.com/crewdeck/crewdeck/internal/errors"
)

// Token lifetimes, matching the browser client's cookie expiries
const (
	accessTokenTTL  = 7 * 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// storedToken is a persisted token with its expiry
type storedToken struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// expired reports whether the token is absent or past its expiry
func (t *storedToken) expired(now time.Time) bool {
	return t == nil || t.Value == "" || now.After(t.ExpiresAt)
}

// credentialsFile is the on-disk representation of the token pair
type credentialsFile struct {
	AccessToken  *storedToken `json:"access_token,omitempty"`
	RefreshToken *storedToken `json:"refresh_token,omitempty"`
}

// Store persists the token pair on disk between invocations
type Store struct {
	path string
}

// NewStore creates a store backed by an explicit file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore creates a store in the crewdeck config directory
func DefaultStore() (*Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(dir, "credentials.json")), nil
}

// Save writes the token pair with fresh expiries
func (s *Store) Save(accessToken, refreshToken string) error {
	now := time.Now()
	creds := credentialsFile{
		AccessToken:  &storedToken{Value: accessToken, ExpiresAt: now.Add(accessTokenTTL)},
		RefreshToken: &storedToken{Value: refreshToken, ExpiresAt: now.Add(refreshTokenTTL)},
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreWrite, "failed to marshal credentials", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreWrite, "failed to write credentials file", err)
	}

	return nil
}

// Load reads the persisted token pair. A missing file or an expired
// token yields an empty value for that token, not an error.
func (s *Store) Load() (accessToken, refreshToken string, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", nil
		}
		return "", "", errors.Wrap(errors.ErrCodeSessionStoreRead, "failed to read credentials file", err)
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeSessionStoreRead, "failed to parse credentials file", err)
	}

	now := time.Now()
	if !creds.AccessToken.expired(now) {
		accessToken = creds.AccessToken.Value
	}
	if !creds.RefreshToken.expired(now) {
		refreshToken = creds.RefreshToken.Value
	}

	return accessToken, refreshToken, nil
}

// Clear removes the credentials file
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeSessionStoreWrite, "failed to remove credentials file", err)
	}
	return nil
}
