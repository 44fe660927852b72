package session

import (
	"context"
	"sync"

	"github.com/crewdeck/crewdeck/internal/api"
	"github.com/crewdeck/crewdeck/internal/log"
)

// Manager is the single source of truth for the current token pair and
// the identity derived from it. It implements api.CredentialSource, so
// the API client reads the tokens imperatively on every request and a
// SetSession is visible to the next request immediately.
//
// Invariant: user is present if and only if the access token decoded
// successfully, and the two tokens are always set or cleared together.
type Manager struct {
	mu     sync.Mutex
	store  *Store
	logger *log.Logger

	// client is used for the best-effort backend logout call. It is
	// attached after construction because the client itself is built
	// around this manager.
	client *api.Client

	accessToken  string
	refreshToken string
	user         *User
}

// NewManager creates a session manager backed by the given store
func NewManager(store *Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		store:  store,
		logger: logger,
	}
}

// AttachClient wires the API client used for backend logout
func (m *Manager) AttachClient(client *api.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = client
}

// SetSession installs a new token pair. An empty token in either
// position is equivalent to Logout. A pair whose access token fails to
// decode also behaves as Logout and returns the decode error.
func (m *Manager) SetSession(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken == "" || refreshToken == "" {
		m.Logout(ctx)
		return nil
	}

	user, err := DecodeUser(accessToken)
	if err != nil {
		m.Logout(ctx)
		return err
	}

	m.mu.Lock()
	m.accessToken = accessToken
	m.refreshToken = refreshToken
	m.user = user
	m.mu.Unlock()

	if err := m.store.Save(accessToken, refreshToken); err != nil {
		// The in-memory session stays valid for this run.
		m.logger.WithError(err).Warn("failed to persist session")
	}

	return nil
}

// Logout tells the backend to invalidate the session, then clears all
// local state. The backend call is best-effort: a failure is logged and
// the local logout proceeds regardless.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	client := m.client
	loggedIn := m.accessToken != ""
	m.mu.Unlock()

	if client != nil && loggedIn {
		if err := client.Logout(ctx); err != nil {
			m.logger.WithError(err).Warn("backend logout failed")
		}
	}

	m.clearLocal()
}

// Hydrate restores the session from the persisted store. A missing or
// partially expired pair leaves the manager logged out; a pair whose
// access token no longer decodes is discarded and the decode error
// returned.
func (m *Manager) Hydrate() error {
	accessToken, refreshToken, err := m.store.Load()
	if err != nil {
		return err
	}

	if accessToken == "" || refreshToken == "" {
		m.clearLocal()
		return nil
	}

	user, err := DecodeUser(accessToken)
	if err != nil {
		m.clearLocal()
		return err
	}

	m.mu.Lock()
	m.accessToken = accessToken
	m.refreshToken = refreshToken
	m.user = user
	m.mu.Unlock()

	return nil
}

// Tokens implements api.CredentialSource
func (m *Manager) Tokens() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken, m.refreshToken
}

// StoreTokens implements api.CredentialSource. The client calls it
// after a successful refresh; the new identity is re-derived from the
// rotated access token.
func (m *Manager) StoreTokens(accessToken, refreshToken string) error {
	user, err := DecodeUser(accessToken)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.accessToken = accessToken
	m.refreshToken = refreshToken
	m.user = user
	m.mu.Unlock()

	if err := m.store.Save(accessToken, refreshToken); err != nil {
		m.logger.WithError(err).Warn("failed to persist refreshed session")
	}

	return nil
}

// ClearTokens implements api.CredentialSource. Unlike Logout it never
// calls the backend; the client uses it when refresh itself has failed.
func (m *Manager) ClearTokens() {
	m.clearLocal()
}

// User returns the identity derived from the current access token, or
// nil when logged out
func (m *Manager) User() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// AccessToken returns the current access token, or empty when logged out
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken
}

// LoggedIn reports whether a session is present
func (m *Manager) LoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken != "" && m.user != nil
}

func (m *Manager) clearLocal() {
	m.mu.Lock()
	m.accessToken = ""
	m.refreshToken = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.logger.WithError(err).Warn("failed to remove persisted session")
	}
}
