package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdeck/crewdeck/internal/api"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(tempStore(t), nil)
}

func TestSetSession(t *testing.T) {
	m := newManager(t)
	token := userToken(t, "u1", "Ada", "ada@example.com", "ADMIN")

	require.NoError(t, m.SetSession(context.Background(), token, "R"))

	assert.True(t, m.LoggedIn())
	assert.Equal(t, "Ada", m.User().Name)
	assert.Equal(t, RoleAdmin, m.User().Role)

	// The new pair must be visible to the next outbound request
	// immediately: no stale read.
	access, refresh := m.Tokens()
	assert.Equal(t, token, access)
	assert.Equal(t, "R", refresh)
}

func TestSetSessionEmptyArgumentsBehavesAsLogout(t *testing.T) {
	m := newManager(t)
	token := userToken(t, "u1", "Ada", "ada@example.com", "MEMBER")
	require.NoError(t, m.SetSession(context.Background(), token, "R"))

	tests := []struct {
		name            string
		access, refresh string
	}{
		{"no access token", "", "R"},
		{"no refresh token", token, ""},
		{"neither", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, m.SetSession(context.Background(), token, "R"))
			require.NoError(t, m.SetSession(context.Background(), tt.access, tt.refresh))

			assert.False(t, m.LoggedIn())
			assert.Nil(t, m.User())
			access, refresh := m.Tokens()
			assert.Empty(t, access)
			assert.Empty(t, refresh)
		})
	}
}

func TestSetSessionMalformedTokenBehavesAsLogout(t *testing.T) {
	m := newManager(t)
	token := userToken(t, "u1", "Ada", "ada@example.com", "MEMBER")
	require.NoError(t, m.SetSession(context.Background(), token, "R"))

	err := m.SetSession(context.Background(), "not-a-jwt", "R")
	assert.Error(t, err)
	assert.False(t, m.LoggedIn())

	// The persisted pair is gone too.
	access, refresh, loadErr := m.store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestHydrate(t *testing.T) {
	store := tempStore(t)
	token := userToken(t, "u1", "Ada", "ada@example.com", "LEAD")
	require.NoError(t, store.Save(token, "R"))

	m := NewManager(store, nil)
	require.NoError(t, m.Hydrate())

	assert.True(t, m.LoggedIn())
	assert.Equal(t, "u1", m.User().ID)
}

func TestHydrateMissingCredentials(t *testing.T) {
	m := newManager(t)

	require.NoError(t, m.Hydrate())
	assert.False(t, m.LoggedIn())
}

func TestHydrateMalformedTokenClearsState(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save("not-a-jwt", "R"))

	m := NewManager(store, nil)
	err := m.Hydrate()
	assert.Error(t, err)
	assert.False(t, m.LoggedIn())

	access, refresh, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestLogoutClearsStateEvenWhenBackendFails(t *testing.T) {
	var logoutHits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/logout" {
			logoutHits++
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	m := newManager(t)
	client := api.NewClient(server.URL, m)
	m.AttachClient(client)

	token := userToken(t, "u1", "Ada", "ada@example.com", "MEMBER")
	require.NoError(t, m.SetSession(context.Background(), token, "R"))

	m.Logout(context.Background())

	assert.Equal(t, 1, logoutHits)
	assert.False(t, m.LoggedIn())
	access, refresh := m.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestLogoutWithoutSessionSkipsBackend(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	m := newManager(t)
	client := api.NewClient(server.URL, m)
	m.AttachClient(client)

	m.Logout(context.Background())
	assert.Zero(t, hits)
}

// TestRefreshRotatesSession drives the manager through the client's
// 401-refresh-replay path and checks the rotated pair lands in the
// session, identity included.
func TestRefreshRotatesSession(t *testing.T) {
	oldToken := userToken(t, "u1", "Ada", "ada@example.com", "MEMBER")
	newToken := userToken(t, "u1", "Ada Updated", "ada@example.com", "LEAD")

	var todoHits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/todo/team1":
			todoHits++
			if todoHits == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if got := r.Header.Get("Authorization"); got != "Bearer "+newToken {
				t.Errorf("replay Authorization = %q, want rotated token", got)
			}
			json.NewEncoder(w).Encode(api.TodosResponse{Todos: []api.Todo{{ID: "t1", Title: "ship it", TeamID: "team1"}}})
		case "/auth/refresh-token":
			json.NewEncoder(w).Encode(api.TokenPair{AccessToken: newToken, RefreshToken: "R2"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	m := newManager(t)
	client := api.NewClient(server.URL, m)
	m.AttachClient(client)
	require.NoError(t, m.SetSession(context.Background(), oldToken, "R"))

	todos, err := client.ListTodos(context.Background(), "team1")
	require.NoError(t, err)
	require.Len(t, todos, 1)

	assert.Equal(t, newToken, m.AccessToken())
	assert.Equal(t, RoleLead, m.User().Role)
	assert.Equal(t, "Ada Updated", m.User().Name)

	// The rotated pair is persisted for the next invocation.
	access, refresh, err := m.store.Load()
	require.NoError(t, err)
	assert.Equal(t, newToken, access)
	assert.Equal(t, "R2", refresh)
}
