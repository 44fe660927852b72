package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Email != "a@b.com" || req.Password != "pw" {
			t.Errorf("unexpected credentials: %+v", req)
		}
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "A", RefreshToken: "R"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeCreds{})

	pair, err := client.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if pair.AccessToken != "A" || pair.RefreshToken != "R" {
		t.Errorf("pair = %q/%q, want A/R", pair.AccessToken, pair.RefreshToken)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeCreds{})

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	httpErr, ok := err.(*HTTPError)
	if !ok {
		t.Fatalf("expected *HTTPError, got %T", err)
	}
	if httpErr.Message != "invalid credentials" {
		t.Errorf("message = %q, want invalid credentials", httpErr.Message)
	}
}

func TestRegisterWithInviteToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if raw["token"] != "inv123" {
			t.Errorf("invite token = %v, want inv123", raw["token"])
		}
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "A", RefreshToken: "R"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeCreds{})

	if _, err := client.Register(context.Background(), "Ada", "ada@example.com", "pw", "inv123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

func TestRegisterWithoutInviteTokenOmitsField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if _, ok := raw["token"]; ok {
			t.Error("token field must be omitted when no invite token is given")
		}
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "A", RefreshToken: "R"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeCreds{})

	if _, err := client.Register(context.Background(), "Ada", "ada@example.com", "pw", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

func TestMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/auth/me" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(UserResponse{
			User: User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "ADMIN"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeCreds{access: "A", refresh: "R"})

	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if user.Role != "ADMIN" {
		t.Errorf("role = %q, want ADMIN", user.Role)
	}
}

func TestAcceptInvite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/teams/invites/accept" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req AcceptInviteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Token != "inv123" {
			t.Errorf("token = %q, want inv123", req.Token)
		}
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "A", RefreshToken: "R"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeCreds{})

	pair, err := client.AcceptInvite(context.Background(), "inv123")
	if err != nil {
		t.Fatalf("AcceptInvite() error = %v", err)
	}
	if pair.AccessToken != "A" {
		t.Errorf("access token = %q, want A", pair.AccessToken)
	}
}

func TestLogoutPropagatesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "backend down"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeCreds{access: "A", refresh: "R"})

	err := client.Logout(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}
