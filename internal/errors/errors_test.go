package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeAuthFailed, "test error message")

	if err.Code != ErrCodeAuthFailed {
		t.Errorf("expected code %s, got %s", ErrCodeAuthFailed, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "failed to read file", cause)

	if err.Code != ErrCodeFileReadFailed {
		t.Errorf("expected code %s, got %s", ErrCodeFileReadFailed, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	// Test unwrapping
	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *CrewdeckError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeSessionInvalid, "invalid session"),
			wantCode: "SESSION-001",
			wantMsg:  "invalid session",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeFileReadFailed, "read failed", fmt.Errorf("permission denied")),
			wantCode: "IO-002",
			wantMsg:  "read failed",
		},
		{
			name:     "error with suggestion",
			err:      New(ErrCodeConfigInvalid, "bad config").WithSuggestion("fix the config"),
			wantCode: "CONFIG-002",
			wantMsg:  "bad config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if !strings.Contains(got, tt.wantCode) {
				t.Errorf("Error() = %q, missing code %q", got, tt.wantCode)
			}
			if !strings.Contains(got, tt.wantMsg) {
				t.Errorf("Error() = %q, missing message %q", got, tt.wantMsg)
			}
		})
	}
}

func TestErrorSuggestions(t *testing.T) {
	err := New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestions("log in", "create an account")

	got := err.Error()
	if !strings.Contains(got, "Suggestions:") {
		t.Errorf("expected suggestions block in %q", got)
	}
	if !strings.Contains(got, "log in") || !strings.Contains(got, "create an account") {
		t.Errorf("expected both suggestions in %q", got)
	}
}

func TestErrorDocsURL(t *testing.T) {
	err := New(ErrCodeAuthFailed, "auth failed").WithDocs("https://example.com/docs")

	if !strings.Contains(err.Error(), "https://example.com/docs") {
		t.Errorf("expected docs URL in %q", err.Error())
	}
}

func TestCommonConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *CrewdeckError
		code ErrorCode
	}{
		{"not logged in", NewNotLoggedInError(), ErrCodeAuthNotLoggedIn},
		{"token malformed", NewTokenMalformedError(fmt.Errorf("bad segment")), ErrCodeAuthTokenMalformed},
		{"no refresh token", NewNoRefreshTokenError(), ErrCodeAuthNoRefreshToken},
		{"refresh failed", NewRefreshFailedError(fmt.Errorf("status 401")), ErrCodeAuthRefreshFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if len(tt.err.Suggestions) == 0 {
				t.Errorf("expected at least one suggestion")
			}
		})
	}
}
