package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthFailed         ErrorCode = "AUTH-001"
	ErrCodeAuthNotLoggedIn    ErrorCode = "AUTH-002"
	ErrCodeAuthTokenMalformed ErrorCode = "AUTH-003"
	ErrCodeAuthTokenExpired   ErrorCode = "AUTH-004"
	ErrCodeAuthNoRefreshToken ErrorCode = "AUTH-005"
	ErrCodeAuthRefreshFailed  ErrorCode = "AUTH-006"
	ErrCodeAuthRoleUnknown    ErrorCode = "AUTH-007"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionInvalid    ErrorCode = "SESSION-001"
	ErrCodeSessionStoreRead  ErrorCode = "SESSION-002"
	ErrCodeSessionStoreWrite ErrorCode = "SESSION-003"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest      ErrorCode = "API-001"
	ErrCodeAPIResponse     ErrorCode = "API-002"
	ErrCodeAPIUnauthorized ErrorCode = "API-003"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal ErrorCode = "CONFIG-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
)

// CrewdeckError represents an enhanced error with code, suggestions, and documentation
type CrewdeckError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *CrewdeckError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *CrewdeckError) Unwrap() error {
	return e.Cause
}

// New creates a new CrewdeckError
func New(code ErrorCode, message string) *CrewdeckError {
	return &CrewdeckError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new CrewdeckError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *CrewdeckError {
	return &CrewdeckError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *CrewdeckError) WithSuggestion(suggestion string) *CrewdeckError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *CrewdeckError) WithSuggestions(suggestions ...string) *CrewdeckError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *CrewdeckError) WithDocs(url string) *CrewdeckError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates an error for commands that require a session
func NewNotLoggedInError() *CrewdeckError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'crewdeck auth login' to authenticate").
		WithSuggestion("Run 'crewdeck auth register' to create an account")
}

// NewTokenMalformedError creates an error for access tokens that fail to decode
func NewTokenMalformedError(cause error) *CrewdeckError {
	return Wrap(ErrCodeAuthTokenMalformed, "access token could not be decoded", cause).
		WithSuggestion("Run 'crewdeck auth login' to obtain a fresh token")
}

// NewNoRefreshTokenError creates an error for refresh attempts with no refresh token
func NewNoRefreshTokenError() *CrewdeckError {
	return New(ErrCodeAuthNoRefreshToken, "no refresh token available").
		WithSuggestion("Run 'crewdeck auth login' to re-authenticate")
}

// NewRefreshFailedError creates an error for a failed token refresh
func NewRefreshFailedError(cause error) *CrewdeckError {
	return Wrap(ErrCodeAuthRefreshFailed, "token refresh failed", cause).
		WithSuggestion("Your session may have expired; run 'crewdeck auth login'")
}

// NewConfigUnmarshalError creates an error for unparseable config files
func NewConfigUnmarshalError(path string, cause error) *CrewdeckError {
	return Wrap(ErrCodeConfigUnmarshal, fmt.Sprintf("failed to parse config file: %s", path), cause).
		WithSuggestion("Check the file is valid YAML").
		WithSuggestion("Delete the file to fall back to defaults")
}

// NewFileWriteError creates an error for failed file writes
func NewFileWriteError(path string, cause error) *CrewdeckError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write file: %s", path), cause).
		WithSuggestion("Check directory permissions")
}
