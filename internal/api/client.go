package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crewdeck/crewdeck/internal/errors"
	"github.com/crewdeck/crewdeck/internal/log"
)

// CredentialSource supplies the current token pair to the client and
// receives rotated pairs after a refresh. The client reads it
// imperatively on every request, so updates are visible immediately.
type CredentialSource interface {
	// Tokens returns the current access and refresh tokens.
	// Either may be empty when no session exists.
	Tokens() (accessToken, refreshToken string)

	// StoreTokens replaces the current token pair after a refresh.
	StoreTokens(accessToken, refreshToken string) error

	// ClearTokens drops the current token pair.
	ClearTokens()
}

// Client is the crewdeck backend API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	creds  CredentialSource
	logger *log.Logger

	// refreshMu coalesces concurrent refresh attempts into one
	refreshMu sync.Mutex
}

// NewClient creates a new API client
func NewClient(baseURL string, creds CredentialSource) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		creds:  creds,
		logger: log.DefaultLogger(),
	}
}

// WithLogger sets the logger used for refresh diagnostics
func (c *Client) WithLogger(logger *log.Logger) *Client {
	c.logger = logger
	return c
}

// doRequest performs an HTTP request with bearer authentication.
// A 401 response triggers exactly one token refresh and replay; a second
// 401 on the replay is returned to the caller unchanged.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to marshal request body", err)
		}
	}

	accessToken, _ := c.creds.Tokens()

	resp, err := c.send(ctx, method, path, payload, accessToken)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	newToken, refreshErr := c.refreshTokens(ctx, accessToken)
	if refreshErr != nil {
		c.logger.WithError(refreshErr).Debug("token refresh failed, surfacing original response")
		c.creds.ClearTokens()
		// The original 401 flows back to the caller unchanged.
		return resp, nil
	}

	resp.Body.Close()
	return c.send(ctx, method, path, payload, newToken)
}

// send issues a single HTTP request with no retry logic
func (c *Client) send(ctx context.Context, method, path string, payload []byte, accessToken string) (*http.Response, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to perform request", err)
	}

	return resp, nil
}

// refreshTokens exchanges the refresh token for a new pair and returns the
// new access token. Concurrent callers share a single in-flight refresh: a
// caller that finds the access token already rotated while waiting for the
// lock skips the network call and replays with the fresh token.
func (c *Client) refreshTokens(ctx context.Context, sentAccessToken string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	currentAccess, refreshToken := c.creds.Tokens()
	if currentAccess != "" && currentAccess != sentAccessToken {
		return currentAccess, nil
	}

	if refreshToken == "" {
		return "", errors.NewNoRefreshTokenError()
	}

	c.logger.Debug("refreshing access token")

	// The refresh call bypasses doRequest so it can never recurse into
	// another refresh attempt.
	payload, err := json.Marshal(RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeAPIRequest, "failed to marshal refresh request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/refresh-token", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeAPIRequest, "failed to create refresh request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", errors.NewRefreshFailedError(err)
	}

	var pair TokenPair
	if err := parseResponse(resp, &pair); err != nil {
		return "", errors.NewRefreshFailedError(err)
	}

	if err := c.creds.StoreTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return "", errors.NewRefreshFailedError(err)
	}

	return pair.AccessToken, nil
}

// HTTPError is a non-2xx backend response surfaced to callers unchanged
type HTTPError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsUnauthorized reports whether the response was a 401
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// ErrorResponse represents an API error response body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseResponse parses the response body into the target struct
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		httpErr := &HTTPError{StatusCode: resp.StatusCode}

		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Message != "" {
				httpErr.Message = errResp.Message
			} else if errResp.Error != "" {
				httpErr.Message = errResp.Error
			}
		}
		if httpErr.Message == "" {
			httpErr.Message = string(bytes.TrimSpace(body))
		}

		return httpErr
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.Wrap(errors.ErrCodeAPIResponse, "failed to decode response", err)
		}
	}

	return nil
}
