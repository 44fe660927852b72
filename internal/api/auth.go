package api

import (
	"context"
	"net/http"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request.
// Token carries an optional invite token so a new account can join a
// team in the same step.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token,omitempty"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AcceptInviteRequest represents an invite redemption request
type AcceptInviteRequest struct {
	Token string `json:"token"`
}

// TokenPair is the access/refresh pair returned by authentication endpoints
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Message      string `json:"message,omitempty"`
}

// User represents a backend user profile
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserResponse wraps a user profile with the backend's message envelope
type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Login exchanges credentials for a token pair
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", req)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := parseResponse(resp, &pair); err != nil {
		return nil, err
	}

	return &pair, nil
}

// Register creates an account and returns a token pair. An invite token
// may be supplied so the account joins the inviting team immediately.
func (c *Client) Register(ctx context.Context, name, email, password, inviteToken string) (*TokenPair, error) {
	req := RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Token:    inviteToken,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := parseResponse(resp, &pair); err != nil {
		return nil, err
	}

	return &pair, nil
}

// Logout invalidates the session server-side
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// Me retrieves the currently authenticated user's profile
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var userResp UserResponse
	if err := parseResponse(resp, &userResp); err != nil {
		return nil, err
	}

	return &userResp.User, nil
}

// AcceptInvite redeems an invite token and returns the session token pair
func (c *Client) AcceptInvite(ctx context.Context, token string) (*TokenPair, error) {
	req := AcceptInviteRequest{Token: token}

	resp, err := c.doRequest(ctx, http.MethodPost, "/teams/invites/accept", req)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := parseResponse(resp, &pair); err != nil {
		return nil, err
	}

	return &pair, nil
}
