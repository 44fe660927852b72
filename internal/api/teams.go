package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Invite roles assignable when inviting a member. ADMIN is never
// granted by invitation.
const (
	InviteRoleLead   = "LEAD"
	InviteRoleMember = "MEMBER"
)

// Team represents a team owned by the backend
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamsResponse represents a list of teams with the backend's message envelope
type TeamsResponse struct {
	Message string `json:"message"`
	Teams   []Team `json:"teams"`
}

// TeamResponse represents a single team with the backend's message envelope
type TeamResponse struct {
	Message string `json:"message"`
	Team    Team   `json:"team"`
}

// MembersResponse represents a team member listing
type MembersResponse struct {
	Message string `json:"message"`
	Members []User `json:"members"`
}

// TeamRequest carries a team's mutable fields
type TeamRequest struct {
	Name string `json:"name"`
}

// InviteRequest represents a member invitation
type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ListTeams retrieves all teams visible to the authenticated user
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/teams", nil)
	if err != nil {
		return nil, err
	}

	var teamsResp TeamsResponse
	if err := parseResponse(resp, &teamsResp); err != nil {
		return nil, err
	}

	return teamsResp.Teams, nil
}

// GetTeam retrieves a team by ID
func (c *Client) GetTeam(ctx context.Context, teamID string) (*Team, error) {
	path := fmt.Sprintf("/teams/%s", teamID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var teamResp TeamResponse
	if err := parseResponse(resp, &teamResp); err != nil {
		return nil, err
	}

	return &teamResp.Team, nil
}

// CreateTeam creates a new team
func (c *Client) CreateTeam(ctx context.Context, name string) (*Team, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/teams", TeamRequest{Name: name})
	if err != nil {
		return nil, err
	}

	var teamResp TeamResponse
	if err := parseResponse(resp, &teamResp); err != nil {
		return nil, err
	}

	return &teamResp.Team, nil
}

// UpdateTeam renames an existing team
func (c *Client) UpdateTeam(ctx context.Context, teamID, name string) (*Team, error) {
	path := fmt.Sprintf("/teams/%s", teamID)
	resp, err := c.doRequest(ctx, http.MethodPatch, path, TeamRequest{Name: name})
	if err != nil {
		return nil, err
	}

	var teamResp TeamResponse
	if err := parseResponse(resp, &teamResp); err != nil {
		return nil, err
	}

	return &teamResp.Team, nil
}

// DeleteTeam deletes a team
func (c *Client) DeleteTeam(ctx context.Context, teamID string) error {
	path := fmt.Sprintf("/teams/%s", teamID)
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// ListMembers retrieves the members of a team
func (c *Client) ListMembers(ctx context.Context, teamID string) ([]User, error) {
	path := fmt.Sprintf("/teams/%s/members", teamID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var membersResp MembersResponse
	if err := parseResponse(resp, &membersResp); err != nil {
		return nil, err
	}

	return membersResp.Members, nil
}

// TeamsByMember retrieves the teams a given user belongs to
func (c *Client) TeamsByMember(ctx context.Context, userID string) ([]Team, error) {
	path := fmt.Sprintf("/teams/member/%s", userID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var teamsResp TeamsResponse
	if err := parseResponse(resp, &teamsResp); err != nil {
		return nil, err
	}

	return teamsResp.Teams, nil
}

// InviteMember sends a team invitation to an email address
func (c *Client) InviteMember(ctx context.Context, teamID, email, role string) error {
	path := fmt.Sprintf("/teams/%s/invites", teamID)
	resp, err := c.doRequest(ctx, http.MethodPost, path, InviteRequest{Email: email, Role: role})
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}
