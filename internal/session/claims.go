package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/crewdeck/crewdeck/internal/errors"
)

// Role is the user's role carried in the access token claims.
// Roles gate presentation only (which panels and actions are shown);
// authorization of record is enforced by the backend.
type Role string

// Known roles
const (
	RoleAdmin  Role = "ADMIN"
	RoleLead   Role = "LEAD"
	RoleMember Role = "MEMBER"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLead, RoleMember:
		return true
	}
	return false
}

// User is the identity derived from the access token claims
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// userClaims represents the JWT claims of an access token
type userClaims struct {
	jwt.RegisteredClaims

	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DecodeUser extracts the user identity from an access token.
//
// The token is parsed without signature verification: the client has no
// signing key and never uses the claims for anything the backend does
// not independently enforce. A token that does not parse, or whose role
// is not a known role, yields an error.
func DecodeUser(accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, errors.New(errors.ErrCodeAuthTokenMalformed, "access token is empty")
	}

	token, _, err := jwt.NewParser().ParseUnverified(accessToken, &userClaims{})
	if err != nil {
		return nil, errors.NewTokenMalformedError(err)
	}

	claims, ok := token.Claims.(*userClaims)
	if !ok {
		return nil, errors.New(errors.ErrCodeAuthTokenMalformed, "invalid token claims")
	}

	userID := claims.ID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, errors.New(errors.ErrCodeAuthTokenMalformed, "token carries no user ID")
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return nil, errors.New(errors.ErrCodeAuthRoleUnknown, "token carries unknown role: "+claims.Role)
	}

	return &User{
		ID:    userID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  role,
	}, nil
}
