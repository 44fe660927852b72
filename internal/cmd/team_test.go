package cmd

import (
	"testing"

	"github.com/crewdeck/crewdeck/internal/api"
)

func TestNormalizeInviteRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to member", role: "", want: api.InviteRoleMember},
		{name: "member", role: "MEMBER", want: api.InviteRoleMember},
		{name: "lowercase member", role: "member", want: api.InviteRoleMember},
		{name: "lead", role: "LEAD", want: api.InviteRoleLead},
		{name: "lowercase lead", role: "lead", want: api.InviteRoleLead},
		{name: "admin rejected", role: "ADMIN", wantErr: true},
		{name: "garbage rejected", role: "owner", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeInviteRole(tt.role)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("normalizeInviteRole(%q) expected error, got %q", tt.role, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeInviteRole(%q) unexpected error: %v", tt.role, err)
			}
			if got != tt.want {
				t.Errorf("normalizeInviteRole(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}
