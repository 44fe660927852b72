package exitcode

import (
	"fmt"
	"testing"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"unauthorized", fmt.Errorf("request failed: unauthorized"), AuthError},
		{"not logged in", fmt.Errorf("not logged in"), AuthError},
		{"token expired", fmt.Errorf("token has expired"), AuthError},
		{"not found", fmt.Errorf("team not found"), NotFoundError},
		{"connection refused", fmt.Errorf("connection refused"), NetworkError},
		{"timeout", fmt.Errorf("request timeout"), NetworkError},
		{"required flag", fmt.Errorf("required flag \"email\" not set"), UsageError},
		{"generic", fmt.Errorf("something went wrong"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{AuthError, "Authentication error"},
		{NotFoundError, "Resource not found"},
		{99, "Unknown error"},
	}

	for _, tt := range tests {
		if got := GetExitCodeDescription(tt.code); got != tt.want {
			t.Errorf("GetExitCodeDescription(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
