package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{
			name:     "valid username",
			username: "valid_user-123",
			wantErr:  false,
		},
		{
			name:     "too short",
			username: "ab",
			wantErr:  true,
		},
		{
			name:     "too long",
			username: "this_username_is_definitely_way_too_long_to_be_valid",
			wantErr:  true,
		},
		{
			name:     "invalid characters",
			username: "user@name",
			wantErr:  true,
		},
		{
			name:     "space not allowed",
			username: "user name",
			wantErr:  true,
		},
		{
			name:     "path traversal",
			username: "../../etc/passwd",
			wantErr:  true,
		},
		{
			name:     "html tags",
			username: "<script>alert(1)</script>",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long-enough-password"))
}
