package apperrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMessage(t *testing.T) {
	allowed := []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}

	tests := []struct {
		status string
		want   string
	}{
		{"FailedLogin", "Password-username pair did not exist."},
		{"IllegalAccessAttempt", "Please login before visiting that page."},
		{"IllegalFileType", "Only .png, .jpg, .jpeg, .tif, .tiff, .bmp files are supported."},
		{"", ""},
		{"SomethingElse", ""},
		{"failedLogin", ""}, // status values are case-sensitive
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusMessage(tt.status, allowed), "status %q", tt.status)
	}
}
