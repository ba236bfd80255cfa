package apperrors

import (
	"fmt"
	"strings"
)

// statusMessages maps a recognized `status` query parameter to the text shown
// on the rendered page. Unrecognized or absent values yield an empty message.
var statusMessages = map[string]string{
	string(CodeFailedLogin):          "Password-username pair did not exist.",
	string(CodeIllegalAccessAttempt): "Please login before visiting that page.",
}

// StatusMessage resolves the display message for a `status` query parameter.
// Pure: no side effects, safe to call on every render.
func StatusMessage(status string, allowedExtensions []string) string {
	if status == string(CodeIllegalFileType) {
		return fmt.Sprintf("Only %s files are supported.", strings.Join(allowedExtensions, ", "))
	}
	return statusMessages[status]
}
