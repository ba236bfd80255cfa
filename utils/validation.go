package utils

import (
	"errors"
	"regexp"
)

// Usernames become part of the stored image filename, so the charset is
// restricted to names that are safe as a path segment.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateUsername checks a registration username. The returned error text
// is shown to the visitor on the registration form.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return errors.New("Username must be at least 3 characters long.")
	}
	// 39 is the provider-side login limit; registered names share it so
	// both identity sources obey one rule.
	if len(username) > 39 {
		return errors.New("Username cannot exceed 39 characters.")
	}
	if !usernameRegex.MatchString(username) {
		return errors.New("Username can only contain letters, numbers, underscores, and hyphens.")
	}
	return nil
}

// ValidatePassword checks a registration password.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters long.")
	}
	return nil
}
