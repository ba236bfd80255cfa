package db

// User is one record in the user store. Password is empty for accounts
// created through the OAuth provider; FileName is empty until the first
// successful image upload.
type User struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

// FindByUsername returns the record for username, or nil.
func FindByUsername(users []*User, username string) *User {
	for _, user := range users {
		if user.Username == username {
			return user
		}
	}
	return nil
}
