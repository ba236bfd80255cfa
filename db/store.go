package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/ChrisMayes22/upload-and-serve-image/apperrors"
)

// Store persists the user list as a single JSON array on disk. Every read
// loads the whole file and every mutation rewrites it entirely.
//
// There is no isolation between concurrent load/save cycles: two requests
// mutating the store at once race and the later save wins. The whole-file
// contract is kept deliberately; callers must not rely on cross-request
// ordering.
type Store struct {
	path string
}

// Open binds a store to its file path. The file does not need to exist yet;
// a missing file reads as an empty user list.
func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// LoadAll deserializes the full record set. Malformed content is fatal.
func (s *Store) LoadAll() ([]*User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*User{}, nil
		}
		return nil, apperrors.NewStoreCorrupt(err)
	}

	var users []*User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, apperrors.NewStoreCorrupt(err)
	}

	return users, nil
}

// SaveAll serializes and persists the full record set, replacing prior
// contents entirely.
func (s *Store) SaveAll(users []*User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return apperrors.NewStorageWriteFailure("marshal user records", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return apperrors.NewStorageWriteFailure("write user records", err)
	}

	return nil
}

// UpsertImageName sets the stored-image filename on the user's record.
// A missing username is a no-op, matching the upload pipeline's contract:
// the file is already on disk and the record catches up on the next upload.
func (s *Store) UpsertImageName(username, filename string) error {
	users, err := s.LoadAll()
	if err != nil {
		return err
	}

	user := FindByUsername(users, username)
	if user == nil {
		return nil
	}
	user.FileName = filename

	return s.SaveAll(users)
}

// EnsureUser creates a record with no password and no image unless one
// already exists. Used on first OAuth login.
func (s *Store) EnsureUser(username string) error {
	users, err := s.LoadAll()
	if err != nil {
		return err
	}

	if FindByUsername(users, username) != nil {
		return nil
	}

	users = append(users, &User{Username: username})
	return s.SaveAll(users)
}

// AddUser appends a record with a bcrypt-hashed password. Fails when the
// username is already taken.
func (s *Store) AddUser(username, password string) error {
	users, err := s.LoadAll()
	if err != nil {
		return err
	}

	if FindByUsername(users, username) != nil {
		return fmt.Errorf("username %q already exists", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password").WithInternal(err)
	}

	users = append(users, &User{Username: username, Password: string(hash)})
	return s.SaveAll(users)
}

// ValidateCredentials reports whether username exists and the password
// matches its bcrypt hash. Accounts without a password (OAuth-only) never
// validate.
func (s *Store) ValidateCredentials(username, password string) bool {
	users, err := s.LoadAll()
	if err != nil {
		return false
	}

	user := FindByUsername(users, username)
	if user == nil || user.Password == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
