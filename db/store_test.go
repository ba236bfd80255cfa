package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ChrisMayes22/upload-and-serve-image/apperrors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "db.json"))
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoadAll_MissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)

	users, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSaveAll_Roundtrip(t *testing.T) {
	store := newTestStore(t)

	in := []*User{
		{Username: "alice", Password: hash(t, "p1"), FileName: "alice.png"},
		{Username: "bob"},
	}
	require.NoError(t, store.SaveAll(in))

	out, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "alice", out[0].Username)
	assert.Equal(t, "alice.png", out[0].FileName)
	assert.Equal(t, "bob", out[1].Username)
	assert.Empty(t, out[1].Password)
}

func TestLoadAll_CorruptFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0600))

	_, err := store.LoadAll()
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeStoreCorrupt, appErr.Code)
}

func TestFindByUsername(t *testing.T) {
	users := []*User{{Username: "alice"}, {Username: "bob"}}

	assert.Equal(t, users[1], FindByUsername(users, "bob"))
	assert.Nil(t, FindByUsername(users, "carol"))
	assert.Nil(t, FindByUsername(nil, "alice"))
}

func TestUpsertImageName(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveAll([]*User{{Username: "alice"}}))

	require.NoError(t, store.UpsertImageName("alice", "alice.jpg"))

	users, err := store.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, "alice.jpg", FindByUsername(users, "alice").FileName)
}

func TestUpsertImageName_AbsentUserIsNoop(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveAll([]*User{{Username: "alice"}}))

	require.NoError(t, store.UpsertImageName("bob", "bob.png"))

	users, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Nil(t, FindByUsername(users, "bob"))
}

func TestEnsureUser(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.EnsureUser("octocat"))
	require.NoError(t, store.EnsureUser("octocat"))

	users, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "octocat", users[0].Username)
	assert.Empty(t, users[0].Password)
	assert.Empty(t, users[0].FileName)
}

func TestAddUser(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddUser("alice", "p1"))
	assert.Error(t, store.AddUser("alice", "p2"), "duplicate username must be rejected")

	users, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotEqual(t, "p1", users[0].Password, "password must be stored hashed")
}

func TestValidateCredentials(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveAll([]*User{
		{Username: "alice", Password: hash(t, "p1")},
		{Username: "octocat"}, // OAuth-only, no password
	}))

	assert.True(t, store.ValidateCredentials("alice", "p1"))
	assert.False(t, store.ValidateCredentials("alice", "wrong"))
	assert.False(t, store.ValidateCredentials("nobody", "p1"))
	assert.False(t, store.ValidateCredentials("octocat", ""), "OAuth-only account must never validate")
}
