package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newFakeProvider(t *testing.T, userHandler http.HandlerFunc) *Provider {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"fake-token","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", userHandler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return New(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/auth/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  srv.URL + "/authorize",
			TokenURL: srv.URL + "/token",
		},
		UserURL: srv.URL + "/user",
	})
}

func TestEnabled(t *testing.T) {
	assert.False(t, New(Config{}).Enabled())
	assert.True(t, New(Config{ClientID: "id"}).Enabled())
}

func TestAuthURL_CarriesState(t *testing.T) {
	p := New(Config{ClientID: "id"})
	assert.Contains(t, p.AuthURL("nonce-123"), "state=nonce-123")
}

func TestFetchUsername(t *testing.T) {
	p := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Authorization"), "fake-token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"login":"octocat","id":583231}`))
	})

	username, err := p.FetchUsername(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "octocat", username)
}

func TestFetchUsername_ProviderError(t *testing.T) {
	p := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	_, err := p.FetchUsername(context.Background(), "auth-code")
	assert.Error(t, err)
}

func TestFetchUsername_EmptyLogin(t *testing.T) {
	p := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	_, err := p.FetchUsername(context.Background(), "auth-code")
	assert.Error(t, err)
}
