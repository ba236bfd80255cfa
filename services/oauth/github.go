// Package oauth wraps the third-party identity provider handshake. The
// provider owns authentication; this package only turns an authorization
// code into the provider profile's username.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/ChrisMayes22/upload-and-serve-image/pkg/breaker"
)

const defaultUserURL = "https://api.github.com/user"

// Config configures the GitHub provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint overrides the GitHub OAuth endpoint (tests).
	//
	// Optional.
	Endpoint oauth2.Endpoint

	// UserURL overrides the profile endpoint (tests).
	//
	// Optional.
	UserURL string
}

// Provider performs the code exchange and profile fetch against GitHub.
// Outbound calls run through a circuit breaker: when GitHub misbehaves the
// login path fails fast instead of piling up requests.
type Provider struct {
	cfg     *oauth2.Config
	cb      *gobreaker.CircuitBreaker
	userURL string
}

// New creates a GitHub provider. A provider with an empty client ID is
// disabled; the OAuth routes stay unregistered.
func New(cfg Config) *Provider {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = github.Endpoint
	}
	userURL := cfg.UserURL
	if userURL == "" {
		userURL = defaultUserURL
	}

	return &Provider{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user"},
			Endpoint:     endpoint,
		},
		cb:      breaker.New(breaker.Config{Name: "github-oauth"}),
		userURL: userURL,
	}
}

// Enabled reports whether provider credentials are configured.
func (p *Provider) Enabled() bool {
	return p.cfg.ClientID != ""
}

// AuthURL returns the provider authorize URL carrying the state nonce.
func (p *Provider) AuthURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

// FetchUsername exchanges the authorization code and returns the provider
// profile's username.
func (p *Provider) FetchUsername(ctx context.Context, code string) (string, error) {
	result, err := p.cb.Execute(func() (interface{}, error) {
		token, err := p.cfg.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("code exchange failed: %w", err)
		}

		resp, err := p.cfg.Client(ctx, token).Get(p.userURL)
		if err != nil {
			return nil, fmt.Errorf("profile fetch failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("profile fetch failed: %s", resp.Status)
		}

		var profile struct {
			Login string `json:"login"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
			return nil, fmt.Errorf("profile decode failed: %w", err)
		}
		if profile.Login == "" {
			return nil, fmt.Errorf("provider profile has no username")
		}

		return profile.Login, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}
