package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ChrisMayes22/upload-and-serve-image/apperrors"
	"github.com/ChrisMayes22/upload-and-serve-image/db"
	"github.com/ChrisMayes22/upload-and-serve-image/pkg/metrics"
	"github.com/ChrisMayes22/upload-and-serve-image/server/middleware/identity"
	"github.com/ChrisMayes22/upload-and-serve-image/services/oauth"
	"github.com/ChrisMayes22/upload-and-serve-image/utils"
)

const stateCookie = "oauth_state"

// HandleOAuthRedirect starts the provider handshake: a fresh state nonce in
// a short-lived cookie, then off to the provider's authorize URL.
func HandleOAuthRedirect(provider *oauth.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := uuid.NewString()

		c.Cookie(&fiber.Cookie{
			Name:     stateCookie,
			Value:    state,
			Expires:  time.Now().Add(10 * time.Minute),
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})

		return c.Redirect(provider.AuthURL(state), fiber.StatusFound)
	}
}

// HandleOAuthCallback finishes the handshake: verify the state nonce,
// exchange the code, resolve the provider profile's username, make sure a
// record exists and attach the identity cookie. Any provider-side failure is
// a FailedLogin.
func HandleOAuthCallback(provider *oauth.Provider, store *db.Store, idCfg identity.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := c.Query("state")
		code := c.Query("code")

		expected := c.Cookies(stateCookie)
		c.Cookie(&fiber.Cookie{
			Name:     stateCookie,
			Value:    "",
			Expires:  time.Now().Add(-1 * time.Hour),
			HTTPOnly: true,
			Path:     "/",
		})

		if code == "" || state == "" || state != expected {
			metrics.RecordLogin("oauth", "failure")
			return apperrors.NewFailedLogin()
		}

		username, err := provider.FetchUsername(c.Context(), code)
		if err != nil {
			metrics.RecordLogin("oauth", "failure")
			return apperrors.NewFailedLogin().WithInternal(err)
		}

		// Provider logins become identities and filenames, so they must
		// satisfy the same rule as registered usernames.
		if err := utils.ValidateUsername(username); err != nil {
			metrics.RecordLogin("oauth", "failure")
			return apperrors.NewFailedLogin().WithInternal(err)
		}

		if err := store.EnsureUser(username); err != nil {
			return err
		}

		if err := identity.SetCookie(c, idCfg, username); err != nil {
			return err
		}

		metrics.RecordLogin("oauth", "success")
		return c.Redirect("/welcome", fiber.StatusFound)
	}
}
