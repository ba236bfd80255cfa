package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChrisMayes22/upload-and-serve-image/apperrors"
	"github.com/ChrisMayes22/upload-and-serve-image/db"
	"github.com/ChrisMayes22/upload-and-serve-image/pkg/metrics"
	"github.com/ChrisMayes22/upload-and-serve-image/server/middleware/identity"
	"github.com/ChrisMayes22/upload-and-serve-image/services/images"
)

// HandleRoot sends the visitor to the page matching their identity state.
func HandleRoot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity.Resolved(c) != "" {
			return c.Redirect("/welcome", fiber.StatusFound)
		}
		return c.Redirect("/login", fiber.StatusFound)
	}
}

// HandleLoginPage renders the login form, resolving any `status` query
// parameter into a display message.
func HandleLoginPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("login", fiber.Map{
			"Message": apperrors.StatusMessage(c.Query("status"), images.AllowedExtensions),
		})
	}
}

// HandleProcessLogin validates the posted credentials against the record
// store; a match attaches the identity cookie, anything else raises
// FailedLogin.
func HandleProcessLogin(store *db.Store, idCfg identity.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.FormValue("username")
		password := c.FormValue("password")

		if !store.ValidateCredentials(username, password) {
			metrics.RecordLogin("password", "failure")
			return apperrors.NewFailedLogin()
		}

		if err := identity.SetCookie(c, idCfg, username); err != nil {
			return err
		}

		metrics.RecordLogin("password", "success")
		return c.Redirect("/welcome", fiber.StatusFound)
	}
}

// HandleLogout clears the identity cookie.
func HandleLogout(idCfg identity.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity.ClearCookie(c, idCfg)
		return c.Redirect("/login", fiber.StatusFound)
	}
}
