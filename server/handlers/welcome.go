package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChrisMayes22/upload-and-serve-image/apperrors"
	"github.com/ChrisMayes22/upload-and-serve-image/db"
	"github.com/ChrisMayes22/upload-and-serve-image/server/middleware/identity"
	"github.com/ChrisMayes22/upload-and-serve-image/services/images"
)

const defaultImage = "/uploads/default.png"

// HandleWelcome renders the welcome page: the username and its stored image,
// falling back to the placeholder when no image has been uploaded yet.
func HandleWelcome(store *db.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := identity.Resolved(c)

		users, err := store.LoadAll()
		if err != nil {
			return err
		}

		image := defaultImage
		if user := db.FindByUsername(users, username); user != nil && user.FileName != "" {
			image = "/uploads/" + user.FileName
		}

		return c.Render("welcome", fiber.Map{
			"Username": username,
			"Image":    image,
			"Message":  apperrors.StatusMessage(c.Query("status"), images.AllowedExtensions),
		})
	}
}
