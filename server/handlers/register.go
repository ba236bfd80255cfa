package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChrisMayes22/upload-and-serve-image/db"
	"github.com/ChrisMayes22/upload-and-serve-image/utils"
)

// HandleRegisterPage renders the registration form.
func HandleRegisterPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("register", fiber.Map{})
	}
}

// HandleProcessRegister creates a password account. Duplicate usernames and
// empty fields re-render the form with a message rather than raising a
// signal: registration failures are local to the form.
func HandleProcessRegister(store *db.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.FormValue("username")
		password := c.FormValue("password")

		if username == "" || password == "" {
			return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
				"Message": "Username and password are required.",
			})
		}
		if err := utils.ValidateUsername(username); err != nil {
			return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
				"Message": err.Error(),
			})
		}
		if err := utils.ValidatePassword(password); err != nil {
			return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
				"Message": err.Error(),
			})
		}

		if err := store.AddUser(username, password); err != nil {
			users, loadErr := store.LoadAll()
			if loadErr == nil && db.FindByUsername(users, username) != nil {
				return c.Status(fiber.StatusConflict).Render("register", fiber.Map{
					"Message": "That username is already taken.",
				})
			}
			return err
		}

		return c.Redirect("/login", fiber.StatusFound)
	}
}
