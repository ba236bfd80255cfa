package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChrisMayes22/upload-and-serve-image/db"
	"github.com/ChrisMayes22/upload-and-serve-image/server/handlers"
	"github.com/ChrisMayes22/upload-and-serve-image/server/middleware/identity"
	"github.com/ChrisMayes22/upload-and-serve-image/services/images"
	"github.com/ChrisMayes22/upload-and-serve-image/services/oauth"
)

// Deps carries everything the route handlers need.
type Deps struct {
	Store    *db.Store
	Pipeline *images.Pipeline
	Provider *oauth.Provider
	Identity identity.Config
}

// Register wires the middleware chain and all routes. Identity resolution
// runs first on every request; the authed group additionally requires a
// resolved identity.
func Register(app *fiber.App, deps Deps) {
	app.Use(identity.New(deps.Identity))

	app.Get("/", handlers.HandleRoot())
	app.Get("/login", handlers.HandleLoginPage())
	app.Get("/register", handlers.HandleRegisterPage())
	app.Post("/process_register", handlers.HandleProcessRegister(deps.Store))
	app.Post("/process_login", handlers.HandleProcessLogin(deps.Store, deps.Identity))
	app.Get("/logout", handlers.HandleLogout(deps.Identity))

	if deps.Provider != nil && deps.Provider.Enabled() {
		app.Get("/auth", handlers.HandleOAuthRedirect(deps.Provider))
		app.Get("/auth/callback", handlers.HandleOAuthCallback(deps.Provider, deps.Store, deps.Identity))
	}

	authed := app.Group("")
	authed.Use(identity.Required())

	authed.Get("/welcome", handlers.HandleWelcome(deps.Store))
	authed.Post("/process_upload-image", handlers.HandleUploadImage(deps.Pipeline))
}
