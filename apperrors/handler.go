package apperrors

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChrisMayes22/upload-and-serve-image/pkg/logger"
)

// HandlerConfig configures the terminal error handler.
type HandlerConfig struct {
	// Logger for error logging
	Logger *logger.Logger

	// OnError is called for each error (useful for metrics/monitoring)
	OnError func(c *fiber.Ctx, err *AppError)

	// ContextKey is the Locals key holding the resolved username.
	//
	// Optional. Default: "username"
	ContextKey string
}

// Handler creates the Fiber error handler: the terminal middleware stage that
// decides the user-visible outcome of every raised error. Recoverable signals
// become a redirect carrying the code as a `status` query parameter; the
// redirect returns to /welcome when an identity is resolved, else to /login.
// Everything else is fatal and surfaced as a generic failure response.
func Handler(config HandlerConfig) fiber.ErrorHandler {
	contextKey := config.ContextKey
	if contextKey == "" {
		contextKey = "username"
	}

	return func(c *fiber.Ctx, err error) error {
		appErr := FromError(err)

		if config.Logger != nil {
			logError(config.Logger, c, contextKey, appErr)
		}

		if config.OnError != nil {
			config.OnError(c, appErr)
		}

		if appErr.Recoverable() {
			target := "/login?status=" + string(appErr.Code)
			if username, ok := c.Locals(contextKey).(string); ok && username != "" {
				target = "/welcome?status=" + string(appErr.Code)
			}
			return c.Redirect(target, fiber.StatusFound)
		}

		if appErr.StatusCode == fiber.StatusNotFound {
			return c.Status(fiber.StatusNotFound).SendString("404 -- page not found")
		}

		// No recovery policy exists for fatal errors; never leak internals.
		status := appErr.StatusCode
		if status < fiber.StatusBadRequest {
			status = fiber.StatusInternalServerError
		}
		renderErr := c.Status(status).Render("error", fiber.Map{
			"Status": status,
		})
		if renderErr != nil {
			return c.Status(status).SendString("something went wrong")
		}
		return nil
	}
}

func logError(log *logger.Logger, c *fiber.Ctx, contextKey string, err *AppError) {
	entry := log.WithField("method", c.Method()).
		WithField("path", c.Path()).
		WithField("status", err.StatusCode)

	if username, ok := c.Locals(contextKey).(string); ok && username != "" {
		entry = entry.WithField("user", username)
	}

	// Recoverable errors are expected traffic, keep them at warn level.
	if err.Recoverable() {
		entry.Warn("%s", err.Error())
		return
	}

	entry.WithField("ip", c.IP()).Error("%s", err.Error())
}
