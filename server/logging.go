package server

import (
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/gofiber/fiber/v2"

	"github.com/ChrisMayes22/upload-and-serve-image/pkg/logger"
)

// setupAccessLog routes the HTTP access log through the application's
// rotating log writer.
func setupAccessLog(app *fiber.App, log *logger.Logger) {
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		Output:     log.Writer,
	}))
}
