package apperrors

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: Handler(HandlerConfig{}),
	})

	app.Get("/fail-login", func(c *fiber.Ctx) error {
		return NewFailedLogin()
	})
	app.Get("/fail-authed", func(c *fiber.Ctx) error {
		c.Locals("username", "alice")
		return NewIllegalFileType([]string{".png"})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	return app
}

func TestHandler_RecoverableAnonymousRedirectsToLogin(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/fail-login", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?status=FailedLogin", resp.Header.Get("Location"))
}

func TestHandler_RecoverableAuthedRedirectsToWelcome(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/fail-authed", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/welcome?status=IllegalFileType", resp.Header.Get("Location"))
}

func TestHandler_UnrecognizedErrorIsFatal(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
}

func TestHandler_UnmatchedRouteIs404(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/no-such-page", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "404 -- page not found", string(body))
}

func TestHandler_HonorsCustomContextKey(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: Handler(HandlerConfig{ContextKey: "account"}),
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		c.Locals("account", "alice")
		return NewIllegalFileType([]string{".png"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/welcome?status=IllegalFileType", resp.Header.Get("Location"))
}

func TestHandler_OnErrorCallback(t *testing.T) {
	var seen *AppError
	app := fiber.New(fiber.Config{
		ErrorHandler: Handler(HandlerConfig{
			OnError: func(c *fiber.Ctx, err *AppError) { seen = err },
		}),
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return NewFailedLogin()
	})

	_, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)

	require.NotNil(t, seen)
	assert.Equal(t, CodeFailedLogin, seen.Code)
}
