// Package identity resolves the requester's claimed identity from a signed
// client-held cookie. The server keeps no session state: the cookie value is
// an HS256-signed token whose subject is the username. A request without a
// valid token is anonymous.
package identity

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ChrisMayes22/upload-and-serve-image/apperrors"
)

type claims struct {
	jwt.RegisteredClaims
}

// New creates the resolution middleware. It always continues: a missing or
// invalid token just leaves the request anonymous. Route guards decide
// whether anonymity is acceptable.
func New(config Config) fiber.Handler {
	cfg := configDefault(config)

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		token := c.Cookies(cfg.CookieName)
		if token != "" {
			if username, err := parseToken(token, cfg.Secret); err == nil {
				c.Locals(cfg.ContextKey, username)
			}
		}

		return c.Next()
	}
}

// Required guards routes that need a resolved identity.
func Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if username, ok := c.Locals(ConfigDefault.ContextKey).(string); !ok || username == "" {
			return apperrors.NewIllegalAccessAttempt()
		}
		return c.Next()
	}
}

// Resolved returns the username resolved for this request, or "".
func Resolved(c *fiber.Ctx) string {
	username, _ := c.Locals(ConfigDefault.ContextKey).(string)
	return username
}

// SetCookie attaches a fresh identity token for username to the response.
func SetCookie(c *fiber.Ctx, config Config, username string) error {
	cfg := configDefault(config)

	token, err := issueToken(username, cfg.Secret, cfg.TTL)
	if err != nil {
		return apperrors.NewInternalError("failed to issue identity token").WithInternal(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Expires:  time.Now().Add(cfg.TTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return nil
}

// ClearCookie expires the identity cookie.
func ClearCookie(c *fiber.Ctx, config Config) {
	cfg := configDefault(config)

	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
}

func issueToken(username string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	return token.SignedString(secret)
}

func parseToken(tokenString string, secret []byte) (string, error) {
	parsed := &claims{}

	token, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || parsed.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}

	return parsed.Subject, nil
}
