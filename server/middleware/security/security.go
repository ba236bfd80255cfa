// Package security sets browser security headers on every response. The
// pages here are plain server-rendered forms serving same-origin assets, so
// the content security policy locks everything to 'self'.
package security

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	// Next defines a function to skip this middleware when it returns true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// EnableHSTS adds the Strict-Transport-Security header. Leave off when
	// serving plain HTTP in development.
	//
	// Optional. Default: false
	EnableHSTS bool
}

var ConfigDefault = Config{
	Next:       nil,
	EnableHSTS: false,
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}
	return config[0]
}

// New creates the security headers middleware.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)
	csp := buildCSP()

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		c.Set("Content-Security-Policy", csp)
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if cfg.EnableHSTS {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		return c.Next()
	}
}

func buildCSP() string {
	directives := []string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self'",
		// Served profile images come from /uploads on the same origin
		"img-src 'self'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}
	return strings.Join(directives, "; ")
}
