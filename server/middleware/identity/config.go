package identity

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	// Next defines a function to skip middleware.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// CookieName is the name of the cookie carrying the identity token.
	//
	// Optional. Default: "identity"
	CookieName string

	// Secret signs and verifies the identity token.
	//
	// Required.
	Secret []byte

	// TTL is the token (and cookie) lifetime.
	//
	// Optional. Default: 24h
	TTL time.Duration

	// ContextKey is the Locals key holding the resolved username.
	//
	// Optional. Default: "username"
	ContextKey string
}

var ConfigDefault = Config{
	Next:       nil,
	CookieName: "identity",
	TTL:        24 * time.Hour,
	ContextKey: "username",
}

func configDefault(config Config) Config {
	cfg := config

	if cfg.CookieName == "" {
		cfg.CookieName = ConfigDefault.CookieName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = ConfigDefault.TTL
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = ConfigDefault.ContextKey
	}

	return cfg
}
