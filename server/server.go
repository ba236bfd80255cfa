package server

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ChrisMayes22/upload-and-serve-image/apperrors"
	"github.com/ChrisMayes22/upload-and-serve-image/config"
	"github.com/ChrisMayes22/upload-and-serve-image/db"
	"github.com/ChrisMayes22/upload-and-serve-image/pkg/logger"
	"github.com/ChrisMayes22/upload-and-serve-image/pkg/metrics"
	"github.com/ChrisMayes22/upload-and-serve-image/server/middleware/identity"
	"github.com/ChrisMayes22/upload-and-serve-image/server/middleware/limiter"
	"github.com/ChrisMayes22/upload-and-serve-image/server/middleware/security"
	"github.com/ChrisMayes22/upload-and-serve-image/server/routes"
	"github.com/ChrisMayes22/upload-and-serve-image/services/images"
	"github.com/ChrisMayes22/upload-and-serve-image/services/oauth"
)

type Server struct {
	App   *fiber.App
	cfg   *config.Config
	store *db.Store
	pipe  *images.Pipeline
	log   *logger.Logger
}

func NewServer(cfg *config.Config, store *db.Store, pipe *images.Pipeline, provider *oauth.Provider) (*Server, error) {
	engine := html.New(cfg.Server.ViewsDir, ".html")

	log := logger.New(cfg.Server.LogFile)
	logger.SetDefault(log)

	errorConfig := apperrors.HandlerConfig{
		Logger:     log,
		ContextKey: identity.ConfigDefault.ContextKey,
		OnError: func(c *fiber.Ctx, err *apperrors.AppError) {
			metrics.RecordError(string(err.Code), strconv.Itoa(err.StatusCode))
		},
	}

	app := fiber.New(fiber.Config{
		AppName:      "upload-and-serve-image",
		Views:        engine,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: apperrors.Handler(errorConfig),
	})

	app.Use(metrics.HTTPMetricsMiddleware())
	app.Use(security.New())

	setupAccessLog(app, log)

	app.Use(limiter.New(limiter.Config{
		Capacity:     cfg.RateLimit.Capacity,
		RefillRate:   cfg.RateLimit.RefillRate,
		RefillPeriod: cfg.RateLimit.RefillPeriod,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}))

	app.Static("/static", cfg.Server.StaticDir, fiber.Static{
		Compress: true,
		MaxAge:   86400,
	})
	app.Static("/uploads", cfg.Server.UploadsDir)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.Register(app, routes.Deps{
		Store:    store,
		Pipeline: pipe,
		Provider: provider,
		Identity: identity.Config{
			CookieName: cfg.Identity.CookieName,
			Secret:     []byte(cfg.Identity.Secret),
			TTL:        cfg.Identity.TTL,
		},
	})

	return &Server{
		App:   app,
		cfg:   cfg,
		store: store,
		pipe:  pipe,
		log:   log,
	}, nil
}

func (s *Server) Start() error {
	addr := s.cfg.ServerAddress()
	s.log.Info("starting server on %s", addr)
	return s.App.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	if err := s.App.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
