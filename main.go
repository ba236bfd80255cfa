package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ChrisMayes22/upload-and-serve-image/config"
	"github.com/ChrisMayes22/upload-and-serve-image/db"
	"github.com/ChrisMayes22/upload-and-serve-image/server"
	"github.com/ChrisMayes22/upload-and-serve-image/services/images"
	"github.com/ChrisMayes22/upload-and-serve-image/services/oauth"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.PrintSummary()

	if err := os.MkdirAll(filepath.Dir(cfg.Store.File), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	store := db.Open(cfg.Store.File)
	if _, err := store.LoadAll(); err != nil {
		return fmt.Errorf("failed to open user record store: %w", err)
	}

	pipe, err := images.New(cfg.Server.UploadsDir, store)
	if err != nil {
		return fmt.Errorf("failed to initialize upload pipeline: %w", err)
	}

	provider := oauth.New(oauth.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
	})

	srv, err := server.NewServer(cfg, store, pipe, provider)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Printf("Received signal: %v. Shutting down gracefully...", sig)
	}

	// The drain budget starts counting from the signal, not process start.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}
