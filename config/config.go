package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Identity  IdentityConfig
	OAuth     OAuthConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ViewsDir     string
	StaticDir    string
	UploadsDir   string
	LogFile      string
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StoreConfig struct {
	// File is the JSON record-store artifact holding the user list.
	File string
}

type IdentityConfig struct {
	CookieName string
	Secret     string
	TTL        time.Duration
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type RateLimitConfig struct {
	Capacity     int64
	RefillRate   int64
	RefillPeriod time.Duration
}

// getProjectRoot finds the project root by looking for go.mod
func getProjectRoot() (string, error) {
	if projectRoot := os.Getenv("PROJECT_ROOT"); projectRoot != "" {
		return projectRoot, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (no go.mod found)")
		}
		dir = parent
	}
}

// resolvePath resolves a path relative to the project root if it's not absolute
func resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	projectRoot, err := getProjectRoot()
	if err != nil {
		return "", err
	}

	return filepath.Join(projectRoot, path), nil
}

func Load() (*Config, error) {
	viewsDir, err := resolvePath(getEnv("VIEWS_DIR", "./views"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve views directory: %w", err)
	}

	staticDir, err := resolvePath(getEnv("STATIC_DIR", "./static"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve static directory: %w", err)
	}

	uploadsDir, err := resolvePath(getEnv("UPLOADS_DIR", "./uploads"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve uploads directory: %w", err)
	}

	logFile, err := resolvePath(getEnv("LOG_FILE", "./log/server.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log file: %w", err)
	}

	storeFile, err := resolvePath(getEnv("STORE_FILE", "./db-mock/db.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 3000),
			ViewsDir:     viewsDir,
			StaticDir:    staticDir,
			UploadsDir:   uploadsDir,
			LogFile:      logFile,
			BodyLimit:    getEnvAsInt("BODY_LIMIT", 5*1024*1024),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			File: storeFile,
		},
		Identity: IdentityConfig{
			CookieName: getEnv("IDENTITY_COOKIE_NAME", "identity"),
			Secret:     getEnv("IDENTITY_SECRET", ""),
			TTL:        getEnvAsDuration("IDENTITY_TTL", 24*time.Hour),
		},
		OAuth: OAuthConfig{
			ClientID:     getEnv("OAUTH_CLIENT_ID", ""),
			ClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("OAUTH_REDIRECT_URL", ""),
		},
		RateLimit: RateLimitConfig{
			Capacity:     getEnvAsInt64("RATE_LIMIT_CAPACITY", 200),
			RefillRate:   getEnvAsInt64("RATE_LIMIT_REFILL", 10),
			RefillPeriod: getEnvAsDuration("RATE_LIMIT_PERIOD", time.Second),
		},
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid server port: %d (must be 1-65535)", c.Server.Port))
	}
	if c.Server.ViewsDir == "" {
		errs = append(errs, "views directory (VIEWS_DIR) is required")
	}
	if c.Server.UploadsDir == "" {
		errs = append(errs, "uploads directory (UPLOADS_DIR) is required")
	}
	if c.Server.BodyLimit <= 0 {
		errs = append(errs, fmt.Sprintf("invalid body limit: %d (must be > 0)", c.Server.BodyLimit))
	}

	if c.Store.File == "" {
		errs = append(errs, "store file (STORE_FILE) is required")
	}

	if c.Identity.CookieName == "" {
		errs = append(errs, "identity cookie name (IDENTITY_COOKIE_NAME) is required")
	}
	if c.Identity.Secret == "" {
		errs = append(errs, "identity secret (IDENTITY_SECRET) is required")
	}
	if c.Identity.TTL <= 0 {
		errs = append(errs, "identity TTL must be > 0")
	}

	// OAuth is optional, but partial configuration is a mistake
	if (c.OAuth.ClientID == "") != (c.OAuth.ClientSecret == "") {
		errs = append(errs, "OAuth client ID and secret must be set together")
	}

	if c.RateLimit.Capacity <= 0 {
		errs = append(errs, "rate limit capacity must be > 0")
	}
	if c.RateLimit.RefillRate <= 0 {
		errs = append(errs, "rate limit refill rate must be > 0")
	}
	if c.RateLimit.RefillPeriod <= 0 {
		errs = append(errs, "rate limit refill period must be > 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// PrintSummary logs a summary of the loaded configuration
func (c *Config) PrintSummary() {
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Server: %s\n", c.ServerAddress())
	fmt.Printf("  Store: %s\n", c.Store.File)
	fmt.Printf("  Uploads: %s\n", c.Server.UploadsDir)
	fmt.Printf("  Identity TTL: %s\n", c.Identity.TTL)
	fmt.Printf("  OAuth: %v\n", c.OAuth.ClientID != "")
	fmt.Printf("  Rate Limit: %d requests/%s (capacity: %d)\n",
		c.RateLimit.RefillRate, c.RateLimit.RefillPeriod, c.RateLimit.Capacity)
}

// Helper functions to read environment variables with defaults
func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return val
	}
	return defaultVal
}
