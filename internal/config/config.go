// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	AppSheet AppSheetConfig
	Upload   UploadConfig
	Cards    CardsConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 5m,
	// an AppSheet load can spend most of that in retries and backoff)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"5m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 5m)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"5m"`
}

// AppSheetConfig holds the remote roster source settings. The credential
// fields may be left empty when only file uploads are used; they are
// validated when an AppSheet load is requested, not at startup.
type AppSheetConfig struct {
	// AppID is the AppSheet application ID
	AppID string `env:"APPSHEET_APP_ID"`

	// TableName is the members table to query
	TableName string `env:"APPSHEET_TABLE"`

	// AccessKey is the application access key
	AccessKey string `env:"APPSHEET_ACCESS_KEY"`

	// Region is the API domain (default: www.appsheet.com)
	Region string `env:"APPSHEET_REGION" default:"www.appsheet.com"`

	// Selector is an optional row selector expression
	Selector string `env:"APPSHEET_SELECTOR"`

	// RunAsUserEmail runs queries with that user's permissions
	RunAsUserEmail string `env:"APPSHEET_RUN_AS_USER"`

	// Timeout is the read timeout per request attempt (default: 30s, floor 10s)
	Timeout time.Duration `env:"APPSHEET_TIMEOUT" default:"30s"`

	// MaxAttempts is the retry budget per credential placement (default: 2)
	MaxAttempts int `env:"APPSHEET_MAX_ATTEMPTS" default:"2"`
}

// UploadConfig holds roster file upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 20MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`

	// DefaultSheet is the worksheet read from XLSX uploads (default: Sheet1)
	DefaultSheet string `env:"UPLOAD_DEFAULT_SHEET" default:"Sheet1"`

	// MaxConcurrent bounds parallel roster loads across all sources (default: 5)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"5"`

	// QueueWait is how long a request waits for a load slot (default: 10s)
	QueueWait time.Duration `env:"UPLOAD_QUEUE_WAIT" default:"10s"`
}

// CardsConfig holds settings handed to the downstream card renderer.
type CardsConfig struct {
	// IDPrefix is the program/year prefix for generated member IDs (default: CTBA2026)
	IDPrefix string `env:"CARDS_ID_PREFIX" default:"CTBA2026"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	if c.AppSheet.MaxAttempts < 1 {
		errs = append(errs, "APPSHEET_MAX_ATTEMPTS must be at least 1")
	}
	if c.AppSheet.Timeout < 0 {
		errs = append(errs, "APPSHEET_TIMEOUT must be non-negative")
	}
	if c.AppSheet.Region == "" {
		errs = append(errs, "APPSHEET_REGION must not be empty")
	}

	if c.Upload.MaxFileSize <= 0 {
		errs = append(errs, "UPLOAD_MAX_FILE_SIZE must be positive")
	}
	if c.Upload.DefaultSheet == "" {
		errs = append(errs, "UPLOAD_DEFAULT_SHEET must not be empty")
	}
	if c.Upload.MaxConcurrent < 1 {
		errs = append(errs, "UPLOAD_MAX_CONCURRENT must be at least 1")
	}
	if c.Upload.QueueWait <= 0 {
		errs = append(errs, "UPLOAD_QUEUE_WAIT must be positive")
	}

	if c.Cards.IDPrefix == "" {
		errs = append(errs, "CARDS_ID_PREFIX must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The AppSheet access key is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("AppSheet: {AppID: %q, Table: %q, AccessKey: [MASKED], Region: %q, MaxAttempts: %d}, ",
		c.AppSheet.AppID, c.AppSheet.TableName, c.AppSheet.Region, c.AppSheet.MaxAttempts))
	b.WriteString(fmt.Sprintf("Upload: {MaxFileSize: %d, DefaultSheet: %q}, ",
		c.Upload.MaxFileSize, c.Upload.DefaultSheet))
	b.WriteString(fmt.Sprintf("Cards: {IDPrefix: %q}, ", c.Cards.IDPrefix))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
