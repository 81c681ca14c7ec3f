// Package main is the entry point for the bookshelf API server.
// It wires together configuration, logging, the in-memory book models and
// the HTTP router.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/rifkianggarks/book-self-api/internal/data"
)

// appVersion is the current version of the API, shown in logs and /healthz.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is the receiver on all handler and route methods.
type applicationDependencies struct {
	config  serverConfig
	logger  *slog.Logger
	models  data.Models
	limiter *rateLimiter // nil when rate limiting is disabled
}

func main() {
	err := loadDotEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	settings, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stdout, settings.log.level, settings.log.format)

	appInstance := &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(data.Options{}),
	}
	if settings.limiter.enabled {
		appInstance.limiter = newRateLimiter(settings.limiter.rps, settings.limiter.burst)
	}

	err = appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// loadDotEnv loads the given env files (".env" by default) into the process
// environment. A missing file is normal outside local development; a file
// that exists but cannot be parsed is an error.
func loadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// newLogger builds the process logger. format is "text" or "json"; level is
// one of debug, info, warn, error and defaults to info.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn", "warning":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
