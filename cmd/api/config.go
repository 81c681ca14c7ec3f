// cmd/api/config.go
// Configuration is layered: defaults, then an optional YAML file, then
// BOOKSHELF_* environment variables, then explicitly set command-line flags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rifkianggarks/book-self-api/internal/validator"
)

// serverConfig holds every value that can be tweaked at startup.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on
	environment string // development, staging or production
	log         struct {
		level  string // debug, info, warn, error
		format string // text or json
	}
	limiter struct {
		enabled bool
		rps     float64 // tokens refilled per second, per client IP
		burst   int
	}
}

// fileConfig mirrors serverConfig for YAML decoding. Pointer fields tell
// "absent" apart from an explicit zero value.
type fileConfig struct {
	Port        *int    `yaml:"port"`
	Environment *string `yaml:"environment"`
	Log         struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
	Limiter struct {
		Enabled *bool    `yaml:"enabled"`
		RPS     *float64 `yaml:"rps"`
		Burst   *int     `yaml:"burst"`
	} `yaml:"limiter"`
}

func defaultConfig() serverConfig {
	var cfg serverConfig
	cfg.port = 9000
	cfg.environment = "development"
	cfg.log.level = "info"
	cfg.log.format = "text"
	cfg.limiter.enabled = true
	cfg.limiter.rps = 2
	cfg.limiter.burst = 4
	return cfg
}

// loadConfig builds the effective configuration from args (without the
// program name) and getenv.
func loadConfig(args []string, getenv func(string) string) (serverConfig, error) {
	cfg := defaultConfig()

	var (
		configPath string
		flags      = defaultConfig()
	)
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", getenv("BOOKSHELF_CONFIG"), "Path to a YAML config file")
	fs.IntVar(&flags.port, "port", flags.port, "API server port")
	fs.StringVar(&flags.environment, "env", flags.environment, "Environment (development|staging|production)")
	fs.StringVar(&flags.log.level, "log-level", flags.log.level, "Log level (debug|info|warn|error)")
	fs.StringVar(&flags.log.format, "log-format", flags.log.format, "Log format (text|json)")
	fs.BoolVar(&flags.limiter.enabled, "limiter-enabled", flags.limiter.enabled, "Enable per-IP rate limiter")
	fs.Float64Var(&flags.limiter.rps, "limiter-rps", flags.limiter.rps, "Rate limiter maximum requests per second")
	fs.IntVar(&flags.limiter.burst, "limiter-burst", flags.limiter.burst, "Rate limiter maximum burst")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if configPath != "" {
		if err := cfg.applyFile(configPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.port = flags.port
		case "env":
			cfg.environment = flags.environment
		case "log-level":
			cfg.log.level = flags.log.level
		case "log-format":
			cfg.log.format = flags.log.format
		case "limiter-enabled":
			cfg.limiter.enabled = flags.limiter.enabled
		case "limiter-rps":
			cfg.limiter.rps = flags.limiter.rps
		case "limiter-burst":
			cfg.limiter.burst = flags.limiter.burst
		}
	})

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *serverConfig) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if fc.Port != nil {
		cfg.port = *fc.Port
	}
	if fc.Environment != nil {
		cfg.environment = *fc.Environment
	}
	if fc.Log.Level != nil {
		cfg.log.level = *fc.Log.Level
	}
	if fc.Log.Format != nil {
		cfg.log.format = *fc.Log.Format
	}
	if fc.Limiter.Enabled != nil {
		cfg.limiter.enabled = *fc.Limiter.Enabled
	}
	if fc.Limiter.RPS != nil {
		cfg.limiter.rps = *fc.Limiter.RPS
	}
	if fc.Limiter.Burst != nil {
		cfg.limiter.burst = *fc.Limiter.Burst
	}
	return nil
}

func (cfg *serverConfig) applyEnv(getenv func(string) string) error {
	if v := getenv("BOOKSHELF_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BOOKSHELF_PORT: %w", err)
		}
		cfg.port = n
	}
	if v := getenv("BOOKSHELF_ENV"); v != "" {
		cfg.environment = v
	}
	if v := getenv("BOOKSHELF_LOG_LEVEL"); v != "" {
		cfg.log.level = strings.ToLower(v)
	}
	if v := getenv("BOOKSHELF_LOG_FORMAT"); v != "" {
		cfg.log.format = strings.ToLower(v)
	}
	if v := getenv("BOOKSHELF_LIMITER_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BOOKSHELF_LIMITER_ENABLED: %w", err)
		}
		cfg.limiter.enabled = b
	}
	if v := getenv("BOOKSHELF_LIMITER_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("BOOKSHELF_LIMITER_RPS: %w", err)
		}
		cfg.limiter.rps = f
	}
	if v := getenv("BOOKSHELF_LIMITER_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BOOKSHELF_LIMITER_BURST: %w", err)
		}
		cfg.limiter.burst = n
	}
	return nil
}

func (cfg serverConfig) validate() error {
	v := validator.New()
	v.Check(cfg.port > 0 && cfg.port <= 65535, "port", "must be between 1 and 65535")
	v.Check(validator.In(cfg.environment, "development", "staging", "production"), "env", "must be development, staging or production")
	v.Check(validator.In(cfg.log.level, "debug", "info", "warn", "warning", "error"), "log-level", "must be debug, info, warn or error")
	v.Check(validator.In(cfg.log.format, "text", "json"), "log-format", "must be text or json")
	if cfg.limiter.enabled {
		v.Check(cfg.limiter.rps > 0, "limiter-rps", "must be greater than zero")
		v.Check(cfg.limiter.burst > 0, "limiter-burst", "must be greater than zero")
	}

	if key, msg, ok := v.First(); ok {
		return errors.New("config: " + key + " " + msg)
	}
	return nil
}
