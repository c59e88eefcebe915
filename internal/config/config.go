// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every runtime setting for mazed.
type Config struct {
	Port        int
	CORSOrigins []string
	DBPath      string

	MazeMinSize     int
	MazeMaxSize     int
	MazeDefaultSize int

	LeaderboardDefaultLimit int
	LeaderboardMaxLimit     int

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DBOpenAttempts uint64
	DBOpenBackoff  time.Duration

	LogLevel  logrus.Level
	LogFormat string

	OTLPEndpoint string
}

// Defaults returns the configuration used when no variables are set.
func Defaults() *Config {
	return &Config{
		Port:                    8000,
		CORSOrigins:             []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		DBPath:                  "maze.db",
		MazeMinSize:             5,
		MazeMaxSize:             199,
		MazeDefaultSize:         21,
		LeaderboardDefaultLimit: 20,
		LeaderboardMaxLimit:     100,
		RequestTimeout:          60 * time.Second,
		ShutdownTimeout:         10 * time.Second,
		DBOpenAttempts:          5,
		DBOpenBackoff:           200 * time.Millisecond,
		LogLevel:                logrus.InfoLevel,
		LogFormat:               "text",
	}
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error; a malformed value is.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, starting from Defaults.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Defaults()
	p := parser{lookup: lookup}

	p.int("PORT", &cfg.Port)
	p.list("CORS_ORIGINS", &cfg.CORSOrigins)
	p.string("DB_PATH", &cfg.DBPath)
	p.int("MAZE_MIN_SIZE", &cfg.MazeMinSize)
	p.int("MAZE_MAX_SIZE", &cfg.MazeMaxSize)
	p.int("MAZE_DEFAULT_SIZE", &cfg.MazeDefaultSize)
	p.int("LEADERBOARD_DEFAULT_LIMIT", &cfg.LeaderboardDefaultLimit)
	p.int("LEADERBOARD_MAX_LIMIT", &cfg.LeaderboardMaxLimit)
	p.duration("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	p.duration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
	p.uint("DB_OPEN_ATTEMPTS", &cfg.DBOpenAttempts)
	p.duration("DB_OPEN_BACKOFF", &cfg.DBOpenBackoff)
	p.level("LOG_LEVEL", &cfg.LogLevel)
	p.string("LOG_FORMAT", &cfg.LogFormat)
	p.string("OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.OTLPEndpoint)

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that individual parsing cannot.
func (c *Config) Validate() error {
	switch {
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("PORT %d out of range", c.Port)
	case c.DBPath == "":
		return errors.New("DB_PATH must not be empty")
	case c.MazeMinSize < 5:
		return fmt.Errorf("MAZE_MIN_SIZE must be at least 5, got %d", c.MazeMinSize)
	case c.MazeMaxSize < c.MazeMinSize:
		return fmt.Errorf("MAZE_MAX_SIZE %d is below MAZE_MIN_SIZE %d", c.MazeMaxSize, c.MazeMinSize)
	case c.LeaderboardMaxLimit < 1 || c.LeaderboardMaxLimit > 100:
		return fmt.Errorf("LEADERBOARD_MAX_LIMIT must be in [1,100], got %d", c.LeaderboardMaxLimit)
	case c.LeaderboardDefaultLimit < 1 || c.LeaderboardDefaultLimit > c.LeaderboardMaxLimit:
		return fmt.Errorf("LEADERBOARD_DEFAULT_LIMIT must be in [1,%d], got %d", c.LeaderboardMaxLimit, c.LeaderboardDefaultLimit)
	case c.RequestTimeout <= 0:
		return errors.New("REQUEST_TIMEOUT must be positive")
	case c.ShutdownTimeout <= 0:
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	case c.DBOpenAttempts == 0:
		return errors.New("DB_OPEN_ATTEMPTS must be at least 1")
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// TracingEnabled reports whether an OTLP endpoint was configured.
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// NewLogger builds the process logger from the log settings.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// parser records the first error and skips the rest.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) raw(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) string(key string, dst *string) {
	if v, ok := p.raw(key); ok {
		*dst = v
	}
}

func (p *parser) int(key string, dst *int) {
	v, ok := p.raw(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = fmt.Errorf("%s: %q is not an integer", key, v)
		return
	}
	*dst = n
}

func (p *parser) uint(key string, dst *uint64) {
	v, ok := p.raw(key)
	if !ok {
		return
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %q is not a non-negative integer", key, v)
		return
	}
	*dst = n
}

func (p *parser) duration(key string, dst *time.Duration) {
	v, ok := p.raw(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = d
}

func (p *parser) level(key string, dst *logrus.Level) {
	v, ok := p.raw(key)
	if !ok {
		return
	}
	lvl, err := logrus.ParseLevel(v)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = lvl
}

func (p *parser) list(key string, dst *[]string) {
	v, ok := p.raw(key)
	if !ok {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
