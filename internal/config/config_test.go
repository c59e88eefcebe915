package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("FromLookup() error: %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.MazeDefaultSize != 21 || cfg.MazeMinSize != 5 || cfg.MazeMaxSize != 199 {
		t.Errorf("unexpected maze sizes: %+v", cfg)
	}
	if cfg.LeaderboardDefaultLimit != 20 || cfg.LeaderboardMaxLimit != 100 {
		t.Errorf("unexpected leaderboard limits: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.TracingEnabled() {
		t.Error("tracing should be off without an endpoint")
	}
	if cfg.Addr() != ":8000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PORT":                        "9090",
		"CORS_ORIGINS":                " https://a.example , ,https://b.example",
		"DB_PATH":                     "/tmp/scores.db",
		"MAZE_MAX_SIZE":               "101",
		"REQUEST_TIMEOUT":             "5s",
		"LOG_LEVEL":                   "debug",
		"LOG_FORMAT":                  "json",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "localhost:4318",
		"DB_OPEN_ATTEMPTS":            "2",
	}))
	if err != nil {
		t.Fatalf("FromLookup() error: %v", err)
	}

	if cfg.Port != 9090 || cfg.DBPath != "/tmp/scores.db" || cfg.MazeMaxSize != 101 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if strings.Join(cfg.CORSOrigins, "|") != "https://a.example|https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if !cfg.TracingEnabled() {
		t.Error("tracing should be on")
	}
	if cfg.DBOpenAttempts != 2 {
		t.Errorf("DBOpenAttempts = %d", cfg.DBOpenAttempts)
	}

	if _, ok := cfg.NewLogger().Formatter.(*logrus.JSONFormatter); !ok {
		t.Error("expected JSON formatter")
	}
}

func TestFromLookupInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "non-numeric port", env: map[string]string{"PORT": "http"}, want: "PORT"},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}, want: "PORT"},
		{name: "min below lattice", env: map[string]string{"MAZE_MIN_SIZE": "3"}, want: "MAZE_MIN_SIZE"},
		{name: "max below min", env: map[string]string{"MAZE_MIN_SIZE": "21", "MAZE_MAX_SIZE": "9"}, want: "MAZE_MAX_SIZE"},
		{name: "limit too large", env: map[string]string{"LEADERBOARD_MAX_LIMIT": "500"}, want: "LEADERBOARD_MAX_LIMIT"},
		{name: "default above max", env: map[string]string{"LEADERBOARD_DEFAULT_LIMIT": "50", "LEADERBOARD_MAX_LIMIT": "30"}, want: "LEADERBOARD_DEFAULT_LIMIT"},
		{name: "bad duration", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}, want: "SHUTDOWN_TIMEOUT"},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}, want: "LOG_LEVEL"},
		{name: "bad format", env: map[string]string{"LOG_FORMAT": "xml"}, want: "LOG_FORMAT"},
		{name: "zero attempts", env: map[string]string{"DB_OPEN_ATTEMPTS": "0"}, want: "DB_OPEN_ATTEMPTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("MAZE_DEFAULT_SIZE=31\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("MAZE_DEFAULT_SIZE", "")
	os.Unsetenv("MAZE_DEFAULT_SIZE")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MazeDefaultSize != 31 {
		t.Errorf("MazeDefaultSize = %d, want 31", cfg.MazeDefaultSize)
	}
}

func TestLoadMissingFileIsNotFatal(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Load() error: %v", err)
	}
}
