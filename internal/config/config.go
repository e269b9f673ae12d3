package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const envPrefix = "CSFPLAN_"

// Config holds process-wide settings read from CSFPLAN_* environment
// variables, optionally seeded from .env files.
type Config struct {
	DBPath          string          `env:"DB"`
	HourlyRate      decimal.Decimal `env:"HOURLY_RATE" envDefault:"150"`
	LogLevel        slog.Level      `env:"LOG_LEVEL" envDefault:"warn"`
	LogUseCases     bool            `env:"LOG_USE_CASES" envDefault:"false"`
	LogFile         string          `env:"LOG_FILE"`
	DefaultCapacity int             `env:"DEFAULT_CAPACITY" envDefault:"40"`
	DefaultHorizon  int             `env:"DEFAULT_HORIZON" envDefault:"4"`
}

// LoadEnvFiles loads the given dotenv files that exist. Variables already
// present in the environment win. Returns the number of files loaded.
func LoadEnvFiles(files ...string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads .env files, then the process environment.
func Load(envFiles ...string) (Config, error) {
	if _, err := LoadEnvFiles(envFiles...); err != nil {
		return Config{}, fmt.Errorf("loading env files: %w", err)
	}
	return Parse(nil)
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{
		Prefix:      envPrefix,
		Environment: environ,
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(decimal.Decimal{}): func(v string) (any, error) {
				return decimal.NewFromString(v)
			},
			reflect.TypeOf(slog.Level(0)): func(v string) (any, error) {
				var lv slog.Level
				err := lv.UnmarshalText([]byte(v))
				return lv, err
			},
		},
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultDBPath is ~/.csfplan/csfplan.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".csfplan", "csfplan.db"), nil
}

func (c Config) Validate() error {
	if !c.HourlyRate.IsPositive() {
		return fmt.Errorf("%sHOURLY_RATE must be positive, got %s", envPrefix, c.HourlyRate)
	}
	if c.DefaultCapacity < 1 || c.DefaultCapacity > 168 {
		return fmt.Errorf("%sDEFAULT_CAPACITY must be between 1 and 168, got %d", envPrefix, c.DefaultCapacity)
	}
	if c.DefaultHorizon < 1 || c.DefaultHorizon > 12 {
		return fmt.Errorf("%sDEFAULT_HORIZON must be between 1 and 12, got %d", envPrefix, c.DefaultHorizon)
	}
	return nil
}

// Logger returns a text logger at the configured level. LogUseCases lowers
// the threshold to info so successful use cases are reported too.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level := c.LogLevel
	if c.LogUseCases && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenLogFile opens LogFile for appending, creating it if needed.
func (c Config) OpenLogFile() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
