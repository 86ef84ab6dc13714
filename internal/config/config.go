// Package config reads the snowform command configuration from the
// environment. A .env file in the working directory is loaded first when
// present.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "SNOWFORM_"

// ErrInvalidConfig wraps parse and validation failures.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the settings shared by the CLI commands.
type Config struct {
	Addr          string `env:"ADDR" envDefault:":8080"`
	SchemaPath    string `env:"SCHEMA"`
	Component     string `env:"COMPONENT"`
	Operation     string `env:"OPERATION"`
	FormID        string `env:"FORM_ID" envDefault:"sf"`
	OverridesDir  string `env:"OVERRIDES_DIR"`
	LocalesDir    string `env:"LOCALES_DIR"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	Debug         bool   `env:"DEBUG"`
}

var dotenvOnce sync.Once

// Load reads .env, if it exists, then parses the process environment.
func Load() (Config, error) {
	dotenvOnce.Do(func() {
		// a missing .env file is fine
		_ = godotenv.Load()
	})
	return Parse(nil)
}

// Parse reads the configuration from environ, or from the process
// environment when environ is nil. It does not call Validate, so flags can
// still override the environment.
func Parse(environ map[string]string) (Config, error) {
	opts := env.Options{Prefix: Prefix}
	if environ != nil {
		opts.Environment = environ
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks settings that depend on each other.
func (c Config) Validate() error {
	if c.Component != "" && c.Operation != "" {
		return fmt.Errorf("%w: %sCOMPONENT and %sOPERATION are exclusive", ErrInvalidConfig, Prefix, Prefix)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
