package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Config{
		Addr:          ":8080",
		FormID:        "sf",
		DefaultLocale: "en",
		LogLevel:      "info",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnvironment(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"SNOWFORM_ADDR":           "127.0.0.1:9000",
		"SNOWFORM_SCHEMA":         "schema.yaml",
		"SNOWFORM_COMPONENT":      "Signup",
		"SNOWFORM_LOCALES_DIR":    "locales",
		"SNOWFORM_DEFAULT_LOCALE": "es",
		"SNOWFORM_LOG_LEVEL":      "debug",
		"SNOWFORM_DEBUG":          "true",
		"ADDR":                    ":1",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("expected prefixed addr, got %q", cfg.Addr)
	}
	if cfg.SchemaPath != "schema.yaml" || cfg.Component != "Signup" {
		t.Fatalf("unexpected schema settings: %+v", cfg)
	}
	if cfg.DefaultLocale != "es" || cfg.LocalesDir != "locales" {
		t.Fatalf("unexpected locale settings: %+v", cfg)
	}
	if !cfg.Debug || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected debug settings: %+v", cfg)
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(map[string]string{"SNOWFORM_DEBUG": "maybe"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestParseLeavesValidationToCaller(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"SNOWFORM_COMPONENT": "Signup",
		"SNOWFORM_OPERATION": "createUser",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig from Validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "component", cfg: Config{Component: "Signup", LogLevel: "info"}},
		{name: "operation", cfg: Config{Operation: "createUser", LogLevel: "warn"}},
		{name: "unknown level", cfg: Config{LogLevel: "loud"}, wantErr: true},
		{name: "component and operation", cfg: Config{Component: "Signup", Operation: "createUser", LogLevel: "info"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
