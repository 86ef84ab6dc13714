// Command snowform renders, validates and serves forms described by an
// OpenAPI document.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-snowform/internal/config"
)

// errInvalid makes the process exit with status 1 after the command already
// reported the validation errors.
var errInvalid = errors.New("submission is invalid")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(cfg, os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "snowform:", err)
		}
		os.Exit(1)
	}
}

// cli carries the state shared by every command.
type cli struct {
	cfg    config.Config
	out    io.Writer
	logger *zap.Logger
}

func newRootCmd(cfg config.Config, out io.Writer) *cobra.Command {
	c := &cli{cfg: cfg, out: out}
	return c.rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "snowform",
		Short: "Render and validate forms from an OpenAPI schema",
		Long: `snowform turns an OpenAPI component or operation request body into an
HTML form, validates payloads against it and fills it from the terminal.

Settings default to SNOWFORM_* environment variables (a .env file is read
when present) and can be overridden with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// a flag picks the schema over the environment
			flags := cmd.Flags()
			if flags.Changed("operation") && !flags.Changed("component") {
				c.cfg.Component = ""
			}
			if flags.Changed("component") && !flags.Changed("operation") {
				c.cfg.Operation = ""
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			if c.logger != nil {
				return nil
			}
			logger, err := newLogger(c.cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.cfg.SchemaPath, "schema", "s", c.cfg.SchemaPath, "OpenAPI document path or URL")
	flags.StringVarP(&c.cfg.Component, "component", "c", c.cfg.Component, "component schema name")
	flags.StringVar(&c.cfg.Operation, "operation", c.cfg.Operation, "operation id whose request body is the form")
	flags.StringVar(&c.cfg.FormID, "form-id", c.cfg.FormID, "form id, used for element ids and override lookup")
	flags.StringVar(&c.cfg.OverridesDir, "overrides", c.cfg.OverridesDir, "directory with field override files")
	flags.StringVar(&c.cfg.LocalesDir, "locales", c.cfg.LocalesDir, "directory with translation catalogs")
	flags.StringVar(&c.cfg.DefaultLocale, "locale", c.cfg.DefaultLocale, "default locale")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&c.cfg.Debug, "debug", c.cfg.Debug, "append a values and errors dump to rendered forms")

	root.AddCommand(
		c.renderCmd(),
		c.validateCmd(),
		c.fillCmd(),
		c.serveCmd(),
	)
	return root
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Debug {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
