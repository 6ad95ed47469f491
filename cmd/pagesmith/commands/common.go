package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagesmith/internal/config"
	ferrors "git.home.luguber.info/inful/pagesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/pagesmith/internal/i18n"
	"git.home.luguber.info/inful/pagesmith/internal/logfields"
)

// Global is the state shared by every subcommand.
type Global struct {
	Ctx      context.Context
	Messages *i18n.Translator
	Out      io.Writer
}

// NewGlobal returns command state with user messages localized for lang.
func NewGlobal(ctx context.Context, lang string) *Global {
	return &Global{Ctx: ctx, Messages: i18n.MustLoad().Translator(lang), Out: os.Stdout}
}

// Say prints a localized message on the command's output.
func (g *Global) Say(key string, args ...any) {
	_, _ = fmt.Fprintln(g.Out, g.Messages.T(key, args...))
}

// CLI is the root command line.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"pagesmith.yaml" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Lang        string           `help:"Language for user messages (en, fr, de)" env:"PAGESMITH_LANG"`
	ShowVersion kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Compile the content directory into the output directory"`
	Serve   ServeCmd   `cmd:"" help:"Compile, serve the output and rebuild on change"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration and starter template"`
	Version VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing and sets up logging before any
// configuration is read.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv(config.EnvLogLevel))
	if c.Verbose {
		level = config.LogLevelDebug
	}
	setupLogging(level, config.LogFormatText)
	return nil
}

// loadConfig reads the configuration file, falling back to defaults when
// it does not exist, and applies its logging section unless -v was given.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load configuration").
			WithContext("path", c.Config).
			Build()
	}
	if !c.Verbose {
		setupLogging(cfg.Logging.Level, cfg.Logging.Format)
	}
	slog.Debug("Configuration loaded", logfields.Path(c.Config))
	return cfg, nil
}

func setupLogging(level config.LogLevel, format config.LogFormat) {
	opts := &slog.HandlerOptions{Level: level.Slog()}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if format == config.LogFormatJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
