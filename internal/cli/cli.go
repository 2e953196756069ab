// Package cli implements the textsvg command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: render text to SVG, PNG, PDF or JSON
//   - example: print the ZALA13 sample, optionally saving it
//   - presets: list, pick or export named option sets
//   - serve: run the HTTP API
//   - cache: inspect or clear the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --log-format (text, json, logfmt). Loggers are passed through
// context.Context.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/textsvg/pkg/buildinfo"
	"github.com/matzehuels/textsvg/pkg/cache"
	"github.com/matzehuels/textsvg/pkg/config"
	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/observability"
	"github.com/matzehuels/textsvg/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "textsvg"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	logFormat  string
	configPath string
	cfgOnce    sync.Once
	cfg        *config.Config
	cfgErr     error
}

// New creates a CLI that logs to w.
func New(w io.Writer) *CLI {
	return &CLI{Logger: newLogger(w)}
}

// Main runs the command line with args and returns the process exit code:
// 0 on success, 130 when interrupted, 1 otherwise.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := New(stderr)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130
	}
	c.Logger.Debug("command failed", "error", err)
	newPrinter(stderr).failure("%s", errors.UserMessage(err))
	return 1
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "textsvg renders a line of text as an SVG image",
		Long: `textsvg renders a single line of text into a standalone SVG document
with configurable canvas size, font, colors, stroke and alignment.

Output can also be rasterized to PNG, converted to PDF, or described as JSON.
Named presets bundle options; flags override preset values.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configureLogger(c.Logger, c.verbose, c.logFormat); err != nil {
				return err
			}
			observability.SetAll(observability.NewLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "text", "log format: text, json, logfmt")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/textsvg/textsvg.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exampleCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads settings once per process.
func (c *CLI) config() (*config.Config, error) {
	c.cfgOnce.Do(func() {
		c.cfg, c.cfgErr = config.Load(c.configPath)
	})
	return c.cfg, c.cfgErr
}

// presets loads the built-in presets overlaid with a preset file. An
// explicit path wins over the configured one.
func (c *CLI) presets(path string) (config.Presets, error) {
	if path == "" {
		cfg, err := c.config()
		if err != nil {
			return nil, err
		}
		path = cfg.Presets.File
	}
	return config.LoadPresets(path)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	if cfg.Cache.TTL > 0 {
		r.TTL = cfg.Cache.TTL
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.CacheOptions())
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
