package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textsvg/internal/server"
	"github.com/matzehuels/textsvg/pkg/buildinfo"
	"github.com/matzehuels/textsvg/pkg/cache"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		presetsFile string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

  GET  /render?text=ZALA13&preset=zala13&format=svg&download=1
  POST /render   {"text": "...", "options": {...}, "formats": ["png"]}
  GET  /presets
  GET  /presets/{name}
  GET  /version
  GET  /healthz

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			srvCfg := cfg.Server
			if addr != "" {
				srvCfg.Addr = addr
			}

			presets, err := c.presets(presetsFile)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "server:")

			p := newPrinter(cmd.ErrOrStderr())
			p.keyValue("Address", srvCfg.Addr)
			p.keyValue("Cache", cacheLabel(cfg.Cache.Backend, noCache))
			p.keyValue("Presets", fmt.Sprint(len(presets)))
			p.keyValue("Version", buildinfo.Get().Version)

			return server.New(srvCfg, runner, presets, loggerFromContext(ctx)).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&presetsFile, "presets-file", "", "TOML file with additional presets")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func cacheLabel(backend string, disabled bool) string {
	if disabled {
		return "disabled"
	}
	return backend
}
