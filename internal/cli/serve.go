package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ladybug-tools/dragonfly-display/internal/api"
	"github.com/ladybug-tools/dragonfly-display/pkg/cache"
	"github.com/ladybug-tools/dragonfly-display/pkg/observability"
	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command, exposing the conversions over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		maxUploadMB int
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the visualization commands over HTTP",
		Long: `Serve the visualization commands over HTTP.

  POST /model-to-vis                  model file as the request body
  POST /model-comparison-to-vis       multipart form with base and incoming files
  POST /model-envelope-edges-to-vis   model file as the request body
  GET  /healthz
  GET  /metrics                       prometheus metrics

Query parameters mirror the command flags in snake_case, e.g.
?output_format=html&color_by=boundary_condition.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			fs := cmd.Flags()
			addr = stringFlag(fs, "addr", addr, c.Config.Serve.Addr)
			if !fs.Changed("max-upload-mb") && c.Config.Serve.MaxUploadMB > 0 {
				maxUploadMB = c.Config.Serve.MaxUploadMB
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics := observability.NewMetrics(reg)
			observability.SetPipelineHooks(metrics)
			observability.SetCacheHooks(metrics)
			observability.SetHTTPHooks(metrics)
			defer observability.Reset()

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "serve:")

			srv := &api.Server{
				Runner:        runner,
				Formatter:     c.newFormatter(),
				Defaults:      c.serveDefaults(),
				DefaultFormat: c.Config.ModelToVis.OutputFormat,
				MaxUpload:     int64(maxUploadMB) << 20,
				Gatherer:      reg,
				Logger:        c.Logger,
			}
			return c.listen(ctx, addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&maxUploadMB, "max-upload-mb", 64, "largest accepted request body in MB")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "build every request without the cache")

	return cmd
}

// serveDefaults seeds request options from the config file.
func (c *CLI) serveDefaults() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.ColorBy = c.Config.ModelToVis.ColorBy
	opts.GridDisplayMode = c.Config.ModelToVis.GridDisplayMode
	opts.HideGrid = !c.Config.ModelToVis.ShowGrid
	opts.BaseColor = c.Config.Comparison.BaseColor
	opts.IncomingColor = c.Config.Comparison.IncomingColor
	opts.ExcludeCoplanar = pipeline.ExcludeCoplanar(c.Config.Envelope.ExcludeCoplanar)
	opts.LineWidth = c.Config.Envelope.LineWidth
	opts.SetModelDefaults()
	opts.SetComparisonDefaults()
	opts.SetEnvelopeDefaults()
	opts.Logger = c.Logger
	return opts
}

// listen serves h until ctx is cancelled, then drains open requests.
func (c *CLI) listen(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	httpSrv := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.Serve(ln) }()
	printSuccess("Listening on %s", ln.Addr())
	c.Logger.Info("server started", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	printInfo("Server stopped")
	return nil
}
