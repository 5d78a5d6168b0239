package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abaddouh/igazolo/internal/fonts"
	"github.com/abaddouh/igazolo/internal/logging"
	"github.com/abaddouh/igazolo/internal/metrics"
	"github.com/abaddouh/igazolo/internal/server"
	"github.com/abaddouh/igazolo/internal/stamper"
	"github.com/abaddouh/igazolo/internal/template"
	"github.com/abaddouh/igazolo/internal/watcher"
)

func newServeCmd(opts *options, now func() time.Time) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form generator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(c, logging.FormatJSON)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}

			f, err := cfg.Resolver().Resolve()
			if err != nil {
				return &stamper.Error{Op: "resolve font", Kind: stamper.KindFont, Err: err}
			}
			logger.Info("font resolved", "font", f.Name, "path", f.Path)

			store := template.New(cfg.Template)
			if _, err := os.Stat(store.Path()); err != nil {
				logger.Warn("template not found, /generate will fail until it exists", "path", store.Path())
			}

			m := metrics.New()
			so := stamper.DefaultOptions()
			s := stamper.New(store, fonts.Static{Font: f}, now, logger, so)
			srv := server.New(cfg.Server.Port, s, so.Quality, m, logger)

			var w *watcher.Watcher
			if cfg.Server.Watch {
				if w, err = watcher.New(store.Path(), logger); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Start(ctx)
			})
			if w != nil {
				g.Go(func() error {
					return w.Start(ctx, func(fsnotify.Event) {
						store.Invalidate()
						m.RecordTemplateReload()
					})
				})
			}

			err = g.Wait()
			logger.Info("shutdown complete")
			return err
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (default 5001 or $PORT)")
	return cmd
}
