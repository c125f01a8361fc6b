package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/obqo/decycle/pkg/buildinfo"
	"github.com/obqo/decycle/pkg/observability/prom"
	"github.com/obqo/decycle/pkg/report"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	checkOpts
	addr string
}

// newServeCmd creates the serve command. The server runs a fresh check
// per request, so the report always reflects the current classpath.
func newServeCmd() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve [classpath...]",
		Short: "Serve the report, a JSON API, and Prometheus metrics",
		Long: `Serve the dependency report over HTTP.

Endpoints:
  /                 HTML report
  /api/violations   JSON report
  /metrics          Prometheus metrics

Every request re-scans the classpath, so rebuilding the analyzed project
and reloading the page shows fresh results.`,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "configuration file (default .decycle.toml)")
	cmd.Flags().StringVar(&opts.addr, "addr", "127.0.0.1:8190", "listen address")
	cmd.Flags().StringVar(&opts.title, "title", "", "report title")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts, args []string) error {
	logger := loggerFromContext(ctx)
	prom.Install()

	// Validate the configuration up front so mistakes surface at startup,
	// not on the first request.
	if _, _, err := buildConfiguration(ctx, &opts.checkOpts, args); err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		rep, err := runFreshCheck(req.Context(), opts, args)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.WriteHTML(req.Context(), w, rep); err != nil {
			logger.Errorf("Render report: %v", err)
		}
	})

	r.Get("/api/violations", func(w http.ResponseWriter, req *http.Request) {
		rep, err := runFreshCheck(req.Context(), opts, args)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := report.WriteJSON(req.Context(), w, rep); err != nil {
			logger.Errorf("Encode report: %v", err)
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Serving report on http://%s", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// runFreshCheck compiles the configuration and runs one check, returning
// the report for rendering.
func runFreshCheck(ctx context.Context, opts *serveOpts, args []string) (report.Report, error) {
	conf, _, err := buildConfiguration(ctx, &opts.checkOpts, args)
	if err != nil {
		return report.Report{}, err
	}
	result, err := conf.Check(ctx)
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(result, conf.SlicingNames(), opts.title, buildinfo.Version), nil
}
