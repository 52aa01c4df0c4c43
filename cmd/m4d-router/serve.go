package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gurugeek/m4d-router/internal/config"
	"github.com/gurugeek/m4d-router/pkg/host/wshost"
	"github.com/gurugeek/m4d-router/pkg/metrics"
	"github.com/gurugeek/m4d-router/pkg/router"
)

func serveCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Long: `Serve starts an HTTP server hosting the demo page, the bridge
client, and the WebSocket bridge endpoint, with a small route table
registered on the router.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory containing m4d.json")
	return cmd
}

func serve(cfg *config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if cfg.Metrics {
		metrics.Enable()
	}

	bridge := wshost.New(wshost.WithLogger(logger.With("component", "wshost")))

	// The router's navigation mode depends on the attached page's history
	// API support, which the bridge only learns from the client's hello.
	// Construct and start the router on the first page attach.
	var once sync.Once
	bridge.OnConnect(func() {
		logger.Info("page attached", "path", bridge.CurrentPath())
		once.Do(func() {
			useFragment, forced := cfg.FragmentOverride()
			if !forced {
				useFragment = !bridge.SupportsPushState()
			}
			startRouter(cfg, bridge, useFragment, logger)
		})
	})

	mux := chi.NewRouter()
	mux.Use(chimw.Logger)
	mux.Use(chimw.Recoverer)

	mux.Get("/bridge.js", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		w.Write(wshost.BridgeJS)
	})
	mux.Handle("/ws", bridge)
	if cfg.Metrics {
		mux.Handle(cfg.MetricsPath, promhttp.Handler())
	}
	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		// Every page path serves the shell; the router takes over client-side.
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, demoPage, cfg.Name)
	})

	logger.Info("demo server listening", "addr", cfg.Addr(), "mode", cfg.Mode)
	return http.ListenAndServe(cfg.Addr(), mux)
}

func startRouter(cfg *config.Config, bridge *wshost.Bridge, useFragment bool, logger *slog.Logger) {
	r := router.New(bridge,
		router.WithLogger(logger.With("component", "router")),
		router.WithFragment(useFragment),
	)

	registerDemoRoutes(r, logger)

	r.OnEnter(func(e *router.EnterEvent) {
		logger.Info("route entered", "route", e.Route.Name(), "path", e.Path, "params", e.Params)
	})
	r.OnError(func(e *router.ErrorEvent) {
		logger.Warn("route error", "path", e.Path, "error", e.Err)
	})

	if err := r.Listen(cfg.IgnoreClick); err != nil {
		logger.Error("router listen failed", "error", err)
		return
	}
	logger.Info("router listening", "fragment", useFragment)
}

func registerDemoRoutes(r *router.Router, logger *slog.Logger) {
	r.AddRoute("home", "/", func(e *router.EnterEvent) {
		logger.Info("home", "path", e.Path)
	})
	r.AddRoute("about", "/about", func(e *router.EnterEvent) {
		logger.Info("about", "path", e.Path)
	})
	r.AddRoute("user", "/users/:id", func(e *router.EnterEvent) {
		logger.Info("user", "id", e.Params[0])
	})
}

const demoPage = `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
  <h1>m4d-router demo</h1>
  <nav>
    <a href="/">Home</a>
    <a href="/about" title="About">About</a>
    <a href="/users/42" title="User 42">User 42</a>
    <a href="/nowhere">Broken link</a>
  </nav>
  <p>Click the links and watch the server log route events.</p>
  <script src="/bridge.js" data-endpoint="/ws"></script>
</body>
</html>
`
