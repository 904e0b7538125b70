package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"thearchives/internal/cache"
	"thearchives/internal/catalog"
	"thearchives/internal/handlers"
	"thearchives/internal/middleware"
	"thearchives/internal/observability"
	"thearchives/internal/render"
	"thearchives/internal/route"
	"thearchives/internal/router"
	"thearchives/internal/search"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	store, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	stats := store.Stats()
	slog.Info("catalog loaded",
		"destinations", stats.Destinations,
		"products", stats.Products,
		"hidden_gems", stats.HiddenGems,
		"districts", stats.Districts,
	)

	// In dev mode templates load assets from the CDN.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	// The page cache is optional; a nil cache renders every request.
	var pageCache *cache.PageCache
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			return fmt.Errorf("connecting to valkey: %w", err)
		}
		defer client.Close()
		pageCache = cache.NewPageCache(client, cfg.PageCacheTTL)
		slog.Info("page cache enabled", "addr", cfg.ValkeyAddr(), "ttl", cfg.PageCacheTTL)
	} else {
		slog.Warn("valkey not configured, page cache disabled")
	}

	reg := observability.InitRegistry()
	metrics := observability.MetricsHandler(reg)

	submit := handlers.NewSubmit(renderer, cfg.SubmissionEmail)
	limiter := middleware.NewRateLimiter(cfg.SubmitRatePerMin, time.Minute)
	limiter.OnReject = submit.Limited
	defer limiter.Stop()

	deps := router.Deps{
		Store:         store,
		Public:        handlers.NewPublic(store, search.New(store), route.NewResolver(store), renderer, pageCache),
		Submit:        submit,
		SubmitLimiter: limiter,
		CORSOrigins:   cfg.CORSOrigins,
		SecureCookies: !cfg.IsDev(),
		TrustProxy:    cfg.TrustProxy,
	}
	if cfg.MetricsAddr == "" {
		deps.Metrics = metrics
	}
	r, err := router.New(deps)
	if err != nil {
		return fmt.Errorf("building router: %w", err)
	}

	servers := []*http.Server{{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics)
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			slog.Info("server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listening on %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	// Graceful shutdown: on a signal or a listener failure, drain connections.
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutting down %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped with error", "error", err)
		return err
	}
	slog.Info("server stopped gracefully")
	return nil
}
