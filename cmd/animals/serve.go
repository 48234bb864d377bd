package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/animals-site/internal/app"
	"github.com/heartmarshall/animals-site/internal/transport/middleware"
	"github.com/heartmarshall/animals-site/internal/transport/rest"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve generated pages over HTTP",
		Long: `Serve GET /animals?name=NAME, GET /live and GET /health.

Every page request performs one upstream lookup and is rate limited per
client IP. SIGINT or SIGTERM triggers a graceful shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			addr := net.JoinHostPort(a.Config.Server.Host, strconv.Itoa(a.Config.Server.Port))
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return serve(ctx, a, ln)
		},
	}
}

// newHandler builds the router behind Recovery, RequestID, Logger and RateLimit.
func newHandler(a *app.App, rl *middleware.RateLimiter) http.Handler {
	router := rest.NewRouter(
		rest.NewAnimalsHandler(a.Generator, a.Logger),
		rest.NewHealthHandler(a.Provider, app.BuildVersion()),
	)
	return middleware.Chain(
		middleware.Recovery(a.Logger),
		middleware.RequestID(),
		middleware.Logger(a.Logger),
		rl.Limit(a.Config.RateLimit.RequestsPerMinute),
	)(router)
}

// serve runs the HTTP server on ln until ctx is cancelled, then shuts it down
// within Server.ShutdownTimeout.
func serve(ctx context.Context, a *app.App, ln net.Listener) error {
	cfg := a.Config.Server

	rl := middleware.NewRateLimiter(a.Config.RateLimit.CleanupInterval)
	defer rl.Stop()

	srv := &http.Server{
		Handler:      newHandler(a, rl),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("http server started",
			slog.String("addr", ln.Addr().String()),
			slog.String("version", app.BuildVersion()),
			slog.Bool("credential_configured", a.Provider.CredentialConfigured()),
		)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("http server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
