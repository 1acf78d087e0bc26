package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bjarke-xyz/app-tracker/internal/auth"
	serverPkg "github.com/bjarke-xyz/app-tracker/internal/server"
	"github.com/bjarke-xyz/app-tracker/internal/service"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

// ServerCmd wires config, storage and the HTTP server, and blocks until ctx
// is cancelled. Storage and the signing secret are set up before the
// listener starts.
func ServerCmd(ctx context.Context) error {
	godotenv.Load()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger("api")
	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is not set, login and protected endpoints will fail")
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	tokens := auth.NewTokenService(cfg.JWTSecret)
	tracker := service.NewTrackerService(logger, st.users, st.categories, st.applications, tokens)
	server := serverPkg.NewServer(logger, tracker, tokens, serverPkg.Options{
		FrontendURL:   cfg.FrontendURL,
		SecureCookies: cfg.production(),
	})
	srv := server.Server(cfg.Port)

	// metrics
	metricsSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler:           metricsMux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	logger.Info("started server", slog.Int("port", cfg.Port), slog.Int("metricsPort", cfg.MetricsPort))

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = metricsSrv.Shutdown(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", serverPkg.MetricsHandler())
	return mux
}
