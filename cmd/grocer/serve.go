package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/grocer/internal/config"
	"github.com/mmynk/grocer/internal/middleware"
	"github.com/mmynk/grocer/internal/service"
	"github.com/mmynk/grocer/internal/storage"
	"github.com/mmynk/grocer/pkg/api/grocerconnect"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Connect server",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg.Server.Address, newHandler(store))
	},
}

func init() {
	serveCmd.Flags().String("address", "", "listen address (overrides server.address)")
	serveCmd.Flags().String("db", "", "SQLite database path (overrides storage.path)")
	serveCmd.Flags().String("driver", "", "storage driver: sqlite or memory (overrides storage.driver)")
}

// bindServeFlags maps serve flags onto config keys.
var bindServeFlags = map[string]string{
	"address": config.KeyServerAddress,
	"db":      config.KeyStoragePath,
	"driver":  config.KeyStorageDriver,
}

// newHandler registers the services, metrics and health endpoints.
func newHandler(store storage.Store) http.Handler {
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())

	mux := http.NewServeMux()
	mux.Handle(grocerconnect.NewAccountServiceHandler(service.NewAccountService(store), interceptors))
	mux.Handle(grocerconnect.NewListServiceHandler(service.NewListService(store), interceptors))
	mux.Handle(grocerconnect.NewItemServiceHandler(service.NewItemService(store), interceptors))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect gRPC clients)
	return h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
