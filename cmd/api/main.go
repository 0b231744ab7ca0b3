package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"recipebox/internal/api"
	"recipebox/internal/config"
	"recipebox/internal/platform/logger"
	"recipebox/internal/platform/metrics"
	"recipebox/internal/platform/ratelimit"
	"recipebox/internal/recipe"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the configuration file")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	store, err := recipe.NewPostgresStore(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("error creating postgres store: %w", err)
	}
	defer store.Close()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := newRouter(cfg, log, store)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter builds the HTTP handler tree for store.
func newRouter(cfg *config.Config, log *zap.Logger, store api.RecipeStore) (*gin.Engine, error) {
	m := metrics.New()

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	handler := api.NewHandler(store, log, m, cfg.Server.RequestTimeout)
	mw := api.NewMiddleware(log, m, limiter)
	return api.NewRouter(handler, mw, m, cfg.Server.AllowedOrigins, cfg.Server.TrustedProxies)
}
