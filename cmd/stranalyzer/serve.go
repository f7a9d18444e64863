package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/stranalyzer/internal/config"
	"github.com/kailas-cloud/stranalyzer/internal/db"
	"github.com/kailas-cloud/stranalyzer/internal/domain"
	logpkg "github.com/kailas-cloud/stranalyzer/internal/logger"
	"github.com/kailas-cloud/stranalyzer/internal/metrics"
	"github.com/kailas-cloud/stranalyzer/internal/repository/entry"
	"github.com/kailas-cloud/stranalyzer/internal/repository/factcache"
	"github.com/kailas-cloud/stranalyzer/internal/transport/catfact"
	chiTransport "github.com/kailas-cloud/stranalyzer/internal/transport/chi"
	openaiFacts "github.com/kailas-cloud/stranalyzer/internal/transport/openai"
	factsuc "github.com/kailas-cloud/stranalyzer/internal/usecase/facts"
	healthuc "github.com/kailas-cloud/stranalyzer/internal/usecase/health"
	profileuc "github.com/kailas-cloud/stranalyzer/internal/usecase/profile"
	strusecase "github.com/kailas-cloud/stranalyzer/internal/usecase/strings"
	"github.com/kailas-cloud/stranalyzer/internal/version"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func loadConfig(opts *rootOptions) (config.Config, string, error) {
	env := opts.env
	if env == "" {
		env = config.GetEnv()
	}
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return config.Config{}, "", fmt.Errorf("load config: %w", err)
	}
	return cfg, env, nil
}

func runServe(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, env, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting stranalyzer API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := openStore(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterStringsMetrics()
	metrics.RegisterFactMetrics()

	// Composition root
	entryRepo := entry.New(store, cfg.Storage.KeyPrefix).
		WithCompression(entry.Compression(cfg.Storage.Compression))
	stringsSvc := strusecase.New(entryRepo).WithMaxLength(cfg.Analysis.MaxLength)

	facts := buildFactSource(cfg.Profile, cfg.Storage.KeyPrefix, store, logger)
	profileSvc := profileuc.New(profileuc.Identity{
		FullName: cfg.Profile.FullName,
		Email:    cfg.Profile.Email,
		Stack:    cfg.Profile.Stack,
	}, facts)

	var factChecker healthuc.FactChecker
	if hc, ok := facts.(domain.HealthChecker); ok {
		factChecker = hc
	}
	healthSvc := healthuc.New(store, factChecker)

	server := chiTransport.NewServer(stringsSvc, profileSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	chiTransport.HandlerWithOptions(server, chiTransport.ChiServerOptions{BaseRouter: r})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err //nolint:wrapcheck // already wrapped above
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// buildFactSource assembles the decorator chain: provider -> Cached -> Instrumented.
func buildFactSource(
	cfg config.ProfileConfig,
	keyPrefix string,
	store db.Store,
	logger *zap.Logger,
) domain.FactSource {
	var source domain.FactSource
	switch cfg.FactProvider {
	case config.FactProviderOpenAI:
		source = openaiFacts.NewFactSource(&openaiFacts.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: time.Duration(cfg.FactTimeoutSec) * time.Second,
			Logger:  logger,
		})
	default:
		source = catfact.New(catfact.Config{
			BaseURL: cfg.FactBaseURL,
			Timeout: time.Duration(cfg.FactTimeoutSec) * time.Second,
		})
	}

	if cfg.FactCacheTTLSec > 0 && store != nil {
		source = factcache.New(source, store, keyPrefix,
			time.Duration(cfg.FactCacheTTLSec)*time.Second, metrics.FactCacheTotal, logger)
	}

	return factsuc.NewInstrumentedSource(source, cfg.FactProvider, logger)
}
