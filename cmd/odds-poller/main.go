package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cypherlabdev/odds-ingestion-service/internal/cache"
	"github.com/cypherlabdev/odds-ingestion-service/internal/config"
	"github.com/cypherlabdev/odds-ingestion-service/internal/dedup"
	httpHandler "github.com/cypherlabdev/odds-ingestion-service/internal/handler/http"
	"github.com/cypherlabdev/odds-ingestion-service/internal/messaging"
	"github.com/cypherlabdev/odds-ingestion-service/internal/metrics"
	"github.com/cypherlabdev/odds-ingestion-service/internal/poller"
	"github.com/cypherlabdev/odds-ingestion-service/internal/provider"
	"github.com/cypherlabdev/odds-ingestion-service/internal/service"
	"github.com/cypherlabdev/odds-ingestion-service/internal/store"
)

type options struct {
	configPath string
	loop       bool
	dryRun     bool
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "odds-poller",
		Short:         "Poll bookmaker odds and store snapshots",
		Long:          "Fetch odds for tracked leagues, skip unchanged quotes and append the rest to the snapshot store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().BoolVar(&opts.loop, "loop", false, "Poll continuously at the configured interval")
	cmd.Flags().BoolVar(&opts.dryRun, "dry", false, "Log snapshots instead of storing them")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	// Load configuration
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return err
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting odds-poller")

	dryRun := opts.dryRun
	if cfg.Provider.APIKey == "" && !dryRun {
		logger.Warn().Msg("no provider API key configured, forcing dry run")
		dryRun = true
	}

	leagues, err := cfg.Polling.ParseLeagues()
	if err != nil {
		return err
	}
	markets, err := cfg.Polling.ParseMarkets()
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Create snapshot store
	pg, err := store.NewPostgresStore(ctx, store.PostgresConfig{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to PostgreSQL")
		return err
	}
	defer pg.Close()
	logger.Info().Msg("connected to PostgreSQL")

	deps := map[string]httpHandler.Pinger{"postgres": pg}
	var publishers []service.SnapshotPublisher
	var current service.CurrentOddsCache

	// Create Redis cache
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		}, logger)
		defer redisCache.Close()

		// Test Redis connection
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to connect to Redis")
			return err
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

		publishers = append(publishers, redisCache)
		current = redisCache
		deps["redis"] = redisCache
	}

	// Create Kafka publisher
	if cfg.Kafka.Enabled {
		publisher := messaging.NewKafkaPublisher(messaging.KafkaPublisherConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}, logger)
		defer publisher.Close()

		publishers = append(publishers, publisher)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka publisher initialized")
	}

	oddsProvider := provider.NewTheOddsAPI(provider.Config{
		APIKey:            cfg.Provider.APIKey,
		BaseURL:           cfg.Provider.BaseURL,
		Timeout:           cfg.Provider.Timeout,
		MaxRetries:        cfg.Provider.MaxRetries,
		BackoffBase:       cfg.Provider.BackoffBase,
		Regions:           strings.Join(cfg.Provider.Regions, ","),
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
	}, logger, provider.WithMetrics(m))

	dedupCache := dedup.New()
	defer dedupCache.Reset()

	orchestrator := poller.NewOrchestrator(
		poller.Config{
			Leagues:     leagues,
			Markets:     markets,
			DedupWindow: cfg.Polling.DedupeWindow(),
			Lookahead:   cfg.Polling.Lookahead(),
			DryRun:      dryRun,
		},
		oddsProvider,
		pg,
		pg,
		dedupCache,
		logger,
		poller.WithPublishers(publishers...),
		poller.WithMetrics(m),
	)

	if !opts.loop {
		summary, err := orchestrator.RunOnce(ctx)
		if err != nil {
			return err
		}
		if summary.Totals().Errors > 0 {
			logger.Warn().Int("errors", summary.Totals().Errors).Msg("poll finished with errors")
		}
		return nil
	}

	server := newServer(cfg.Server, service.NewAnalyticsService(pg, current, logger), deps, logger)

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	err = orchestrator.RunLoop(ctx, cfg.Polling.Interval())

	logger.Info().Msg("shutting down gracefully...")

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newServer builds the ops and analytics HTTP server
func newServer(cfg config.ServerConfig, analytics *service.AnalyticsService, deps map[string]httpHandler.Pinger, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()

	// Health and monitoring endpoints
	httpHandler.NewHealthHandler(deps, logger).RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Register API routes
	httpHandler.NewAnalyticsHandler(analytics, logger).RegisterRoutes(mux)
	logger.Info().Msg("API routes registered")

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "odds-poller").Logger()
}
