package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pricetracker/internal/adapters"
	"pricetracker/internal/alert"
	"pricetracker/internal/api"
	"pricetracker/internal/config"
	"pricetracker/internal/detect"
	"pricetracker/internal/fetch"
	"pricetracker/internal/ingest"
	"pricetracker/internal/monitoring"
	"pricetracker/internal/storage"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}
	threshold, err := decimal.NewFromString(cfg.DropThresholdPct)
	if err != nil {
		logger.Fatal("malformed DROP_THRESHOLD_PCT", zap.String("value", cfg.DropThresholdPct), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Storage Layer
	pgStore, err := storage.NewPostgresStore(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pgStore.Close()
	if err := pgStore.InitSchema(ctx); err != nil {
		logger.Fatal("failed to initialize schema", zap.Error(err))
	}
	if n, err := pgStore.SeedTargets(ctx, seedTargets); err != nil {
		logger.Fatal("failed to seed tracked products", zap.Error(err))
	} else if n > 0 {
		logger.Info("seeded tracked products", zap.Int("inserted", n))
	}
	redisStore := storage.NewRedisStore(cfg.RedisAddr)
	defer redisStore.Close()

	// Initialize Monitoring and the site adapter registry
	metrics := monitoring.NewMetrics()
	registry := adapters.Default()

	// Initialize the page fetcher
	var fetcher fetch.Fetcher
	switch cfg.FetchMode {
	case "browser":
		fetcher = fetch.NewBrowserFetcher(time.Duration(cfg.FetchTimeout) * time.Second)
	default:
		agents := fetch.NewAgentPool(cfg.UserAgent, time.Now().UnixNano())
		fetcher = fetch.NewHTTPFetcher(time.Duration(cfg.FetchTimeout)*time.Second, agents)
	}

	// Initialize the ingestion pipeline and alerting
	politeTTL := time.Duration(cfg.PolitenessMinutes) * time.Minute
	ingestor := ingest.NewIngestor(registry, fetcher, pgStore, redisStore, politeTTL, metrics, logger, cfg.IngestWorkers)
	notifier := alert.NewSlackNotifier(cfg.SlackWebhookURL, redisStore,
		time.Duration(cfg.AlertDedupHours)*time.Hour, logger)

	// Initialize API Server
	server := api.NewServer(cfg, ingestor, pgStore, redisStore, notifier, metrics, logger, threshold)

	if cfg.RefreshIntervalMinutes > 0 {
		go runScheduler(ctx, cfg, pgStore, ingestor, notifier, metrics, logger, threshold)
	}

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	<-ctx.Done()
	stop()

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

// runScheduler drives periodic ingestion runs followed by drop detection
// and alert delivery.
func runScheduler(
	ctx context.Context,
	cfg *config.Config,
	pgStore *storage.PostgresStore,
	ingestor *ingest.Ingestor,
	notifier *alert.SlackNotifier,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
	threshold decimal.Decimal,
) {
	interval := time.Duration(cfg.RefreshIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("scheduler started", zap.Duration("interval", interval))

	refresh(ctx, cfg, pgStore, ingestor, notifier, metrics, logger, threshold)
	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopping")
			return
		case <-ticker.C:
			refresh(ctx, cfg, pgStore, ingestor, notifier, metrics, logger, threshold)
		}
	}
}

func refresh(
	ctx context.Context,
	cfg *config.Config,
	pgStore *storage.PostgresStore,
	ingestor *ingest.Ingestor,
	notifier *alert.SlackNotifier,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
	threshold decimal.Decimal,
) {
	targets, err := pgStore.ListTargets(ctx)
	if err != nil {
		logger.Error("scheduler: failed to load target list", zap.Error(err))
		return
	}

	summary, err := ingestor.Run(ctx, targets, false)
	if err != nil {
		logger.Error("scheduler: ingestion run aborted", zap.String("run_id", summary.RunID), zap.Error(err))
		return
	}

	series, products, err := detect.LoadSeries(ctx, pgStore)
	if err != nil {
		logger.Error("scheduler: failed to load observation history", zap.Error(err))
		return
	}
	events := detect.Detect(series, detect.Options{
		Since:      time.Now().UTC().Add(-time.Duration(cfg.DropWindowHours) * time.Hour),
		MinDropPct: threshold,
	})
	metrics.DropEventsTotal.Add(float64(len(events)))

	if err := notifier.NotifyDrops(ctx, events, products); err != nil {
		logger.Error("scheduler: alert delivery failed", zap.Error(err))
	}
}
