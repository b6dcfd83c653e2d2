package ingest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pricetracker/internal/adapters"
	"pricetracker/internal/domain"
	"pricetracker/internal/fetch"
	"pricetracker/internal/monitoring"
	"pricetracker/internal/storage"
)

// FetchGate tracks recently fetched URLs so repeated runs inside the
// politeness window do not hammer the same pages. A nil gate disables the
// check entirely.
type FetchGate interface {
	RecentlyFetched(ctx context.Context, url string) (bool, error)
	MarkFetched(ctx context.Context, url string, ttl time.Duration) error
}

// Ingestor drives one ingestion run: resolve adapter, fetch, parse, resolve
// product identity, append snapshot. Per-item errors are accumulated into
// the run summary; only store unavailability aborts the run.
type Ingestor struct {
	registry *adapters.Registry
	fetcher  fetch.Fetcher
	resolver *Resolver
	store    Store
	gate     FetchGate
	gateTTL  time.Duration
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	workers  int
}

func NewIngestor(
	registry *adapters.Registry,
	fetcher fetch.Fetcher,
	store Store,
	gate FetchGate,
	gateTTL time.Duration,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
	workers int,
) *Ingestor {
	if workers < 1 {
		workers = 1
	}
	return &Ingestor{
		registry: registry,
		fetcher:  fetcher,
		resolver: NewResolver(store),
		store:    store,
		gate:     gate,
		gateTTL:  gateTTL,
		metrics:  metrics,
		logger:   logger,
		workers:  workers,
	}
}

type itemStatus int

const (
	statusSucceeded itemStatus = iota
	statusSkipped
	statusFailed
)

type outcome struct {
	target domain.Target
	status itemStatus
	reason string
	fatal  bool
}

// Run processes the target list through a bounded worker pool and returns
// the per-run summary. The returned error is non-nil only when the run was
// aborted (store unavailable or context canceled); already-written
// snapshots from such a run remain valid.
func (ing *Ingestor) Run(ctx context.Context, targets []domain.Target, force bool) (domain.RunSummary, error) {
	summary := domain.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	ing.metrics.RunsTotal.Inc()
	ing.logger.Info("ingestion run started",
		zap.String("run_id", summary.RunID),
		zap.Int("targets", len(targets)),
		zap.Bool("force", force),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan domain.Target)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < ing.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				results <- ing.processTarget(ctx, summary.RunID, t, force)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, t := range targets {
			select {
			case jobs <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var runErr error
	for res := range results {
		switch res.status {
		case statusSucceeded:
			summary.Succeeded++
			ing.metrics.IncTarget("succeeded")
		case statusSkipped:
			summary.Skipped++
			ing.metrics.IncTarget("skipped")
		case statusFailed:
			summary.Failed = append(summary.Failed, domain.ItemFailure{Target: res.target, Reason: res.reason})
			ing.metrics.IncTarget("failed")
		}
		if res.fatal && runErr == nil {
			runErr = errors.New("run aborted: " + res.reason)
			cancel()
		}
	}

	summary.Duration = time.Since(summary.StartedAt)
	ing.logger.Info("ingestion run finished",
		zap.String("run_id", summary.RunID),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.FailedCount()),
		zap.Duration("duration", summary.Duration),
	)
	return summary, runErr
}

func (ing *Ingestor) processTarget(ctx context.Context, runID string, t domain.Target, force bool) outcome {
	adapter, err := ing.registry.Resolve(t.URL)
	if err != nil {
		ing.logger.Info("no adapter for target, skipping",
			zap.String("run_id", runID), zap.String("url", t.URL))
		return outcome{target: t, status: statusSkipped}
	}

	if ing.gate != nil && !force {
		recent, gerr := ing.gate.RecentlyFetched(ctx, t.URL)
		if gerr != nil {
			ing.logger.Warn("politeness check failed, fetching anyway",
				zap.String("url", t.URL), zap.Error(gerr))
		} else if recent {
			ing.logger.Info("skipping recently fetched target",
				zap.String("run_id", runID), zap.String("url", t.URL))
			return outcome{target: t, status: statusSkipped}
		}
	}

	raw, status, err := ing.fetcher.Fetch(ctx, t.URL)
	if err != nil {
		ing.logger.Warn("fetch failed",
			zap.String("run_id", runID), zap.String("url", t.URL),
			zap.Int("status", status), zap.Error(err))
		ing.metrics.IncError("fetch_failed")
		return outcome{target: t, status: statusFailed, reason: err.Error()}
	}

	rec, err := adapter.Parse(raw, t.URL)
	if err != nil {
		ing.logger.Warn("parse failed, adapter may need maintenance",
			zap.String("run_id", runID), zap.String("url", t.URL), zap.Error(err))
		ing.metrics.IncError("parse_failed")
		return outcome{target: t, status: statusFailed, reason: err.Error()}
	}

	name := rec.Name
	if name == "" {
		name = t.Name
	}
	productID, err := ing.resolver.Resolve(ctx, rec.Site, t.URL, name)
	if err != nil {
		ing.metrics.IncError("store_failed")
		return outcome{
			target: t, status: statusFailed, reason: err.Error(),
			fatal: errors.Is(err, storage.ErrUnavailable),
		}
	}

	obs := domain.PriceObservation{
		ProductID:  productID,
		Price:      rec.Price,
		Currency:   rec.Currency,
		InStock:    rec.InStock,
		OnSale:     rec.OnSale,
		SourceHash: sourceHash(raw),
	}
	if _, err := ing.store.AppendObservation(ctx, obs); err != nil {
		ing.metrics.IncError("store_failed")
		return outcome{
			target: t, status: statusFailed, reason: err.Error(),
			fatal: errors.Is(err, storage.ErrUnavailable),
		}
	}

	if ing.gate != nil {
		if gerr := ing.gate.MarkFetched(ctx, t.URL, ing.gateTTL); gerr != nil {
			ing.logger.Warn("failed to mark url as fetched", zap.String("url", t.URL), zap.Error(gerr))
		}
	}

	ing.logger.Info("snapshot written",
		zap.String("run_id", runID),
		zap.String("url", t.URL),
		zap.Int64("product_id", productID),
		zap.String("hash", obs.SourceHash),
	)
	return outcome{target: t, status: statusSucceeded}
}
