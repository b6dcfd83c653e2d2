package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pricetracker/internal/alert"
	"pricetracker/internal/config"
	"pricetracker/internal/ingest"
	"pricetracker/internal/monitoring"
	"pricetracker/internal/storage"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	ingestor   *ingest.Ingestor
	pgStore    *storage.PostgresStore
	redisStore *storage.RedisStore
	notifier   *alert.SlackNotifier
	metrics    *monitoring.Metrics
	logger     *zap.Logger
	dropWindow time.Duration
	threshold  decimal.Decimal
}

func NewServer(
	cfg *config.Config,
	ing *ingest.Ingestor,
	ps *storage.PostgresStore,
	rs *storage.RedisStore,
	n *alert.SlackNotifier,
	m *monitoring.Metrics,
	l *zap.Logger,
	threshold decimal.Decimal,
) *Server {
	s := &Server{
		config:     cfg,
		ingestor:   ing,
		pgStore:    ps,
		redisStore: rs,
		notifier:   n,
		metrics:    m,
		logger:     l,
		dropWindow: time.Duration(cfg.DropWindowHours) * time.Hour,
		threshold:  threshold,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute, // refresh runs synchronously
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
