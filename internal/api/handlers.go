package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pricetracker/internal/detect"
	"pricetracker/internal/report"
)

type refreshRequest struct {
	Force bool `json:"force"` // bypass the politeness window
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	targets, err := s.pgStore.ListTargets(r.Context())
	if err != nil {
		s.logger.Error("failed to load target list", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not load targets")
		return
	}

	summary, err := s.ingestor.Run(r.Context(), targets, req.Force)
	if err != nil {
		s.logger.Error("ingestion run aborted", zap.String("run_id", summary.RunID), zap.Error(err))
		s.respondWithJSON(w, http.StatusServiceUnavailable, summary)
		return
	}
	s.respondWithJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDrops(w http.ResponseWriter, r *http.Request) {
	series, products, err := detect.LoadSeries(r.Context(), s.pgStore)
	if err != nil {
		s.logger.Error("failed to load observation history", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not load history")
		return
	}

	events := detect.Detect(series, detect.Options{
		Since:      time.Now().UTC().Add(-s.dropWindow),
		MinDropPct: s.threshold,
	})
	s.metrics.DropEventsTotal.Add(float64(len(events)))

	type dropItem struct {
		ProductID    int64  `json:"product_id"`
		Site         string `json:"site"`
		Name         string `json:"name"`
		URL          string `json:"url"`
		PriorPrice   string `json:"prior_price"`
		CurrentPrice string `json:"current_price"`
		DropPct      string `json:"drop_pct"`
		ObservedAt   string `json:"observed_at"`
	}
	items := make([]dropItem, 0, len(events))
	for _, e := range events {
		p := products[e.ProductID]
		items = append(items, dropItem{
			ProductID:    e.ProductID,
			Site:         p.Site,
			Name:         p.Name,
			URL:          p.URL,
			PriorPrice:   e.PriorPrice.StringFixed(2),
			CurrentPrice: e.CurrentPrice.StringFixed(2),
			DropPct:      e.DropPct.StringFixed(2),
			ObservedAt:   e.ObservedAt.UTC().Format(time.RFC3339),
		})
	}
	s.respondWithJSON(w, http.StatusOK, map[string]any{"drops": items})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	latest, err := report.Latest(r.Context(), s.pgStore, 24*time.Hour)
	if err != nil {
		s.logger.Error("failed to build price summary", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not build summary")
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]string{"summary": report.RenderSummary(latest)})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	healthStatus := make(map[string]string)

	if err := s.pgStore.Ping(ctx); err != nil {
		healthStatus["postgres"] = "unhealthy"
		s.logger.Error("health check failed for postgres", zap.Error(err))
	} else {
		healthStatus["postgres"] = "healthy"
	}

	if err := s.redisStore.Ping(ctx); err != nil {
		healthStatus["redis"] = "unhealthy"
		s.logger.Error("health check failed for redis", zap.Error(err))
	} else {
		healthStatus["redis"] = "healthy"
	}

	isHealthy := healthStatus["postgres"] == "healthy" && healthStatus["redis"] == "healthy"
	if !isHealthy {
		s.respondWithJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}

	s.respondWithJSON(w, http.StatusOK, healthStatus)
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
