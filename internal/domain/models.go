package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Target is a (site, url) pair scheduled for ingestion.
type Target struct {
	Site string
	URL  string
	Name string // optional seed hint, used only on first insert
}

// NormalizedRecord is the output shape every site adapter must produce.
// Fields that could not be extracted are left nil rather than zeroed.
type NormalizedRecord struct {
	Site     string
	URL      string
	Name     string
	Price    *decimal.Decimal
	Currency string
	InStock  *bool
	OnSale   *bool
}

// Product is the canonical identity for one tracked page,
// unique on (site, url).
type Product struct {
	ProductID int64
	Site      string
	URL       string
	Name      string
	CreatedAt time.Time
}

// PriceObservation is one immutable price reading for a product.
// The sequence ordered by TS per product is the authoritative history.
type PriceObservation struct {
	ID         int64
	ProductID  int64
	TS         time.Time
	Price      *decimal.Decimal
	Currency   string
	InStock    *bool
	OnSale     *bool
	SourceHash string
}

// DropEvent is a detected decrease between two consecutive known prices.
type DropEvent struct {
	ProductID    int64           `json:"product_id"`
	PriorPrice   decimal.Decimal `json:"prior_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	DropPct      decimal.Decimal `json:"drop_pct"`
	ObservedAt   time.Time       `json:"observed_at"`
}

// ItemFailure records why a single target failed during a run.
type ItemFailure struct {
	Target Target `json:"target"`
	Reason string `json:"reason"`
}

// RunSummary aggregates per-item outcomes for one ingestion run.
type RunSummary struct {
	RunID     string        `json:"run_id"`
	Succeeded int           `json:"succeeded"`
	Skipped   int           `json:"skipped"`
	Failed    []ItemFailure `json:"failed"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// FailedCount returns the number of failed items.
func (s RunSummary) FailedCount() int { return len(s.Failed) }
