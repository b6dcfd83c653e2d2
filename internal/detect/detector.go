// Package detect computes price drop events from immutable observation
// history. Detection is a pure function of its input: it may be recomputed
// at any time and yields identical events for identical history.
package detect

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pricetracker/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Options controls which detected drops are reported.
type Options struct {
	// Since restricts reported events to observations at or after this
	// instant. The comparison baseline is never restricted, only the
	// reported event's timestamp. Zero means no restriction.
	Since time.Time

	// MinDropPct filters out drops smaller than this percentage.
	// Zero reports every strict decrease.
	MinDropPct decimal.Decimal
}

// Detect scans each product's observations in capture order and emits an
// event whenever a known price falls strictly below the last known price
// before it. Observations with no price are gaps: they neither emit events
// nor reset the baseline. A zero or unknown baseline never emits.
func Detect(series map[int64][]domain.PriceObservation, opts Options) []domain.DropEvent {
	var events []domain.DropEvent

	for productID, obs := range series {
		ordered := make([]domain.PriceObservation, len(obs))
		copy(ordered, obs)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].TS.Before(ordered[j].TS)
		})

		var prev *decimal.Decimal
		for _, o := range ordered {
			if o.Price == nil {
				continue
			}
			curr := *o.Price
			if prev != nil && prev.IsPositive() && curr.LessThan(*prev) {
				dropPct := prev.Sub(curr).Div(*prev).Mul(hundred).Round(2)
				if dropPct.GreaterThanOrEqual(opts.MinDropPct) &&
					(opts.Since.IsZero() || !o.TS.Before(opts.Since)) {
					events = append(events, domain.DropEvent{
						ProductID:    productID,
						PriorPrice:   *prev,
						CurrentPrice: curr,
						DropPct:      dropPct,
						ObservedAt:   o.TS,
					})
				}
			}
			p := curr
			prev = &p
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].ObservedAt.Equal(events[j].ObservedAt) {
			return events[i].ProductID < events[j].ProductID
		}
		return events[i].ObservedAt.Before(events[j].ObservedAt)
	})
	return events
}
