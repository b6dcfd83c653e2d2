// Package alert delivers drop notifications to a Slack incoming webhook.
// Detection itself is idempotent, so delivery de-duplication lives here:
// each (product, observation) pair is announced at most once per TTL.
package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"pricetracker/internal/domain"
)

// Deduper claims an alert key, returning true only for the first claim.
type Deduper interface {
	MarkAlerted(ctx context.Context, productID int64, observedAt time.Time, ttl time.Duration) (bool, error)
}

// SlackNotifier posts drop alerts as a single webhook message.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
	dedup      Deduper
	dedupTTL   time.Duration
	logger     *zap.Logger
}

func NewSlackNotifier(webhookURL string, dedup Deduper, dedupTTL time.Duration, logger *zap.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		dedup:      dedup,
		dedupTTL:   dedupTTL,
		logger:     logger,
	}
}

// NotifyDrops renders and delivers the given events. Events already claimed
// by the deduper are silently dropped; with no webhook configured the
// message is only logged.
func (n *SlackNotifier) NotifyDrops(ctx context.Context, events []domain.DropEvent, products map[int64]domain.Product) error {
	fresh := events[:0:0]
	for _, e := range events {
		if n.dedup != nil {
			first, err := n.dedup.MarkAlerted(ctx, e.ProductID, e.ObservedAt, n.dedupTTL)
			if err != nil {
				n.logger.Warn("alert dedup check failed, sending anyway",
					zap.Int64("product_id", e.ProductID), zap.Error(err))
			} else if !first {
				continue
			}
		}
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		n.logger.Info("no new price drops to announce")
		return nil
	}

	msg := RenderMessage(fresh, products)
	if n.webhookURL == "" {
		n.logger.Info("slack webhook not configured, logging alert only", zap.String("message", msg))
		return nil
	}
	return n.post(ctx, msg)
}

// RenderMessage formats drop events into the human-readable alert text.
func RenderMessage(events []domain.DropEvent, products map[int64]domain.Product) string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		p := products[e.ProductID]
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("product %d", e.ProductID)
		}
		lines = append(lines, fmt.Sprintf("%s – %s: %s → %s (%s%%)\n%s",
			p.Site, name,
			e.PriorPrice.StringFixed(2), e.CurrentPrice.StringFixed(2),
			e.DropPct.StringFixed(2), p.URL))
	}
	return "Price drops detected:\n" + strings.Join(lines, "\n\n")
}

func (n *SlackNotifier) post(ctx context.Context, msg string) error {
	payload, err := json.Marshal(map[string]string{"text": msg})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack post failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("slack post failed: status %d", resp.StatusCode)
	}
	n.logger.Info("posted drop alerts to slack", zap.Int("events", strings.Count(msg, "\n\n")+1))
	return nil
}
