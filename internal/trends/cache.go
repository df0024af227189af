// Package trends caches the cultural-trend snapshot the pipeline reads.
// The cache is loaded once from the news-trends collaborator at startup
// and kept fresh by bus events; the pipeline never fetches mid-run.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
)

type Cache struct {
	client *http.Client
	logger *slog.Logger

	mu        sync.RWMutex
	snapshot  []campaign.Trend
	refreshed time.Time
}

func NewCache(logger *slog.Logger) *Cache {
	return &Cache{
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// LoadFromURL fetches the collaborator's trend list and replaces the
// snapshot. Called once at startup; a failure leaves the cache empty,
// which downstream treats as "no trends", never an error.
func (c *Cache) LoadFromURL(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build trends request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch trends: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trends collaborator returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read trends response: %w", err)
	}

	var trends []campaign.Trend
	if err := json.Unmarshal(body, &trends); err != nil {
		return fmt.Errorf("parse trends: %w", err)
	}

	c.replace(trends)
	c.logger.Info("trend snapshot loaded", "count", len(trends))
	return nil
}

// HandleUpdate is the bus handler for trend snapshot updates. The payload
// is the full replacement array, same shape as the collaborator endpoint.
func (c *Cache) HandleUpdate(subject string, data []byte) {
	var trends []campaign.Trend
	if err := json.Unmarshal(data, &trends); err != nil {
		c.logger.Error("failed to parse trend update", "subject", subject, "error", err)
		return
	}
	c.replace(trends)
	c.logger.Info("trend snapshot updated", "count", len(trends))
}

func (c *Cache) replace(trends []campaign.Trend) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = trends
	c.refreshed = time.Now().UTC()
}

// Sample returns up to n trends drawn without replacement using the
// caller's source, so a pipeline run resolves its randomness before the
// deterministic prompt build.
func (c *Cache) Sample(n int, rng *rand.Rand) []campaign.Trend {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n >= len(c.snapshot) {
		out := make([]campaign.Trend, len(c.snapshot))
		copy(out, c.snapshot)
		return out
	}

	perm := rng.Perm(len(c.snapshot))
	out := make([]campaign.Trend, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, c.snapshot[idx])
	}
	return out
}

// Size returns the current snapshot length.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshot)
}

// RefreshedAt returns when the snapshot last changed; zero when never.
func (c *Cache) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshed
}
