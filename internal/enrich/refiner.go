// Package enrich is the optional-enrichment port for the external
// creative-director and disruptive-pass collaborators. Both are black
// boxes that take the current draft and return a draft-shaped object;
// failure is always non-fatal for the run.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
)

// Port is the single-method enrichment contract the pipeline depends on.
type Port interface {
	Name() string
	Enrich(ctx context.Context, draft campaign.Draft) (campaign.Draft, error)
}

// Refiner posts the draft to a collaborator URL and expects a draft back.
type Refiner struct {
	name   string
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewRefiner(name, url string, logger *slog.Logger) *Refiner {
	return &Refiner{
		name:   name,
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

func (r *Refiner) Name() string { return r.name }

// Enrich sends the draft and returns the collaborator's version. Any
// failure returns the input draft unchanged along with the error so the
// pipeline can log and continue.
func (r *Refiner) Enrich(ctx context.Context, draft campaign.Draft) (campaign.Draft, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return draft, fmt.Errorf("marshal draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return draft, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return draft, fmt.Errorf("%s call: %w", r.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return draft, fmt.Errorf("read %s response: %w", r.name, err)
	}

	if resp.StatusCode != http.StatusOK {
		return draft, fmt.Errorf("%s returned %d", r.name, resp.StatusCode)
	}

	var enriched campaign.Draft
	if err := json.Unmarshal(respBody, &enriched); err != nil {
		return draft, fmt.Errorf("parse %s response: %w", r.name, err)
	}

	// A collaborator that drops the audit log would hide every earlier
	// stage's trail; restore it before handing the draft back.
	if len(enriched.Modifications) < len(draft.Modifications) {
		enriched.Modifications = draft.Modifications
	}

	return enriched, nil
}
