// Package corpus holds the in-memory reference-campaign snapshot the
// matcher reads. The snapshot is loaded once at startup, from Postgres
// when configured or from the embedded seed set otherwise, and only
// replaced wholesale (startup load, embeddings rebuild).
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/matcher"
)

// BatchEmbedder is the slice of the llm client the rebuild needs.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, model string, texts []string) ([][]float64, error)
}

// Persister writes rebuilt embeddings back to durable storage. Nil when
// the service runs on the seed corpus.
type Persister interface {
	UpdateReferenceEmbedding(ctx context.Context, id uuid.UUID, embedding []float64) error
}

type Corpus struct {
	logger *slog.Logger

	mu   sync.RWMutex
	refs []campaign.Reference
}

func New(refs []campaign.Reference, logger *slog.Logger) *Corpus {
	return &Corpus{refs: refs, logger: logger}
}

// References returns a copy of the current snapshot.
func (c *Corpus) References() []campaign.Reference {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]campaign.Reference, len(c.refs))
	copy(out, c.refs)
	return out
}

func (c *Corpus) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.refs)
}

// EmbeddedCount reports how many references currently carry a vector.
func (c *Corpus) EmbeddedCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, ref := range c.refs {
		if len(ref.Embedding) > 0 {
			n++
		}
	}
	return n
}

// Rebuild re-embeds every reference and swaps in the updated snapshot.
// References whose embedding call failed keep their previous vector. When
// a persister is configured, successful vectors are written through;
// persistence failures are logged and do not fail the rebuild.
func (c *Corpus) Rebuild(ctx context.Context, embedder BatchEmbedder, model string, persister Persister) (int, error) {
	refs := c.References()
	if len(refs) == 0 {
		return 0, nil
	}

	texts := make([]string, len(refs))
	for i, ref := range refs {
		texts[i] = matcher.ReferenceText(ref)
	}

	vectors, err := embedder.EmbedBatch(ctx, model, texts)
	if err != nil {
		return 0, fmt.Errorf("embed corpus: %w", err)
	}

	updated := 0
	for i, vec := range vectors {
		if len(vec) == 0 {
			continue
		}
		refs[i].Embedding = vec
		updated++

		if persister != nil {
			if err := persister.UpdateReferenceEmbedding(ctx, refs[i].ID, vec); err != nil {
				c.logger.Warn("failed to persist embedding", "reference", refs[i].Name, "error", err)
			}
		}
	}

	c.mu.Lock()
	c.refs = refs
	c.mu.Unlock()

	c.logger.Info("corpus embeddings rebuilt", "total", len(refs), "updated", updated)
	return updated, nil
}
