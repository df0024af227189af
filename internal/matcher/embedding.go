package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
)

// Embedder is the slice of the llm client the embedding matcher needs.
type Embedder interface {
	Embed(ctx context.Context, model, text string) ([]float64, error)
}

// EmbeddingMatcher ranks references by cosine similarity between the
// brief's embedding and precomputed corpus embeddings. It sits behind the
// same contract as the keyword matcher; Select falls back to the keyword
// scorer whenever this path errors or returns nothing.
type EmbeddingMatcher struct {
	embedder Embedder
	model    string
	cache    *lru.Cache[string, []float64]
	logger   *slog.Logger
}

func NewEmbeddingMatcher(embedder Embedder, model string, logger *slog.Logger) (*EmbeddingMatcher, error) {
	cache, err := lru.New[string, []float64](256)
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &EmbeddingMatcher{
		embedder: embedder,
		model:    model,
		cache:    cache,
		logger:   logger,
	}, nil
}

// Match returns the three corpus entries most similar to the input brief.
// Errors when the brief cannot be embedded or no corpus entry carries an
// embedding, so the caller can fall back.
func (m *EmbeddingMatcher) Match(ctx context.Context, input campaign.Input, corpus []campaign.Reference) ([]campaign.Reference, error) {
	text := InputText(input)

	vec, ok := m.cache.Get(text)
	if !ok {
		var err error
		vec, err = m.embedder.Embed(ctx, m.model, text)
		if err != nil {
			return nil, fmt.Errorf("embed brief: %w", err)
		}
		m.cache.Add(text, vec)
	}

	type ranked struct {
		ref campaign.Reference
		sim float64
	}
	var candidates []ranked
	for _, ref := range corpus {
		if len(ref.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, ranked{ref: ref, sim: cosineSimilarity(vec, ref.Embedding)})
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no corpus embeddings available")
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].sim > candidates[j].sim })

	n := maxReferences
	if len(candidates) < n {
		n = len(candidates)
	}
	out := make([]campaign.Reference, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[i].ref
	}
	return out, nil
}

// Selector chooses between the embedding and keyword paths. A nil
// embedding matcher always uses keywords.
type Selector struct {
	embedding *EmbeddingMatcher
	logger    *slog.Logger
}

func NewSelector(embedding *EmbeddingMatcher, logger *slog.Logger) *Selector {
	return &Selector{embedding: embedding, logger: logger}
}

// Select tries the embedding matcher first and degrades to the keyword
// scorer on any failure. The keyword path never errors.
func (s *Selector) Select(ctx context.Context, input campaign.Input, corpus []campaign.Reference) []campaign.Reference {
	if s.embedding != nil {
		refs, err := s.embedding.Match(ctx, input, corpus)
		if err == nil && len(refs) > 0 {
			return refs
		}
		if err != nil {
			s.logger.Warn("embedding match failed, falling back to keyword scoring", "error", err)
		}
	}
	return Match(input, corpus)
}

// InputText flattens a brief into the text that gets embedded.
func InputText(input campaign.Input) string {
	parts := []string{
		input.Brand,
		input.Industry,
		strings.Join(input.TargetAudience, ", "),
		strings.Join(input.Objectives, ", "),
		strings.Join(input.EmotionalAppeal, ", "),
		input.Style,
	}
	return strings.TrimSpace(strings.Join(parts, " | "))
}

// ReferenceText flattens a reference campaign for corpus embedding.
func ReferenceText(ref campaign.Reference) string {
	parts := []string{
		ref.Name,
		ref.Industry,
		strings.Join(ref.Audiences, ", "),
		strings.Join(ref.Objectives, ", "),
		strings.Join(ref.EmotionalAppeals, ", "),
		ref.Strategy,
	}
	return strings.TrimSpace(strings.Join(parts, " | "))
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
