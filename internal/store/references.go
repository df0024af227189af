package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
)

// LoadReferences reads the full reference corpus, embeddings included.
// A row with no embedding comes back with a nil vector and still serves
// the keyword matcher.
func (s *Store) LoadReferences(ctx context.Context) ([]campaign.Reference, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, brand, industry, audiences, objectives, emotional_appeals, strategy, embedding::text
		FROM reference_campaigns
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query reference campaigns: %w", err)
	}
	defer rows.Close()

	var refs []campaign.Reference
	for rows.Next() {
		var ref campaign.Reference
		var embedding *string
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Brand, &ref.Industry, &ref.Audiences, &ref.Objectives, &ref.EmotionalAppeals, &ref.Strategy, &embedding); err != nil {
			return nil, fmt.Errorf("scan reference campaign: %w", err)
		}
		if embedding != nil {
			ref.Embedding = parsePgVector(*embedding)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read reference campaigns: %w", err)
	}
	return refs, nil
}

// UpdateReferenceEmbedding writes one rebuilt embedding back.
func (s *Store) UpdateReferenceEmbedding(ctx context.Context, id uuid.UUID, embedding []float64) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE reference_campaigns SET embedding = $1, embedded_at = now()
		WHERE id = $2`,
		pgVector(embedding), id,
	)
	if err != nil {
		return fmt.Errorf("update reference embedding: %w", err)
	}
	return nil
}
