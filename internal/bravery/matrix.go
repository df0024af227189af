// Package bravery scores how unconventional a campaign's execution plan is.
// Pure and deterministic: same plan text, same scores, no I/O.
package bravery

import (
	"math"
	"strings"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/lexicon"
)

// Dimension weights for the total score.
const (
	weightPhysicality     = 0.2
	weightRisk            = 0.3
	weightCulturalTension = 0.2
	weightNovelty         = 0.3
)

// clichePenalty is subtracted from novelty per matched cliche format.
const clichePenalty = 2.0

// Score computes the bravery matrix for an execution plan.
//
// Each dimension counts lexicon hits in the lower-cased concatenation of
// the plan and maps them to min(round(hits/5*10), 10). Novelty loses two
// points per cliche-format phrase, floored at zero. An empty plan returns
// the neutral default {5,5,5,5,5} so incomplete drafts are not penalized.
func Score(executionPlan []string) campaign.BraveryScores {
	if len(executionPlan) == 0 {
		return campaign.BraveryScores{
			Physicality:     5,
			Risk:            5,
			CulturalTension: 5,
			Novelty:         5,
			TotalScore:      5,
		}
	}

	text := strings.ToLower(strings.Join(executionPlan, " "))

	s := campaign.BraveryScores{
		Physicality:     dimensionScore(text, lexicon.Physicality),
		Risk:            dimensionScore(text, lexicon.Risk),
		CulturalTension: dimensionScore(text, lexicon.CulturalTension),
	}

	novelty := dimensionScore(text, lexicon.Novelty)
	novelty -= clichePenalty * float64(lexicon.Hits(text, lexicon.Cliches))
	if novelty < 0 {
		novelty = 0
	}
	s.Novelty = novelty

	total := s.Physicality*weightPhysicality +
		s.Risk*weightRisk +
		s.CulturalTension*weightCulturalTension +
		s.Novelty*weightNovelty
	s.TotalScore = math.Round(total*10) / 10

	return s
}

func dimensionScore(text string, terms []string) float64 {
	score := math.Round(float64(lexicon.Hits(text, terms)) / 5.0 * 10.0)
	if score > 10 {
		return 10
	}
	return score
}
