// Package matcher ranks the reference-campaign corpus against an input
// brief along multiple weighted dimensions and selects three references
// that are both relevant and diverse.
package matcher

import (
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
)

// maxReferences is how many references the prompt builder receives.
const maxReferences = 3

// Dimensions holds the per-dimension scores attached to a candidate
// during matching. Ephemeral: discarded after selection.
type Dimensions struct {
	Industry   float64
	Audience   float64
	Objectives float64
	Emotion    float64
	Style      float64
	Sentiment  float64
	Tone       float64
}

func (d Dimensions) Total() float64 {
	return d.Industry + d.Audience + d.Objectives + d.Emotion + d.Style + d.Sentiment + d.Tone
}

type scoredCandidate struct {
	ref  campaign.Reference
	dims Dimensions
}

// Match scores every corpus entry against the input and returns up to
// three references: the top scorer, then up to two picks chosen to
// complement the weakest dimensions of the running selection, with a
// final wildcard swap for diversity. A corpus smaller than three returns
// whatever is available; an empty corpus returns an empty slice.
func Match(input campaign.Input, corpus []campaign.Reference) []campaign.Reference {
	if len(corpus) == 0 {
		return nil
	}

	scored := make([]scoredCandidate, len(corpus))
	for i, ref := range corpus {
		scored[i] = scoredCandidate{ref: ref, dims: scoreDimensions(input, ref)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		ti, tj := scored[i].dims.Total(), scored[j].dims.Total()
		if ti != tj {
			return ti > tj
		}
		return scored[i].ref.Name < scored[j].ref.Name
	})

	if len(scored) <= maxReferences {
		out := make([]campaign.Reference, len(scored))
		for i, s := range scored {
			out[i] = s.ref
		}
		return out
	}

	pool := scored
	if len(pool) > 10 {
		pool = pool[:10]
	}

	selected := selectComplementary(pool)
	selected = applyWildcard(selected, pool)

	out := make([]campaign.Reference, len(selected))
	for i, s := range selected {
		out[i] = s.ref
	}
	return out
}

// scoreDimensions computes the independent dimension scores for one
// candidate.
func scoreDimensions(input campaign.Input, ref campaign.Reference) Dimensions {
	d := Dimensions{
		Industry:   industryScore(input.Industry, ref.Industry),
		Audience:   listOverlapScore(input.TargetAudience, ref.Audiences),
		Objectives: listOverlapScore(input.Objectives, ref.Objectives),
		Emotion:    listOverlapScore(input.EmotionalAppeal, ref.EmotionalAppeals),
		Sentiment:  sentimentScore(input, ref),
		Tone:       toneScore(input, ref),
	}
	if input.Style != "" {
		d.Style = styleScore(input.Style, ref)
	}
	return d
}

// industryScore: exact case-insensitive match 5, substring either
// direction 3, no match 0.
func industryScore(a, b string) float64 {
	la, lb := strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return 0
	}
	if la == lb {
		return 5
	}
	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		return 3
	}
	return 0
}

// listOverlapScore: 5 points per input item with a substring match (either
// direction) in the candidate list, capped at 15.
func listOverlapScore(inputs, candidates []string) float64 {
	score := 0.0
	for _, in := range inputs {
		lin := strings.ToLower(strings.TrimSpace(in))
		if lin == "" {
			continue
		}
		for _, cand := range candidates {
			lc := strings.ToLower(strings.TrimSpace(cand))
			if lc == "" {
				continue
			}
			if strings.Contains(lin, lc) || strings.Contains(lc, lin) {
				score += 5
				break
			}
		}
	}
	if score > 15 {
		return 15
	}
	return score
}

// selectComplementary keeps rank 1 and greedily adds up to two candidates
// that lift the selection's weakest dimension. When no remaining candidate
// improves on the running average, the next-highest scorer fills the slot.
func selectComplementary(pool []scoredCandidate) []scoredCandidate {
	selected := []scoredCandidate{pool[0]}
	used := map[int]bool{0: true}

	for len(selected) < maxReferences && len(selected) < len(pool) {
		weakDim := weakestDimension(selected)
		avg := dimensionAverage(selected, weakDim)

		bestIdx := -1
		bestDeviation := 0.0
		for i, cand := range pool {
			if used[i] {
				continue
			}
			if dev := dimensionValue(cand.dims, weakDim) - avg; dev > bestDeviation {
				bestDeviation = dev
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			// No complement improves coverage; take the next-highest scorer.
			for i := range pool {
				if !used[i] {
					bestIdx = i
					break
				}
			}
		}

		used[bestIdx] = true
		selected = append(selected, pool[bestIdx])
	}

	return selected
}

// applyWildcard may swap the third pick for a candidate sharing no
// industry, audience or objective overlap with the first two. Falls back
// to the original third pick when no such candidate exists.
func applyWildcard(selected, pool []scoredCandidate) []scoredCandidate {
	if len(selected) < maxReferences {
		return selected
	}

	for _, cand := range pool {
		if cand.ref.ID == selected[0].ref.ID || cand.ref.ID == selected[1].ref.ID {
			continue
		}
		if overlaps(cand.ref, selected[0].ref) || overlaps(cand.ref, selected[1].ref) {
			continue
		}
		selected[2] = cand
		return selected
	}
	return selected
}

// overlaps reports whether two references share an industry, audience or
// objective.
func overlaps(a, b campaign.Reference) bool {
	if industryScore(a.Industry, b.Industry) > 0 {
		return true
	}
	if listOverlapScore(a.Audiences, b.Audiences) > 0 {
		return true
	}
	return listOverlapScore(a.Objectives, b.Objectives) > 0
}

type dimension int

const (
	dimIndustry dimension = iota
	dimAudience
	dimObjectives
	dimEmotion
	dimStyle
	dimSentiment
	dimTone
	dimCount
)

func dimensionValue(d Dimensions, dim dimension) float64 {
	switch dim {
	case dimIndustry:
		return d.Industry
	case dimAudience:
		return d.Audience
	case dimObjectives:
		return d.Objectives
	case dimEmotion:
		return d.Emotion
	case dimStyle:
		return d.Style
	case dimSentiment:
		return d.Sentiment
	default:
		return d.Tone
	}
}

func dimensionAverage(selected []scoredCandidate, dim dimension) float64 {
	sum := 0.0
	for _, s := range selected {
		sum += dimensionValue(s.dims, dim)
	}
	return sum / float64(len(selected))
}

func weakestDimension(selected []scoredCandidate) dimension {
	weakest := dimIndustry
	lowest := dimensionAverage(selected, dimIndustry)
	for dim := dimAudience; dim < dimCount; dim++ {
		if avg := dimensionAverage(selected, dim); avg < lowest {
			lowest = avg
			weakest = dim
		}
	}
	return weakest
}
