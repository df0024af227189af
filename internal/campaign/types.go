// Package campaign defines the data model shared across the generation
// pipeline: the immutable input brief, the read-only reference corpus, and
// the draft object each enhancement stage reads and rewrites.
package campaign

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Input is the brief submitted by the caller. It is immutable once
// submitted and defines the whole pipeline run.
type Input struct {
	Brand           string   `json:"brand"`
	Industry        string   `json:"industry"`
	TargetAudience  []string `json:"targetAudience"`
	Objectives      []string `json:"objectives"`
	EmotionalAppeal []string `json:"emotionalAppeal"`
	Style           string   `json:"style,omitempty"`
	Constraints     string   `json:"constraints,omitempty"`
	Persona         string   `json:"persona,omitempty"`
	Lens            string   `json:"lens,omitempty"`
}

// ErrInvalidInput wraps every brief validation failure so callers can map
// the whole class to a 400.
var ErrInvalidInput = errors.New("invalid campaign input")

// Validate checks the brief carries the four required fields.
func (in Input) Validate() error {
	var missing []string
	if in.Brand == "" {
		missing = append(missing, "brand")
	}
	if in.Industry == "" {
		missing = append(missing, "industry")
	}
	if len(in.TargetAudience) == 0 {
		missing = append(missing, "targetAudience")
	}
	if len(in.EmotionalAppeal) == 0 {
		missing = append(missing, "emotionalAppeal")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrInvalidInput, missing)
	}
	return nil
}

// Reference is a historical example campaign used as few-shot grounding
// for the prompt. The corpus is loaded at process start and never mutated.
type Reference struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Brand            string    `json:"brand"`
	Industry         string    `json:"industry"`
	Audiences        []string  `json:"audiences"`
	Objectives       []string  `json:"objectives"`
	EmotionalAppeals []string  `json:"emotionalAppeals"`
	Strategy         string    `json:"strategy"`
	Embedding        []float64 `json:"-"`
}

// Insight is a structured statement of an audience/brand contradiction
// used to seed campaign strategy. Produced once per run; the irony and
// brand-complicity fields may be filled by a secondary deepening call.
type Insight struct {
	SurfaceInsight        string `json:"surfaceInsight"`
	EmotionalUndercurrent string `json:"emotionalUndercurrent"`
	CreativeUnlock        string `json:"creativeUnlock"`
	SystemicHypocrisy     string `json:"systemicHypocrisy"`
	ActionParadox         string `json:"actionParadox"`
	Irony                 string `json:"irony,omitempty"`
	BrandComplicity       string `json:"brandComplicity,omitempty"`
}

// InsightScores rates the three insight texts on contradiction, irony and
// tension, 1-10 each. A parse failure during scoring yields a uniform 5.
type InsightScores struct {
	Contradiction int `json:"contradiction"`
	Irony         int `json:"irony"`
	Tension       int `json:"tension"`
}

// BraveryScores quantifies how unconventional an execution plan is.
// Sub-scores are in [0,10]; TotalScore is the fixed weighted combination
// physicality*0.2 + risk*0.3 + culturalTension*0.2 + novelty*0.3.
type BraveryScores struct {
	Physicality     float64 `json:"physicality"`
	Risk            float64 `json:"risk"`
	CulturalTension float64 `json:"culturalTension"`
	Novelty         float64 `json:"novelty"`
	TotalScore      float64 `json:"totalScore"`
}

// Storytelling is the narrative layer produced late in the pipeline.
type Storytelling struct {
	Hook          string `json:"hook"`
	Protagonist   string `json:"protagonist"`
	Conflict      string `json:"conflict"`
	Journey       string `json:"journey"`
	Resolution    string `json:"resolution"`
	FullNarrative string `json:"fullNarrative"`
}

// Evaluation is the final scoring block. BraveryScore is always copied
// from BraveryScores.TotalScore, never taken from the model.
type Evaluation struct {
	Strengths     []string `json:"strengths"`
	Opportunities []string `json:"opportunities"`
	Risks         []string `json:"risks"`
	OverallScore  int      `json:"overallScore"`
	BraveryScore  float64  `json:"braveryScore"`
}

// Draft is the accumulator threaded through the enhancement pipeline.
// Each stage takes a Draft value and returns a new one; Modifications is
// the ordered audit log of which stages altered (or skipped) the draft.
type Draft struct {
	CampaignName             string         `json:"campaignName"`
	KeyMessage               string         `json:"keyMessage"`
	Strategy                 string         `json:"strategy"`
	ExecutionPlan            []string       `json:"executionPlan"`
	ViralElement             string         `json:"viralElement"`
	CallToAction             string         `json:"callToAction"`
	CreativeStrategy         []string       `json:"creativeStrategy"`
	ExpectedOutcomes         []string       `json:"expectedOutcomes"`
	NarrativeAnchor          []string       `json:"narrativeAnchor,omitempty"`
	ExecutionFilterRationale string         `json:"executionFilterRationale,omitempty"`
	InsightScores            *InsightScores `json:"insightScores,omitempty"`
	BraveryScores            *BraveryScores `json:"braveryScores,omitempty"`
	Storytelling             *Storytelling  `json:"storytelling,omitempty"`
	Evaluation               *Evaluation    `json:"evaluation,omitempty"`
	Modifications            []string       `json:"_modifications"`
}

// Generated is the frozen result of a pipeline run.
type Generated struct {
	RunID uuid.UUID `json:"runId"`
	Draft
}

// Trend is one cached entry from the news-trends collaborator.
type Trend struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Source       string   `json:"source"`
	PlatformTags []string `json:"platformTags"`
	Category     string   `json:"category"`
	AddedOn      string   `json:"addedOn"`
}

// Clone returns a deep copy of the draft so a stage can rewrite its own
// copy without aliasing the previous stage's slices.
func (d Draft) Clone() Draft {
	out := d
	out.ExecutionPlan = append([]string(nil), d.ExecutionPlan...)
	out.CreativeStrategy = append([]string(nil), d.CreativeStrategy...)
	out.ExpectedOutcomes = append([]string(nil), d.ExpectedOutcomes...)
	out.NarrativeAnchor = append([]string(nil), d.NarrativeAnchor...)
	out.Modifications = append([]string(nil), d.Modifications...)
	if d.InsightScores != nil {
		s := *d.InsightScores
		out.InsightScores = &s
	}
	if d.BraveryScores != nil {
		s := *d.BraveryScores
		out.BraveryScores = &s
	}
	if d.Storytelling != nil {
		s := *d.Storytelling
		out.Storytelling = &s
	}
	if d.Evaluation != nil {
		e := *d.Evaluation
		e.Strengths = append([]string(nil), d.Evaluation.Strengths...)
		e.Opportunities = append([]string(nil), d.Evaluation.Opportunities...)
		e.Risks = append([]string(nil), d.Evaluation.Risks...)
		out.Evaluation = &e
	}
	return out
}
