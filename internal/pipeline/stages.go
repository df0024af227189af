package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/muse/internal/bravery"
	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/enrich"
	"github.com/MikeSquared-Agency/muse/internal/insight"
	"github.com/MikeSquared-Agency/muse/internal/lexicon"
	"github.com/MikeSquared-Agency/muse/internal/repair"
)

const (
	maxExecutionItems = 5
	minExecutionItems = 3
	tensionThreshold  = 5
)

// insightScoring asks the model to rate the three insight texts on
// contradiction, irony and tension, 1-10 each. Unparseable responses
// degrade to a uniform 5.
func (p *Pipeline) insightScoring(ins campaign.Insight) Stage {
	return Stage{
		Name: "insight_scoring",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			texts := insight.Texts(ins)
			prompt := fmt.Sprintf(`Rate these three insights on contradiction, irony and tension, 1-10 each, as one combined judgement.

1. %s
2. %s
3. %s

Respond with valid JSON: {"contradiction": 1-10, "irony": 1-10, "tension": 1-10}. Return ONLY the JSON.`, texts[0], texts[1], texts[2])

			raw, err := p.llm.Complete(ctx, prompt)
			if err != nil {
				return d, fmt.Errorf("score insights: %w", err)
			}

			scores, _ := repair.Parse(raw, campaign.InsightScores{Contradiction: 5, Irony: 5, Tension: 5})
			d.InsightScores = &scores
			d.Modifications = append(d.Modifications, "insight_scoring")
			return d, nil
		},
	}
}

// strategyBooster rewrites the strategy to add a cultural tension, a
// behavioral-change target, a positioning angle and a present-year
// cultural reference. No-op when the draft has no strategy yet.
func (p *Pipeline) strategyBooster(input campaign.Input) Stage {
	return Stage{
		Name: "strategy_booster",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			if d.Strategy == "" {
				return d, nil
			}

			prompt := fmt.Sprintf(`Rewrite this campaign strategy for %s so it names a cultural tension, a specific behavioral change to drive, a distinctive positioning angle, and one %d cultural reference. Keep it under 120 words.

Current strategy:
%s

Respond with valid JSON: {"strategy": "the rewritten strategy"}. Return ONLY the JSON.`, input.Brand, time.Now().Year(), d.Strategy)

			raw, err := p.llm.Complete(ctx, prompt)
			if err != nil {
				return d, fmt.Errorf("boost strategy: %w", err)
			}

			var resp struct {
				Strategy string `json:"strategy"`
			}
			resp, ok := repair.Parse(raw, resp)
			if !ok || resp.Strategy == "" {
				return d, nil
			}

			d.Strategy = resp.Strategy
			d.Modifications = append(d.Modifications, "strategy_booster")
			return d, nil
		},
	}
}

// narrativeAnchor derives a short unifying narrative thread. Accepts a
// JSON array of strings, falls back to parsing bullet lines, and finally
// to a fixed two-item default.
func (p *Pipeline) narrativeAnchor(input campaign.Input) Stage {
	return Stage{
		Name: "narrative_anchor",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			prompt := fmt.Sprintf(`Give 2-4 short narrative threads that unify this %s campaign across every execution.

Key message: %s
Strategy: %s

Respond with a JSON array of strings, e.g. ["thread one", "thread two"].`, input.Brand, d.KeyMessage, d.Strategy)

			raw, err := p.llm.Complete(ctx, prompt)
			if err != nil {
				return d, fmt.Errorf("derive narrative anchor: %w", err)
			}

			anchors := parseAnchors(raw, input.Brand)
			d.NarrativeAnchor = anchors
			d.Modifications = append(d.Modifications, "narrative_anchor")
			return d, nil
		},
	}
}

func parseAnchors(raw, brand string) []string {
	if anchors, ok := parseStringArray(raw); ok && len(anchors) > 0 {
		return anchors
	}

	// Bullet-line fallback for models that answer in prose.
	var anchors []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			if item := strings.TrimSpace(strings.TrimLeft(line, "-* ")); item != "" {
				anchors = append(anchors, item)
			}
		}
	}
	if len(anchors) > 0 {
		return anchors
	}

	return []string{
		fmt.Sprintf("%s shows up where the audience already is", brand),
		"one honest tension carried through every execution",
	}
}

// parseStringArray finds and parses the first JSON array of strings in
// raw. Arrays need their own extraction since repair targets objects.
func parseStringArray(raw string) ([]string, bool) {
	text := repair.ExtractJSON(raw)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return nil, false
	}
	type wrapper struct {
		Items []string `json:"items"`
	}
	w, ok := repair.Parse(`{"items": `+text[start:end+1]+`}`, wrapper{})
	if !ok {
		return nil, false
	}
	return w.Items, true
}

// executionFilters trims oversized execution plans down to the 4-5
// strongest items. No-op when the plan is already at or under the limit:
// the list stays identical and no rationale is recorded.
func (p *Pipeline) executionFilters(input campaign.Input) Stage {
	return Stage{
		Name: "execution_filters",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			if len(d.ExecutionPlan) <= maxExecutionItems {
				return d, nil
			}

			prompt := fmt.Sprintf(`Score each execution item on bravery, cultural relevance, virality and brand fit for %s, then keep only the 4-5 strongest.

Items:
%s

Respond with valid JSON: {"executionPlan": ["the 4-5 kept items"], "rationale": "one sentence on what was cut and why"}. Return ONLY the JSON.`, input.Brand, bulleted(d.ExecutionPlan))

			raw, err := p.llm.Complete(ctx, prompt)
			if err != nil {
				return d, fmt.Errorf("filter execution plan: %w", err)
			}

			var resp struct {
				ExecutionPlan []string `json:"executionPlan"`
				Rationale     string   `json:"rationale"`
			}
			resp, ok := repair.Parse(raw, resp)
			if !ok || len(resp.ExecutionPlan) == 0 || len(resp.ExecutionPlan) > maxExecutionItems {
				return d, fmt.Errorf("filter response unusable (%d items)", len(resp.ExecutionPlan))
			}

			d.ExecutionPlan = resp.ExecutionPlan
			d.ExecutionFilterRationale = resp.Rationale
			d.Modifications = append(d.Modifications, "execution_filters")
			return d, nil
		},
	}
}

// weaknessDisruption injects one unexpected twist when the run looks
// weak: primary insight tension under threshold, or an execution plan
// with fewer than three items. The trigger reason goes in the audit log.
func (p *Pipeline) weaknessDisruption(input campaign.Input) Stage {
	return Stage{
		Name: "weakness_disruption",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			var reason string
			switch {
			case d.InsightScores != nil && d.InsightScores.Tension < tensionThreshold:
				reason = fmt.Sprintf("low insight tension (%d)", d.InsightScores.Tension)
			case len(d.ExecutionPlan) < minExecutionItems:
				reason = fmt.Sprintf("thin execution plan (%d items)", len(d.ExecutionPlan))
			default:
				return d, nil
			}

			prompt := fmt.Sprintf(`This %s campaign needs one unexpected twist — an execution nobody in the category would dare.

Strategy: %s
Current executions:
%s

Respond with valid JSON: {"twist": "one concrete unexpected execution"}. Return ONLY the JSON.`, input.Brand, d.Strategy, bulleted(d.ExecutionPlan))

			raw, err := p.llm.Complete(ctx, prompt)
			if err != nil {
				return d, fmt.Errorf("generate disruption: %w", err)
			}

			var resp struct {
				Twist string `json:"twist"`
			}
			resp, ok := repair.Parse(raw, resp)
			if !ok || resp.Twist == "" {
				return d, fmt.Errorf("disruption response unusable")
			}

			d.ExecutionPlan = append(d.ExecutionPlan, resp.Twist)
			d.Modifications = append(d.Modifications, "weakness_disruption: "+reason)
			return d, nil
		},
	}
}

// awardSpike appends one bold tactic when no execution item carries an
// award-worthy marker.
func (p *Pipeline) awardSpike(input campaign.Input) Stage {
	return Stage{
		Name: "award_spike",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			for _, item := range d.ExecutionPlan {
				if lexicon.ContainsAny(item, lexicon.AwardMarkers) {
					return d, nil
				}
			}

			prompt := fmt.Sprintf(`Add one award-calibre tactic to this %s campaign — something that disrupts the category or is a first-ever.

Strategy: %s

Respond with valid JSON: {"tactic": "one concrete bold tactic"}. Return ONLY the JSON.`, input.Brand, d.Strategy)

			raw, err := p.llm.Complete(ctx, prompt)
			if err != nil {
				return d, fmt.Errorf("generate award tactic: %w", err)
			}

			var resp struct {
				Tactic string `json:"tactic"`
			}
			resp, ok := repair.Parse(raw, resp)
			if !ok || resp.Tactic == "" {
				return d, fmt.Errorf("award tactic response unusable")
			}

			d.ExecutionPlan = append(d.ExecutionPlan, resp.Tactic)
			d.Modifications = append(d.Modifications, "award_spike")
			return d, nil
		},
	}
}

// collaborator wraps an external enrichment port as a stage.
func (p *Pipeline) collaborator(port enrich.Port) Stage {
	return Stage{
		Name: port.Name(),
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			enriched, err := port.Enrich(ctx, d)
			if err != nil {
				return d, err
			}
			enriched.Modifications = append(enriched.Modifications, port.Name())
			return enriched, nil
		},
	}
}

// braveryMatrix attaches the heuristic bravery scores. Pure and
// synchronous; this stage cannot fail.
func (p *Pipeline) braveryMatrix() Stage {
	return Stage{
		Name: "bravery_matrix",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			scores := bravery.Score(d.ExecutionPlan)
			d.BraveryScores = &scores
			d.Modifications = append(d.Modifications, "bravery_matrix")
			return d, nil
		},
	}
}

// storytelling produces the narrative layer. A model or parse failure
// fills every field with a generic placeholder instead of failing.
func (p *Pipeline) storytelling(input campaign.Input) Stage {
	return Stage{
		Name: "storytelling",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			placeholder := campaign.Storytelling{
				Hook:          fmt.Sprintf("What if %s stopped advertising and started proving?", input.Brand),
				Protagonist:   "a member of the audience the category overlooks",
				Conflict:      "the gap between what the category promises and what people experience",
				Journey:       "from scepticism, through one honest encounter with the brand, to advocacy",
				Resolution:    "the audience carries the message because it finally rings true",
				FullNarrative: fmt.Sprintf("%s turns its key message into a story the audience tells for it.", input.Brand),
			}

			prompt := fmt.Sprintf(`Write the campaign story for %s.

Key message: %s
Strategy: %s

Respond with valid JSON: {"hook": "", "protagonist": "", "conflict": "", "journey": "", "resolution": "", "fullNarrative": ""}. Return ONLY the JSON.`, input.Brand, d.KeyMessage, d.Strategy)

			raw, err := p.llm.Complete(ctx, prompt)
			if err != nil {
				d.Storytelling = &placeholder
				d.Modifications = append(d.Modifications, "storytelling: placeholder (model call failed)")
				return d, nil
			}

			story, ok := repair.Parse(raw, placeholder)
			if !ok {
				story = placeholder
			}
			d.Storytelling = &story
			d.Modifications = append(d.Modifications, "storytelling")
			return d, nil
		},
	}
}

// evaluation produces the final scoring block. The bravery score is
// always copied from the bravery matrix stage, never taken from the
// model.
func (p *Pipeline) evaluation(input campaign.Input) Stage {
	return Stage{
		Name: "evaluation",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			fallback := campaign.Evaluation{
				Strengths:     []string{"grounded in a real audience tension"},
				Opportunities: []string{"extend the strongest execution into a long-term platform"},
				Risks:         []string{"execution quality decides whether this lands or embarrasses"},
				OverallScore:  6,
			}

			prompt := fmt.Sprintf(`Evaluate this campaign for %s as a harsh award juror.

Name: %s
Key message: %s
Strategy: %s
Executions:
%s

Respond with valid JSON: {"strengths": [""], "opportunities": [""], "risks": [""], "overallScore": 1-10}. Return ONLY the JSON.`,
				input.Brand, d.CampaignName, d.KeyMessage, d.Strategy, bulleted(d.ExecutionPlan))

			eval := fallback
			if raw, err := p.llm.Complete(ctx, prompt); err == nil {
				eval, _ = repair.Parse(raw, fallback)
			}

			if eval.OverallScore < 1 {
				eval.OverallScore = 1
			}
			if eval.OverallScore > 10 {
				eval.OverallScore = 10
			}

			if d.BraveryScores != nil {
				eval.BraveryScore = d.BraveryScores.TotalScore
			} else {
				eval.BraveryScore = bravery.Score(d.ExecutionPlan).TotalScore
			}

			d.Evaluation = &eval
			d.Modifications = append(d.Modifications, "evaluation")
			return d, nil
		},
	}
}

// emotionalRebalance rewrites the narrative to add warmth when it has
// none. A narrative that already contains a warmth word passes through
// untouched, which makes the stage idempotent.
func (p *Pipeline) emotionalRebalance() Stage {
	return Stage{
		Name: "emotional_rebalance",
		Run: func(ctx context.Context, d campaign.Draft) (campaign.Draft, error) {
			if d.Storytelling == nil || d.Storytelling.FullNarrative == "" {
				return d, nil
			}
			if lexicon.ContainsAny(d.Storytelling.FullNarrative, lexicon.Warmth) {
				return d, nil
			}

			prompt := fmt.Sprintf(`Rewrite this campaign narrative to add emotional warmth — hope, connection, community — while preserving its structure and boldness.

%s

Respond with valid JSON: {"fullNarrative": "the rewritten narrative"}. Return ONLY the JSON.`, d.Storytelling.FullNarrative)

			raw, err := p.llm.Complete(ctx, prompt)
			if err != nil {
				return d, fmt.Errorf("rebalance narrative: %w", err)
			}

			var resp struct {
				FullNarrative string `json:"fullNarrative"`
			}
			resp, ok := repair.Parse(raw, resp)
			if !ok || resp.FullNarrative == "" {
				return d, fmt.Errorf("rebalance response unusable")
			}

			d.Storytelling.FullNarrative = resp.FullNarrative
			d.Modifications = append(d.Modifications, "emotional_rebalance")
			return d, nil
		},
	}
}

func bulleted(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}
