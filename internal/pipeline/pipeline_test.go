package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/muse/internal/bravery"
	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/enrich"
)

// routedLLM answers by prompt content so tests don't depend on exact call
// ordering. failOn marks prompt substrings whose calls reject.
type routedLLM struct {
	failOn []string
	calls  []string
}

func (m *routedLLM) Complete(_ context.Context, prompt string) (string, error) {
	m.calls = append(m.calls, prompt)
	for _, f := range m.failOn {
		if strings.Contains(prompt, f) {
			return "", fmt.Errorf("mocked failure for %q", f)
		}
	}

	switch {
	case strings.Contains(prompt, "Rate these three insights"):
		return `{"contradiction": 7, "irony": 6, "tension": 8}`, nil
	case strings.Contains(prompt, "Rewrite this campaign strategy"):
		return `{"strategy": "boosted strategy with a cultural tension"}`, nil
	case strings.Contains(prompt, "narrative threads"):
		return `["thread one", "thread two"]`, nil
	case strings.Contains(prompt, "keep only the 4-5 strongest"):
		return `{"executionPlan": ["kept 1", "kept 2", "kept 3", "kept 4"], "rationale": "cut the two weakest"}`, nil
	case strings.Contains(prompt, "unexpected twist"):
		return `{"twist": "a twist execution"}`, nil
	case strings.Contains(prompt, "award-calibre"):
		return `{"tactic": "a first-ever category disruption"}`, nil
	case strings.Contains(prompt, "campaign story"):
		return `{"hook": "h", "protagonist": "p", "conflict": "c", "journey": "j", "resolution": "r", "fullNarrative": "a story of hope and community"}`, nil
	case strings.Contains(prompt, "harsh award juror"):
		return `{"strengths": ["sharp"], "opportunities": ["extend"], "risks": ["execution"], "overallScore": 8}`, nil
	case strings.Contains(prompt, "emotional warmth"):
		return `{"fullNarrative": "rewritten with warmth and connection"}`, nil
	default:
		return "", fmt.Errorf("unexpected prompt: %.60s", prompt)
	}
}

func baseInput() campaign.Input {
	return campaign.Input{
		Brand:           "Acme",
		Industry:        "Beverages",
		TargetAudience:  []string{"Gen Z"},
		Objectives:      []string{"Brand Awareness"},
		EmotionalAppeal: []string{"Joy"},
	}
}

func baseDraft() campaign.Draft {
	return campaign.Draft{
		CampaignName:  "Open Taps",
		KeyMessage:    "refreshment without the script",
		Strategy:      "original strategy",
		ExecutionPlan: []string{"street sampling", "a billboard series", "a podcast takeover"},
	}
}

func baseInsight() campaign.Insight {
	return campaign.Insight{
		SurfaceInsight:    "they distrust polished ads",
		SystemicHypocrisy: "the category sells joy it does not deliver",
		ActionParadox:     "they skip ads but share the honest ones",
	}
}

func TestRun_FullPipeline(t *testing.T) {
	llm := &routedLLM{}
	p := New(llm, nil, slog.Default())

	out := p.Run(context.Background(), baseDraft(), baseInput(), baseInsight())

	if out.InsightScores == nil || out.InsightScores.Tension != 8 {
		t.Errorf("insight scores missing or wrong: %+v", out.InsightScores)
	}
	if !strings.HasPrefix(out.Strategy, "boosted") {
		t.Errorf("strategy not boosted: %q", out.Strategy)
	}
	if len(out.NarrativeAnchor) != 2 {
		t.Errorf("narrative anchor missing: %v", out.NarrativeAnchor)
	}
	if out.BraveryScores == nil {
		t.Fatal("bravery scores not attached")
	}
	if out.Storytelling == nil || out.Storytelling.Hook != "h" {
		t.Errorf("storytelling missing: %+v", out.Storytelling)
	}
	if out.Evaluation == nil {
		t.Fatal("evaluation missing")
	}
	if out.Evaluation.BraveryScore != out.BraveryScores.TotalScore {
		t.Errorf("evaluation braveryScore %f != bravery total %f",
			out.Evaluation.BraveryScore, out.BraveryScores.TotalScore)
	}
	for _, want := range []string{"insight_scoring", "strategy_booster", "bravery_matrix", "evaluation"} {
		if !slices.Contains(out.Modifications, want) {
			t.Errorf("audit log missing %q: %v", want, out.Modifications)
		}
	}
}

func TestRun_StrategyBoosterFailureLeavesStrategyUntouched(t *testing.T) {
	llm := &routedLLM{failOn: []string{"Rewrite this campaign strategy"}}
	p := New(llm, nil, slog.Default())

	out := p.Run(context.Background(), baseDraft(), baseInput(), baseInsight())

	if out.Strategy != "original strategy" {
		t.Errorf("strategy should be unchanged after booster failure, got %q", out.Strategy)
	}
	if out.Evaluation == nil || out.Storytelling == nil {
		t.Error("pipeline should complete despite a failed stage")
	}
	found := false
	for _, m := range out.Modifications {
		if strings.HasPrefix(m, "strategy_booster skipped") {
			found = true
		}
	}
	if !found {
		t.Errorf("audit log should record the skipped stage: %v", out.Modifications)
	}
}

func TestRun_EveryStageFailingStillCompletes(t *testing.T) {
	llm := &routedLLM{failOn: []string{""}} // empty substring matches everything
	p := New(llm, nil, slog.Default())

	draft := baseDraft()
	out := p.Run(context.Background(), draft, baseInput(), baseInsight())

	if out.Strategy != draft.Strategy {
		t.Errorf("strategy changed: %q", out.Strategy)
	}
	// Bravery matrix is pure and storytelling degrades to placeholders, so
	// both still land even with the model hard down.
	if out.BraveryScores == nil {
		t.Error("bravery matrix should not depend on the model")
	}
	if out.Storytelling == nil {
		t.Error("storytelling should degrade to placeholders, not vanish")
	}
}

func TestExecutionFilters_NoOpAtFiveItems(t *testing.T) {
	llm := &routedLLM{}
	p := New(llm, nil, slog.Default())

	d := baseDraft()
	d.ExecutionPlan = []string{"a", "b", "c", "d", "e"}
	stage := p.executionFilters(baseInput())

	out, err := stage.Run(context.Background(), d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.ExecutionPlan) != 5 {
		t.Errorf("plan changed: %v", out.ExecutionPlan)
	}
	if out.ExecutionFilterRationale != "" {
		t.Errorf("no rationale expected for a no-op, got %q", out.ExecutionFilterRationale)
	}
	if len(llm.calls) != 0 {
		t.Errorf("no model call expected for a no-op, got %d", len(llm.calls))
	}
}

func TestExecutionFilters_TrimsOversizedPlan(t *testing.T) {
	llm := &routedLLM{}
	p := New(llm, nil, slog.Default())

	d := baseDraft()
	d.ExecutionPlan = []string{"a", "b", "c", "d", "e", "f", "g"}

	out, err := p.executionFilters(baseInput()).Run(context.Background(), d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.ExecutionPlan) != 4 {
		t.Errorf("expected 4 kept items, got %d", len(out.ExecutionPlan))
	}
	if out.ExecutionFilterRationale == "" {
		t.Error("rationale should be recorded")
	}
}

func TestWeaknessDisruption_Triggers(t *testing.T) {
	tests := []struct {
		name       string
		draft      func() campaign.Draft
		wantTrig   bool
		wantReason string
	}{
		{
			name: "low tension triggers",
			draft: func() campaign.Draft {
				d := baseDraft()
				d.InsightScores = &campaign.InsightScores{Contradiction: 5, Irony: 5, Tension: 3}
				return d
			},
			wantTrig:   true,
			wantReason: "low insight tension",
		},
		{
			name: "thin plan triggers",
			draft: func() campaign.Draft {
				d := baseDraft()
				d.ExecutionPlan = []string{"only one"}
				d.InsightScores = &campaign.InsightScores{Contradiction: 5, Irony: 5, Tension: 8}
				return d
			},
			wantTrig:   true,
			wantReason: "thin execution plan",
		},
		{
			name: "healthy draft is a no-op",
			draft: func() campaign.Draft {
				d := baseDraft()
				d.InsightScores = &campaign.InsightScores{Contradiction: 5, Irony: 5, Tension: 8}
				return d
			},
			wantTrig: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &routedLLM{}
			p := New(llm, nil, slog.Default())

			d := tt.draft()
			before := len(d.ExecutionPlan)

			out, err := p.weaknessDisruption(baseInput()).Run(context.Background(), d)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantTrig {
				if len(out.ExecutionPlan) != before+1 {
					t.Errorf("expected twist appended, plan %v", out.ExecutionPlan)
				}
				found := false
				for _, m := range out.Modifications {
					if strings.Contains(m, tt.wantReason) {
						found = true
					}
				}
				if !found {
					t.Errorf("trigger reason %q not in audit log: %v", tt.wantReason, out.Modifications)
				}
			} else {
				if len(out.ExecutionPlan) != before {
					t.Errorf("no-op expected, plan %v", out.ExecutionPlan)
				}
				if len(llm.calls) != 0 {
					t.Error("no model call expected for healthy draft")
				}
			}
		})
	}
}

func TestAwardSpike_NoOpWhenMarkerPresent(t *testing.T) {
	llm := &routedLLM{}
	p := New(llm, nil, slog.Default())

	d := baseDraft()
	d.ExecutionPlan = []string{"a first-ever floating cinema"}

	out, err := p.awardSpike(baseInput()).Run(context.Background(), d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.ExecutionPlan) != 1 {
		t.Errorf("plan should be unchanged: %v", out.ExecutionPlan)
	}
	if len(llm.calls) != 0 {
		t.Error("no model call expected when a marker is present")
	}
}

func TestEmotionalRebalance_IdempotentOnWarmNarrative(t *testing.T) {
	llm := &routedLLM{}
	p := New(llm, nil, slog.Default())

	d := baseDraft()
	d.Storytelling = &campaign.Storytelling{FullNarrative: "a story about community and quiet pride"}
	stage := p.emotionalRebalance()

	once, err := stage.Run(context.Background(), d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := stage.Run(context.Background(), once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if once.Storytelling.FullNarrative != d.Storytelling.FullNarrative {
		t.Error("warm narrative should pass through untouched")
	}
	if twice.Storytelling.FullNarrative != once.Storytelling.FullNarrative {
		t.Error("second run should be byte-identical")
	}
	if len(twice.Modifications) != len(d.Modifications) {
		t.Errorf("no-op must not append to the audit log: %v", twice.Modifications)
	}
	if len(llm.calls) != 0 {
		t.Error("no model call expected for warm narrative")
	}
}

func TestEmotionalRebalance_RewritesColdNarrative(t *testing.T) {
	llm := &routedLLM{}
	p := New(llm, nil, slog.Default())

	d := baseDraft()
	d.Storytelling = &campaign.Storytelling{FullNarrative: "a cold procedural account of market share"}

	out, err := p.emotionalRebalance().Run(context.Background(), d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Storytelling.FullNarrative, "warmth") {
		t.Errorf("narrative not rewritten: %q", out.Storytelling.FullNarrative)
	}
}

func TestEvaluation_CopiesBraveryTotal(t *testing.T) {
	llm := &routedLLM{}
	p := New(llm, nil, slog.Default())

	d := baseDraft()
	scores := bravery.Score(d.ExecutionPlan)
	d.BraveryScores = &scores

	out, err := p.evaluation(baseInput()).Run(context.Background(), d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(out.Evaluation.BraveryScore-scores.TotalScore) > 0.001 {
		t.Errorf("braveryScore %f, want copy of %f", out.Evaluation.BraveryScore, scores.TotalScore)
	}
}

func TestInsightScoring_ParseFailureDefaultsToFive(t *testing.T) {
	llm := &routedLLM{}
	p := New(llm, nil, slog.Default())

	// Route the scoring prompt to prose by failing nothing but answering
	// through a custom completer.
	bad := completerFunc(func(_ context.Context, prompt string) (string, error) {
		return "I would rate these quite highly overall.", nil
	})
	p.llm = bad

	out, err := p.insightScoring(baseInsight()).Run(context.Background(), baseDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.InsightScores == nil {
		t.Fatal("insight scores missing")
	}
	if out.InsightScores.Contradiction != 5 || out.InsightScores.Irony != 5 || out.InsightScores.Tension != 5 {
		t.Errorf("expected uniform default 5, got %+v", out.InsightScores)
	}
}

type completerFunc func(ctx context.Context, prompt string) (string, error)

func (f completerFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestNarrativeAnchor_BulletFallback(t *testing.T) {
	p := New(completerFunc(func(_ context.Context, _ string) (string, error) {
		return "Here are some threads:\n- the honest tap\n* joy without the script\n", nil
	}), nil, slog.Default())

	out, err := p.narrativeAnchor(baseInput()).Run(context.Background(), baseDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.NarrativeAnchor) != 2 || out.NarrativeAnchor[0] != "the honest tap" {
		t.Errorf("bullet fallback wrong: %v", out.NarrativeAnchor)
	}
}

func TestNarrativeAnchor_FixedDefault(t *testing.T) {
	p := New(completerFunc(func(_ context.Context, _ string) (string, error) {
		return "no structure here at all", nil
	}), nil, slog.Default())

	out, err := p.narrativeAnchor(baseInput()).Run(context.Background(), baseDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.NarrativeAnchor) != 2 {
		t.Errorf("fixed default should have two items: %v", out.NarrativeAnchor)
	}
}

type stubPort struct {
	name string
	fn   func(campaign.Draft) (campaign.Draft, error)
}

func (s stubPort) Name() string { return s.name }
func (s stubPort) Enrich(_ context.Context, d campaign.Draft) (campaign.Draft, error) {
	return s.fn(d)
}

func TestRun_CollaboratorFailureNonFatal(t *testing.T) {
	down := stubPort{name: "creative_director", fn: func(d campaign.Draft) (campaign.Draft, error) {
		return d, fmt.Errorf("collaborator down")
	}}
	p := New(&routedLLM{}, []enrich.Port{down}, slog.Default())

	out := p.Run(context.Background(), baseDraft(), baseInput(), baseInsight())

	if out.Evaluation == nil {
		t.Fatal("run should complete despite collaborator failure")
	}
	found := false
	for _, m := range out.Modifications {
		if strings.HasPrefix(m, "creative_director skipped") {
			found = true
		}
	}
	if !found {
		t.Errorf("audit log should record the skipped collaborator: %v", out.Modifications)
	}
}

func TestRun_CollaboratorApplied(t *testing.T) {
	sharpen := stubPort{name: "creative_director", fn: func(d campaign.Draft) (campaign.Draft, error) {
		d.KeyMessage = "sharpened: " + d.KeyMessage
		return d, nil
	}}
	p := New(&routedLLM{}, []enrich.Port{sharpen}, slog.Default())

	out := p.Run(context.Background(), baseDraft(), baseInput(), baseInsight())

	if !strings.HasPrefix(out.KeyMessage, "sharpened:") {
		t.Errorf("collaborator change lost: %q", out.KeyMessage)
	}
	if !slices.Contains(out.Modifications, "creative_director") {
		t.Errorf("collaborator not in audit log: %v", out.Modifications)
	}
}
