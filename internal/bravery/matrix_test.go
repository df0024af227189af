package bravery

import (
	"math"
	"strings"
	"testing"
)

func TestScore_EmptyPlanNeutralDefault(t *testing.T) {
	s := Score(nil)

	for name, got := range map[string]float64{
		"physicality":     s.Physicality,
		"risk":            s.Risk,
		"culturalTension": s.CulturalTension,
		"novelty":         s.Novelty,
		"totalScore":      s.TotalScore,
	} {
		if got != 5 {
			t.Errorf("empty plan %s = %f, want neutral 5", name, got)
		}
	}
}

func TestScore_RangeInvariant(t *testing.T) {
	plans := [][]string{
		{"a quiet email newsletter"},
		{"street stunt", "graffiti mural takeover", "guerrilla pop-up installation", "billboard projection", "flash mob in a public space"},
		{"controversial provocative taboo banned unapologetic confront challenge defy rebel risky daring bold fearless shock subvert expose"},
		{"first-ever unprecedented world's first prototype experiment unexpected reimagine reinvent breakthrough original"},
	}

	for _, plan := range plans {
		s := Score(plan)
		for name, v := range map[string]float64{
			"physicality":     s.Physicality,
			"risk":            s.Risk,
			"culturalTension": s.CulturalTension,
			"novelty":         s.Novelty,
			"totalScore":      s.TotalScore,
		} {
			if v < 0 || v > 10 {
				t.Errorf("plan %q: %s = %f out of [0,10]", strings.Join(plan, "; "), name, v)
			}
		}
	}
}

func TestScore_ClicheOnlyPlanZeroNovelty(t *testing.T) {
	plan := []string{
		"launch a hashtag challenge",
		"run an influencer partnership",
		"collect user-generated content",
		"make a viral video",
		"host a social media contest and giveaway",
	}

	s := Score(plan)
	if s.Novelty != 0 {
		t.Errorf("cliche-only plan novelty = %f, want 0 (not negative)", s.Novelty)
	}
}

func TestScore_WeightedTotal(t *testing.T) {
	plan := []string{
		"street graffiti mural takeover with a guerrilla pop-up",
		"a controversial, provocative stunt that will confront the status quo",
	}

	s := Score(plan)
	want := math.Round((s.Physicality*0.2+s.Risk*0.3+s.CulturalTension*0.2+s.Novelty*0.3)*10) / 10
	if math.Abs(s.TotalScore-want) > 0.001 {
		t.Errorf("totalScore = %f, want weighted combination %f", s.TotalScore, want)
	}
}

func TestScore_Deterministic(t *testing.T) {
	plan := []string{"first-ever street installation", "bold billboard takeover"}

	a := Score(plan)
	b := Score(plan)
	if a != b {
		t.Errorf("same plan produced different scores: %+v vs %+v", a, b)
	}
}

func TestScore_PhysicalityCounting(t *testing.T) {
	// Exactly two physicality terms: street, billboard. round(2/5*10) = 4.
	s := Score([]string{"a street poster and a billboard"})
	if s.Physicality != 4 {
		t.Errorf("physicality = %f, want 4 for two lexicon hits", s.Physicality)
	}
}
