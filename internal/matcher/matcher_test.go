package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
)

func ref(name, industry string, audiences, objectives, emotions []string, strategy string) campaign.Reference {
	return campaign.Reference{
		ID:               uuid.New(),
		Name:             name,
		Industry:         industry,
		Audiences:        audiences,
		Objectives:       objectives,
		EmotionalAppeals: emotions,
		Strategy:         strategy,
	}
}

func briefInput() campaign.Input {
	return campaign.Input{
		Brand:           "Acme",
		Industry:        "Beverages",
		TargetAudience:  []string{"Gen Z"},
		Objectives:      []string{"Brand Awareness"},
		EmotionalAppeal: []string{"Joy"},
	}
}

func TestMatch_EmptyCorpus(t *testing.T) {
	refs := Match(briefInput(), nil)
	if len(refs) != 0 {
		t.Errorf("expected no references for empty corpus, got %d", len(refs))
	}
}

func TestMatch_SmallCorpusReturnsAll(t *testing.T) {
	corpus := []campaign.Reference{
		ref("A", "Beverages", []string{"Gen Z"}, []string{"Brand Awareness"}, []string{"Joy"}, ""),
		ref("B", "Finance", []string{"Professionals"}, []string{"Leads"}, []string{"Trust"}, ""),
	}

	refs := Match(briefInput(), corpus)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}
	if refs[0].Name != "A" {
		t.Errorf("expected best match A first, got %q", refs[0].Name)
	}
}

func TestMatch_TopScorerAlwaysFirst(t *testing.T) {
	corpus := []campaign.Reference{
		ref("weak-1", "Insurance", []string{"Seniors"}, []string{"Retention"}, []string{"Trust"}, ""),
		ref("weak-2", "Logistics", []string{"Businesses"}, []string{"Efficiency"}, []string{"Confidence"}, ""),
		ref("strong", "Beverages", []string{"Gen Z"}, []string{"Brand Awareness"}, []string{"Joy"}, ""),
		ref("weak-3", "Agriculture", []string{"Farmers"}, []string{"Yield"}, []string{"Security"}, ""),
	}

	refs := Match(briefInput(), corpus)
	if len(refs) != 3 {
		t.Fatalf("expected 3 references, got %d", len(refs))
	}
	if refs[0].Name != "strong" {
		t.Errorf("expected highest scorer first, got %q", refs[0].Name)
	}
}

func TestMatch_NoDuplicates(t *testing.T) {
	var corpus []campaign.Reference
	for i := 0; i < 8; i++ {
		corpus = append(corpus, ref(
			fmt.Sprintf("ref-%d", i), "Beverages",
			[]string{"Gen Z"}, []string{"Brand Awareness"}, []string{"Joy"}, "",
		))
	}

	refs := Match(briefInput(), corpus)
	if len(refs) != 3 {
		t.Fatalf("expected 3 references, got %d", len(refs))
	}
	seen := map[uuid.UUID]bool{}
	for _, r := range refs {
		if seen[r.ID] {
			t.Errorf("duplicate reference %q in selection", r.Name)
		}
		seen[r.ID] = true
	}
}

func TestMatch_WildcardDiversity(t *testing.T) {
	// Top two scorers share industry, audience and objectives; the corpus
	// contains a zero-overlap wildcard that should take the third slot.
	corpus := []campaign.Reference{
		ref("top-1", "Beverages", []string{"Gen Z"}, []string{"Brand Awareness"}, []string{"Joy"}, ""),
		ref("top-2", "Beverages", []string{"Gen Z"}, []string{"Brand Awareness"}, []string{"Joy", "Fun"}, ""),
		ref("similar-3", "Beverages", []string{"Gen Z"}, []string{"Brand Awareness"}, []string{"Joy"}, ""),
		ref("wildcard", "Aerospace", []string{"Engineers"}, []string{"Recruiting"}, []string{"Pride"}, ""),
	}

	refs := Match(briefInput(), corpus)
	if len(refs) != 3 {
		t.Fatalf("expected 3 references, got %d", len(refs))
	}

	third := refs[2]
	for _, first := range refs[:2] {
		if overlaps(third, first) {
			t.Errorf("third pick %q overlaps with %q on industry/audience/objectives", third.Name, first.Name)
		}
	}
	if third.Name != "wildcard" {
		t.Errorf("expected wildcard third, got %q", third.Name)
	}
}

func TestIndustryScore(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact case-insensitive", "Beverages", "beverages", 5},
		{"substring one direction", "Beverages", "Craft Beverages", 3},
		{"substring other direction", "Craft Beverages", "Beverages", 3},
		{"no match", "Beverages", "Finance", 0},
		{"empty candidate", "Beverages", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := industryScore(tt.a, tt.b); got != tt.want {
				t.Errorf("industryScore(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestListOverlapScore_Cap(t *testing.T) {
	inputs := []string{"Gen Z", "Millennials", "Parents", "Students"}
	candidates := []string{"Gen Z", "Millennials", "Parents", "Students"}

	if got := listOverlapScore(inputs, candidates); got != 15 {
		t.Errorf("expected cap at 15, got %f", got)
	}
}

func TestSentimentScore(t *testing.T) {
	tests := []struct {
		name  string
		input campaign.Input
		ref   campaign.Reference
		want  float64
	}{
		{
			name:  "both positive",
			input: campaign.Input{EmotionalAppeal: []string{"joy", "hope"}},
			ref:   campaign.Reference{EmotionalAppeals: []string{"delight", "optimism"}},
			want:  10,
		},
		{
			name:  "one neutral",
			input: campaign.Input{EmotionalAppeal: []string{"joy"}},
			ref:   campaign.Reference{EmotionalAppeals: []string{"efficiency"}},
			want:  5,
		},
		{
			name:  "opposite",
			input: campaign.Input{EmotionalAppeal: []string{"joy"}},
			ref:   campaign.Reference{EmotionalAppeals: []string{"fear", "anger"}},
			want:  0,
		},
		{
			name:  "both neutral",
			input: campaign.Input{EmotionalAppeal: []string{"efficiency"}},
			ref:   campaign.Reference{EmotionalAppeals: []string{"throughput"}},
			want:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sentimentScore(tt.input, tt.ref); got != tt.want {
				t.Errorf("sentimentScore = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestClassifyTone(t *testing.T) {
	tests := []struct {
		text string
		want tone
	}{
		{"professional corporate premium positioning", toneFormal},
		{"funny witty meme-driven", toneHumorous},
		{"inspire and empower people to transform", toneInspirational},
		{"urgent safety awareness", toneSerious},
		{"", toneCasual},
	}

	for _, tt := range tests {
		if got := classifyTone(tt.text); got != tt.want {
			t.Errorf("classifyTone(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestToneCompatibilityTableSymmetric(t *testing.T) {
	for i := 0; i < 5; i++ {
		if toneCompatibility[i][i] != 10 {
			t.Errorf("diagonal [%d][%d] = %f, want 10", i, i, toneCompatibility[i][i])
		}
		for j := 0; j < 5; j++ {
			if toneCompatibility[i][j] != toneCompatibility[j][i] {
				t.Errorf("table not symmetric at [%d][%d]", i, j)
			}
		}
	}
}

func TestStyleScore(t *testing.T) {
	r := campaign.Reference{
		Name:     "Quiet Luxury",
		Strategy: "a simple, clean identity built on restraint and understated design",
	}

	if got := styleScore("minimalist", r); got != 10 {
		t.Errorf("minimalist styleScore = %f, want 10 (capped)", got)
	}
	if got := styleScore("unknown-style", r); got != 0 {
		t.Errorf("unknown style scored %f, want 0", got)
	}
}

type stubEmbedder struct {
	vec []float64
	err error
}

func (s stubEmbedder) Embed(_ context.Context, _, _ string) ([]float64, error) {
	return s.vec, s.err
}

func TestSelector_EmbeddingFallback(t *testing.T) {
	logger := slog.Default()
	em, err := NewEmbeddingMatcher(stubEmbedder{err: fmt.Errorf("provider down")}, "embed-model", logger)
	if err != nil {
		t.Fatal(err)
	}
	sel := NewSelector(em, logger)

	corpus := []campaign.Reference{
		ref("A", "Beverages", []string{"Gen Z"}, []string{"Brand Awareness"}, []string{"Joy"}, ""),
		ref("B", "Finance", []string{"Professionals"}, []string{"Leads"}, []string{"Trust"}, ""),
	}

	refs := sel.Select(context.Background(), briefInput(), corpus)
	if len(refs) != 2 {
		t.Fatalf("fallback returned %d references, want 2", len(refs))
	}
	if refs[0].Name != "A" {
		t.Errorf("fallback should use keyword scoring, got %q first", refs[0].Name)
	}
}

func TestEmbeddingMatcher_RanksByCosine(t *testing.T) {
	em, err := NewEmbeddingMatcher(stubEmbedder{vec: []float64{1, 0}}, "embed-model", slog.Default())
	if err != nil {
		t.Fatal(err)
	}

	near := ref("near", "X", nil, nil, nil, "")
	near.Embedding = []float64{0.9, 0.1}
	far := ref("far", "Y", nil, nil, nil, "")
	far.Embedding = []float64{0, 1}

	refs, err := em.Match(context.Background(), briefInput(), []campaign.Reference{far, near})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refs[0].Name != "near" {
		t.Errorf("expected cosine-nearest first, got %q", refs[0].Name)
	}
}
