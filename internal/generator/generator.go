// Package generator orchestrates one campaign run: insight, reference
// matching, prompt assembly, the generation call, response repair and the
// enhancement pipeline. Only two things abort a run — an invalid brief
// and a failed generation call; everything downstream degrades instead.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/insight"
	"github.com/MikeSquared-Agency/muse/internal/matcher"
	"github.com/MikeSquared-Agency/muse/internal/pipeline"
	"github.com/MikeSquared-Agency/muse/internal/prompt"
	"github.com/MikeSquared-Agency/muse/internal/repair"
	"github.com/MikeSquared-Agency/muse/internal/trends"
)

const (
	trendsPerRun  = 3
	devicesPerRun = 3
)

// Completer is the slice of the llm client the generator needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CorpusSource provides the reference corpus for matching. The store and
// the embedded seed corpus both satisfy it.
type CorpusSource interface {
	References() []campaign.Reference
}

type Generator struct {
	llm      Completer
	insights *insight.Generator
	selector *matcher.Selector
	trends   *trends.Cache
	pipeline *pipeline.Pipeline
	corpus   CorpusSource
	logger   *slog.Logger

	// Randomness for trend and device sampling; swapped in tests.
	newRNG func() *rand.Rand
}

func New(llm Completer, insights *insight.Generator, selector *matcher.Selector, trendCache *trends.Cache, pipe *pipeline.Pipeline, corpus CorpusSource, logger *slog.Logger) *Generator {
	return &Generator{
		llm:      llm,
		insights: insights,
		selector: selector,
		trends:   trendCache,
		pipeline: pipe,
		corpus:   corpus,
		logger:   logger,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Generate runs the whole pipeline for one brief.
func (g *Generator) Generate(ctx context.Context, input campaign.Input) (campaign.Generated, error) {
	if err := input.Validate(); err != nil {
		return campaign.Generated{}, err
	}

	runID := uuid.New()
	logger := g.logger.With("run_id", runID)
	start := time.Now()

	ins := g.insights.Generate(ctx, input)
	references := g.selector.Select(ctx, input, g.corpus.References())

	rng := g.newRNG()
	sampledTrends := g.trends.Sample(trendsPerRun, rng)
	devices := sampleDevices(devicesPerRun, rng)

	p := prompt.Build(input, references, insight.Texts(ins), devices, sampledTrends)

	raw, err := g.llm.Complete(ctx, p)
	if err != nil {
		return campaign.Generated{}, fmt.Errorf("generate campaign: %w", err)
	}

	draft, ok := repair.Parse(raw, fallbackDraft(input))
	if !ok {
		logger.Warn("generation response unparseable, starting from fallback draft")
		draft.Modifications = append(draft.Modifications, "generation: fallback draft (unparseable model output)")
	}

	draft = g.pipeline.Run(ctx, draft, input, ins)

	logger.Info("campaign generated",
		"campaign", draft.CampaignName,
		"references", len(references),
		"stages_recorded", len(draft.Modifications),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return campaign.Generated{RunID: runID, Draft: draft}, nil
}

func sampleDevices(n int, rng *rand.Rand) []prompt.StyleDevice {
	if n >= len(prompt.Devices) {
		out := make([]prompt.StyleDevice, len(prompt.Devices))
		copy(out, prompt.Devices)
		return out
	}
	out := make([]prompt.StyleDevice, 0, n)
	for _, idx := range rng.Perm(len(prompt.Devices))[:n] {
		out = append(out, prompt.Devices[idx])
	}
	return out
}

// fallbackDraft is the structurally complete draft used when the model's
// generation response cannot be repaired into JSON. The pipeline still
// runs over it, so the caller always receives every output section.
func fallbackDraft(input campaign.Input) campaign.Draft {
	return campaign.Draft{
		CampaignName:  fmt.Sprintf("%s Unscripted", input.Brand),
		KeyMessage:    fmt.Sprintf("%s, without the category script", input.Brand),
		Strategy:      fmt.Sprintf("Put %s where %s already spends attention and let honesty do the persuading.", input.Brand, joinOr(input.TargetAudience, "the audience")),
		ExecutionPlan: []string{"a flagship stunt in a high-footfall public space", "a creator-led social series", "an earned-media press moment"},
		ViralElement:  "an artifact people photograph because it should not exist",
		CallToAction:  fmt.Sprintf("See what %s does next", input.Brand),
		CreativeStrategy: []string{
			"lead with the audience's own contradiction",
			"make the brand the proof, not the promise",
		},
		ExpectedOutcomes: []string{"earned reach beyond paid media", "a measurable lift in brand conversation"},
	}
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return items[0]
}
