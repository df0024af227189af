// Package pipeline runs the ordered enhancement stages over a campaign
// draft. Stages are declarative: each one takes a draft value and returns
// a new one, and the executor isolates failures so a broken stage skips
// instead of aborting the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/enrich"
)

// Completer is the slice of the llm client the stages need.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Stage is one enhancement pass. Run receives its own copy of the draft;
// returning an error discards that copy and the pipeline moves on with
// the previous draft.
type Stage struct {
	Name string
	Run  func(ctx context.Context, d campaign.Draft) (campaign.Draft, error)
}

type Pipeline struct {
	llm    Completer
	ports  []enrich.Port
	logger *slog.Logger
}

// New builds a pipeline. ports holds the optional external collaborators
// (creative director, disruptive pass) in invocation order; nil or empty
// means those stages no-op.
func New(llm Completer, ports []enrich.Port, logger *slog.Logger) *Pipeline {
	return &Pipeline{llm: llm, ports: ports, logger: logger}
}

// Run executes every stage in order and returns the final draft. Stage
// failures are logged and recorded in the audit log; they never abort the
// run, so the caller always receives a structurally complete draft.
func (p *Pipeline) Run(ctx context.Context, draft campaign.Draft, input campaign.Input, ins campaign.Insight) campaign.Draft {
	for _, stage := range p.Stages(input, ins) {
		next, err := stage.Run(ctx, draft.Clone())
		if err != nil {
			p.logger.Warn("stage failed, continuing with unchanged draft",
				"stage", stage.Name,
				"error", err,
			)
			draft.Modifications = append(draft.Modifications, fmt.Sprintf("%s skipped (%v)", stage.Name, err))
			continue
		}
		draft = next
	}
	return draft
}

// Stages returns the ordered stage list for one run. Order matters: the
// disruption stage reads the insight scores written by the first stage,
// and evaluation copies the bravery total attached two stages earlier.
func (p *Pipeline) Stages(input campaign.Input, ins campaign.Insight) []Stage {
	stages := []Stage{
		p.insightScoring(ins),
		p.strategyBooster(input),
		p.narrativeAnchor(input),
		p.executionFilters(input),
		p.weaknessDisruption(input),
		p.awardSpike(input),
	}
	for _, port := range p.ports {
		stages = append(stages, p.collaborator(port))
	}
	stages = append(stages,
		p.braveryMatrix(),
		p.storytelling(input),
		p.evaluation(input),
		p.emotionalRebalance(),
	)
	return stages
}
