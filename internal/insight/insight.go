// Package insight produces the structured audience/brand contradiction
// that seeds the campaign strategy. One primary call per run; a secondary
// deepening call fills the irony and brand-complicity fields and is
// fail-soft.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/repair"
)

// Completer is the slice of the llm client this package needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	llm    Completer
	logger *slog.Logger
}

func New(llm Completer, logger *slog.Logger) *Generator {
	return &Generator{llm: llm, logger: logger}
}

const generatePrompt = `Find the sharpest audience insight for this brief.

Brand: %s
Industry: %s
Audience: %s
Emotional appeal: %s

Respond with valid JSON:
{
  "surfaceInsight": "what the audience says out loud",
  "emotionalUndercurrent": "what they actually feel",
  "creativeUnlock": "the creative opportunity this opens",
  "systemicHypocrisy": "the contradiction the category ignores",
  "actionParadox": "the gap between what they believe and what they do"
}

Return ONLY the JSON object.`

const deepenPrompt = `Deepen this insight with two more layers.

Insight:
surface: %s
undercurrent: %s
unlock: %s

Respond with valid JSON:
{
  "irony": "the irony at the heart of the insight",
  "brandComplicity": "how the brand itself contributes to the tension"
}

Return ONLY the JSON object.`

// Generate produces the insight for a brief. A model failure or
// unparseable response degrades to a serviceable default built from the
// brief itself, never an error: the pipeline must always have insight
// text to work with.
func (g *Generator) Generate(ctx context.Context, input campaign.Input) campaign.Insight {
	fallback := defaultInsight(input)

	prompt := fmt.Sprintf(generatePrompt,
		input.Brand,
		input.Industry,
		strings.Join(input.TargetAudience, ", "),
		strings.Join(input.EmotionalAppeal, ", "),
	)

	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("insight generation failed, using default", "error", err)
		return fallback
	}

	ins, ok := repair.Parse(raw, fallback)
	if !ok {
		g.logger.Warn("insight response unparseable, using default")
		return fallback
	}
	if ins.SurfaceInsight == "" {
		ins.SurfaceInsight = fallback.SurfaceInsight
	}

	return g.deepen(ctx, ins)
}

// deepen runs the secondary call that fills irony and brandComplicity.
// Any failure leaves the insight as it was.
func (g *Generator) deepen(ctx context.Context, ins campaign.Insight) campaign.Insight {
	raw, err := g.llm.Complete(ctx, fmt.Sprintf(deepenPrompt, ins.SurfaceInsight, ins.EmotionalUndercurrent, ins.CreativeUnlock))
	if err != nil {
		g.logger.Warn("insight deepening failed", "error", err)
		return ins
	}

	var layers struct {
		Irony           string `json:"irony"`
		BrandComplicity string `json:"brandComplicity"`
	}
	layers, ok := repair.Parse(raw, layers)
	if !ok {
		return ins
	}
	ins.Irony = layers.Irony
	ins.BrandComplicity = layers.BrandComplicity
	return ins
}

// Texts returns the three insight texts the prompt builder and the
// insight-scoring stage consume, in a fixed order.
func Texts(ins campaign.Insight) []string {
	return []string{ins.SurfaceInsight, ins.SystemicHypocrisy, ins.ActionParadox}
}

func defaultInsight(input campaign.Input) campaign.Insight {
	audience := "the audience"
	if len(input.TargetAudience) > 0 {
		audience = input.TargetAudience[0]
	}
	return campaign.Insight{
		SurfaceInsight:        fmt.Sprintf("%s says they want better %s options", audience, strings.ToLower(input.Industry)),
		EmotionalUndercurrent: fmt.Sprintf("%s wants to feel seen, not sold to", audience),
		CreativeUnlock:        fmt.Sprintf("%s can earn attention by dropping the category script", input.Brand),
		SystemicHypocrisy:     fmt.Sprintf("the %s category promises what it rarely delivers", strings.ToLower(input.Industry)),
		ActionParadox:         fmt.Sprintf("%s claims to ignore ads yet shares the ones that feel true", audience),
	}
}
