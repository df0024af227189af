// Package prompt assembles the generation prompt from the brief, matched
// references, insights, trends and style metadata. Build is a pure
// function: identical inputs produce an identical prompt, byte for byte.
// Any randomness (which devices or trends to include) is resolved by the
// caller before Build is invoked.
package prompt

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
)

const personaInstructions = `You are an award-winning creative director known for brave, culturally sharp campaign ideas. You reject safe, expected work. Every idea must be concrete enough to brief a production team tomorrow.`

const outputSchema = `Respond with a single JSON object matching this schema exactly. Return ONLY the JSON, optionally inside a json code fence.

` + "```json" + `
{
  "campaignName": "string",
  "keyMessage": "string",
  "strategy": "string",
  "executionPlan": ["3 to 7 concrete execution items"],
  "viralElement": "string",
  "callToAction": "string",
  "creativeStrategy": ["string"],
  "expectedOutcomes": ["string"]
}
` + "```"

// Build concatenates the fixed prompt sections into the final prompt
// string sent to the generation model.
func Build(input campaign.Input, references []campaign.Reference, insightTexts []string, devices []StyleDevice, trends []campaign.Trend) string {
	var b strings.Builder

	b.WriteString(personaInstructions)
	b.WriteString("\n\n")

	if input.Persona != "" {
		fmt.Fprintf(&b, "Adopt this persona for the work: %s\n\n", input.Persona)
	}
	if input.Lens != "" {
		fmt.Fprintf(&b, "View the brief through this creative lens: %s\n\n", input.Lens)
	}

	writeBrandFacts(&b, input)
	writeInsights(&b, insightTexts)
	writeTrends(&b, trends)
	writeDevices(&b, devices)
	writeReferences(&b, references)
	writeAwardPatterns(&b)

	if input.Constraints != "" {
		fmt.Fprintf(&b, "## Constraints\n%s\n\n", input.Constraints)
	}

	b.WriteString(outputSchema)
	return b.String()
}

func writeBrandFacts(b *strings.Builder, input campaign.Input) {
	b.WriteString("## Brief\n")
	fmt.Fprintf(b, "Brand: %s\n", input.Brand)
	fmt.Fprintf(b, "Industry: %s\n", input.Industry)
	fmt.Fprintf(b, "Target audience: %s\n", strings.Join(input.TargetAudience, ", "))
	fmt.Fprintf(b, "Objectives: %s\n", strings.Join(input.Objectives, ", "))
	fmt.Fprintf(b, "Emotional appeal: %s\n", strings.Join(input.EmotionalAppeal, ", "))
	if input.Style != "" {
		fmt.Fprintf(b, "Style: %s\n", input.Style)
	}
	b.WriteString("\n")
}

func writeInsights(b *strings.Builder, insightTexts []string) {
	if len(insightTexts) == 0 {
		return
	}
	b.WriteString("## Insights\nGround the idea in these audience insights:\n")
	for i, text := range insightTexts {
		fmt.Fprintf(b, "%d. %s\n", i+1, text)
	}
	b.WriteString("\n")
}

func writeTrends(b *strings.Builder, trends []campaign.Trend) {
	if len(trends) == 0 {
		return
	}
	b.WriteString("## Cultural trends\nCurrent signals you may tap into:\n")
	for _, tr := range trends {
		fmt.Fprintf(b, "- %s: %s (%s)\n", tr.Title, tr.Description, tr.Source)
	}
	b.WriteString("\n")
}

func writeDevices(b *strings.Builder, devices []StyleDevice) {
	if len(devices) == 0 {
		return
	}
	b.WriteString("## Creative devices\nConsider these devices:\n")
	for _, d := range devices {
		fmt.Fprintf(b, "- %s: %s\n", d.Name, d.Description)
	}
	b.WriteString("\n")
}

func writeReferences(b *strings.Builder, references []campaign.Reference) {
	if len(references) == 0 {
		return
	}
	b.WriteString("## Reference campaigns\nLearn from the craft of these, do not copy them:\n")
	for _, ref := range references {
		fmt.Fprintf(b, "### %s (%s, %s)\n", ref.Name, ref.Brand, ref.Industry)
		fmt.Fprintf(b, "Audiences: %s\n", strings.Join(ref.Audiences, ", "))
		fmt.Fprintf(b, "Objectives: %s\n", strings.Join(ref.Objectives, ", "))
		fmt.Fprintf(b, "Strategy: %s\n", ref.Strategy)
	}
	b.WriteString("\n")
}

func writeAwardPatterns(b *strings.Builder) {
	b.WriteString("## Award-pattern library\nStructural patterns behind awarded work:\n")
	for _, p := range awardPatterns {
		fmt.Fprintf(b, "- %s\n", p)
	}
	b.WriteString("\n")
}
