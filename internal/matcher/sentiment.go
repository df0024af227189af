package matcher

import (
	"strings"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/lexicon"
)

// sentiment is the net sign of positive minus negative emotion-word hits.
type sentiment int

const (
	sentimentNegative sentiment = -1
	sentimentNeutral  sentiment = 0
	sentimentPositive sentiment = 1
)

func sentimentOf(text string) sentiment {
	net := lexicon.Hits(text, lexicon.Positive) - lexicon.Hits(text, lexicon.Negative)
	switch {
	case net > 0:
		return sentimentPositive
	case net < 0:
		return sentimentNegative
	default:
		return sentimentNeutral
	}
}

// sentimentScore: equal sentiment 10, exactly one side neutral 5,
// opposite sentiment 0.
func sentimentScore(input campaign.Input, ref campaign.Reference) float64 {
	inputSent := sentimentOf(strings.Join(input.EmotionalAppeal, " ") + " " + strings.Join(input.Objectives, " "))
	refSent := sentimentOf(strings.Join(ref.EmotionalAppeals, " ") + " " + ref.Strategy)

	switch {
	case inputSent == refSent:
		return 10
	case inputSent == sentimentNeutral || refSent == sentimentNeutral:
		return 5
	default:
		return 0
	}
}

// tone is a 5-way keyword-scored classification over objectives and
// emotional appeal text.
type tone int

const (
	toneFormal tone = iota
	toneCasual
	toneHumorous
	toneSerious
	toneInspirational
)

var toneKeywords = map[tone][]string{
	toneFormal:        {"professional", "corporate", "premium", "sophisticated", "executive", "b2b", "enterprise"},
	toneCasual:        {"fun", "friendly", "everyday", "relatable", "casual", "approachable", "laid-back"},
	toneHumorous:      {"funny", "humor", "humour", "witty", "playful", "joke", "meme", "satire"},
	toneSerious:       {"urgent", "important", "awareness", "crisis", "trust", "safety", "responsibility"},
	toneInspirational: {"inspire", "empower", "dream", "aspire", "transform", "uplift", "motivate", "courage"},
}

// toneCompatibility is a fixed symmetric table indexed by tone, in the
// order formal, casual, humorous, serious, inspirational. Identical tones
// score 10.
var toneCompatibility = [5][5]float64{
	{10, 3, 2, 8, 6},
	{3, 10, 8, 4, 7},
	{2, 8, 10, 2, 6},
	{8, 4, 2, 10, 7},
	{6, 7, 6, 7, 10},
}

// classifyTone picks the tone with the highest keyword score; ties and
// zero-hit texts fall back to casual.
func classifyTone(text string) tone {
	best := toneCasual
	bestHits := 0
	for _, t := range []tone{toneFormal, toneCasual, toneHumorous, toneSerious, toneInspirational} {
		if hits := lexicon.Hits(text, toneKeywords[t]); hits > bestHits {
			bestHits = hits
			best = t
		}
	}
	return best
}

func toneScore(input campaign.Input, ref campaign.Reference) float64 {
	inputTone := classifyTone(strings.Join(input.Objectives, " ") + " " + strings.Join(input.EmotionalAppeal, " "))
	refTone := classifyTone(strings.Join(ref.Objectives, " ") + " " + strings.Join(ref.EmotionalAppeals, " ") + " " + ref.Strategy)
	return toneCompatibility[inputTone][refTone]
}

// styleKeywords maps a requested style tag to the markers expected in a
// matching reference campaign's strategy text.
var styleKeywords = map[string][]string{
	"minimalist": {"simple", "clean", "minimal", "restraint", "quiet", "understated"},
	"bold":       {"bold", "loud", "statement", "fearless", "unmissable", "daring"},
	"playful":    {"playful", "fun", "whimsical", "game", "joy", "lighthearted"},
	"luxury":     {"premium", "luxury", "exclusive", "craft", "elegant", "refined"},
	"edgy":       {"edgy", "raw", "rebel", "underground", "gritty", "subversive"},
	"heartfelt":  {"emotional", "human", "story", "warmth", "family", "authentic"},
	"retro":      {"nostalgia", "retro", "vintage", "throwback", "classic", "heritage"},
}

// styleScore: min(matchCount * 2.5, 10) against the style keyword table.
// Unknown style tags score 0.
func styleScore(style string, ref campaign.Reference) float64 {
	keywords, ok := styleKeywords[strings.ToLower(strings.TrimSpace(style))]
	if !ok {
		return 0
	}
	text := ref.Strategy + " " + ref.Name
	score := float64(lexicon.Hits(text, keywords)) * 2.5
	if score > 10 {
		return 10
	}
	return score
}
