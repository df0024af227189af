// Package lexicon holds the keyword tables used by the heuristic scorers
// and a small matching helper. Keeping the tables as data in one place is
// deliberate: every rule-based score in the service reads from here, so
// there is exactly one copy of each word list.
package lexicon

import "strings"

// Bravery matrix term families. Scored per dimension as
// min(round(hits/5*10), 10); see the bravery package.
var (
	Physicality = []string{
		"street", "stunt", "installation", "pop-up", "popup", "billboard",
		"mural", "graffiti", "flash mob", "projection", "sculpture",
		"takeover", "live event", "physical", "outdoor", "guerrilla",
		"public space", "real-world", "tactile", "hands-on",
	}

	Risk = []string{
		"controversial", "provocative", "polarizing", "taboo", "banned",
		"unapologetic", "confront", "challenge", "defy", "rebel",
		"break the rules", "risky", "daring", "bold", "fearless",
		"uncomfortable", "shock", "subvert", "expose", "call out",
		"unfiltered", "raw", "brutal honesty", "no apology", "dangerous",
	}

	CulturalTension = []string{
		"generation", "identity", "inequality", "climate", "gender",
		"privacy", "burnout", "loneliness", "authenticity", "consumerism",
		"hustle culture", "cancel culture", "social media", "mental health",
		"belonging", "tradition", "rebellion", "status quo", "taboo topic",
		"stigma", "stereotype", "double standard", "hypocrisy", "divide",
		"polarization",
	}

	Novelty = []string{
		"first-ever", "never before", "unprecedented", "invented",
		"world's first", "prototype", "experiment", "unexpected", "surprise",
		"reimagine", "reinvent", "flip", "reverse", "anti-",
		"breakthrough", "original", "one-of-a-kind", "unheard of",
	}

	// Cliche formats drag the novelty score down, 2 points per hit.
	Cliches = []string{
		"hashtag challenge", "influencer partnership", "user-generated content",
		"viral video", "social media contest", "giveaway", "photo contest",
		"branded filter", "dance challenge", "unboxing",
	}
)

// Warmth words checked by the emotional-rebalance stage. A narrative that
// already contains any of these is left untouched.
var Warmth = []string{
	"hope", "connection", "joy", "pride", "resilience", "community",
	"empathy", "love", "belonging", "care", "warmth", "together",
	"kindness", "comfort", "gratitude",
}

// Positive/negative emotion words for the sentiment dimension of the
// similarity matcher. Sentiment is the sign of positive minus negative hits.
var (
	Positive = []string{
		"joy", "hope", "love", "excitement", "pride", "trust", "delight",
		"inspiration", "happiness", "optimism", "confidence", "fun",
		"celebration", "wonder", "comfort",
	}

	Negative = []string{
		"fear", "anger", "guilt", "shame", "anxiety", "frustration",
		"sadness", "disgust", "urgency", "outrage", "dread", "regret",
		"envy", "loneliness",
	}
)

// AwardMarkers are the execution-plan phrases the award-spike stage looks
// for before deciding whether to inject a bolder tactic.
var AwardMarkers = []string{"disrupt", "innovate", "first-ever"}

// Hits counts how many terms appear as substrings of text. Text is matched
// case-insensitively; each term counts at most once.
func Hits(text string, terms []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			count++
		}
	}
	return count
}

// ContainsAny reports whether any term appears as a substring of text.
func ContainsAny(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
