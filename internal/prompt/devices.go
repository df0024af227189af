package prompt

// StyleDevice is one creative device offered to the model as a lever.
type StyleDevice struct {
	Name        string
	Description string
}

// Devices is the device library the generator samples from. Sampling
// happens in the caller so that Build stays deterministic.
var Devices = []StyleDevice{
	{Name: "Inversion", Description: "Take the category's most repeated promise and argue the opposite."},
	{Name: "Ritual Hijack", Description: "Attach the brand to an existing daily ritual instead of inventing a new one."},
	{Name: "Public Confession", Description: "Have the brand admit the thing the whole category hides."},
	{Name: "Scale Shift", Description: "Make the tiny enormous or the enormous tiny — play with physical scale."},
	{Name: "Constraint Theatre", Description: "Impose a visible, absurd constraint and let the work live inside it."},
	{Name: "Borrowed Authority", Description: "Let an unexpected third party deliver the message for the brand."},
	{Name: "Slow Reveal", Description: "Ship the campaign in fragments that only make sense once assembled."},
	{Name: "Useful Media", Description: "Turn the ad itself into a tool the audience actually uses."},
}

// awardPatterns is the fixed award-pattern library block included in every
// prompt. These are structural patterns, not examples to copy.
var awardPatterns = []string{
	"Product as proof: the product itself demonstrates the claim in public.",
	"System hack: exploit a rule of a platform, law, or format to the brand's advantage.",
	"Sacrifice: the brand gives up revenue, media space, or its own logo to make the point.",
	"Data made physical: turn an invisible statistic into an object people can touch.",
	"Community as media: the audience carries the message through something they already do.",
	"Long-term platform: a first act that can clearly run for years, not a one-off stunt.",
}
