package corpus

import (
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/muse/internal/campaign"
)

// Seed returns the embedded reference set used when no database is
// configured. IDs are fixed so rebuilt embeddings stay attached to the
// same entries across restarts.
func Seed() []campaign.Reference {
	return []campaign.Reference{
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0001"),
			Name:             "The Last Billboard",
			Brand:            "Meridian Outdoors",
			Industry:         "Apparel",
			Audiences:        []string{"Millennials", "Outdoor Enthusiasts"},
			Objectives:       []string{"Brand Awareness"},
			EmotionalAppeals: []string{"Adventure", "Freedom"},
			Strategy:         "Bought the city's oldest billboard and left it blank for a month, then revealed that the view behind it was the ad. Drove people outdoors by refusing to interrupt them.",
		},
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0002"),
			Name:             "Receipts",
			Brand:            "Northway Bank",
			Industry:         "Finance",
			Audiences:        []string{"Gen Z", "First-time Savers"},
			Objectives:       []string{"Trust", "Acquisition"},
			EmotionalAppeals: []string{"Trust", "Relief"},
			Strategy:         "Published every fee the bank charges on giant physical receipts in branch windows, including the embarrassing ones, and cut the three customers complained about most.",
		},
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0003"),
			Name:             "Open Kitchen",
			Brand:            "Forno Rapido",
			Industry:         "Food & Beverage",
			Audiences:        []string{"Families", "Urban Professionals"},
			Objectives:       []string{"Brand Awareness", "Footfall"},
			EmotionalAppeals: []string{"Joy", "Honesty"},
			Strategy:         "Live-streamed every kitchen in the chain around the clock with no edits, and put the stream on delivery boxes as a QR code. Turned food-safety paranoia into the product story.",
		},
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0004"),
			Name:             "Out of Office",
			Brand:            "Solstice Travel",
			Industry:         "Travel",
			Audiences:        []string{"Gen Z", "Young Professionals"},
			Objectives:       []string{"Conversion"},
			EmotionalAppeals: []string{"Freedom", "Escape"},
			Strategy:         "Paid for strangers' out-of-office replies: anyone who booked could have their auto-reply written by a travel writer, turning inboxes into earned media for the destination.",
		},
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0005"),
			Name:             "Quiet Hours",
			Brand:            "Lumen Audio",
			Industry:         "Consumer Electronics",
			Audiences:        []string{"Commuters", "Urban Professionals"},
			Objectives:       []string{"Product Launch"},
			EmotionalAppeals: []string{"Calm", "Relief"},
			Strategy:         "Launched noise-cancelling headphones by sponsoring silence: bought the ad space in three metro stations and left it empty, branded only at the exit.",
		},
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0006"),
			Name:             "Second Shift",
			Brand:            "Hearth Coffee",
			Industry:         "Food & Beverage",
			Audiences:        []string{"Night Workers", "Students"},
			Objectives:       []string{"Brand Love", "Footfall"},
			EmotionalAppeals: []string{"Community", "Care"},
			Strategy:         "Kept one store in every city open all night with free refills for anyone in work uniform, and let night workers program the playlist. The campaign was the opening hours.",
		},
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0007"),
			Name:             "Terms and Conditions",
			Brand:            "Relay Mobile",
			Industry:         "Telecommunications",
			Audiences:        []string{"Gen Z", "Switchers"},
			Objectives:       []string{"Acquisition", "Differentiation"},
			EmotionalAppeals: []string{"Honesty", "Humour"},
			Strategy:         "Hired a poet to rewrite the entire customer contract in plain verse and performed it live at a festival. Signed the performance as the legally binding document.",
		},
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0008"),
			Name:             "Worst Seat in the House",
			Brand:            "Arena Collective",
			Industry:         "Entertainment",
			Audiences:        []string{"Sports Fans", "Gen Z"},
			Objectives:       []string{"Ticket Sales"},
			EmotionalAppeals: []string{"Humour", "Belonging"},
			Strategy:         "Sold the venue's genuinely worst seat for one euro with a camera on it, and cut the occupant's reactions into the broadcast. Made the cheap seats the content.",
		},
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0009"),
			Name:             "Grown Here",
			Brand:            "Verde Markets",
			Industry:         "Retail",
			Audiences:        []string{"Families", "Suburban Shoppers"},
			Objectives:       []string{"Trust", "Brand Awareness"},
			EmotionalAppeals: []string{"Pride", "Community"},
			Strategy:         "Replaced product photography with live windows into supplier farms, naming the grower on every price tag and paying them a cameo fee when their section sold out.",
		},
		{
			ID:               uuid.MustParse("5b1e62a0-0d3f-4c1a-9a71-0e6a1f1c0010"),
			Name:             "Battery Funeral",
			Brand:            "Voltaic",
			Industry:         "Consumer Electronics",
			Audiences:        []string{"Gen Z", "Early Adopters"},
			Objectives:       []string{"Product Launch", "Sustainability"},
			EmotionalAppeals: []string{"Humour", "Hope"},
			Strategy:         "Held public funerals for dead phone batteries, trading each one handed in for launch-day credit. Turned the recycling bin into a first-ever street ritual.",
		},
	}
}
