// Package vibe classifies a styling survey into one of eight fixed vibes, either through a
// pluggable text-generation oracle or through an ordered rule table that always answers.
package vibe

const (
	HollywoodGlam  = "Hollywood Glam"
	EditorialChic  = "Editorial Chic"
	BridalGrace    = "Bridal Grace"
	EverydayChic   = "Everyday Chic"
	MinimalModern  = "Minimal Modern"
	VintageRomance = "Vintage Romance"
	BohoLuxe       = "Boho Luxe"
	BoldStatement  = "Bold Statement"
)

const FallbackExplanation = "Personalized selections tuned to your style and occasion."

type Entry struct {
	Label       string
	Image       string
	Explanation string
}

// Table is the read-only vibe lookup built once at startup and shared by value.
type Table struct {
	entries []Entry
	index   map[string]int
}

func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)
	for i, e := range t.entries {
		t.index[e.Label] = i
	}
	return t
}

// DefaultTable returns the eight kiosk vibes in display order.
func DefaultTable() *Table {
	return NewTable([]Entry{
		{HollywoodGlam, "https://images.unsplash.com/photo-1616837874254-8d5aaa63e273?crop=entropy&cs=srgb&fm=jpg&q=85",
			"Polished silhouettes, luminous stones, and a camera-ready finish inspired by red carpet icons."},
		{EditorialChic, "https://images.unsplash.com/photo-1727784892059-c85b4d9f763c?crop=entropy&cs=srgb&fm=jpg&q=85",
			"Sculptural forms and fashion-forward proportions straight from glossy magazine spreads."},
		{BridalGrace, "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?crop=entropy&cs=srgb&fm=jpg&q=85",
			"Ethereal pearls and timeless sparkle crafted for aisle-worthy elegance."},
		{EverydayChic, "https://images.unsplash.com/photo-1611107683227-e9060eccd846?crop=entropy&cs=srgb&fm=jpg&q=85",
			"Lightweight, versatile gold essentials that elevate your daily uniform."},
		{MinimalModern, "https://images.unsplash.com/photo-1758995115682-1452a1a9e35b?crop=entropy&cs=srgb&fm=jpg&q=85",
			"Clean lines and quiet luxury in refined, architectural pieces."},
		{VintageRomance, "https://images.unsplash.com/photo-1758995115785-d13726ac93f0?crop=entropy&cs=srgb&fm=jpg&q=85",
			"Nostalgic details and heirloom charm with a soft, romantic mood."},
		{BohoLuxe, "https://images.unsplash.com/photo-1684439673104-f5d22791c71a?crop=entropy&cs=srgb&fm=jpg&q=85",
			"Relaxed layers, warm textures, and travel-ready shine for free spirits."},
		{BoldStatement, "https://images.unsplash.com/photo-1623321673989-830eff0fd59f?crop=entropy&cs=srgb&fm=jpg&q=85",
			"Confident, eye-catching designs that transform any look in one move."},
	})
}

func (t *Table) Lookup(label string) (Entry, bool) {
	i, ok := t.index[label]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

func (t *Table) Valid(label string) bool {
	_, ok := t.index[label]
	return ok
}

// Explanation returns the canned sentence for label, or FallbackExplanation.
func (t *Table) Explanation(label string) string {
	if e, ok := t.Lookup(label); ok {
		return e.Explanation
	}
	return FallbackExplanation
}

func (t *Table) Image(label string) string {
	e, _ := t.Lookup(label)
	return e.Image
}

// Labels returns a copy of the labels in display order.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.entries))
	for i, e := range t.entries {
		labels[i] = e.Label
	}
	return labels
}
