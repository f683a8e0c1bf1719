package catch

import (
	"time"

	"github.com/vovakirdan/tui-catch/internal/config"
)

// Feedback is a transient score popup.
type Feedback struct {
	Delta     int       `json:"delta"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Capture records one resolved catch.
type Capture struct {
	Item     FallingItem
	Delta    int // Applied score change after clamping
	Feedback Feedback
}

// Resolver tests the catcher against live items and applies scores.
type Resolver struct {
	items   config.ItemsConfig
	catcher float64
	ttl     time.Duration
}

// NewResolver creates a collision resolver.
func NewResolver(cfg config.CatchConfig) Resolver {
	return Resolver{items: cfg.Items, catcher: cfg.Catcher.Size, ttl: cfg.FeedbackDuration()}
}

// Resolve removes every item overlapping the catcher, in insertion order,
// applying its score effect to *score. It returns the surviving items and
// the captures made this pass.
func (r Resolver) Resolve(items []FallingItem, catcher CatcherState, field Field, score *int, now time.Time) ([]FallingItem, []Capture) {
	if !field.Ready() || len(items) == 0 {
		return items, nil
	}

	box := catcher.Box(field, r.catcher)
	var captures []Capture
	kept := items[:0]
	for _, it := range items {
		if !box.Intersects(it.Box(r.items.Size)) {
			kept = append(kept, it)
			continue
		}

		shown := it.PointValue
		before := *score
		if it.IsHazard {
			shown = -r.items.HazardPenalty
			*score = max(0, *score-r.items.HazardPenalty)
		} else {
			*score += it.PointValue
		}
		captures = append(captures, Capture{
			Item:  it,
			Delta: *score - before,
			Feedback: Feedback{
				Delta:     shown,
				X:         it.X + r.items.Size/2,
				Y:         it.Y,
				ExpiresAt: now.Add(r.ttl),
			},
		})
	}
	for i := len(kept); i < len(items); i++ {
		items[i] = FallingItem{}
	}
	return kept, captures
}
