// Package catch implements the falling-item catch game.
// A round runs for a fixed wall-clock time while fruit, hazards and a rare
// bonus crate fall through the field; the player drags a catcher to collect
// them. The package is pure game logic: platforms feed it time and pointer
// samples and draw its snapshots.
package catch

import (
	"fmt"

	"github.com/vovakirdan/tui-catch/internal/core"
)

// Kind identifies what a falling item is.
type Kind int

const (
	KindApple Kind = iota
	KindBanana
	KindCherry
	KindOrange
	KindStone
	KindRotten
	KindBonus
)

var (
	goodKinds   = [...]Kind{KindApple, KindBanana, KindCherry, KindOrange}
	hazardKinds = [...]Kind{KindStone, KindRotten}
)

var kindNames = map[Kind]string{
	KindApple:  "apple",
	KindBanana: "banana",
	KindCherry: "cherry",
	KindOrange: "orange",
	KindStone:  "stone",
	KindRotten: "rotten",
	KindBonus:  "bonus",
}

// String returns the kind's name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name for JSON snapshots.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("catch: unknown item kind %d", int(k))
	}
	return []byte(name), nil
}

// IsHazard reports whether catching the kind costs points.
func (k Kind) IsHazard() bool {
	return k == KindStone || k == KindRotten
}

// ItemID identifies an item for its whole lifetime within a round.
type ItemID uint64

// FallingItem is one live entity in the field.
// X is fixed at spawn; Y only grows until the item is caught or falls out.
type FallingItem struct {
	ID         ItemID  `json:"id"`
	Kind       Kind    `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	PointValue int     `json:"pointValue"`
	IsHazard   bool    `json:"isHazard"`
}

// Box returns the item's bounding box for an item edge length of size.
func (it FallingItem) Box(size float64) core.RectF {
	return core.NewRectF(it.X, it.Y, size, size)
}

// Field is the measured play-field size in field units.
// A zero dimension means the field has not been laid out yet.
type Field struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Ready reports whether the field has usable dimensions.
func (f Field) Ready() bool {
	return f.Width > 0 && f.Height > 0
}
