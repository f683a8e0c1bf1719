package catch

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-catch/internal/core"
)

// Visual characters for rendering
const (
	BasketSide   = '|'
	BasketBottom = '_'
	HUDSeparator = '─'
)

var kindGlyphs = map[Kind]struct {
	r rune
	c core.Color
}{
	KindApple:  {'@', core.ColorRed},
	KindBanana: {')', core.ColorYellow},
	KindCherry: {'&', core.ColorBrightRed},
	KindOrange: {'O', core.ColorOrange},
	KindStone:  {'#', core.ColorGray},
	KindRotten: {'*', core.ColorGreen},
	KindBonus:  {'$', core.ColorBrightYellow},
}

// Layout maps field units to terminal cells.
// Row 0 is the HUD, the last row is the status line, the rows between are the field.
type Layout struct {
	Cols, Rows   int
	CellW, CellH float64
}

// NewLayout creates a layout for a screen of cols×rows cells.
func NewLayout(cols, rows int, cellW, cellH float64) Layout {
	return Layout{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH}
}

// FieldRows returns the number of rows used by the play-field.
func (l Layout) FieldRows() int {
	return core.Max(l.Rows-2, 0)
}

// Field returns the play-field size in field units.
func (l Layout) Field() Field {
	return Field{Width: float64(l.Cols) * l.CellW, Height: float64(l.FieldRows()) * l.CellH}
}

// Bounds returns the field's bounding box in field units.
func (l Layout) Bounds() core.RectF {
	f := l.Field()
	return core.NewRectF(0, 0, f.Width, f.Height)
}

// PointerAt converts a terminal cell to a pointer event aimed at the cell center.
func (l Layout) PointerAt(action core.PointerAction, col, row int) core.PointerEvent {
	return core.PointerEvent{
		Action: action,
		X:      (float64(col) + 0.5) * l.CellW,
		Y:      (float64(row-1) + 0.5) * l.CellH,
		Bounds: l.Bounds(),
	}
}

// cellRect converts a field-unit box to the screen cells it covers.
func (l Layout) cellRect(b core.RectF) core.Rect {
	x0 := int(math.Floor(b.X / l.CellW))
	y0 := int(math.Floor(b.Y / l.CellH))
	x1 := int(math.Ceil(b.Right() / l.CellW))
	y1 := int(math.Ceil(b.Bottom() / l.CellH))
	return core.NewRect(x0, y0+1, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// Render draws a snapshot to dst.
func Render(dst *core.Screen, l Layout, snap Snapshot) {
	dst.Clear()
	fieldRows := l.FieldRows()

	for _, it := range snap.Items {
		g, ok := kindGlyphs[it.Kind]
		if !ok {
			continue
		}
		r := l.cellRect(it.Box(snap.ItemSize))
		drawClipped(dst, r, fieldRows, g.r, g.c)
	}

	if snap.Field.Ready() {
		drawBasket(dst, l.cellRect(snap.Catcher.Box(snap.Field, snap.CatcherSize)), fieldRows)
	}

	if fb := snap.Feedback; fb != nil {
		text := fmt.Sprintf("%+d", fb.Delta)
		c := core.ColorBrightGreen
		if fb.Delta < 0 {
			c = core.ColorBrightRed
		}
		col := int(fb.X/l.CellW) - len(text)/2
		row := int(fb.Y/l.CellH) + 1
		if row >= 1 && row <= fieldRows {
			dst.DrawTextColored(col, row, text, c)
		}
	}

	drawHUD(dst, snap)

	if snap.Ended() {
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "TIME'S UP", core.ColorBrightYellow)
		dst.DrawTextCentered(mid, fmt.Sprintf("Final score: %d", snap.Score), core.ColorWhite)
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawHLine(0, 0, dst.Width(), HUDSeparator, core.ColorGray)
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightYellow)

	timer := fmt.Sprintf(" %s ", FormatClock(snap.RemainingSeconds))
	tc := core.ColorWhite
	if snap.RemainingSeconds <= 10 {
		tc = core.ColorBrightRed
	}
	dst.DrawTextColored(dst.Width()-len(timer)-2, 0, timer, tc)

	status := dst.Height() - 1
	if status <= 0 {
		return
	}
	dst.DrawHLine(0, status, dst.Width(), HUDSeparator, core.ColorGray)
	dst.DrawTextColored(2, status, fmt.Sprintf(" Speed: %gx ", snap.SpeedMultiplier), core.ColorCyan)
}

// drawClipped fills r, skipping cells outside the field rows.
func drawClipped(dst *core.Screen, r core.Rect, fieldRows int, ch rune, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		if y < 1 || y > fieldRows {
			continue
		}
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, ch, c)
		}
	}
}

func drawBasket(dst *core.Screen, r core.Rect, fieldRows int) {
	for y := r.Y; y < r.Bottom(); y++ {
		if y < 1 || y > fieldRows {
			continue
		}
		dst.SetColored(r.X, y, BasketSide, core.ColorBrown)
		dst.SetColored(r.Right()-1, y, BasketSide, core.ColorBrown)
		if y == r.Bottom()-1 {
			for x := r.X + 1; x < r.Right()-1; x++ {
				dst.SetColored(x, y, BasketBottom, core.ColorBrown)
			}
		}
	}
}

// FormatClock renders seconds as m:ss.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
