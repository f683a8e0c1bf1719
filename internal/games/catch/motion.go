package catch

// Motion advances live items and drops the ones that fell out of the field.
type Motion struct {
	baseSpeed float64
	itemSize  float64
}

// NewMotion creates a motion manager.
func NewMotion(baseSpeed, itemSize float64) Motion {
	return Motion{baseSpeed: baseSpeed, itemSize: itemSize}
}

// Advance moves every item down by baseSpeed*speed and returns the surviving
// items plus how many were missed. Survivors keep their relative order.
// The slice is filtered in place.
func (m Motion) Advance(items []FallingItem, speed float64, field Field) ([]FallingItem, int) {
	if !field.Ready() {
		return items, 0
	}

	dy := m.baseSpeed * speed
	limit := field.Height + m.itemSize
	kept := items[:0]
	missed := 0
	for _, it := range items {
		it.Y += dy
		if it.Y >= limit {
			missed++
			continue
		}
		kept = append(kept, it)
	}
	// Clear the tail so dropped items are not retained by the backing array.
	for i := len(kept); i < len(items); i++ {
		items[i] = FallingItem{}
	}
	return kept, missed
}
