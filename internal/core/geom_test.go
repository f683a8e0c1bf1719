package core

import "testing"

func TestRectFIntersects(t *testing.T) {
	catcher := CenteredRectF(200, 480, 60, 60)

	tests := []struct {
		name     string
		item     RectF
		expected bool
	}{
		{"item above band", NewRectF(100, 399, 50, 50), false},
		{"bottom edge touches top edge", NewRectF(160, 400, 50, 50), false},
		{"one unit of overlap", NewRectF(160, 401, 50, 50), true},
		{"left of catcher touching", NewRectF(120, 450, 50, 50), false},
		{"right of catcher touching", NewRectF(230, 450, 50, 50), false},
		{"fully inside horizontally", NewRectF(175, 470, 50, 50), true},
		{"below catcher touching", NewRectF(180, 510, 50, 50), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := catcher.Intersects(tc.item); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.item.Intersects(catcher); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCenteredRectF(t *testing.T) {
	r := CenteredRectF(200, 480, 60, 60)

	if r.X != 170 || r.Y != 450 {
		t.Errorf("top-left = (%v, %v), expected (170, 450)", r.X, r.Y)
	}
	if r.Right() != 230 || r.Bottom() != 510 {
		t.Errorf("bottom-right = (%v, %v), expected (230, 510)", r.Right(), r.Bottom())
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{50, 5, 95, 50},
		{-12.5, 5, 95, 5},
		{130, 70, 95, 95},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestRectEdgesAndMax(t *testing.T) {
	r := NewRect(3, 4, 10, 2)
	if r.Right() != 13 || r.Bottom() != 6 {
		t.Errorf("edges = (%d, %d), expected (13, 6)", r.Right(), r.Bottom())
	}
	if Max(-1, 0) != 0 || Max(7, 2) != 7 {
		t.Error("Max() should return the larger value")
	}
}
