package game

import "testing"

func TestBoxesCollide(t *testing.T) {
	square := Size{Width: 10, Height: 10}

	tests := []struct {
		name     string
		a, b     Point
		aSize    Size
		bSize    Size
		expected bool
	}{
		{"same cell", Point{0, 0}, Point{0, 0}, square, square, true},
		{"overlapping", Point{0, 0}, Point{5, 5}, square, square, true},
		{"touching right edge", Point{0, 0}, Point{10, 0}, square, square, true},
		{"touching bottom edge", Point{0, 0}, Point{0, 10}, square, square, true},
		{"touching corner", Point{0, 0}, Point{10, 10}, square, square, true},
		{"one pixel apart horizontally", Point{0, 0}, Point{11, 0}, square, square, false},
		{"one pixel apart vertically", Point{0, 0}, Point{0, 11}, square, square, false},
		{"far away", Point{0, 0}, Point{50, 50}, square, square, false},
		{"contained", Point{0, 0}, Point{5, 5}, Size{20, 20}, Size{2, 2}, true},
		{"negative coordinates", Point{-10, -10}, Point{-5, -5}, square, square, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BoxesCollide(tc.aSize, tc.a, tc.bSize, tc.b)
			if got != tc.expected {
				t.Errorf("BoxesCollide(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
			if reversed := BoxesCollide(tc.bSize, tc.b, tc.aSize, tc.a); reversed != got {
				t.Errorf("BoxesCollide is not symmetric for %v and %v", tc.a, tc.b)
			}
		})
	}
}

func TestInteriorsOverlapIgnoresTouchingBoxes(t *testing.T) {
	square := Size{Width: 10, Height: 10}

	if interiorsOverlap(square, Point{0, 0}, square, Point{10, 0}) {
		t.Error("boxes sharing an edge should not overlap")
	}
	if !interiorsOverlap(square, Point{0, 0}, square, Point{9, 9}) {
		t.Error("boxes sharing a pixel should overlap")
	}
}

func TestParsePath(t *testing.T) {
	if p, ok := ParsePath("vertical"); !ok || p != Vertical {
		t.Errorf("ParsePath(vertical) = %v, %v", p, ok)
	}
	if p, ok := ParsePath("horizontal"); !ok || p != Horizontal {
		t.Errorf("ParsePath(horizontal) = %v, %v", p, ok)
	}
	if _, ok := ParsePath("diagonal"); ok {
		t.Error("ParsePath accepted an unknown path")
	}
	if Vertical.String() != "vertical" || Horizontal.String() != "horizontal" {
		t.Error("Path.String does not round trip")
	}
}
