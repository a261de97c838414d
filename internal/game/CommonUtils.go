package game

type Point struct {
	X, Y int
}

type Size struct {
	Width, Height int
}

// Color is an xterm-256 palette index.
type Color int

type Path int

const (
	Horizontal Path = iota
	Vertical
)

func (p Path) String() string {
	if p == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func ParsePath(s string) (Path, bool) {
	switch s {
	case "horizontal":
		return Horizontal, true
	case "vertical":
		return Vertical, true
	}
	return Horizontal, false
}

type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// BoxesCollide reports whether two axis-aligned boxes, positioned by their
// top-left corner, intersect. Boxes that only share an edge or a corner
// count as colliding.
func BoxesCollide(firstSize Size, firstPosition Point, secondSize Size, secondPosition Point) bool {
	isNotIntersectingHorizontally := firstPosition.X > secondSize.Width+secondPosition.X ||
		secondPosition.X > firstSize.Width+firstPosition.X
	isNotIntersectingVertically := firstPosition.Y > secondSize.Height+secondPosition.Y ||
		secondPosition.Y > firstSize.Height+firstPosition.Y

	return !isNotIntersectingHorizontally && !isNotIntersectingVertically
}

// interiorsOverlap is the strict variant of BoxesCollide: touching boxes do
// not overlap. Used to decide whether a cell is occupied.
func interiorsOverlap(firstSize Size, firstPosition Point, secondSize Size, secondPosition Point) bool {
	return firstPosition.X < secondPosition.X+secondSize.Width &&
		secondPosition.X < firstPosition.X+firstSize.Width &&
		firstPosition.Y < secondPosition.Y+secondSize.Height &&
		secondPosition.Y < firstPosition.Y+firstSize.Height
}
