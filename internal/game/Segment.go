package game

// Surface is anything a segment can be painted on.
type Surface interface {
	FillRect(x, y, width, height int, color Color)
}

// Drawable is the capability every visual entity on the field shares.
type Drawable interface {
	Position() Point
	Size() Size
	Color() Color
	Draw(surface Surface)
}

// Segment is a single square unit of the snake or of food.
type Segment struct {
	position Point
	size     Size
	color    Color
}

func NewSegment() *Segment {
	return &Segment{}
}

func (s *Segment) SetPosition(x, y int) {
	s.position = Point{X: x, Y: y}
}

func (s *Segment) SetSize(width, height int) {
	s.size = Size{Width: width, Height: height}
}

func (s *Segment) SetColor(color Color) {
	s.color = color
}

func (s *Segment) Position() Point { return s.position }
func (s *Segment) Size() Size      { return s.size }
func (s *Segment) Color() Color    { return s.color }

func (s *Segment) Draw(surface Surface) {
	surface.FillRect(s.position.X, s.position.Y, s.size.Width, s.size.Height, s.color)
}
