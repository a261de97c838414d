package game

// Field is the bounded area the snake moves within. It is handed to every
// operation that needs the bounds rather than living in a global.
type Field struct {
	Segment
}

func NewField(width, height int) *Field {
	field := &Field{}
	field.SetSize(width, height)
	field.SetPosition(0, 0)
	return field
}

// Cells lists the top-left corner of every cell of the given size that fits
// fully inside the field, row by row.
func (f *Field) Cells(cellSize Size) []Point {
	if cellSize.Width <= 0 || cellSize.Height <= 0 {
		return nil
	}

	var cells []Point
	for y := 0; y <= f.size.Height-cellSize.Height; y += cellSize.Height {
		for x := 0; x <= f.size.Width-cellSize.Width; x += cellSize.Width {
			cells = append(cells, Point{X: x, Y: y})
		}
	}
	return cells
}

// Center returns the middle of the field snapped to the cell grid.
func (f *Field) Center(cellSize Size) Point {
	center := Point{X: f.size.Width / 2, Y: f.size.Height / 2}
	if cellSize.Width > 0 {
		center.X -= center.X % cellSize.Width
	}
	if cellSize.Height > 0 {
		center.Y -= center.Y % cellSize.Height
	}
	return center
}
