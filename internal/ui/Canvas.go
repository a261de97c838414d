package ui

import (
	"strconv"
	"strings"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/lipgloss"
)

// cellRunes is how many terminal columns one grid cell takes, two keeps the
// cells roughly square.
const cellRunes = 2

// Canvas is an in-memory drawing surface. Pixel rectangles are snapped to a
// grid of cells and rendered as colored blocks with lipgloss.
type Canvas struct {
	cols, rows int
	cell       game.Size
	cells      []game.Color
	styles     map[game.Color]lipgloss.Style
}

func NewCanvas(cols, rows int, cell game.Size) *Canvas {
	return &Canvas{
		cols:   cols,
		rows:   rows,
		cell:   cell,
		cells:  make([]game.Color, cols*rows),
		styles: make(map[game.Color]lipgloss.Style),
	}
}

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

// FillRect paints every cell the rectangle covers, clipped to the canvas.
func (c *Canvas) FillRect(x, y, width, height int, color game.Color) {
	if width <= 0 || height <= 0 {
		return
	}

	startCol := max(0, floorDiv(x, c.cell.Width))
	endCol := min(c.cols, ceilDiv(x+width, c.cell.Width))
	startRow := max(0, floorDiv(y, c.cell.Height))
	endRow := min(c.rows, ceilDiv(y+height, c.cell.Height))

	for row := startRow; row < endRow; row++ {
		for col := startCol; col < endCol; col++ {
			c.cells[row*c.cols+col] = color
		}
	}
}

func (c *Canvas) At(col, row int) game.Color {
	return c.cells[row*c.cols+col]
}

func (c *Canvas) style(color game.Color) lipgloss.Style {
	style, ok := c.styles[color]
	if !ok {
		style = lipgloss.NewStyle().Background(lipgloss.Color(strconv.Itoa(int(color))))
		c.styles[color] = style
	}
	return style
}

// Render draws the canvas, one styled run per stretch of equal cells.
func (c *Canvas) Render() string {
	var sb strings.Builder

	for row := 0; row < c.rows; row++ {
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for start := 0; start < len(line); {
			end := start + 1
			for end < len(line) && line[end] == line[start] {
				end++
			}
			sb.WriteString(c.style(line[start]).Render(strings.Repeat(" ", (end-start)*cellRunes)))
			start = end
		}
		if row < c.rows-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
