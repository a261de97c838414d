package terminal

import (
	"github.com/Mshel/snake/internal/game"
	"github.com/gdamore/tcell/v2"
)

const (
	// cellColumns keeps the cells roughly square on a terminal.
	cellColumns = 2
	statusRows  = 1
)

// Screen is a game.Surface backed by a tcell screen. The board starts below
// the status line and each cell is cellColumns wide.
type Screen struct {
	screen tcell.Screen
	cell   game.Size
}

func NewScreen(screen tcell.Screen, cell game.Size) *Screen {
	return &Screen{screen: screen, cell: cell}
}

// FillRect paints every terminal cell the rectangle covers. Anything outside
// the terminal is dropped.
func (s *Screen) FillRect(x, y, width, height int, color game.Color) {
	if width <= 0 || height <= 0 {
		return
	}

	screenWidth, screenHeight := s.screen.Size()
	style := tcell.StyleDefault.Background(tcell.PaletteColor(int(color)))

	startCol := max(0, floorDiv(x, s.cell.Width)*cellColumns)
	endCol := min(screenWidth, ceilDiv(x+width, s.cell.Width)*cellColumns)
	startRow := max(statusRows, floorDiv(y, s.cell.Height)+statusRows)
	endRow := min(screenHeight, ceilDiv(y+height, s.cell.Height)+statusRows)

	for row := startRow; row < endRow; row++ {
		for col := startCol; col < endCol; col++ {
			s.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// BoardCells is how many game cells fit on the terminal below the status
// line.
func BoardCells(screen tcell.Screen) (cols, rows int) {
	width, height := screen.Size()
	return width / cellColumns, height - statusRows
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
