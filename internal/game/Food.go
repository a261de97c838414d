package game

import (
	"math/rand"

	"github.com/charmbracelet/log"
)

type Food struct {
	Segment
}

func NewFood() *Food {
	return &Food{}
}

// Relocate moves the food to a random cell of the field that the snake does
// not occupy. It returns false, leaving the food in place, when no free cell
// is left.
func (f *Food) Relocate(field *Field, snake *Snake, rng *rand.Rand) bool {
	cells := field.Cells(f.size)

	free := cells[:0]
	for _, cell := range cells {
		if snake == nil || !snake.Occupies(f.size, cell) {
			free = append(free, cell)
		}
	}

	if len(free) == 0 {
		log.Warn("No free cell left for food", "field", field.Size(), "foodSize", f.size)
		return false
	}

	cell := free[rng.Intn(len(free))]
	f.SetPosition(cell.X, cell.Y)
	return true
}
