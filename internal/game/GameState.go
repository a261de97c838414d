package game

type GameState struct {
	points      int
	snakeLength int
	isGameOver  bool
}

// StateSnapshot is the immutable view handed to state subscribers.
type StateSnapshot struct {
	Points      int
	SnakeLength int
	IsGameOver  bool
}

func NewGameState(baseSnakeLength int) *GameState {
	return &GameState{snakeLength: baseSnakeLength}
}

func (gs *GameState) AddPoints(bonusPoints int) {
	gs.points += bonusPoints
}

func (gs *GameState) UpdateSnakeLength(snakeLength int) {
	gs.snakeLength = snakeLength
}

func (gs *GameState) UpdateIsGameOver(isGameOver bool) {
	gs.isGameOver = isGameOver
}

func (gs *GameState) IsGameOver() bool { return gs.isGameOver }
func (gs *GameState) SnakeLength() int { return gs.snakeLength }
func (gs *GameState) Points() int      { return gs.points }

func (gs *GameState) Reset(baseSnakeLength int) {
	gs.points = 0
	gs.snakeLength = baseSnakeLength
	gs.isGameOver = false
}

func (gs *GameState) Snapshot() StateSnapshot {
	return StateSnapshot{
		Points:      gs.points,
		SnakeLength: gs.snakeLength,
		IsGameOver:  gs.isGameOver,
	}
}
