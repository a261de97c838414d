package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	ErrGameOver    = errors.New("game over")
	ErrLoopRunning = errors.New("game loop already running")
)

// Steering is a single input event: which axis to follow and which way.
type Steering struct {
	Path      Path
	Direction Direction
}

// Frame is the per tick view of the board handed to frame subscribers.
type Frame struct {
	Tick      uint64
	State     StateSnapshot
	Head      Point
	Body      []Point
	Food      Point
	Path      Path
	Direction Direction
	Field     Size
	Segment   Size
}

type GameManager struct {
	// DirectionChannel carries steering from other goroutines into the loop.
	DirectionChannel chan Steering

	config    Config
	path      Path
	direction Direction
	// moved is the heading of the last tick, steering is checked against it
	moved     Steering
	snake     *Snake
	food      *Food
	field     *Field
	state     *GameState
	rng       *rand.Rand
	tickCount uint64

	stateObserver *Observer[StateSnapshot]
	frameObserver *Observer[Frame]

	loopMutex  sync.Mutex
	isRunning  bool
	cancelLoop context.CancelFunc
	loopDone   chan struct{}
}

func NewGameManager(cfg Config) (*GameManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	snake, err := NewSnake(cfg.BaseSnakeLength, cfg.ChainPolicy())
	if err != nil {
		return nil, fmt.Errorf("failed to build snake: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gm := &GameManager{
		DirectionChannel: make(chan Steering, 10),
		config:           cfg,
		path:             Horizontal,
		direction:        Forward,
		moved:            Steering{Path: Horizontal, Direction: Forward},
		snake:            snake,
		food:             NewFood(),
		field:            NewField(cfg.FieldWidth, cfg.FieldHeight),
		state:            NewGameState(cfg.BaseSnakeLength),
		rng:              rand.New(rand.NewSource(seed)),
	}
	gm.field.SetColor(cfg.FieldColor)
	gm.stateObserver = NewObserver(gm.state.Snapshot)
	gm.frameObserver = NewObserver(gm.Snapshot)

	gm.initialize()
	return gm, nil
}

func (gm *GameManager) initialize() {
	segmentSize := gm.segmentSize()

	gm.snake.SetSize(segmentSize.Width, segmentSize.Height)
	if err := gm.snake.SetPosition(gm.field.Center(segmentSize), Horizontal); err != nil {
		log.Error("Could not place snake", "error", err)
	}
	gm.snake.SetColor(gm.config.SnakeColor)

	gm.food.SetSize(segmentSize.Width, segmentSize.Height)
	gm.food.SetColor(gm.config.FoodColor)
	gm.food.Relocate(gm.field, gm.snake, gm.rng)
}

func (gm *GameManager) segmentSize() Size {
	return Size{Width: gm.config.SegmentWidth, Height: gm.config.SegmentHeight}
}

// SetPath and SetDirection change the heading directly. While the loop is
// running use Steer instead, the loop goroutine owns the game state.
func (gm *GameManager) SetPath(path Path) {
	gm.path = path
}

func (gm *GameManager) SetDirection(direction Direction) {
	gm.direction = direction
}

// Steer queues a heading change for the running loop. Input is dropped when
// the queue is full.
func (gm *GameManager) Steer(path Path, direction Direction) {
	select {
	case gm.DirectionChannel <- Steering{Path: path, Direction: direction}:
	default:
		log.Debug("Steering queue full, dropping input", "path", path, "direction", direction)
	}
}

// processPlayerInput drops steering that would turn the snake back onto the
// heading it last moved on. Several inputs may arrive between two ticks.
func (gm *GameManager) processPlayerInput(steering Steering) {
	if steering.Path == gm.moved.Path && steering.Direction != gm.moved.Direction {
		log.Debug("Dropping reverse steering", "path", steering.Path, "direction", steering.Direction)
		return
	}
	gm.SetPath(steering.Path)
	gm.SetDirection(steering.Direction)
}

// SetSnakeColor recolors the snake, also for future resets. Call it while the
// loop is stopped.
func (gm *GameManager) SetSnakeColor(color Color) {
	gm.config.SnakeColor = color
	gm.snake.SetColor(color)
}

func (gm *GameManager) Config() Config { return gm.config }

// Subscribe registers for score and game over notifications.
func (gm *GameManager) Subscribe(subscriber Subscriber[StateSnapshot]) func() {
	return gm.stateObserver.Subscribe(subscriber)
}

// SubscribeFrames registers for a notification after every tick.
func (gm *GameManager) SubscribeFrames(subscriber Subscriber[Frame]) func() {
	return gm.frameObserver.Subscribe(subscriber)
}

func (gm *GameManager) Snapshot() Frame {
	return Frame{
		Tick:      gm.tickCount,
		State:     gm.state.Snapshot(),
		Head:      gm.snake.HeadPosition(),
		Body:      gm.snake.BodyPositions(),
		Food:      gm.food.Position(),
		Path:      gm.path,
		Direction: gm.direction,
		Field:     gm.field.Size(),
		Segment:   gm.segmentSize(),
	}
}

// Render paints the field, then the food, then the snake so the snake is
// never hidden.
func (gm *GameManager) Render(surface Surface) {
	if surface == nil {
		log.Error("No drawing surface provided, skipping render")
		return
	}

	gm.field.Draw(surface)
	gm.food.Draw(surface)
	gm.snake.Draw(surface)
}

// Tick runs one step of the game and reports whether another tick should be
// scheduled.
func (gm *GameManager) Tick(surface Surface) bool {
	if gm.state.IsGameOver() {
		return false
	}

	gm.tickCount++
	segmentSize := gm.segmentSize()
	step := (segmentSize.Width + segmentSize.Height) / 2
	gm.snake.Move(step, gm.path, gm.direction, gm.field)
	gm.moved = Steering{Path: gm.path, Direction: gm.direction}

	gm.Render(surface)

	if gm.snake.IsSnakeHeadCollidingWithBody(gm.direction, gm.path) {
		gm.state.UpdateIsGameOver(true)
		log.Info("Snake ran into itself", "points", gm.state.Points(), "length", gm.snake.Length(), "tick", gm.tickCount)
		gm.stateObserver.Notify()
		gm.frameObserver.Notify()
		return false
	}

	if gm.isSnakeHeadCollidingWithFood() {
		gm.state.AddPoints(gm.config.PointsPerFood)
		gm.snake.AddBody()
		gm.state.UpdateSnakeLength(gm.snake.Length())
		gm.food.Relocate(gm.field, gm.snake, gm.rng)
		log.Debug("Food eaten", "points", gm.state.Points(), "length", gm.snake.Length())
		gm.stateObserver.Notify()
	}

	gm.frameObserver.Notify()
	return true
}

func (gm *GameManager) isSnakeHeadCollidingWithFood() bool {
	return BoxesCollide(
		gm.snake.HeadDimensions(),
		gm.snake.HeadPosition(),
		gm.food.Size(),
		gm.food.Position(),
	)
}

// StartGameLoop ticks the game until it ends or ctx is cancelled. It blocks;
// steering received on DirectionChannel is applied between ticks. It returns
// ErrGameOver when the snake dies.
func (gm *GameManager) StartGameLoop(ctx context.Context, surface Surface) error {
	gm.loopMutex.Lock()
	if gm.isRunning {
		gm.loopMutex.Unlock()
		return ErrLoopRunning
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	gm.isRunning = true
	gm.cancelLoop = cancel
	gm.loopDone = done
	gm.loopMutex.Unlock()

	defer func() {
		cancel()
		gm.loopMutex.Lock()
		gm.isRunning = false
		gm.cancelLoop = nil
		gm.loopDone = nil
		gm.loopMutex.Unlock()
		close(done)
	}()

	log.Info("Game loop started.", "tick", gm.config.TickDuration)

	ticker := time.NewTicker(gm.config.TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-loopCtx.Done():
			log.Info("Game loop stopped.")
			return loopCtx.Err()
		case steering := <-gm.DirectionChannel:
			gm.processPlayerInput(steering)
		case <-ticker.C:
			// both cases may be ready at once, never tick after a stop
			if loopCtx.Err() != nil {
				continue
			}
			if !gm.Tick(surface) {
				log.Info("Game loop finished, game over.", "points", gm.state.Points())
				return ErrGameOver
			}
		}
	}
}

// StopGameLoop cancels a running loop and waits until it has returned. It
// must not be called from a subscriber callback.
func (gm *GameManager) StopGameLoop() {
	gm.loopMutex.Lock()
	cancel, done := gm.cancelLoop, gm.loopDone
	gm.loopMutex.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (gm *GameManager) IsRunning() bool {
	gm.loopMutex.Lock()
	defer gm.loopMutex.Unlock()
	return gm.isRunning
}

// ResetGame puts the snake back to its base length in the middle of the
// field and clears the score.
func (gm *GameManager) ResetGame() error {
	if gm.IsRunning() {
		return ErrLoopRunning
	}

	for len(gm.DirectionChannel) > 0 {
		<-gm.DirectionChannel
	}

	gm.state.Reset(gm.config.BaseSnakeLength)
	gm.snake.Reset()
	gm.path = Horizontal
	gm.direction = Forward
	gm.moved = Steering{Path: Horizontal, Direction: Forward}
	gm.tickCount = 0
	gm.initialize()

	gm.stateObserver.Notify()
	return nil
}
