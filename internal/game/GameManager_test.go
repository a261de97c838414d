package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

// Small board shared by the loop tests: 10x10 cells of 10 pixels.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.FieldWidth = 100
	cfg.FieldHeight = 100
	cfg.TickDuration = 2 * time.Millisecond
	cfg.Seed = 7
	return cfg
}

func newTestGameManager(t *testing.T) *GameManager {
	t.Helper()
	gm, err := NewGameManager(testConfig())
	if err != nil {
		t.Fatalf("NewGameManager: %v", err)
	}
	return gm
}

func TestNewGameManagerRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.TickDuration = 0
	if _, err := NewGameManager(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	cfg = testConfig()
	cfg.BaseSnakeLength = 2
	if _, err := NewGameManager(cfg); !errors.Is(err, ErrChainTooShort) {
		t.Errorf("expected ErrChainTooShort, got %v", err)
	}
}

func TestInitialLayout(t *testing.T) {
	gm := newTestGameManager(t)
	frame := gm.Snapshot()

	if frame.Head != (Point{80, 50}) {
		t.Errorf("head = %v, want {80 50}", frame.Head)
	}
	if len(frame.Body) != 3 || frame.Body[2] != (Point{50, 50}) {
		t.Errorf("body = %v, want tail at {50 50}", frame.Body)
	}
	if gm.snake.Occupies(gm.food.Size(), frame.Food) {
		t.Errorf("food placed on the snake at %v", frame.Food)
	}
	if frame.Path != Horizontal || frame.Direction != Forward {
		t.Errorf("heading = %v/%v, want horizontal/forward", frame.Path, frame.Direction)
	}
}

func TestTickMovesAndRendersInOrder(t *testing.T) {
	gm := newTestGameManager(t)
	gm.food.SetPosition(0, 0)
	surface := &recordingSurface{}

	if !gm.Tick(surface) {
		t.Fatal("Tick asked to stop on a plain move")
	}

	if head := gm.snake.HeadPosition(); head != (Point{90, 50}) {
		t.Errorf("head = %v, want {90 50}", head)
	}
	if len(surface.rects) != 6 {
		t.Fatalf("rendered %d rects, want field + food + 4 segments", len(surface.rects))
	}
	if bg := surface.rects[0]; bg != (recordedRect{0, 0, 100, 100, FieldColor}) {
		t.Errorf("first rect = %+v, want the field", bg)
	}
	if food := surface.rects[1]; food.Color != FoodColor {
		t.Errorf("second rect = %+v, want the food", food)
	}
	if head := surface.rects[2]; head.X != 90 || head.Color != SnakeColor {
		t.Errorf("third rect = %+v, want the head", head)
	}
}

func TestTickWithoutSurfaceStillAdvances(t *testing.T) {
	gm := newTestGameManager(t)
	gm.food.SetPosition(0, 0)

	if !gm.Tick(nil) {
		t.Fatal("Tick stopped without a surface")
	}
	if head := gm.snake.HeadPosition(); head != (Point{90, 50}) {
		t.Errorf("head = %v, want {90 50}", head)
	}
}

func TestEatingFood(t *testing.T) {
	gm := newTestGameManager(t)
	gm.food.SetPosition(90, 50)

	var notifications []StateSnapshot
	gm.Subscribe(func(s StateSnapshot) { notifications = append(notifications, s) })

	gm.Tick(nil)

	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	want := StateSnapshot{Points: 1, SnakeLength: 5}
	if notifications[0] != want {
		t.Errorf("snapshot = %+v, want %+v", notifications[0], want)
	}
	if gm.snake.Length() != 5 {
		t.Errorf("snake length = %d, want 5", gm.snake.Length())
	}
	if gm.snake.Occupies(gm.food.Size(), gm.food.Position()) {
		t.Errorf("food relocated onto the snake at %v", gm.food.Position())
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	gm := newTestGameManager(t)
	gm.food.SetPosition(0, 0)

	var notifications []StateSnapshot
	unsubscribe := gm.Subscribe(func(s StateSnapshot) { notifications = append(notifications, s) })
	defer unsubscribe()

	gm.SetDirection(Backward)
	if gm.Tick(nil) {
		t.Fatal("Tick should stop after reversing into the body")
	}
	if len(notifications) != 1 || !notifications[0].IsGameOver {
		t.Fatalf("notifications = %+v, want one game over", notifications)
	}

	head := gm.snake.HeadPosition()
	if gm.Tick(nil) {
		t.Error("Tick after game over should not schedule")
	}
	if gm.snake.HeadPosition() != head {
		t.Error("Tick after game over moved the snake")
	}
	if len(notifications) != 1 {
		t.Errorf("Tick after game over notified again")
	}
}

func TestStartGameLoopEndsOnGameOver(t *testing.T) {
	gm := newTestGameManager(t)
	gm.SetDirection(Backward)

	err := gm.StartGameLoop(context.Background(), &recordingSurface{})
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("StartGameLoop = %v, want ErrGameOver", err)
	}
	if gm.IsRunning() {
		t.Error("loop still marked as running")
	}
}

func TestStartGameLoopAppliesSteering(t *testing.T) {
	gm := newTestGameManager(t)
	gm.config.TickDuration = 20 * time.Millisecond
	gm.food.SetPosition(0, 0)
	gm.Steer(Vertical, Backward)

	frames := make(chan Frame, 100)
	gm.SubscribeFrames(func(f Frame) {
		select {
		case frames <- f:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gm.StartGameLoop(ctx, &recordingSurface{})
	defer gm.StopGameLoop()

	select {
	case frame := <-frames:
		if frame.Path != Vertical || frame.Direction != Backward {
			t.Errorf("first frame heading = %v/%v, want vertical/backward", frame.Path, frame.Direction)
		}
		if frame.Head != (Point{80, 40}) {
			t.Errorf("first frame head = %v, want {80 40}", frame.Head)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame within a second")
	}
}

func TestSteeringCannotReverseBetweenTicks(t *testing.T) {
	gm := newTestGameManager(t)
	gm.food.SetPosition(0, 0)

	// up then left before the next tick, left reverses the last move
	gm.processPlayerInput(Steering{Vertical, Backward})
	gm.processPlayerInput(Steering{Horizontal, Backward})

	if !gm.Tick(&recordingSurface{}) {
		t.Fatalf("snake died, state = %+v", gm.state.Snapshot())
	}
	frame := gm.Snapshot()
	if frame.Path != Vertical || frame.Direction != Backward {
		t.Errorf("heading = %v/%v, want vertical/backward", frame.Path, frame.Direction)
	}
	if frame.Head != (Point{80, 40}) {
		t.Errorf("head = %v, want {80 40}", frame.Head)
	}

	// after moving up, left is a plain turn
	gm.processPlayerInput(Steering{Horizontal, Backward})
	if gm.path != Horizontal || gm.direction != Backward {
		t.Errorf("turn after a tick was dropped")
	}
}

func TestStopGameLoopPreventsFurtherTicks(t *testing.T) {
	gm := newTestGameManager(t)
	gm.food.SetPosition(0, 0)

	frames := make(chan Frame, 1000)
	gm.SubscribeFrames(func(f Frame) { frames <- f })

	errs := make(chan error, 1)
	go func() { errs <- gm.StartGameLoop(context.Background(), &recordingSurface{}) }()

	for range 3 {
		select {
		case <-frames:
		case <-time.After(time.Second):
			t.Fatal("loop did not tick")
		}
	}

	if err := gm.StartGameLoop(context.Background(), nil); !errors.Is(err, ErrLoopRunning) {
		t.Errorf("second StartGameLoop = %v, want ErrLoopRunning", err)
	}

	gm.StopGameLoop()
	if err := <-errs; !errors.Is(err, context.Canceled) {
		t.Errorf("StartGameLoop = %v, want context.Canceled", err)
	}

	ticks := gm.tickCount
	time.Sleep(20 * time.Millisecond)
	if gm.tickCount != ticks {
		t.Errorf("ticked %d more times after stop", gm.tickCount-ticks)
	}
}

func TestResetGame(t *testing.T) {
	gm := newTestGameManager(t)
	gm.food.SetPosition(90, 50)
	gm.Tick(nil)
	gm.SetDirection(Backward)
	gm.Tick(nil)
	if !gm.state.IsGameOver() {
		t.Fatal("setup: expected game over")
	}

	var last StateSnapshot
	gm.Subscribe(func(s StateSnapshot) { last = s })

	if err := gm.ResetGame(); err != nil {
		t.Fatalf("ResetGame: %v", err)
	}

	if last != (StateSnapshot{SnakeLength: BaseSnakeLength}) {
		t.Errorf("reset snapshot = %+v", last)
	}
	frame := gm.Snapshot()
	if frame.Head != (Point{80, 50}) || len(frame.Body) != 3 {
		t.Errorf("reset layout head=%v body=%v", frame.Head, frame.Body)
	}
	if frame.Direction != Forward || frame.Tick != 0 {
		t.Errorf("reset heading/tick = %v/%d", frame.Direction, frame.Tick)
	}
	if !gm.Tick(nil) {
		t.Error("game should be playable after reset")
	}
}

func TestResetGameWhileRunning(t *testing.T) {
	gm := newTestGameManager(t)
	gm.food.SetPosition(0, 0)

	started := make(chan struct{}, 1)
	gm.SubscribeFrames(func(Frame) {
		select {
		case started <- struct{}{}:
		default:
		}
	})
	go gm.StartGameLoop(context.Background(), &recordingSurface{})
	defer gm.StopGameLoop()
	<-started

	if err := gm.ResetGame(); !errors.Is(err, ErrLoopRunning) {
		t.Errorf("ResetGame while running = %v, want ErrLoopRunning", err)
	}
}

func TestSetSnakeColorSurvivesReset(t *testing.T) {
	gm := newTestGameManager(t)
	gm.SetSnakeColor(201)
	if err := gm.ResetGame(); err != nil {
		t.Fatal(err)
	}
	surface := &recordingSurface{}
	gm.snake.Draw(surface)
	for _, rect := range surface.rects {
		if rect.Color != 201 {
			t.Fatalf("segment drawn in %d, want 201", rect.Color)
		}
	}
}
