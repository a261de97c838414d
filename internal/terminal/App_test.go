package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/Mshel/snake/internal/game"
	"github.com/gdamore/tcell/v2"
)

func testConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.FieldWidth, cfg.FieldHeight = 100, 100
	cfg.TickDuration = 5 * time.Millisecond
	cfg.Seed = 7
	return cfg
}

func runAsync(ctx context.Context, screen tcell.Screen, opts Options) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, screen, testConfig(), opts)
	}()
	return done
}

func waitForRun(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newSimulationScreen(t, 40, 12)
	done := runAsync(context.Background(), screen, Options{PlayerName: "ann"})

	time.Sleep(30 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	waitForRun(t, done)
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newSimulationScreen(t, 40, 12)
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, screen, Options{})

	time.Sleep(30 * time.Millisecond)
	cancel()

	waitForRun(t, done)
}

func TestRunWithAutopilot(t *testing.T) {
	autopilot, err := game.NewAutopilot("chaser", game.DefaultAutopilotScript)
	if err != nil {
		t.Fatalf("NewAutopilot: %v", err)
	}
	defer autopilot.Close()

	screen := newSimulationScreen(t, 40, 12)
	done := runAsync(context.Background(), screen, Options{Autopilot: autopilot})

	time.Sleep(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	waitForRun(t, done)
}

func TestQuickKeysCannotReverse(t *testing.T) {
	gm, err := game.NewGameManager(testConfig())
	if err != nil {
		t.Fatalf("NewGameManager: %v", err)
	}
	a := &app{
		screen:  newSimulationScreen(t, 40, 12),
		gm:      gm,
		running: true,
		moved:   game.Steering{Path: game.Horizontal, Direction: game.Forward},
	}
	ctx := context.Background()

	// up then left inside one tick while moving right
	a.handleEvent(ctx, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	a.handleEvent(ctx, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if got := len(gm.DirectionChannel); got != 1 {
		t.Fatalf("queued %d steering inputs, want only up", got)
	}
	<-gm.DirectionChannel

	a.onFrame(game.Frame{Path: game.Vertical, Direction: game.Backward})
	a.handleEvent(ctx, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if got := len(gm.DirectionChannel); got != 1 {
		t.Errorf("left after moving up was dropped")
	}
}

func TestSteeringFor(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want game.Steering
		ok   bool
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.Steering{Path: game.Vertical, Direction: game.Backward}, true},
		{"vi down", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), game.Steering{Path: game.Vertical, Direction: game.Forward}, true},
		{"wasd left", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), game.Steering{Path: game.Horizontal, Direction: game.Backward}, true},
		{"arrow right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), game.Steering{Path: game.Horizontal, Direction: game.Forward}, true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), game.Steering{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := steeringFor(c.ev)
			if got != c.want || ok != c.ok {
				t.Errorf("steeringFor() = %+v,%v, want %+v,%v", got, ok, c.want, c.ok)
			}
		})
	}
}
