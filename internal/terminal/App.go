package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const (
	minBoardRows     = 3
	eventBufferSize  = 100
	defaultPlayer    = "player"
	gameOverControls = "GAME OVER  r: restart  q: quit"
)

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)

// Options tune a terminal session. Zero values are usable.
type Options struct {
	PlayerName string
	Autopilot  *game.Autopilot
	HighScores *game.HighScoreService
}

type app struct {
	screen  tcell.Screen
	surface *Screen
	gm      *game.GameManager
	opts    Options

	// moved is the heading of the last frame, written on the loop goroutine
	movedMu sync.Mutex
	moved   game.Steering

	running    bool
	cancelLoop context.CancelFunc
	loopEnded  chan error
}

// Run plays on an initialized tcell screen until the player quits or ctx is
// cancelled. The field is shrunk to what fits on the screen.
func Run(ctx context.Context, screen tcell.Screen, cfg game.Config, opts Options) error {
	cols, rows := BoardCells(screen)
	cfg.FieldWidth = min(cfg.FieldWidth, max(cols, 2*cfg.BaseSnakeLength)*cfg.SegmentWidth)
	cfg.FieldHeight = min(cfg.FieldHeight, max(rows, minBoardRows)*cfg.SegmentHeight)

	gm, err := game.NewGameManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	if opts.PlayerName == "" {
		opts.PlayerName = defaultPlayer
	}
	if opts.HighScores == nil {
		opts.HighScores = game.NewHighScoreService()
	}

	a := &app{
		screen:    screen,
		surface:   NewScreen(screen, game.Size{Width: cfg.SegmentWidth, Height: cfg.SegmentHeight}),
		gm:        gm,
		opts:      opts,
		moved:     game.Steering{Path: game.Horizontal, Direction: game.Forward},
		loopEnded: make(chan error, 1),
	}

	if opts.Autopilot != nil {
		detach := opts.Autopilot.Attach(gm)
		defer detach()
	}
	unsubscribe := gm.SubscribeFrames(a.onFrame)
	defer unsubscribe()

	events := make(chan tcell.Event, eventBufferSize)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			// nil once the screen is finalized
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	screen.Clear()
	a.startLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			a.stopLoop()
			return nil
		case err := <-a.loopEnded:
			a.running = false
			a.cancelLoop()
			a.onLoopEnded(err)
		case ev := <-events:
			if !a.handleEvent(ctx, ev) {
				a.stopLoop()
				return nil
			}
		}
	}
}

func (a *app) startLoop(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	a.running = true
	a.cancelLoop = cancel
	go func() {
		a.gm.Render(a.surface)
		a.drawStatus(a.gm.Snapshot().State, "")
		a.screen.Show()
		a.loopEnded <- a.gm.StartGameLoop(loopCtx, a.surface)
	}()
}

// stopLoop also works before the loop goroutine reached StartGameLoop, the
// loop then returns on its first select.
func (a *app) stopLoop() {
	if !a.running {
		return
	}
	a.cancelLoop()
	<-a.loopEnded
	a.running = false
}

func (a *app) restart(ctx context.Context) {
	a.stopLoop()
	if err := a.gm.ResetGame(); err != nil {
		log.Error("Could not reset game", "error", err)
		return
	}
	a.setMoved(game.Steering{Path: game.Horizontal, Direction: game.Forward})
	a.screen.Clear()
	a.startLoop(ctx)
}

// onFrame runs on the loop goroutine after every tick.
func (a *app) onFrame(frame game.Frame) {
	a.setMoved(game.Steering{Path: frame.Path, Direction: frame.Direction})
	a.drawStatus(frame.State, "")
	a.screen.Show()
}

func (a *app) setMoved(steering game.Steering) {
	a.movedMu.Lock()
	a.moved = steering
	a.movedMu.Unlock()
}

func (a *app) lastMoved() game.Steering {
	a.movedMu.Lock()
	defer a.movedMu.Unlock()
	return a.moved
}

func (a *app) onLoopEnded(err error) {
	if !errors.Is(err, game.ErrGameOver) {
		log.Info("Game loop ended", "error", err)
		return
	}

	state := a.gm.Snapshot().State
	a.opts.HighScores.SavePlayersHighScore(a.opts.PlayerName, state.Points, state.SnakeLength)

	best := 0
	if top := a.opts.HighScores.GetHighScores(1, 0); len(top) > 0 {
		best = top[0].Points
	}
	a.drawStatus(state, fmt.Sprintf("%s  best: %d", gameOverControls, best))
	a.screen.Show()
}

func (a *app) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				a.restart(ctx)
				return true
			}
		}

		steering, ok := steeringFor(ev)
		if !ok || !a.running || a.opts.Autopilot != nil {
			return true
		}
		// Prevent moving backwards, checked against the last frame so two
		// keys inside one tick cannot add up to a reversal
		moved := a.lastMoved()
		if steering.Path == moved.Path && steering.Direction != moved.Direction {
			return true
		}
		a.gm.Steer(steering.Path, steering.Direction)
	}
	return true
}

func steeringFor(ev *tcell.EventKey) (game.Steering, bool) {
	up := game.Steering{Path: game.Vertical, Direction: game.Backward}
	down := game.Steering{Path: game.Vertical, Direction: game.Forward}
	left := game.Steering{Path: game.Horizontal, Direction: game.Backward}
	right := game.Steering{Path: game.Horizontal, Direction: game.Forward}

	switch ev.Key() {
	case tcell.KeyUp:
		return up, true
	case tcell.KeyDown:
		return down, true
	case tcell.KeyLeft:
		return left, true
	case tcell.KeyRight:
		return right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'w':
			return up, true
		case 'j', 's':
			return down, true
		case 'h', 'a':
			return left, true
		case 'l', 'd':
			return right, true
		}
	}
	return game.Steering{}, false
}

func (a *app) drawStatus(state game.StateSnapshot, message string) {
	width, _ := a.screen.Size()
	text := fmt.Sprintf(" %s  points: %d  length: %d ", a.opts.PlayerName, state.Points, state.SnakeLength)
	if a.opts.Autopilot != nil {
		text += fmt.Sprintf("(%s) ", a.opts.Autopilot.Name)
	}
	text += message

	runes := []rune(text)
	for col := 0; col < width; col++ {
		r := ' '
		if col < len(runes) {
			r = runes[col]
		}
		a.screen.SetContent(col, 0, r, nil, statusStyle)
	}
}
