package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal Game States for GameViewModel ---

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
	StateLeaderboard
)

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	headRunes = map[game.Steering]string{
		{Path: game.Vertical, Direction: game.Backward}:   "▲",
		{Path: game.Vertical, Direction: game.Forward}:    "▼",
		{Path: game.Horizontal, Direction: game.Backward}: "◀",
		{Path: game.Horizontal, Direction: game.Forward}:  "▶",
	}
)

const (
	mapViewPercentage  = 0.70
	statusPanelPadding = 4
	updateBufferSize   = 64
	statusPanelScores  = 5
)

// FrameMsg carries the board as it looked after a tick.
type FrameMsg struct {
	View  string
	Frame game.Frame
}

// StateMsg is sent when the score changes or the game resets.
type StateMsg game.StateSnapshot

// LoopEndedMsg is sent when the game loop returns.
type LoopEndedMsg struct {
	Err error
}

// QuitGameMsg asks the controller to leave the game.
type QuitGameMsg struct{}

// --- GameViewModel Definition ---

type GameViewModel struct {
	TickCount    int
	ScreenWidth  int
	ScreenHeight int
	PlayerName   string
	PlayerColor  game.Color

	gameManager   *game.GameManager
	loopCtx       context.Context
	cancelLoop    context.CancelFunc
	canvas        *Canvas
	updates       chan tea.Msg
	unsubscribe   []func()
	autopilotName string

	heading   game.Steering
	frameView string
	snapshot  game.StateSnapshot
	help      help.Model

	gameState     GameState
	gameOverState GameOverState
}

func NewGameModel(gm *game.GameManager, highScores *game.HighScoreService, playerName string, screenWidth int, screenHeight int) GameViewModel {
	cfg := gm.Config()
	canvas := NewCanvas(cfg.FieldWidth/cfg.SegmentWidth, cfg.FieldHeight/cfg.SegmentHeight,
		game.Size{Width: cfg.SegmentWidth, Height: cfg.SegmentHeight})
	updates := make(chan tea.Msg, updateBufferSize)

	// callbacks run on the loop goroutine, the canvas is only touched there
	unsubscribeFrames := gm.SubscribeFrames(func(frame game.Frame) {
		publish(updates, FrameMsg{View: canvas.Render(), Frame: frame})
	})
	unsubscribeState := gm.Subscribe(func(snapshot game.StateSnapshot) {
		publish(updates, StateMsg(snapshot))
	})

	loopCtx, cancelLoop := context.WithCancel(context.Background())
	frame := gm.Snapshot()
	return GameViewModel{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		PlayerName:   playerName,
		PlayerColor:  cfg.SnakeColor,
		gameManager:  gm,
		loopCtx:      loopCtx,
		cancelLoop:   cancelLoop,
		canvas:       canvas,
		updates:      updates,
		unsubscribe:  []func(){unsubscribeFrames, unsubscribeState},
		heading:      game.Steering{Path: frame.Path, Direction: frame.Direction},
		snapshot:     frame.State,
		help:         help.New(),
		gameState:    StatePlaying,
		gameOverState: GameOverState{
			HighScores:   highScores,
			PlayerName:   playerName,
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

// WithAutopilot marks the model as driven by the named autopilot.
func (m GameViewModel) WithAutopilot(name string) GameViewModel {
	m.autopilotName = name
	return m
}

func publish(updates chan tea.Msg, msg tea.Msg) {
	select {
	case updates <- msg:
	default:
		log.Debug("UI update queue full, dropping message", "msg", fmt.Sprintf("%T", msg))
	}
}

// Close stops the loop and detaches the model from the game manager.
func (m GameViewModel) Close() {
	m.cancelLoop()
	m.gameManager.StopGameLoop()
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
}

// --- Init/Update/View Methods ---

func (m GameViewModel) Init() tea.Cmd {
	return tea.Batch(m.startGameLoop(), m.listenForGameUpdates())
}

func (m GameViewModel) startGameLoop() tea.Cmd {
	gm, canvas, updates, ctx := m.gameManager, m.canvas, m.updates, m.loopCtx
	return func() tea.Msg {
		gm.Render(canvas)
		publish(updates, FrameMsg{View: canvas.Render(), Frame: gm.Snapshot()})
		return LoopEndedMsg{Err: gm.StartGameLoop(ctx, canvas)}
	}
}

func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		return <-updates
	}
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.gameOverState.ScreenWidth, m.gameOverState.ScreenHeight = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.gameState == StateGameOver || m.gameState == StateLeaderboard {
			return m.updateGameOver(msg)
		}

		steering, ok := gameKeys.steeringFor(msg)
		if !ok {
			return m, nil
		}

		// Prevent moving backwards. heading only follows frames, a key
		// queued earlier in the same tick has not moved the snake yet.
		if steering.Path == m.heading.Path && steering.Direction != m.heading.Direction {
			return m, nil
		}

		m.gameManager.Steer(steering.Path, steering.Direction)
		return m, nil

	case FrameMsg:
		m.TickCount = int(msg.Frame.Tick)
		m.frameView = msg.View
		m.snapshot = msg.Frame.State
		m.heading = game.Steering{Path: msg.Frame.Path, Direction: msg.Frame.Direction}
		return m, m.listenForGameUpdates()

	case StateMsg:
		m.snapshot = game.StateSnapshot(msg)
		return m, m.listenForGameUpdates()

	case LoopEndedMsg:
		if !errors.Is(msg.Err, game.ErrGameOver) {
			log.Info("Game loop ended", "error", msg.Err)
			return m, nil
		}

		score := m.gameOverState.HighScores.SavePlayersHighScore(m.PlayerName, m.snapshot.Points, m.snapshot.SnakeLength)
		log.Info("Game over, showing Game Over screen.", "player", m.PlayerName, "points", score.Points)
		m.gameState = StateGameOver
		m.gameOverState.FinalPoints = score.Points
		m.gameOverState.FinalLength = score.SnakeLength
		m.gameOverState.SelectedButton = 0
		return m, nil
	}

	return m, nil
}

func (m GameViewModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.gameState == StateLeaderboard {
			m.gameState = StateGameOver
		}
	case "left", "h":
		if m.gameState == StateGameOver {
			m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
		}
	case "right", "l":
		if m.gameState == StateGameOver {
			m.gameOverState.SelectedButton = min(len(gameOverButtons)-1, m.gameOverState.SelectedButton+1)
		}
	case "enter":
		if m.gameState == StateLeaderboard {
			m.gameState = StateGameOver
			return m, nil
		}

		switch m.gameOverState.SelectedButton {
		case playAgainButton:
			if err := m.gameManager.ResetGame(); err != nil {
				log.Error("Could not reset game", "error", err)
				return m, nil
			}
			frame := m.gameManager.Snapshot()
			m.heading = game.Steering{Path: frame.Path, Direction: frame.Direction}
			m.gameState = StatePlaying
			return m, m.startGameLoop()
		case scoresButton:
			m.gameState = StateLeaderboard
		case exitButton:
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
	}
	return m, nil
}

func (m GameViewModel) View() string {
	switch m.gameState {
	case StateGameOver:
		return m.gameOverState.RenderGameOverScreen()
	case StateLeaderboard:
		return m.gameOverState.RenderLeaderboardScreen()
	}

	if m.frameView == "" {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for game manager...")
	}

	mapWidth := int(float64(m.ScreenWidth) * mapViewPercentage)
	statusPanelWidth := max(0, m.ScreenWidth-mapWidth-statusPanelPadding)

	mapContent := lipgloss.Place(mapWidth-2, m.ScreenHeight-2, lipgloss.Center, lipgloss.Center, m.frameView)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Height(m.ScreenHeight-statusPanelPadding).Render(m.renderStatusPanel()),
	)
}

// renderStatusPanel draws the stats and the session's best games.
func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Player Stats ---") + "\n")
	colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(m.PlayerColor))))
	statusContent.WriteString(fmt.Sprintf("%s%s\n", colorStyle.Render("● "), m.PlayerName))
	statusContent.WriteString(fmt.Sprintf("Points: %d\n", m.snapshot.Points))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", m.snapshot.SnakeLength))
	statusContent.WriteString(fmt.Sprintf("Direction: %s\n", headRunes[m.heading]))
	statusContent.WriteString(fmt.Sprintf("Game Tick: %d\n", m.TickCount))
	if m.autopilotName != "" {
		statusContent.WriteString(fmt.Sprintf("Autopilot: %s\n", m.autopilotName))
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Best This Session ---") + "\n")
	for i, score := range m.gameOverState.HighScores.GetHighScores(statusPanelScores, 0) {
		statusContent.WriteString(fmt.Sprintf("%d. %s: %d\n", i+1, score.PlayerName, score.Points))
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString(m.help.View(gameKeys))

	return statusContent.String()
}
