package ui

import (
	"github.com/Mshel/snake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for New Game, 1 for Quit
type SetupSubmitMsg struct {
	Name  string
	Color game.Color
}

const minFieldRows = 3

type ControllerModel struct {
	CurrentScreen Screen
	Config        game.Config
	HighScores    *game.HighScoreService

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	ScreenWidth  int
	ScreenHeight int

	autopilot *game.Autopilot
	closeGame func()
}

func NewControllerModel(cfg game.Config, highScores *game.HighScoreService, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Config:        cfg,
		HighScores:    highScores,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WithAutopilot makes every game started from this controller steer itself.
// The caller keeps ownership of the autopilot and closes it.
func (m ControllerModel) WithAutopilot(autopilot *game.Autopilot) ControllerModel {
	m.autopilot = autopilot
	return m
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// --- 1. Global Key Check ---
	if msg, ok := msg.(tea.KeyMsg); ok {
		// q is a valid character for the name input
		if msg.String() == "ctrl+c" || (msg.String() == "q" && m.CurrentScreen != SetupScreen) {
			m = m.stopGame()
			return m, tea.Quit
		}
	}

	// --- 2. State Transition Message Handling ---
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		// every screen keeps its own size
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		if msg == introQuit {
			return m, tea.Quit
		}
		m.CurrentScreen = SetupScreen
		return m, m.SetupModel.Init()

	case SetupSubmitMsg:
		return m.startGame(msg)

	case QuitGameMsg:
		m = m.stopGame()
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()
	}

	// --- 3. Message Delegation ---
	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	}

	return m, cmd
}

func (m ControllerModel) startGame(msg SetupSubmitMsg) (tea.Model, tea.Cmd) {
	cfg := fitFieldToScreen(m.Config, m.ScreenWidth, m.ScreenHeight)
	cfg.SnakeColor = msg.Color

	gameManager, err := game.NewGameManager(cfg)
	if err != nil {
		log.Error("Could not create game", "error", err)
		return m, tea.Quit
	}

	detach := func() {}
	gameModel := NewGameModel(gameManager, m.HighScores, msg.Name, m.ScreenWidth, m.ScreenHeight)
	if m.autopilot != nil {
		detach = m.autopilot.Attach(gameManager)
		gameModel = gameModel.WithAutopilot(m.autopilot.Name)
	}

	// the loop must be stopped before the autopilot is detached
	m.closeGame = func() {
		gameModel.Close()
		detach()
	}
	m.CurrentScreen = GameScreen
	m.GameModel = gameModel

	log.Info("Starting game", "player", msg.Name, "width", cfg.FieldWidth, "height", cfg.FieldHeight)
	return m, gameModel.Init()
}

func (m ControllerModel) stopGame() ControllerModel {
	if m.closeGame != nil {
		m.closeGame()
		m.closeGame = nil
	}
	m.GameModel = nil
	return m
}

// fitFieldToScreen shrinks the configured field so the rendered canvas fits
// the map panel of a terminal of the given size.
func fitFieldToScreen(cfg game.Config, width, height int) game.Config {
	if width <= 0 || height <= 0 {
		return cfg
	}

	cols := (int(float64(width)*mapViewPercentage) - 2) / cellRunes
	rows := height - 2
	cols = max(cols, 2*cfg.BaseSnakeLength)
	rows = max(rows, minFieldRows)

	cfg.FieldWidth = min(cfg.FieldWidth, cols*cfg.SegmentWidth)
	cfg.FieldHeight = min(cfg.FieldHeight, rows*cfg.SegmentHeight)
	return cfg
}
