package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mshel/snake/internal/game"
	"github.com/Mshel/snake/internal/terminal"
	"github.com/Mshel/snake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const builtinAutopilotName = "chaser"

func main() {
	frontend := flag.String("frontend", "tea", "terminal front end: tea or tcell")
	autoplay := flag.Bool("a", false, "let the built in autopilot play")
	autopilotPath := flag.String("autopilot", "", "path to a Lua autopilot script")
	playerName := flag.String("name", "", "player name for the tcell front end")
	flag.Parse()

	closeLog, err := setupLogging()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := game.LoadConfigFromEnv()
	if err != nil {
		log.Error("Invalid configuration", "error", err)
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}

	autopilot, err := loadAutopilot(*autoplay, *autopilotPath)
	if err != nil {
		log.Error("Could not load autopilot", "error", err)
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
	if autopilot != nil {
		defer autopilot.Close()
	}

	switch *frontend {
	case "tea":
		err = runBubbleTea(cfg, autopilot)
	case "tcell":
		err = runTcell(cfg, *playerName, autopilot)
	default:
		err = fmt.Errorf("unknown front end %q", *frontend)
	}

	if err != nil {
		log.Error("Snake exited with error", "error", err)
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
}

// setupLogging keeps the terminal clean: logs go to SNAKE_LOG_FILE when set
// and are dropped otherwise.
func setupLogging() (func(), error) {
	if raw := os.Getenv("SNAKE_LOG_LEVEL"); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SNAKE_LOG_LEVEL: %w", err)
		}
		log.SetLevel(level)
	}

	path := os.Getenv("SNAKE_LOG_FILE")
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(logFile)
	log.SetReportTimestamp(true)
	return func() { logFile.Close() }, nil
}

// loadAutopilot returns nil when the player steers.
func loadAutopilot(autoplay bool, path string) (*game.Autopilot, error) {
	if path != "" {
		return game.LoadAutopilot(path)
	}
	if autoplay {
		return game.NewAutopilot(builtinAutopilotName, game.DefaultAutopilotScript)
	}
	return nil, nil
}

func runBubbleTea(cfg game.Config, autopilot *game.Autopilot) error {
	controller := ui.NewControllerModel(cfg, game.NewHighScoreService(), 0, 0)
	if autopilot != nil {
		controller = controller.WithAutopilot(autopilot)
	}

	p := tea.NewProgram(controller, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runTcell(cfg game.Config, playerName string, autopilot *game.Autopilot) error {
	opts := terminal.Options{PlayerName: playerName, Autopilot: autopilot}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return terminal.Run(ctx, screen, cfg, opts)
}
