package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/lipgloss"
)

const (
	playAgainButton = iota
	scoresButton
	exitButton
)

var gameOverButtons = []string{"PLAY AGAIN", "SCORES", "EXIT"}

const leaderboardRows = 10

// GameOverState holds the data and local state for rendering the game over screens.
type GameOverState struct {
	HighScores     *game.HighScoreService
	PlayerName     string
	FinalPoints    int
	FinalLength    int
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

// Styles for Game Over/Leaderboard
var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RenderGameOverScreen draws the death message and buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(2, 5).
		Align(lipgloss.Center).
		Width(max(0, g.ScreenWidth-4))

	title := messageStyle.Render("💀 G A M E   O V E R 💀")

	stats := fmt.Sprintf("\nFinal Stats:\nPoints: %d\nSnake Length: %d\n\n", g.FinalPoints, g.FinalLength)

	buttons := make([]string, len(gameOverButtons))
	for i, label := range gameOverButtons {
		if i == g.SelectedButton {
			buttons[i] = selectedButtonStyle.Render(label)
		} else {
			buttons[i] = gameOverButtonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// RenderLeaderboardScreen draws the best games of this session.
func (g *GameOverState) RenderLeaderboardScreen() string {
	var tableContent strings.Builder

	nameWidth := 15
	pointsWidth := 8
	lengthWidth := 8

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(4).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(pointsWidth).Render("Points"),
		leaderboardHeaderStyle.Width(lengthWidth).Render("Length"),
	)
	tableContent.WriteString(header + "\n")

	for i, score := range g.HighScores.GetHighScores(leaderboardRows, 0) {
		nameStyle := leaderboardRowStyle
		if score.PlayerName == g.PlayerName {
			nameStyle = nameStyle.Bold(true)
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(4).Render(strconv.Itoa(i+1)),
			nameStyle.Width(nameWidth).Render(score.PlayerName),
			leaderboardRowStyle.Width(pointsWidth).Render(strconv.Itoa(score.Points)),
			leaderboardRowStyle.Width(lengthWidth).Render(strconv.Itoa(score.SnakeLength)),
		)

		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("👑 SESSION LEADERBOARD 👑")
	summary := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("%d games played", g.HighScores.GetTotalScoreCount()))
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to return to Game Over screen.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		summary,
		instruction,
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
