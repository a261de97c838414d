package ui

import (
	"strconv"
	"strings"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	colorSwatchStyle   = lipgloss.NewStyle().Width(2)
	selectedColorStyle = lipgloss.NewStyle().Width(2)
	buttonStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

// snakePalette is the set of xterm-256 colors offered for the snake. None of
// them match the default food or field colors.
var snakePalette = []game.Color{34, 40, 46, 51, 39, 27, 93, 129, 201, 198, 208, 226, 231}

const (
	focusName = iota
	focusColor
	focusSubmit
)

const defaultPlayerName = "anonymous"

// Model for our form
type SetupModel struct {
	nameInput  textinput.Model
	colorIndex int // index into snakePalette
	focusIndex int // 0: Name, 1: Color Select, 2: Submit
	submitted  bool
	width      int
	height     int
}

func NewInitialSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your snake's name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput:  ti,
		colorIndex: 0,
		focusIndex: focusName,
		width:      w,
		height:     h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) selectedColor() game.Color {
	return snakePalette[m.colorIndex]
}

func (m SetupModel) playerName() string {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		return defaultPlayerName
	}
	return name
}

// Update handles messages (key presses, window resizes, etc.)
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		if s == "ctrl+c" {
			return m, tea.Quit
		}

		if s == "enter" || s == "tab" || s == "shift+tab" {
			switch m.focusIndex {
			case focusName:
				switch s {
				case "enter", "tab":
					m.focusIndex = focusColor
					m.nameInput.Blur()
				case "shift+tab":
					m.focusIndex = focusSubmit
					m.nameInput.Blur()
				}

			case focusColor:
				switch s {
				case "enter", "tab":
					m.focusIndex = focusSubmit
				case "shift+tab":
					m.focusIndex = focusName
					m.nameInput.Focus()
				}

			case focusSubmit:
				switch s {
				case "enter":
					m.submitted = true
					submit := SetupSubmitMsg{Name: m.playerName(), Color: m.selectedColor()}
					return m, func() tea.Msg { return submit }
				case "tab":
					m.focusIndex = focusName
					m.nameInput.Focus()
				case "shift+tab":
					m.focusIndex = focusColor
				}
			}
			return m, nil
		}

		if m.focusIndex == focusColor {
			switch s {
			case "left", "up":
				m.colorIndex = (m.colorIndex - 1 + len(snakePalette)) % len(snakePalette)
				return m, nil
			case "right", "down":
				m.colorIndex = (m.colorIndex + 1) % len(snakePalette)
				return m, nil
			}
		}

		if m.focusIndex == focusName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	colorPrompt := "Select your snake color (use arrows)"
	if m.focusIndex == focusColor {
		colorPrompt = focusedStyle.Render(colorPrompt)
	} else {
		colorPrompt = blurredStyle.Render(colorPrompt)
	}
	b.WriteString(center(colorPrompt))
	b.WriteString("\n")

	var colorSwatches strings.Builder
	for i, color := range snakePalette {
		code := lipgloss.Color(strconv.Itoa(int(color)))
		style := colorSwatchStyle.Background(code)
		if i == m.colorIndex {
			colorSwatches.WriteString(style.Foreground(lipgloss.Color("15")).Render("██"))
		} else {
			colorSwatches.WriteString(style.Foreground(code).Render("░░"))
		}
	}
	b.WriteString(center(colorSwatches.String()))
	b.WriteString("\n")

	b.WriteString(center("Snake color " + selectedColorStyle.
		Foreground(lipgloss.Color(strconv.Itoa(int(m.selectedColor())))).
		Render("██")))
	b.WriteString("\n\n")

	submitText := "Start"
	var submitButton string
	if m.focusIndex == focusSubmit {
		submitButton = submitButtonStyle.Render(submitText)
	} else {
		submitButton = blurredButtonStyle.Render(submitText)
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(arrows to select color, tab/shift+tab to navigate, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
