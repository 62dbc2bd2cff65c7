package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// MenuChoice is what the player picked in the start menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceNewGame
	ChoiceScores
	ChoiceQuit
)

type menuItem struct {
	title  string
	choice MenuChoice
}

var menuItems = []menuItem{
	{"New game", ChoiceNewGame},
	{"Difficulty", ChoiceNone},
	{"High scores", ChoiceScores},
	{"Quit", ChoiceQuit},
}

const difficultyRow = 1

type menuStyles struct {
	title    lipgloss.Style
	selected lipgloss.Style
	hint     lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	return menuStyles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f9f6f2")).
			Background(lipgloss.Color("#edc22e")).
			Padding(0, 2),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		hint:     r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	r          *lipgloss.Renderer
	styles     menuStyles
	cursor     int
	difficulty int // index into config.Presets
	width      int
	height     int
	best       int
	keys       MenuKeyMap
	help       help.Model
	choice     MenuChoice
}

// NewMenuModel creates a menu showing best as the current highscore,
// styled for the terminal behind r.
func NewMenuModel(r *lipgloss.Renderer, cfg core.RuntimeConfig, preset config.DifficultyPreset, best int) MenuModel {
	difficulty := 1
	for i, p := range config.Presets {
		if p == preset {
			difficulty = i
		}
	}

	return MenuModel{
		r:          r,
		styles:     newMenuStyles(r),
		difficulty: difficulty,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		best:       best,
		keys:       DefaultMenuKeyMap(),
		help:       newHelp(r),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.choice = ChoiceQuit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left):
		if m.cursor == difficultyRow && m.difficulty > 0 {
			m.difficulty--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursor == difficultyRow && m.difficulty < len(config.Presets)-1 {
			m.difficulty++
		}

	case key.Matches(msg, m.keys.Scores):
		m.choice = ChoiceScores

	case key.Matches(msg, m.keys.Select):
		m.choice = menuItems[m.cursor].choice
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.r.PlaceHorizontal(m.width, lipgloss.Center, m.styles.title.Render("2 0 4 8")))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Highscore: %d", m.best), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := item.title
		if i == difficultyRow {
			line = fmt.Sprintf("%s: < %s >", item.title, m.Difficulty())
		}

		if i == m.cursor {
			line = m.styles.selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(m.r.PlaceHorizontal(m.width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.r.PlaceHorizontal(m.width, lipgloss.Center, m.styles.hint.Render(m.help.View(m.keys))))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked, ChoiceNone while undecided.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the selected difficulty preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return config.Presets[m.difficulty]
}

// Reset clears the last choice so the menu can be shown again.
func (m MenuModel) Reset(best int) MenuModel {
	m.choice = ChoiceNone
	m.best = best
	return m
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
