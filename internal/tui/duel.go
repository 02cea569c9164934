// Package tui provides an interactive viewer that plays an opposed duel
// one round at a time, best-of-N. Round pacing runs off an injected clock
// so tests advance time without sleeping.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"

	"github.com/underworld-games/destinydeck/internal/display"
	"github.com/underworld-games/destinydeck/internal/resolve"
)

const defaultPace = 800 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	scoreboardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Config holds the duel parameters
type Config struct {
	Resolver    *resolve.Resolver
	Actor       resolve.SuitBonuses
	ActorMods   []resolve.Modifier
	Defender    resolve.SuitBonuses
	RoundsToWin int
	Pace        time.Duration
	Clock       quartz.Clock
}

// roundMsg fires when the pacing timer elapses and the next round resolves
type roundMsg struct{}

// Model is the Bubble Tea model for the duel viewer
type Model struct {
	cfg Config

	lastRound    *resolve.Result
	roundsPlayed int
	actorWins    int
	defenderWins int

	bar  progress.Model
	err  error
	done bool
}

// NewModel creates a duel viewer model
func NewModel(cfg Config) Model {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Pace <= 0 {
		cfg.Pace = defaultPace
	}
	if cfg.RoundsToWin <= 0 {
		cfg.RoundsToWin = 3
	}

	return Model{
		cfg: cfg,
		bar: progress.New(progress.WithDefaultGradient()),
	}
}

// Err returns the resolution error that ended the duel, if any
func (m Model) Err() error {
	return m.err
}

// Winner returns the winning side's name once the duel is decided
func (m Model) Winner() string {
	switch {
	case m.actorWins >= m.cfg.RoundsToWin:
		return "actor"
	case m.defenderWins >= m.cfg.RoundsToWin:
		return "defender"
	default:
		return ""
	}
}

// Init starts the first round timer
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// tick waits one pace interval on the injected clock, then fires a round
func (m Model) tick() tea.Cmd {
	return func() tea.Msg {
		fired := make(chan struct{})
		timer := m.cfg.Clock.AfterFunc(m.cfg.Pace, func() {
			close(fired)
		})
		defer timer.Stop()
		<-fired
		return roundMsg{}
	}
}

// Update handles key presses and round timers
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 8
		return m, nil

	case roundMsg:
		return m.playRound()
	}

	return m, nil
}

// playRound resolves one opposed round and updates the score
func (m Model) playRound() (Model, tea.Cmd) {
	res, err := m.cfg.Resolver.ResolveOpposed(m.cfg.Actor, m.cfg.Defender, m.cfg.ActorMods, nil)
	if err != nil {
		m.err = err
		m.done = true
		return m, tea.Quit
	}

	m.lastRound = res
	m.roundsPlayed++
	if res.ActorWins {
		m.actorWins++
	} else {
		m.defenderWins++
	}

	if m.actorWins >= m.cfg.RoundsToWin || m.defenderWins >= m.cfg.RoundsToWin {
		m.done = true
		return m, tea.Quit
	}

	return m, m.tick()
}

// View renders the duel state
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Destiny Duel - first to %d", m.cfg.RoundsToWin)))
	b.WriteString("\n\n")

	if m.lastRound != nil {
		b.WriteString(display.FormatResult(m.lastRound))
		b.WriteString("\n")
	}

	b.WriteString(scoreboardStyle.Render(
		fmt.Sprintf("actor %d : %d defender  (round %d)", m.actorWins, m.defenderWins, m.roundsPlayed)))
	b.WriteString("\n")

	leader := m.actorWins
	if m.defenderWins > leader {
		leader = m.defenderWins
	}
	b.WriteString(m.bar.ViewAs(float64(leader) / float64(m.cfg.RoundsToWin)))
	b.WriteString("\n")

	if m.done {
		if winner := m.Winner(); winner != "" {
			b.WriteString(scoreboardStyle.Render(strings.ToUpper(winner) + " TAKES THE DUEL"))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(hintStyle.Render("q to quit"))
		b.WriteString("\n")
	}

	return b.String()
}

// Run plays the duel in an interactive terminal session
func Run(cfg Config) (Model, error) {
	program := tea.NewProgram(NewModel(cfg))
	final, err := program.Run()
	if err != nil {
		return Model{}, err
	}

	model := final.(Model)
	if model.err != nil {
		return model, model.err
	}
	return model, nil
}
