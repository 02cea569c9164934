// Package display renders resolution results for terminal output.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/underworld-games/destinydeck/internal/deck"
	"github.com/underworld-games/destinydeck/internal/resolve"
)

var (
	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	RankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	FailureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

// FormatCard renders a single card with suit colouring
func FormatCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// FormatHand renders a hand as coloured space-separated cards
func FormatHand(h deck.Hand) string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = FormatCard(c)
	}
	return strings.Join(parts, " ")
}

// FormatScore renders a participant's scoring breakdown
func FormatScore(label string, s resolve.Score) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render(label+":"), FormatHand(s.Hand))
	fmt.Fprintf(&b, "  %s %s", LabelStyle.Render("rank"), RankStyle.Render(s.Rank.String()))
	if s.Tiebreak > 0 {
		fmt.Fprintf(&b, " %s", LabelStyle.Render(fmt.Sprintf("(tiebreak %d)", s.Tiebreak)))
	}
	fmt.Fprintf(&b, "\n  %s base %.1f + suits %.1f + modifiers %.1f = %.1f",
		LabelStyle.Render("score"), s.Base, s.Suit, s.Modifier, s.Total)

	return b.String()
}

// FormatResult renders a full resolution result as a bordered panel
func FormatResult(res *resolve.Result) string {
	var b strings.Builder

	b.WriteString(FormatScore("Actor", res.Actor))
	b.WriteString("\n")

	switch res.Mode {
	case resolve.ThresholdMode:
		fmt.Fprintf(&b, "%s %.1f  %s %+.1f\n",
			LabelStyle.Render("difficulty"), res.Difficulty,
			LabelStyle.Render("margin"), res.Margin)
		if res.Success {
			b.WriteString(SuccessStyle.Render(strings.ToUpper(res.Degree.String())))
		} else {
			b.WriteString(FailureStyle.Render(strings.ToUpper(res.Degree.String())))
		}
	case resolve.OpposedMode:
		if res.Defender != nil {
			b.WriteString(FormatScore("Defender", *res.Defender))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %+.1f\n", LabelStyle.Render("margin"), res.Margin)
		if res.ActorWins {
			b.WriteString(SuccessStyle.Render("ACTOR WINS"))
		} else {
			b.WriteString(FailureStyle.Render("DEFENDER WINS"))
		}
	}

	return PanelStyle.Render(b.String())
}
