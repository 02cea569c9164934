package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/underworld-games/destinydeck/internal/randutil"
	"github.com/underworld-games/destinydeck/internal/resolve"
)

func newDuelModel(t *testing.T, roundsToWin int) Model {
	t.Helper()
	resolver, err := resolve.New(randutil.Seeded(42), resolve.DefaultTunables())
	require.NoError(t, err)

	return NewModel(Config{
		Resolver:    resolver,
		Actor:       resolve.NewSuitBonuses(50, 50, 50, 50),
		Defender:    resolve.SuitBonuses{},
		RoundsToWin: roundsToWin,
		Pace:        time.Millisecond,
	})
}

func playRounds(t *testing.T, m Model, max int) Model {
	t.Helper()
	for i := 0; i < max; i++ {
		next, _ := m.Update(roundMsg{})
		m = next.(Model)
		if m.done {
			return m
		}
	}
	return m
}

func TestDuelPlaysUntilDecided(t *testing.T) {
	m := playRounds(t, newDuelModel(t, 3), 50)

	require.True(t, m.done, "duel should finish within 50 rounds")
	require.NoError(t, m.Err())
	winner := m.Winner()
	assert.Contains(t, []string{"actor", "defender"}, winner)
	if winner == "actor" {
		assert.Equal(t, 3, m.actorWins)
	} else {
		assert.Equal(t, 3, m.defenderWins)
	}
}

func TestDuelEveryRoundCounted(t *testing.T) {
	m := newDuelModel(t, 100)
	m = playRounds(t, m, 20)

	assert.Equal(t, 20, m.roundsPlayed)
	assert.Equal(t, 20, m.actorWins+m.defenderWins)
	assert.NotNil(t, m.lastRound)
}

// stuckSource always picks index 0, so consecutive shuffles from a fresh
// deck produce identical hands and rounds come down to bonuses and modifiers
type stuckSource struct{}

func (stuckSource) Intn(int) (int, error) { return 0, nil }

func TestDuelAppliesActorModifiers(t *testing.T) {
	resolver, err := resolve.New(stuckSource{}, resolve.DefaultTunables())
	require.NoError(t, err)

	base := Config{
		Resolver:    resolver,
		Actor:       resolve.SuitBonuses{},
		Defender:    resolve.SuitBonuses{},
		RoundsToWin: 100,
		Pace:        time.Millisecond,
	}

	// Identical hands and no modifiers: exact tie, defender takes the round
	m := playRounds(t, NewModel(base), 1)
	require.NoError(t, m.Err())
	require.NotNil(t, m.lastRound)
	assert.False(t, m.lastRound.ActorWins)

	// The same round with a flat actor modifier must swing to the actor
	withMod := base
	withMod.ActorMods = []resolve.Modifier{resolve.Flat("ambush", 10)}
	m = playRounds(t, NewModel(withMod), 1)
	require.NoError(t, m.Err())
	require.NotNil(t, m.lastRound)
	assert.True(t, m.lastRound.ActorWins)
	assert.InDelta(t, 10, m.lastRound.Actor.Modifier, 1e-9)
}

func TestDuelQuitKey(t *testing.T) {
	m := newDuelModel(t, 3)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)

	assert.True(t, m.done)
	assert.NotNil(t, cmd)
}

func TestDuelViewRenders(t *testing.T) {
	m := newDuelModel(t, 3)
	m = playRounds(t, m, 1)

	view := m.View()
	assert.Contains(t, view, "Destiny Duel")
	assert.Contains(t, view, "round 1")
}

func TestDuelTickUsesInjectedClock(t *testing.T) {
	mockClock := quartz.NewMock(t)
	resolver, err := resolve.New(randutil.Seeded(1), resolve.DefaultTunables())
	require.NoError(t, err)

	m := NewModel(Config{
		Resolver:    resolver,
		RoundsToWin: 1,
		Pace:        time.Second,
		Clock:       mockClock,
	})

	trap := mockClock.Trap().AfterFunc()
	defer trap.Close()

	msgs := make(chan tea.Msg, 1)
	cmd := m.tick()
	go func() {
		msgs <- cmd()
	}()

	call, err := trap.Wait(t.Context())
	require.NoError(t, err)
	call.Release(t.Context())

	mockClock.Advance(time.Second).MustWait(t.Context())

	msg := <-msgs
	_, ok := msg.(roundMsg)
	assert.True(t, ok, "tick should produce a roundMsg")
}
