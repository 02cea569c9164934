package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/underworld-games/destinydeck/internal/resolve"
)

func TestRunThresholdBatch(t *testing.T) {
	sim := New(Config{
		Resolutions: 200,
		Workers:     4,
		Difficulty:  50,
		Bonuses:     resolve.NewSuitBonuses(10, 10, 10, 10),
		Seed:        42,
		Tunables:    resolve.DefaultTunables(),
	})

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, stats.Resolutions)
	total := stats.CriticalSuccesses + stats.Successes + stats.Failures + stats.CriticalFailures
	assert.Equal(t, 200, total, "every resolution lands in exactly one outcome bucket")
}

func TestRunOpposedBatch(t *testing.T) {
	opponent := resolve.NewSuitBonuses(5, 5, 5, 5)
	sim := New(Config{
		Resolutions: 100,
		Workers:     2,
		Bonuses:     resolve.NewSuitBonuses(20, 20, 20, 20),
		Opponent:    &opponent,
		Seed:        7,
		Tunables:    resolve.DefaultTunables(),
	})

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100, stats.ActorWins+stats.DefenderWins)
	// The actor is far better trained and should win most rounds
	assert.Greater(t, stats.ActorWins, stats.DefenderWins)
}

func TestRunSeededReproducible(t *testing.T) {
	config := Config{
		Resolutions: 50,
		Workers:     2,
		Difficulty:  80,
		Bonuses:     resolve.NewSuitBonuses(15, 0, 0, 15),
		Seed:        123,
		Tunables:    resolve.DefaultTunables(),
	}

	first, err := New(config).Run(context.Background())
	require.NoError(t, err)
	second, err := New(config).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Successes, second.Successes)
	assert.Equal(t, first.Failures, second.Failures)
	assert.InDelta(t, first.SumMargin, second.SumMargin, 1e-9)
}

func TestRunRejectsZeroResolutions(t *testing.T) {
	sim := New(Config{Tunables: resolve.DefaultTunables()})

	_, err := sim.Run(context.Background())
	assert.ErrorIs(t, err, resolve.ErrConfig)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := New(Config{
		Resolutions: 1_000_000,
		Workers:     2,
		Difficulty:  50,
		Seed:        1,
		Tunables:    resolve.DefaultTunables(),
	})

	_, err := sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
