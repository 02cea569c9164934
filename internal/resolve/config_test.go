package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/underworld-games/destinydeck/internal/evaluator"
)

func TestDefaultTunablesValidate(t *testing.T) {
	require.NoError(t, DefaultTunables().Validate())
}

func TestDefaultTunablesShape(t *testing.T) {
	tun := DefaultTunables()

	assert.InDelta(t, 500.0, tun.RankScores[evaluator.RoyalFlush], 1e-9)
	assert.InDelta(t, 30.0, tun.RankScores[evaluator.Pair], 1e-9)
	assert.Zero(t, tun.RankScores[evaluator.HighCard])
	assert.InDelta(t, 100.0, tun.CriticalSuccessMargin, 1e-9)
	assert.InDelta(t, -50.0, tun.CriticalFailureMargin, 1e-9)
	assert.False(t, tun.RoyalFlushAutoWin, "royal flush auto-win must default off")
}

func TestValidateRejectsNonMonotonicScores(t *testing.T) {
	tun := DefaultTunables()
	tun.RankScores[evaluator.Flush] = 5 // below straight

	assert.ErrorIs(t, tun.Validate(), ErrConfig)
}

func TestValidateRejectsBadMargins(t *testing.T) {
	tun := DefaultTunables()
	tun.CriticalSuccessMargin = 0
	assert.ErrorIs(t, tun.Validate(), ErrConfig)

	tun = DefaultTunables()
	tun.CriticalFailureMargin = 10
	assert.ErrorIs(t, tun.Validate(), ErrConfig)
}

func TestLoadBalance(t *testing.T) {
	tun, difficulties, err := LoadBalance("testdata/balance.hcl")
	require.NoError(t, err)

	assert.InDelta(t, 25.0, tun.RankScores[evaluator.Pair], 1e-9)
	assert.InDelta(t, 490.0, tun.RankScores[evaluator.RoyalFlush], 1e-9)
	assert.InDelta(t, 120.0, tun.CriticalSuccessMargin, 1e-9)
	assert.InDelta(t, -60.0, tun.CriticalFailureMargin, 1e-9)
	assert.True(t, tun.RoyalFlushAutoWin)

	require.Len(t, difficulties, 3)
	assert.InDelta(t, 60.0, difficulties["pickpocket"], 1e-9)
	assert.InDelta(t, 250.0, difficulties["bank_heist"], 1e-9)
	assert.InDelta(t, 110.0, difficulties["lockpick"], 1e-9)
}

func TestLoadBalancePartialScoresKeepDefaults(t *testing.T) {
	tun, difficulties, err := LoadBalance("testdata/partial_scores.hcl")
	require.NoError(t, err)

	// Overridden ranks take the file's values
	assert.InDelta(t, 210.0, tun.RankScores[evaluator.Flush], 1e-9)
	assert.InDelta(t, 520.0, tun.RankScores[evaluator.RoyalFlush], 1e-9)

	// Everything the block omits keeps its default
	def := DefaultTunables()
	assert.InDelta(t, def.RankScores[evaluator.Pair], tun.RankScores[evaluator.Pair], 1e-9)
	assert.InDelta(t, def.RankScores[evaluator.Straight], tun.RankScores[evaluator.Straight], 1e-9)
	assert.InDelta(t, def.RankScores[evaluator.StraightFlush], tun.RankScores[evaluator.StraightFlush], 1e-9)
	assert.InDelta(t, def.CriticalSuccessMargin, tun.CriticalSuccessMargin, 1e-9)

	assert.InDelta(t, 80.0, difficulties["fence_goods"], 1e-9)
}

func TestLoadBalanceMissingFile(t *testing.T) {
	_, _, err := LoadBalance("testdata/does_not_exist.hcl")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadBalanceRejectsBadScores(t *testing.T) {
	_, _, err := LoadBalance("testdata/bad_scores.hcl")
	assert.ErrorIs(t, err, ErrConfig)
}
