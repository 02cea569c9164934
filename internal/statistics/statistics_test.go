package statistics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/underworld-games/destinydeck/internal/evaluator"
	"github.com/underworld-games/destinydeck/internal/resolve"
)

func thresholdResult(degree resolve.Degree, margin float64, rank evaluator.HandRank) *resolve.Result {
	return &resolve.Result{
		Mode:    resolve.ThresholdMode,
		Degree:  degree,
		Success: degree >= resolve.Success,
		Margin:  margin,
		Actor:   resolve.Score{Rank: rank, Total: margin + 100},
	}
}

func opposedResult(actorWins bool, margin float64) *resolve.Result {
	return &resolve.Result{
		Mode:      resolve.OpposedMode,
		ActorWins: actorWins,
		Margin:    margin,
		Actor:     resolve.Score{Total: 50},
	}
}

func TestAddThresholdOutcomes(t *testing.T) {
	var stats Statistics
	stats.Add(thresholdResult(resolve.CriticalSuccess, 150, evaluator.Flush))
	stats.Add(thresholdResult(resolve.Success, 20, evaluator.Pair))
	stats.Add(thresholdResult(resolve.Failure, -10, evaluator.HighCard))
	stats.Add(thresholdResult(resolve.CriticalFailure, -80, evaluator.HighCard))

	assert.Equal(t, 4, stats.Resolutions)
	assert.Equal(t, 1, stats.CriticalSuccesses)
	assert.Equal(t, 1, stats.Successes)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 1, stats.CriticalFailures)
	assert.InDelta(t, 0.5, stats.SuccessRate(), 1e-9)
	assert.Equal(t, 2, stats.RankCounts[evaluator.HighCard])
	assert.Equal(t, 1, stats.RankCounts[evaluator.Flush])
}

func TestAddOpposedOutcomes(t *testing.T) {
	var stats Statistics
	stats.Add(opposedResult(true, 30))
	stats.Add(opposedResult(false, -5))
	stats.Add(opposedResult(false, 0))

	assert.Equal(t, 1, stats.ActorWins)
	assert.Equal(t, 2, stats.DefenderWins)
	assert.InDelta(t, 1.0/3.0, stats.SuccessRate(), 1e-9)
}

func TestMeanAndStdDev(t *testing.T) {
	var stats Statistics
	stats.Add(thresholdResult(resolve.Success, 10, evaluator.Pair))
	stats.Add(thresholdResult(resolve.Success, 20, evaluator.Pair))
	stats.Add(thresholdResult(resolve.Success, 30, evaluator.Pair))

	assert.InDelta(t, 20.0, stats.MeanMargin(), 1e-9)
	assert.InDelta(t, 10.0, stats.StdDev(), 1e-9)
}

func TestMerge(t *testing.T) {
	var a, b Statistics
	a.Add(thresholdResult(resolve.Success, 10, evaluator.Pair))
	b.Add(thresholdResult(resolve.Failure, -10, evaluator.HighCard))
	b.Add(opposedResult(true, 5))

	a.Merge(&b)

	assert.Equal(t, 3, a.Resolutions)
	assert.Equal(t, 1, a.Successes)
	assert.Equal(t, 1, a.Failures)
	assert.Equal(t, 1, a.ActorWins)
	assert.InDelta(t, 5.0/3.0, a.MeanMargin(), 1e-9)
}

func TestEmptyStatistics(t *testing.T) {
	var stats Statistics

	assert.Zero(t, stats.SuccessRate())
	assert.Zero(t, stats.MeanMargin())
	assert.Zero(t, stats.StdDev())
}

func TestSummaryMentionsOutcomes(t *testing.T) {
	var stats Statistics
	stats.Add(thresholdResult(resolve.Success, 25, evaluator.TwoPair))

	summary := stats.Summary()
	assert.True(t, strings.Contains(summary, "Success rate"), "summary: %s", summary)
	assert.True(t, strings.Contains(summary, "Two Pair"), "summary: %s", summary)
}
