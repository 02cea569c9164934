// Package statistics accumulates resolution outcomes across simulation
// batches for balance tuning: outcome distribution, margin spread and
// hand-rank frequencies.
package statistics

import (
	"fmt"
	"math"
	"strings"

	"github.com/underworld-games/destinydeck/internal/evaluator"
	"github.com/underworld-games/destinydeck/internal/resolve"
)

// Statistics tracks aggregate resolution outcomes
type Statistics struct {
	Resolutions int

	// Threshold mode outcome buckets
	CriticalSuccesses int
	Successes         int
	Failures          int
	CriticalFailures  int

	// Opposed mode outcome buckets
	ActorWins    int
	DefenderWins int

	// Margin spread
	SumMargin  float64
	SumMargin2 float64
	MaxTotal   float64

	// Actor hand-rank frequency
	RankCounts [evaluator.NumRanks]int
}

// Add incorporates one resolution result
func (s *Statistics) Add(res *resolve.Result) {
	s.Resolutions++
	s.SumMargin += res.Margin
	s.SumMargin2 += res.Margin * res.Margin
	s.RankCounts[res.Actor.Rank]++

	if res.Actor.Total > s.MaxTotal {
		s.MaxTotal = res.Actor.Total
	}

	switch res.Mode {
	case resolve.ThresholdMode:
		switch res.Degree {
		case resolve.CriticalSuccess:
			s.CriticalSuccesses++
		case resolve.Success:
			s.Successes++
		case resolve.Failure:
			s.Failures++
		case resolve.CriticalFailure:
			s.CriticalFailures++
		}
	case resolve.OpposedMode:
		if res.ActorWins {
			s.ActorWins++
		} else {
			s.DefenderWins++
		}
	}
}

// Merge folds another batch into this one
func (s *Statistics) Merge(other *Statistics) {
	s.Resolutions += other.Resolutions
	s.CriticalSuccesses += other.CriticalSuccesses
	s.Successes += other.Successes
	s.Failures += other.Failures
	s.CriticalFailures += other.CriticalFailures
	s.ActorWins += other.ActorWins
	s.DefenderWins += other.DefenderWins
	s.SumMargin += other.SumMargin
	s.SumMargin2 += other.SumMargin2
	if other.MaxTotal > s.MaxTotal {
		s.MaxTotal = other.MaxTotal
	}
	for rank := range s.RankCounts {
		s.RankCounts[rank] += other.RankCounts[rank]
	}
}

// SuccessRate returns the fraction of favorable outcomes: successes of any
// degree in threshold mode plus actor wins in opposed mode
func (s *Statistics) SuccessRate() float64 {
	if s.Resolutions == 0 {
		return 0
	}
	favorable := s.CriticalSuccesses + s.Successes + s.ActorWins
	return float64(favorable) / float64(s.Resolutions)
}

// MeanMargin returns the arithmetic mean margin across all resolutions
func (s *Statistics) MeanMargin() float64 {
	if s.Resolutions == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Resolutions)
}

// Variance returns the sample variance of the margins
func (s *Statistics) Variance() float64 {
	if s.Resolutions < 2 {
		return 0
	}
	mean := s.MeanMargin()
	return (s.SumMargin2 - float64(s.Resolutions)*mean*mean) / float64(s.Resolutions-1)
}

// StdDev returns the sample standard deviation of the margins
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Summary formats a multi-line report for CLI output
func (s *Statistics) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Resolutions:      %d\n", s.Resolutions)
	fmt.Fprintf(&b, "Success rate:     %.2f%%\n", s.SuccessRate()*100)
	if s.CriticalSuccesses+s.Successes+s.Failures+s.CriticalFailures > 0 {
		fmt.Fprintf(&b, "Critical success: %d\n", s.CriticalSuccesses)
		fmt.Fprintf(&b, "Success:          %d\n", s.Successes)
		fmt.Fprintf(&b, "Failure:          %d\n", s.Failures)
		fmt.Fprintf(&b, "Critical failure: %d\n", s.CriticalFailures)
	}
	if s.ActorWins+s.DefenderWins > 0 {
		fmt.Fprintf(&b, "Actor wins:       %d\n", s.ActorWins)
		fmt.Fprintf(&b, "Defender wins:    %d\n", s.DefenderWins)
	}
	fmt.Fprintf(&b, "Mean margin:      %.2f (stddev %.2f)\n", s.MeanMargin(), s.StdDev())
	fmt.Fprintf(&b, "Best total:       %.2f\n", s.MaxTotal)

	fmt.Fprintf(&b, "Hand ranks:\n")
	for rank := evaluator.RoyalFlush; rank >= evaluator.HighCard; rank-- {
		count := s.RankCounts[rank]
		if count == 0 {
			continue
		}
		pct := float64(count) / float64(s.Resolutions) * 100
		fmt.Fprintf(&b, "  %-16s %7d (%.3f%%)\n", rank.String(), count, pct)
	}

	return b.String()
}
