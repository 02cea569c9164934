package resolve

import (
	"fmt"
	"sort"
)

// TopContenders is the conventional N for best-of-N aggregation in
// territory battles
const TopContenders = 3

// MeanScore aggregates a side's results as the mean of all participants'
// total scores. Rewards broad participation.
func MeanScore(results []*Result) (float64, error) {
	if len(results) == 0 {
		return 0, fmt.Errorf("%w: cannot aggregate zero results", ErrInvariant)
	}

	sum := 0.0
	for _, res := range results {
		sum += res.Actor.Total
	}
	return sum / float64(len(results)), nil
}

// TopNMeanScore aggregates a side's results as the mean of the top n total
// scores. Rewards elite carries. When fewer than n results are supplied the
// mean covers all of them.
func TopNMeanScore(results []*Result, n int) (float64, error) {
	if len(results) == 0 {
		return 0, fmt.Errorf("%w: cannot aggregate zero results", ErrInvariant)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: top-n aggregation requires n > 0, got %d", ErrInvariant, n)
	}

	totals := make([]float64, len(results))
	for i, res := range results {
		totals[i] = res.Actor.Total
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(totals)))

	if n > len(totals) {
		n = len(totals)
	}

	sum := 0.0
	for _, t := range totals[:n] {
		sum += t
	}
	return sum / float64(n), nil
}
