package resolve

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/underworld-games/destinydeck/internal/evaluator"
)

// Tunables holds the balance constants of the resolution engine. They are
// data, not code: balance tuning adjusts these without touching resolution
// logic.
type Tunables struct {
	// RankScores is the fixed base score per hand rank, indexed by
	// evaluator.HandRank. Royal Flush highest, High Card lowest.
	RankScores [evaluator.NumRanks]float64

	// CriticalSuccessMargin is the threshold-mode margin at or above which
	// a success upgrades to a critical success.
	CriticalSuccessMargin float64

	// CriticalFailureMargin is the margin at or below which a failure
	// degrades to a critical failure. Always negative.
	CriticalFailureMargin float64

	// RoyalFlushAutoWin forces an automatic critical success (or opposed
	// win) on a Royal Flush regardless of computed total. Off by default;
	// balance testing may enable it.
	RoyalFlushAutoWin bool
}

// DefaultTunables returns the shipping balance values
func DefaultTunables() Tunables {
	return Tunables{
		RankScores: [evaluator.NumRanks]float64{
			evaluator.HighCard:      0,
			evaluator.Pair:          30,
			evaluator.TwoPair:       60,
			evaluator.ThreeOfAKind:  100,
			evaluator.Straight:      150,
			evaluator.Flush:         200,
			evaluator.FullHouse:     250,
			evaluator.FourOfAKind:   350,
			evaluator.StraightFlush: 450,
			evaluator.RoyalFlush:    500,
		},
		CriticalSuccessMargin: 100,
		CriticalFailureMargin: -50,
		RoyalFlushAutoWin:     false,
	}
}

// Validate checks the tunables for configuration errors
func (t Tunables) Validate() error {
	for rank := evaluator.HighCard; rank <= evaluator.RoyalFlush; rank++ {
		if t.RankScores[rank] < 0 {
			return fmt.Errorf("%w: negative base score %.2f for %s", ErrConfig, t.RankScores[rank], rank)
		}
		if rank > evaluator.HighCard && t.RankScores[rank] < t.RankScores[rank-1] {
			return fmt.Errorf("%w: base score for %s (%.2f) below %s (%.2f)",
				ErrConfig, rank, t.RankScores[rank], rank-1, t.RankScores[rank-1])
		}
	}
	if t.CriticalSuccessMargin <= 0 {
		return fmt.Errorf("%w: critical success margin must be positive, got %.2f", ErrConfig, t.CriticalSuccessMargin)
	}
	if t.CriticalFailureMargin >= 0 {
		return fmt.Errorf("%w: critical failure margin must be negative, got %.2f", ErrConfig, t.CriticalFailureMargin)
	}
	return nil
}

// BalanceConfig is the HCL representation of a balance file
type BalanceConfig struct {
	Scores       *ScoresBlock      `hcl:"scores,block"`
	Outcome      *OutcomeBlock     `hcl:"outcome,block"`
	Difficulties []DifficultyBlock `hcl:"difficulty,block"`
}

// ScoresBlock sets the per-rank base scores. Fields are pointers so an
// omitted rank keeps its default instead of collapsing to zero.
type ScoresBlock struct {
	HighCard      *float64 `hcl:"high_card,optional"`
	Pair          *float64 `hcl:"pair,optional"`
	TwoPair       *float64 `hcl:"two_pair,optional"`
	ThreeOfAKind  *float64 `hcl:"three_of_a_kind,optional"`
	Straight      *float64 `hcl:"straight,optional"`
	Flush         *float64 `hcl:"flush,optional"`
	FullHouse     *float64 `hcl:"full_house,optional"`
	FourOfAKind   *float64 `hcl:"four_of_a_kind,optional"`
	StraightFlush *float64 `hcl:"straight_flush,optional"`
	RoyalFlush    *float64 `hcl:"royal_flush,optional"`
}

// OutcomeBlock sets the degree-of-success breakpoints and outcome policies
type OutcomeBlock struct {
	CriticalSuccessMargin float64 `hcl:"critical_success_margin,optional"`
	CriticalFailureMargin float64 `hcl:"critical_failure_margin,optional"`
	RoyalFlushAutoWin     bool    `hcl:"royal_flush_auto_win,optional"`
}

// DifficultyBlock declares a named difficulty threshold for an action type.
// The tables are owned by balance data; the engine only ships the parser so
// all callers share one format.
type DifficultyBlock struct {
	Action    string  `hcl:"action,label"`
	Threshold float64 `hcl:"threshold"`
}

// LoadBalance parses an HCL balance file into validated tunables and the
// per-action difficulty table. A missing or malformed file is an error,
// never silently defaulted; use DefaultTunables when no file is configured.
func LoadBalance(filename string) (Tunables, map[string]float64, error) {
	tun := DefaultTunables()

	if _, err := os.Stat(filename); err != nil {
		return tun, nil, fmt.Errorf("%w: balance file %s: %v", ErrConfig, filename, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return tun, nil, fmt.Errorf("%w: failed to parse balance file: %s", ErrConfig, diags.Error())
	}

	var config BalanceConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return tun, nil, fmt.Errorf("%w: failed to decode balance file: %s", ErrConfig, diags.Error())
	}

	if s := config.Scores; s != nil {
		overrides := [evaluator.NumRanks]*float64{
			evaluator.HighCard:      s.HighCard,
			evaluator.Pair:          s.Pair,
			evaluator.TwoPair:       s.TwoPair,
			evaluator.ThreeOfAKind:  s.ThreeOfAKind,
			evaluator.Straight:      s.Straight,
			evaluator.Flush:         s.Flush,
			evaluator.FullHouse:     s.FullHouse,
			evaluator.FourOfAKind:   s.FourOfAKind,
			evaluator.StraightFlush: s.StraightFlush,
			evaluator.RoyalFlush:    s.RoyalFlush,
		}
		for rank, v := range overrides {
			if v != nil {
				tun.RankScores[rank] = *v
			}
		}
	}
	if o := config.Outcome; o != nil {
		if o.CriticalSuccessMargin != 0 {
			tun.CriticalSuccessMargin = o.CriticalSuccessMargin
		}
		if o.CriticalFailureMargin != 0 {
			tun.CriticalFailureMargin = o.CriticalFailureMargin
		}
		tun.RoyalFlushAutoWin = o.RoyalFlushAutoWin
	}

	if err := tun.Validate(); err != nil {
		return tun, nil, err
	}

	difficulties := make(map[string]float64, len(config.Difficulties))
	for _, d := range config.Difficulties {
		if d.Threshold < 0 {
			return tun, nil, fmt.Errorf("%w: difficulty %q has negative threshold %.2f", ErrConfig, d.Action, d.Threshold)
		}
		if _, dup := difficulties[d.Action]; dup {
			return tun, nil, fmt.Errorf("%w: duplicate difficulty block %q", ErrConfig, d.Action)
		}
		difficulties[d.Action] = d.Threshold
	}

	return tun, difficulties, nil
}
