// Package resolve implements the destiny deck resolution engine: a pure,
// synchronous card-draw arbiter for contested and skill-gated actions.
// Callers supply suit-bonus vectors and an action context; the engine draws
// fresh hands, scores them, and returns a result the caller applies under
// its own transactional discipline. The engine performs no I/O, holds no
// locks, never logs and never retries.
package resolve

import (
	"fmt"

	"github.com/underworld-games/destinydeck/internal/deck"
	"github.com/underworld-games/destinydeck/internal/evaluator"
	"github.com/underworld-games/destinydeck/internal/randutil"
)

// Mode identifies how an action is contested
type Mode int

const (
	// ThresholdMode compares one score against a fixed difficulty (PvE)
	ThresholdMode Mode = iota
	// OpposedMode compares two independently drawn and scored hands (PvP)
	OpposedMode
)

// Degree classifies a threshold outcome by margin
type Degree int

const (
	CriticalFailure Degree = iota
	Failure
	Success
	CriticalSuccess
)

// String returns a description of the degree
func (d Degree) String() string {
	switch d {
	case CriticalFailure:
		return "critical failure"
	case Failure:
		return "failure"
	case Success:
		return "success"
	case CriticalSuccess:
		return "critical success"
	default:
		return "unknown"
	}
}

// Score is the full scoring breakdown for one participant's drawn hand
type Score struct {
	Hand     deck.Hand
	Rank     evaluator.HandRank
	Tiebreak int
	Base     float64
	Suit     float64
	Modifier float64
	Total    float64
}

// Result is the engine's sole output. It is created fresh per resolution,
// never mutated after return, and owned entirely by the caller.
type Result struct {
	Mode Mode

	Actor    Score
	Defender *Score // opposed mode only

	// Threshold mode
	Difficulty float64
	Success    bool
	Degree     Degree

	// Margin is total-difficulty in threshold mode, actor-defender in
	// opposed mode. Callers scale rewards and penalties from it.
	Margin float64

	// Opposed mode: false means the defender won, including exact ties
	ActorWins bool
}

// Resolver performs destiny deck resolutions. It is immutable after
// construction and safe for concurrent use when its source is (the crypto
// source is; seeded sources are per-goroutine).
type Resolver struct {
	src randutil.Source
	tun Tunables
}

// New creates a resolver with an explicit random source and tunables.
// The source must never be a deterministic one in production; seeded
// sources exist for tests and simulation replays only.
func New(src randutil.Source, tun Tunables) (*Resolver, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrConfig)
	}
	if err := tun.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{src: src, tun: tun}, nil
}

// NewDefault creates a resolver backed by the secure random source and the
// shipping balance values
func NewDefault() *Resolver {
	r, err := New(randutil.Crypto(), DefaultTunables())
	if err != nil {
		// Defaults always validate
		panic(err)
	}
	return r
}

// Tunables returns the balance values this resolver was built with
func (r *Resolver) Tunables() Tunables {
	return r.tun
}

// scoreHand draws a fresh hand and computes its full scoring breakdown
func (r *Resolver) scoreHand(bonuses SuitBonuses, mods []Modifier) (Score, error) {
	hand, err := deck.DrawHand(r.src)
	if err != nil {
		return Score{}, err
	}
	return r.scoreDrawnHand(hand, bonuses, mods), nil
}

// scoreDrawnHand computes the scoring breakdown for an already-drawn hand:
// base (rank constant + tiebreak) + suit score + modifier total, floored
// at zero.
func (r *Resolver) scoreDrawnHand(hand deck.Hand, bonuses SuitBonuses, mods []Modifier) Score {
	rank, tiebreak := evaluator.Classify(hand)
	base := r.tun.RankScores[rank] + float64(tiebreak)
	suit := bonuses.SuitScore(hand)
	modifier := modifierTotal(hand, mods)

	total := base + suit + modifier
	if total < 0 {
		total = 0
	}

	return Score{
		Hand:     hand,
		Rank:     rank,
		Tiebreak: tiebreak,
		Base:     base,
		Suit:     suit,
		Modifier: modifier,
		Total:    total,
	}
}

// degree classifies a threshold margin against the configured breakpoints
func (r *Resolver) degree(margin float64) Degree {
	switch {
	case margin >= r.tun.CriticalSuccessMargin:
		return CriticalSuccess
	case margin >= 0:
		return Success
	case margin > r.tun.CriticalFailureMargin:
		return Failure
	default:
		return CriticalFailure
	}
}

// ResolveThreshold resolves a PvE action against a fixed difficulty.
// Success iff total >= difficulty (boundary inclusive).
func (r *Resolver) ResolveThreshold(bonuses SuitBonuses, difficulty float64, mods []Modifier) (*Result, error) {
	if difficulty < 0 {
		return nil, fmt.Errorf("%w: negative difficulty %.2f", ErrConfig, difficulty)
	}
	if err := bonuses.validate(); err != nil {
		return nil, err
	}
	if err := validateModifiers(mods); err != nil {
		return nil, err
	}

	score, err := r.scoreHand(bonuses, mods)
	if err != nil {
		return nil, err
	}

	return r.thresholdOutcome(score, difficulty), nil
}

// thresholdOutcome applies the threshold outcome policy to a scored hand
func (r *Resolver) thresholdOutcome(score Score, difficulty float64) *Result {
	margin := score.Total - difficulty
	degree := r.degree(margin)

	if r.tun.RoyalFlushAutoWin && score.Rank == evaluator.RoyalFlush {
		degree = CriticalSuccess
	}

	return &Result{
		Mode:       ThresholdMode,
		Actor:      score,
		Difficulty: difficulty,
		Margin:     margin,
		Success:    degree >= Success,
		Degree:     degree,
	}
}

// ResolveOpposed resolves a PvP action between an actor and a defender,
// each drawing an independent hand. The strictly higher total wins; exact
// ties resolve in favor of the defender (home-field advantage, a documented
// design choice rather than a coin flip).
func (r *Resolver) ResolveOpposed(actorBonuses, defenderBonuses SuitBonuses, actorMods, defenderMods []Modifier) (*Result, error) {
	if err := actorBonuses.validate(); err != nil {
		return nil, err
	}
	if err := defenderBonuses.validate(); err != nil {
		return nil, err
	}
	if err := validateModifiers(actorMods); err != nil {
		return nil, err
	}
	if err := validateModifiers(defenderMods); err != nil {
		return nil, err
	}

	actor, err := r.scoreHand(actorBonuses, actorMods)
	if err != nil {
		return nil, err
	}
	defender, err := r.scoreHand(defenderBonuses, defenderMods)
	if err != nil {
		return nil, err
	}

	return r.opposedOutcome(actor, defender), nil
}

// opposedOutcome applies the opposed outcome policy to two scored hands
func (r *Resolver) opposedOutcome(actor, defender Score) *Result {
	margin := actor.Total - defender.Total
	actorWins := margin > 0

	if r.tun.RoyalFlushAutoWin {
		// A lone royal flush overrides the score comparison. If both sides
		// draw one, the tie rule stands.
		actorRoyal := actor.Rank == evaluator.RoyalFlush
		defenderRoyal := defender.Rank == evaluator.RoyalFlush
		if actorRoyal && !defenderRoyal {
			actorWins = true
		} else if defenderRoyal && !actorRoyal {
			actorWins = false
		}
	}

	return &Result{
		Mode:      OpposedMode,
		Actor:     actor,
		Defender:  &defender,
		Margin:    margin,
		ActorWins: actorWins,
	}
}
