// Package evaluator classifies five-card destiny hands into poker hand
// ranks. Detection tests in strictly descending rank order and returns on
// the first match, so a hand that satisfies several looser definitions
// always resolves to the single highest applicable rank.
package evaluator

import (
	"sort"

	"github.com/underworld-games/destinydeck/internal/deck"
)

// HandRank represents the strength of a five-card hand (higher is better)
type HandRank int

const (
	HighCard HandRank = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// NumRanks is the number of distinct hand ranks
const NumRanks = 10

// String returns a description of the hand rank
func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Classify returns the single highest rank the hand satisfies, plus its
// tiebreak value. The tiebreak is the kicker for the paired ranks, the sum
// of the three highest cards for High Card, and zero for the made-hand
// tiers (Straight and up), where ties fall through to suit scoring.
func Classify(hand deck.Hand) (HandRank, int) {
	// Rank counts indexed by rank value (2-14)
	var counts [15]int
	for _, c := range hand {
		counts[c.Rank]++
	}

	flush := isFlush(hand)
	straightHigh, straight := straightHighRank(counts)

	switch {
	case flush && straight && straightHigh == deck.Ace:
		return RoyalFlush, 0
	case flush && straight:
		return StraightFlush, 0
	case hasGroupOf(counts, 4):
		return FourOfAKind, kicker(hand, counts)
	case hasGroupOf(counts, 3) && hasGroupOf(counts, 2):
		return FullHouse, 0
	case flush:
		return Flush, 0
	case straight:
		return Straight, 0
	case hasGroupOf(counts, 3):
		return ThreeOfAKind, kicker(hand, counts)
	case pairCount(counts) == 2:
		return TwoPair, kicker(hand, counts)
	case pairCount(counts) == 1:
		return Pair, kicker(hand, counts)
	default:
		return HighCard, highCardSum(hand)
	}
}

// isFlush reports whether all five cards share a suit
func isFlush(hand deck.Hand) bool {
	suit := hand[0].Suit
	for _, c := range hand[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// straightHighRank reports whether the hand is five consecutive ranks and
// returns the high card of the run. The ace-low straight (A-2-3-4-5) is a
// special case with Five as its high card.
func straightHighRank(counts [15]int) (deck.Rank, bool) {
	// Five consecutive singletons
	for low := deck.Two; low <= deck.Ten; low++ {
		run := true
		for r := low; r < low+5; r++ {
			if counts[r] != 1 {
				run = false
				break
			}
		}
		if run {
			return low + 4, true
		}
	}

	// Wheel: A-2-3-4-5
	if counts[deck.Ace] == 1 && counts[deck.Two] == 1 && counts[deck.Three] == 1 &&
		counts[deck.Four] == 1 && counts[deck.Five] == 1 {
		return deck.Five, true
	}

	return 0, false
}

// hasGroupOf reports whether any rank occurs exactly n times
func hasGroupOf(counts [15]int, n int) bool {
	for _, c := range counts {
		if c == n {
			return true
		}
	}
	return false
}

// pairCount returns the number of ranks occurring exactly twice
func pairCount(counts [15]int) int {
	pairs := 0
	for _, c := range counts {
		if c == 2 {
			pairs++
		}
	}
	return pairs
}

// kicker returns the value of the highest card not part of any matched
// rank group (pair, trips or quads)
func kicker(hand deck.Hand, counts [15]int) int {
	best := 0
	for _, c := range hand {
		if counts[c.Rank] > 1 {
			continue
		}
		if v := c.Value(); v > best {
			best = v
		}
	}
	return best
}

// highCardSum returns the sum of the three highest card values in the hand
func highCardSum(hand deck.Hand) int {
	values := make([]int, deck.HandSize)
	for i, c := range hand {
		values[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values[0] + values[1] + values[2]
}
