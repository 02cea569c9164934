package resolve

import (
	"fmt"

	"github.com/underworld-games/destinydeck/internal/deck"
)

// SuitBonuses maps each suit to a non-negative bonus magnitude, derived
// externally from a character's trained skills. The engine only sees the
// four numbers. An all-zero vector is valid: an untrained character scores
// on hand-rank luck alone.
type SuitBonuses [deck.NumSuits]float64

// NewSuitBonuses builds a bonus vector from per-suit magnitudes
func NewSuitBonuses(spades, hearts, diamonds, clubs float64) SuitBonuses {
	var b SuitBonuses
	b[deck.Spades] = spades
	b[deck.Hearts] = hearts
	b[deck.Diamonds] = diamonds
	b[deck.Clubs] = clubs
	return b
}

func (b SuitBonuses) validate() error {
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		if b[suit] < 0 {
			return fmt.Errorf("%w: negative bonus %.2f for %s", ErrInvariant, b[suit], suit.Name())
		}
	}
	return nil
}

// SuitScore multiplies each suit's count in the hand by the corresponding
// bonus magnitude and sums across all four suits. Linear and
// order-independent by design.
func (b SuitBonuses) SuitScore(hand deck.Hand) float64 {
	counts := hand.SuitCounts()
	total := 0.0
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		total += float64(counts[suit]) * b[suit]
	}
	return total
}

// ModifierKind distinguishes flat adjustments from per-suit adjustments
type ModifierKind int

const (
	// FlatModifier applies its value once, unconditionally
	FlatModifier ModifierKind = iota
	// SuitModifier applies its value once per card of its suit in the hand
	SuitModifier
)

// Modifier is a named, signed adjustment from a location, item, buff or
// defense bonus. The engine does not know where modifiers come from.
type Modifier struct {
	Name  string
	Kind  ModifierKind
	Suit  deck.Suit
	Value float64
}

// Flat creates a flat additive modifier
func Flat(name string, value float64) Modifier {
	return Modifier{Name: name, Kind: FlatModifier, Value: value}
}

// PerSuit creates a per-suit additive modifier, scaled by the count of that
// suit in the drawn hand
func PerSuit(name string, suit deck.Suit, value float64) Modifier {
	return Modifier{Name: name, Kind: SuitModifier, Suit: suit, Value: value}
}

// modifierTotal sums all applicable modifiers for the drawn hand
func modifierTotal(hand deck.Hand, mods []Modifier) float64 {
	counts := hand.SuitCounts()
	total := 0.0
	for _, m := range mods {
		switch m.Kind {
		case FlatModifier:
			total += m.Value
		case SuitModifier:
			total += float64(counts[m.Suit]) * m.Value
		}
	}
	return total
}

func validateModifiers(mods []Modifier) error {
	for _, m := range mods {
		if m.Kind != FlatModifier && m.Kind != SuitModifier {
			return fmt.Errorf("%w: modifier %q has unknown kind %d", ErrConfig, m.Name, m.Kind)
		}
		if m.Kind == SuitModifier && (m.Suit < deck.Spades || m.Suit > deck.Clubs) {
			return fmt.Errorf("%w: modifier %q has invalid suit %d", ErrConfig, m.Name, m.Suit)
		}
	}
	return nil
}
