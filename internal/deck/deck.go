package deck

import (
	"fmt"
	"strings"

	"github.com/underworld-games/destinydeck/internal/randutil"
)

// HandSize is the number of cards in a destiny hand
const HandSize = 5

// Hand is exactly five distinct cards drawn from one deck instance
type Hand [HandSize]Card

// String returns the hand as space-separated cards (e.g., "A♠ K♠ Q♠ J♠ T♠")
func (h Hand) String() string {
	parts := make([]string, HandSize)
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// SuitCounts returns the number of cards of each suit in the hand
func (h Hand) SuitCounts() [NumSuits]int {
	var counts [NumSuits]int
	for _, c := range h {
		counts[c.Suit]++
	}
	return counts
}

// ParseHand parses five card strings into a Hand
func ParseHand(strs ...string) (Hand, error) {
	var hand Hand
	if len(strs) != HandSize {
		return hand, fmt.Errorf("a hand requires exactly %d cards, got %d", HandSize, len(strs))
	}
	for i, s := range strs {
		card, err := ParseCard(s)
		if err != nil {
			return hand, err
		}
		hand[i] = card
	}
	return hand, nil
}

// Deck represents a single-use deck of playing cards
type Deck struct {
	cards []Card
	src   randutil.Source
}

// New creates a fresh standard 52-card deck that shuffles from src
func New(src randutil.Source) *Deck {
	deck := &Deck{
		cards: make([]Card, 0, 52),
		src:   src,
	}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			deck.cards = append(deck.cards, NewCard(suit, rank))
		}
	}

	return deck
}

// Shuffle randomizes the order of cards in the deck using the injected
// source. Fails if the source cannot produce output; the deck is never
// dealt half-shuffled.
func (d *Deck) Shuffle() error {
	for i := len(d.cards) - 1; i > 0; i-- {
		j, err := d.src.Intn(i + 1)
		if err != nil {
			return err
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return nil
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// DrawHand builds a fresh deck, shuffles it from src, and returns the top
// five cards. Every call is an independent shuffle: consecutive draws share
// no state, so card counting across draws is impossible.
func DrawHand(src randutil.Source) (Hand, error) {
	var hand Hand

	d := New(src)
	if err := d.Shuffle(); err != nil {
		return hand, err
	}

	for i := 0; i < HandSize; i++ {
		card, ok := d.Deal()
		if !ok {
			return hand, fmt.Errorf("deck exhausted after %d cards", i)
		}
		hand[i] = card
	}

	return hand, nil
}
