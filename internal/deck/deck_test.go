package deck

import (
	"errors"
	"testing"

	"github.com/underworld-games/destinydeck/internal/randutil"
)

func TestNewDeck(t *testing.T) {
	deck := New(randutil.Seeded(42))

	if deck.CardsRemaining() != 52 {
		t.Errorf("Expected 52 cards, got %d", deck.CardsRemaining())
	}
}

func TestDrawHandSize(t *testing.T) {
	hand, err := DrawHand(randutil.Seeded(42))
	if err != nil {
		t.Fatalf("DrawHand failed: %v", err)
	}

	for i, card := range hand {
		if card.Rank < Two || card.Rank > Ace {
			t.Errorf("card %d has invalid rank %d", i, card.Rank)
		}
		if card.Suit < Spades || card.Suit > Clubs {
			t.Errorf("card %d has invalid suit %d", i, card.Suit)
		}
	}
}

func TestDrawHandNoDuplicates(t *testing.T) {
	for trial := 0; trial < 100; trial++ {
		hand, err := DrawHand(randutil.Seeded(int64(trial)))
		if err != nil {
			t.Fatalf("DrawHand failed: %v", err)
		}

		seen := make(map[Card]bool)
		for _, card := range hand {
			if seen[card] {
				t.Fatalf("duplicate card %s in hand %s", card, hand)
			}
			seen[card] = true
		}
	}
}

func TestDrawHandIndependentDraws(t *testing.T) {
	// Same source, consecutive draws: a fresh deck each time, so the second
	// draw may repeat cards from the first.
	src := randutil.Seeded(7)

	first, err := DrawHand(src)
	if err != nil {
		t.Fatalf("first draw failed: %v", err)
	}
	second, err := DrawHand(src)
	if err != nil {
		t.Fatalf("second draw failed: %v", err)
	}

	if first == second {
		t.Error("consecutive draws produced identical hands from a seeded source")
	}
}

func TestDrawHandSecureSource(t *testing.T) {
	hand, err := DrawHand(randutil.Crypto())
	if err != nil {
		t.Fatalf("DrawHand with crypto source failed: %v", err)
	}

	seen := make(map[Card]bool)
	for _, card := range hand {
		if seen[card] {
			t.Fatalf("duplicate card %s", card)
		}
		seen[card] = true
	}
}

type failingSource struct{}

func (failingSource) Intn(n int) (int, error) {
	return 0, randutil.ErrUnavailable
}

func TestDrawHandSourceFailure(t *testing.T) {
	_, err := DrawHand(failingSource{})
	if !errors.Is(err, randutil.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestHandSuitCounts(t *testing.T) {
	hand, err := ParseHand("As", "Ks", "Qs", "2h", "3c")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}

	counts := hand.SuitCounts()
	if counts[Spades] != 3 {
		t.Errorf("Expected 3 spades, got %d", counts[Spades])
	}
	if counts[Hearts] != 1 {
		t.Errorf("Expected 1 heart, got %d", counts[Hearts])
	}
	if counts[Clubs] != 1 {
		t.Errorf("Expected 1 club, got %d", counts[Clubs])
	}
	if counts[Diamonds] != 0 {
		t.Errorf("Expected 0 diamonds, got %d", counts[Diamonds])
	}
}

func TestParseHandWrongCount(t *testing.T) {
	if _, err := ParseHand("As", "Ks"); err == nil {
		t.Error("ParseHand with 2 cards should fail")
	}
}

func TestShuffleChangesOrder(t *testing.T) {
	deck := New(randutil.Seeded(42))
	if err := deck.Shuffle(); err != nil {
		t.Fatalf("Shuffle failed: %v", err)
	}

	// The odds of a 52-card shuffle leaving the first five cards in factory
	// order are negligible.
	inOrder := true
	expected := New(randutil.Seeded(0))
	for i := 0; i < 5; i++ {
		a, _ := deck.Deal()
		b, _ := expected.Deal()
		if a != b {
			inOrder = false
			break
		}
	}
	if inOrder {
		t.Error("shuffled deck matches factory order")
	}
}
