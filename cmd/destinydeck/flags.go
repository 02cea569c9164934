package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/underworld-games/destinydeck/internal/deck"
	"github.com/underworld-games/destinydeck/internal/randutil"
	"github.com/underworld-games/destinydeck/internal/resolve"
)

// BonusFlags carries the four suit bonuses as flags. Embed with a kong
// prefix to namespace the two sides of an opposed contest.
type BonusFlags struct {
	Spades   float64 `kong:"default='0',help='Per-card bonus for spades'"`
	Hearts   float64 `kong:"default='0',help='Per-card bonus for hearts'"`
	Diamonds float64 `kong:"default='0',help='Per-card bonus for diamonds'"`
	Clubs    float64 `kong:"default='0',help='Per-card bonus for clubs'"`
}

func (f BonusFlags) Bonuses() resolve.SuitBonuses {
	return resolve.NewSuitBonuses(f.Spades, f.Hearts, f.Diamonds, f.Clubs)
}

// ModifierFlags carries situational modifiers as repeatable flags
type ModifierFlags struct {
	Flat    []string `kong:"placeholder='NAME=VALUE',help='Flat modifier, e.g. disguise=15'"`
	PerSuit []string `kong:"placeholder='NAME=SUIT:VALUE',help='Per-suit modifier, e.g. turf=spades:3'"`
}

func (f ModifierFlags) Modifiers() ([]resolve.Modifier, error) {
	var mods []resolve.Modifier
	for _, s := range f.Flat {
		name, raw, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("flat modifier %q: want NAME=VALUE", s)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("flat modifier %q: %w", s, err)
		}
		mods = append(mods, resolve.Flat(name, value))
	}
	for _, s := range f.PerSuit {
		name, rest, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("per-suit modifier %q: want NAME=SUIT:VALUE", s)
		}
		suitName, raw, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("per-suit modifier %q: want NAME=SUIT:VALUE", s)
		}
		suit, err := deck.ParseSuit(suitName)
		if err != nil {
			return nil, fmt.Errorf("per-suit modifier %q: %w", s, err)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("per-suit modifier %q: %w", s, err)
		}
		mods = append(mods, resolve.PerSuit(name, suit, value))
	}
	return mods, nil
}

// EngineFlags selects the tunables and random source for the harness
// commands. The serve command deliberately does not embed this: a seeded
// source must never be reachable from the service configuration.
type EngineFlags struct {
	Balance string `kong:"type='existingfile',help='HCL balance file with scores, outcome margins and difficulty tables'"`
	Seed    *int64 `kong:"help='Deterministic seed for reproducible draws (optional)'"`
}

// Engine builds a resolver plus the named difficulty table, if any
func (f EngineFlags) Engine() (*resolve.Resolver, map[string]float64, error) {
	tun := resolve.DefaultTunables()
	var difficulties map[string]float64
	if f.Balance != "" {
		var err error
		tun, difficulties, err = resolve.LoadBalance(f.Balance)
		if err != nil {
			return nil, nil, err
		}
	}

	var src randutil.Source
	if f.Seed != nil {
		src = randutil.Seeded(*f.Seed)
	} else {
		src = randutil.Crypto()
	}

	resolver, err := resolve.New(src, tun)
	if err != nil {
		return nil, nil, err
	}
	return resolver, difficulties, nil
}
