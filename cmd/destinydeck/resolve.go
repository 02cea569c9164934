package main

import (
	"fmt"

	"github.com/underworld-games/destinydeck/cmd/destinydeck/shared"
	"github.com/underworld-games/destinydeck/internal/display"
	"github.com/underworld-games/destinydeck/internal/resolve"
	"github.com/underworld-games/destinydeck/internal/tui"
)

// ResolveCmd resolves a single action against a difficulty threshold
type ResolveCmd struct {
	EngineFlags
	BonusFlags
	ModifierFlags

	Difficulty *float64 `kong:"help='Difficulty threshold the total must meet'"`
	Action     string   `kong:"help='Look up the difficulty by action name in the balance file'"`
	Debug      bool     `kong:"help='Enable debug logging'"`
}

func (c *ResolveCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	resolver, difficulties, err := c.Engine()
	if err != nil {
		return err
	}

	difficulty, err := pickDifficulty(c.Difficulty, c.Action, difficulties)
	if err != nil {
		return err
	}

	mods, err := c.Modifiers()
	if err != nil {
		return err
	}

	logger.Debug("resolving action", "difficulty", difficulty, "modifiers", len(mods))

	res, err := resolver.ResolveThreshold(c.Bonuses(), difficulty, mods)
	if err != nil {
		return err
	}

	fmt.Println(display.FormatResult(res))
	return nil
}

func pickDifficulty(flag *float64, action string, table map[string]float64) (float64, error) {
	switch {
	case flag != nil && action != "":
		return 0, fmt.Errorf("set either --difficulty or --action, not both")
	case flag != nil:
		return *flag, nil
	case action != "":
		d, ok := table[action]
		if !ok {
			return 0, fmt.Errorf("%w: no difficulty entry for action %q", resolve.ErrConfig, action)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("a difficulty is required, via --difficulty or --action")
	}
}

// DuelCmd resolves an opposed contest between an actor and a defender
type DuelCmd struct {
	EngineFlags

	Actor    BonusFlags    `kong:"embed,prefix='actor-'"`
	Defender BonusFlags    `kong:"embed,prefix='defender-'"`
	Mods     ModifierFlags `kong:"embed,prefix='actor-'"`

	BestOf int  `kong:"default='1',help='Rounds in the duel; first past half wins'"`
	Watch  bool `kong:"help='Play the duel round by round in the terminal'"`
	Debug  bool `kong:"help='Enable debug logging'"`
}

func (c *DuelCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	resolver, _, err := c.Engine()
	if err != nil {
		return err
	}

	if c.BestOf < 1 || c.BestOf%2 == 0 {
		return fmt.Errorf("%w: --best-of must be a positive odd number, got %d", resolve.ErrConfig, c.BestOf)
	}
	roundsToWin := c.BestOf/2 + 1

	mods, err := c.Mods.Modifiers()
	if err != nil {
		return err
	}

	if c.Watch {
		model, err := tui.Run(tui.Config{
			Resolver:    resolver,
			Actor:       c.Actor.Bonuses(),
			ActorMods:   mods,
			Defender:    c.Defender.Bonuses(),
			RoundsToWin: roundsToWin,
		})
		if err != nil {
			return err
		}
		if err := model.Err(); err != nil {
			return err
		}
		if winner := model.Winner(); winner != "" {
			logger.Info("duel over", "winner", winner)
		}
		return nil
	}

	actorWins, defenderWins := 0, 0
	for round := 1; actorWins < roundsToWin && defenderWins < roundsToWin; round++ {
		res, err := resolver.ResolveOpposed(c.Actor.Bonuses(), c.Defender.Bonuses(), mods, nil)
		if err != nil {
			return err
		}
		if res.ActorWins {
			actorWins++
		} else {
			defenderWins++
		}
		if c.BestOf > 1 {
			fmt.Printf("round %d\n", round)
		}
		fmt.Println(display.FormatResult(res))
	}

	if actorWins >= roundsToWin {
		logger.Info("duel over", "winner", "actor", "rounds", actorWins)
	} else {
		logger.Info("duel over", "winner", "defender", "rounds", defenderWins)
	}
	return nil
}
