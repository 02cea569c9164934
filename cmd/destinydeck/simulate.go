package main

import (
	"encoding/json"
	"fmt"

	"github.com/underworld-games/destinydeck/cmd/destinydeck/shared"
	"github.com/underworld-games/destinydeck/internal/fileutil"
	"github.com/underworld-games/destinydeck/internal/resolve"
	"github.com/underworld-games/destinydeck/internal/simulator"
)

// SimulateCmd runs a large resolution batch and prints aggregate statistics
type SimulateCmd struct {
	EngineFlags
	BonusFlags
	ModifierFlags

	Resolutions int      `kong:"default='10000',help='Number of resolutions in the batch'"`
	Workers     int      `kong:"default='4',help='Concurrent workers'"`
	Difficulty  *float64 `kong:"help='Difficulty threshold for the batch'"`
	Action      string   `kong:"help='Look up the difficulty by action name in the balance file'"`

	Opposed  bool       `kong:"help='Run opposed resolutions against a defender instead of a threshold'"`
	Defender BonusFlags `kong:"embed,prefix='defender-'"`

	Output string `kong:"type='path',help='Write the statistics as JSON to this file'"`

	Debug bool `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	tun := resolve.DefaultTunables()
	var difficulties map[string]float64
	if c.Balance != "" {
		var err error
		tun, difficulties, err = resolve.LoadBalance(c.Balance)
		if err != nil {
			return err
		}
	}

	mods, err := c.Modifiers()
	if err != nil {
		return err
	}

	cfg := simulator.Config{
		Resolutions: c.Resolutions,
		Workers:     c.Workers,
		Bonuses:     c.Bonuses(),
		Modifiers:   mods,
		Tunables:    tun,
		Logger:      logger,
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}

	if c.Opposed {
		defender := c.Defender.Bonuses()
		cfg.Opponent = &defender
	} else {
		difficulty, err := pickDifficulty(c.Difficulty, c.Action, difficulties)
		if err != nil {
			return err
		}
		cfg.Difficulty = difficulty
	}

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	stats, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(stats.Summary())

	if c.Output != "" {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(c.Output, data, 0644); err != nil {
			return err
		}
		logger.Info("report written", "path", c.Output)
	}
	return nil
}
