// Package simulator runs large batches of independent resolutions for
// balance tuning. Each worker carries its own random source, so batches are
// reproducible under a fixed seed and contention-free otherwise.
package simulator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/underworld-games/destinydeck/internal/randutil"
	"github.com/underworld-games/destinydeck/internal/resolve"
	"github.com/underworld-games/destinydeck/internal/statistics"
)

// Config holds configuration for running a simulation batch
type Config struct {
	Resolutions int
	Workers     int

	// Threshold mode; ignored when Opponent is set
	Difficulty float64

	Bonuses   resolve.SuitBonuses
	Modifiers []resolve.Modifier

	// Opponent switches the batch to opposed mode against these bonuses
	Opponent *resolve.SuitBonuses

	// Seed selects deterministic replay mode. Zero means secure randomness.
	Seed int64

	Tunables resolve.Tunables
	Logger   *log.Logger
}

// Simulator runs resolution batches
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 4
	}
	return &Simulator{config: config}
}

// Run executes the batch and returns aggregate statistics
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	cfg := s.config
	if cfg.Resolutions <= 0 {
		return nil, fmt.Errorf("%w: resolutions must be positive, got %d", resolve.ErrConfig, cfg.Resolutions)
	}

	workers := cfg.Workers
	if workers > cfg.Resolutions {
		workers = cfg.Resolutions
	}

	perWorker := cfg.Resolutions / workers
	remainder := cfg.Resolutions % workers

	if cfg.Logger != nil {
		cfg.Logger.Debug("starting simulation batch",
			"resolutions", cfg.Resolutions,
			"workers", workers,
			"seeded", cfg.Seed != 0)
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan *statistics.Statistics, workers)

	for w := 0; w < workers; w++ {
		runs := perWorker
		if w < remainder {
			runs++
		}

		// Each worker gets an independent source to avoid contention; in
		// seeded mode the worker seeds are derived so replays reproduce.
		var src randutil.Source
		if cfg.Seed != 0 {
			src = randutil.Seeded(cfg.Seed + int64(w))
		} else {
			src = randutil.Crypto()
		}

		g.Go(func() error {
			resolver, err := resolve.New(src, cfg.Tunables)
			if err != nil {
				return err
			}

			stats, err := runWorker(ctx, resolver, cfg, runs)
			if err != nil {
				return err
			}

			select {
			case results <- stats:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	total := &statistics.Statistics{}
	for stats := range results {
		total.Merge(stats)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return total, nil
}

func runWorker(ctx context.Context, resolver *resolve.Resolver, cfg Config, runs int) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}

	for i := 0; i < runs; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var res *resolve.Result
		var err error
		if cfg.Opponent != nil {
			res, err = resolver.ResolveOpposed(cfg.Bonuses, *cfg.Opponent, cfg.Modifiers, nil)
		} else {
			res, err = resolver.ResolveThreshold(cfg.Bonuses, cfg.Difficulty, cfg.Modifiers)
		}
		if err != nil {
			return nil, err
		}

		stats.Add(res)
	}

	return stats, nil
}
