package main

import (
	"github.com/underworld-games/destinydeck/cmd/destinydeck/shared"
	"github.com/underworld-games/destinydeck/internal/randutil"
	"github.com/underworld-games/destinydeck/internal/resolve"
	"github.com/underworld-games/destinydeck/internal/server"
)

// ServeCmd runs the resolution service over WebSocket. Unlike the harness
// commands it takes no --seed: the service always draws from the secure
// source, and a seeded generator is not safe to share across connection
// goroutines anyway.
type ServeCmd struct {
	Addr    string `kong:"default=':8080',help='Listen address'"`
	Balance string `kong:"type='existingfile',help='HCL balance file with scores, outcome margins and difficulty tables'"`
	JSON    bool   `kong:"help='Log as JSON instead of pretty console output'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	if c.JSON {
		logger = shared.SetupStructuredLogger(c.Debug)
	}

	tun := resolve.DefaultTunables()
	if c.Balance != "" {
		var err error
		tun, _, err = resolve.LoadBalance(c.Balance)
		if err != nil {
			return err
		}
	}

	resolver, err := resolve.New(randutil.Crypto(), tun)
	if err != nil {
		return err
	}

	srv := server.NewServer(c.Addr, resolver, logger)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	go func() {
		<-ctx.Done()
		if err := srv.Stop(); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("resolution service listening", "addr", c.Addr)
	return srv.Start()
}
