package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Resolve  ResolveCmd       `cmd:"" help:"Resolve one action against a difficulty"`
	Duel     DuelCmd          `cmd:"" help:"Resolve an opposed contest between two participants"`
	Simulate SimulateCmd      `cmd:"" help:"Run a resolution batch and report statistics"`
	Serve    ServeCmd         `cmd:"" help:"Run the resolution WebSocket service"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("destinydeck"),
		kong.Description("Card-draw action resolution engine for the underworld"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
