package main

import (
	"testing"

	"github.com/alecthomas/kong"
)

func parseCLI(t *testing.T, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("destinydeck"),
		kong.Vars{"version": "test"},
	)
	if err != nil {
		t.Fatalf("building parser: %v", err)
	}
	_, err = parser.Parse(args)
	return err
}

// The service must not be startable on a deterministic generator: the
// harness commands take --seed, serve does not.
func TestServeRejectsSeedFlag(t *testing.T) {
	if err := parseCLI(t, "serve", "--seed", "1"); err == nil {
		t.Fatal("serve accepted --seed; the service must always use the secure source")
	}
}

func TestHarnessCommandsAcceptSeed(t *testing.T) {
	for _, args := range [][]string{
		{"resolve", "--seed", "1", "--difficulty", "50"},
		{"duel", "--seed", "1"},
		{"simulate", "--seed", "1", "--difficulty", "50"},
	} {
		if err := parseCLI(t, args...); err != nil {
			t.Errorf("%v failed to parse: %v", args, err)
		}
	}
}

func TestServeParsesWithoutSeed(t *testing.T) {
	if err := parseCLI(t, "serve", "--addr", ":9090"); err != nil {
		t.Fatalf("serve failed to parse: %v", err)
	}
}
