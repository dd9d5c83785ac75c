// Hamurabi is a ten-year city stewardship game for the terminal.
// Usage: hamurabi [--version] [--plain] [--trace] [--seed <n>] [--width <n>]
// [--script <file>] [--steward <file.lua>]
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/rs/zerolog"

	"github.com/nathoo/hamurabi/cli"
	"github.com/nathoo/hamurabi/config"
	"github.com/nathoo/hamurabi/engine"
	"github.com/nathoo/hamurabi/logging"
	"github.com/nathoo/hamurabi/steward"
	"github.com/nathoo/hamurabi/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, config.Usage)
		os.Exit(1)
	}

	if cfg.Version {
		fmt.Printf("hamurabi %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.Trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("run failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	width := cfg.Width
	if width == 0 {
		width = cli.TerminalWidth(os.Stdout)
	}

	// Steward mode: a Lua script answers every question for one term.
	if cfg.StewardFile != "" {
		s, err := steward.Load(cfg.StewardFile, log)
		if err != nil {
			return err
		}
		defer s.Close()
		s.Out = os.Stdout
		s.Width = width

		seed := cfg.Seed
		if seed == 0 {
			if seed, err = engine.NewSeed(); err != nil {
				return err
			}
		}
		log.Debug().Int64("seed", seed).Str("steward", cfg.StewardFile).Msg("term started")
		_, err = engine.New(s, engine.NewRNG(seed), log).Run()
		return err
	}

	// Script mode: answers come from a file and are echoed.
	if cfg.ScriptFile != "" {
		f, err := os.Open(cfg.ScriptFile)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		c := cli.New(log)
		c.In = f
		c.Width = width
		c.EchoInput = true
		c.Seed = cfg.Seed
		return c.Run()
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if cfg.Plain || !term.IsTerminal(os.Stdout.Fd()) {
		c := cli.New(log)
		c.Width = width
		c.Seed = cfg.Seed
		return c.Run()
	}

	return tui.Run(log, cfg.Seed)
}
