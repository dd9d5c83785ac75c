// Package config gathers run settings from the environment and the command
// line. Flags win over environment variables.
package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// Usage is printed when the arguments cannot be parsed.
const Usage = "Usage: hamurabi [--version] [--plain] [--trace] [--seed <n>] [--width <n>] " +
	"[--script <file>] [--steward <file.lua>]"

// Config holds everything a run needs to know before it starts.
type Config struct {
	Version     bool
	Plain       bool   // line-oriented terminal even on a TTY
	Trace       bool   // debug logging on stderr
	ScriptFile  string // answers read from a file and echoed
	StewardFile string // Lua steward plays the term

	Seed     int64  `env:"HAMURABI_SEED"`  // 0 picks a fresh seed
	Width    int    `env:"HAMURABI_WIDTH"` // 0 uses the terminal width
	LogLevel string `env:"HAMURABI_LOG_LEVEL" envDefault:"warn"`
}

// Load reads the environment and then applies args on top.
func Load(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := ParseArgs(&cfg, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseArgs applies command-line flags to cfg.
func ParseArgs(cfg *Config, args []string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--version":
			cfg.Version = true
		case "--plain":
			cfg.Plain = true
		case "--trace":
			cfg.Trace = true
		case "--script", "--steward", "--seed", "--width":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			i++
			if err := cfg.set(arg, args[i]); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown argument %q", arg)
		}
	}
	if cfg.ScriptFile != "" && cfg.StewardFile != "" {
		return fmt.Errorf("--script and --steward cannot be combined")
	}
	return nil
}

func (cfg *Config) set(flag, value string) error {
	switch flag {
	case "--script":
		cfg.ScriptFile = value
	case "--steward":
		cfg.StewardFile = value
	case "--seed":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("--seed: %w", err)
		}
		cfg.Seed = n
	case "--width":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("--width: invalid width %q", value)
		}
		cfg.Width = n
	}
	return nil
}
