// Package cli provides the line-oriented terminal front end for the
// Hamurabi engine: number input, wrapped output, and the play-again loop.
package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/rs/zerolog"

	"github.com/nathoo/hamurabi/engine"
	"github.com/nathoo/hamurabi/types"
)

// DefaultWidth is used when the terminal size cannot be determined.
const DefaultWidth = 80

// CLI plays terms over a plain text stream.
type CLI struct {
	In        io.Reader
	Out       io.Writer
	Width     int
	EchoInput bool  // echo each input line after the prompt (for script playback)
	Seed      int64 // first term's seed; 0 draws a fresh seed per term
	Log       zerolog.Logger
}

// New creates a CLI on stdin and stdout, wrapped to the terminal width.
func New(log zerolog.Logger) *CLI {
	return &CLI{
		In:    os.Stdin,
		Out:   os.Stdout,
		Width: TerminalWidth(os.Stdout),
		Log:   log,
	}
}

// TerminalWidth returns the column count of f, or DefaultWidth if f is not
// a terminal.
func TerminalWidth(f *os.File) int {
	w, _, err := term.GetSize(f.Fd())
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// Run plays terms until the player declines another. Running out of input
// at the play-again question ends the session normally; running out in the
// middle of a term is an error.
func (c *CLI) Run() error {
	con := NewConsole(c.In, c.Out, c.Width)
	con.EchoInput = c.EchoInput

	for term := int64(0); ; term++ {
		if _, err := c.playTerm(con, term); err != nil {
			return err
		}

		con.Print("\nWould you like to play again? (y/n)")
		answer, err := con.ReadLine()
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return nil
		}
	}
}

func (c *CLI) playTerm(con *Console, term int64) (types.Verdict, error) {
	seed := c.Seed + term
	if c.Seed == 0 {
		s, err := engine.NewSeed()
		if err != nil {
			return types.Verdict{}, err
		}
		seed = s
	}
	c.Log.Debug().Int64("seed", seed).Int64("term", term+1).Msg("term started")

	eng := engine.New(con, engine.NewRNG(seed), c.Log)
	return eng.Run()
}
