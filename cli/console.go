package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/nathoo/hamurabi/types"
)

// BadNumber is printed when a line holds no usable number.
const BadNumber = "\nHamurusti: I cannot do what you wish. Give me a sensible answer, " +
	"or get yourself another steward!"

// Console reads numbers from a line-oriented input and prints wrapped text.
type Console struct {
	Out       io.Writer
	Width     int  // wrap column; 0 disables wrapping
	EchoInput bool // echo each consumed line (script playback)

	in *bufio.Reader
}

// NewConsole creates a console over in and out.
func NewConsole(in io.Reader, out io.Writer, width int) *Console {
	return &Console{
		Out:   out,
		Width: width,
		in:    bufio.NewReader(in),
	}
}

// Print wraps text to the console width and writes it on its own line.
func (c *Console) Print(text string) {
	fmt.Fprintln(c.Out, Wrap(text, c.Width))
}

// ReadNumber reads lines until one parses as a number. Malformed lines are
// answered with a complaint and read again; only I/O failures are returned.
func (c *Console) ReadNumber(p types.Prompt) (int, error) {
	for {
		line, err := c.ReadLine()
		if err != nil {
			return 0, err
		}
		if n, ok := ParseNumber(line); ok {
			return n, nil
		}
		c.Print(BadNumber)
	}
}

// ReadLine returns the next input line without its line ending. Lines
// starting with '#' are comments and are skipped. End of input is reported
// as io.ErrUnexpectedEOF: the game always wants another answer.
func (c *Console) ReadLine() (string, error) {
	for {
		line, err := c.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("read input: %w", io.ErrUnexpectedEOF)
			}
			return "", fmt.Errorf("read input: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if c.EchoInput {
			fmt.Fprintln(c.Out, "> "+line)
		}
		return line, nil
	}
}

// ParseNumber strips every non-digit from line and parses what is left as
// a 32-bit unsigned number, so "1,200" reads as 1200.
func ParseNumber(line string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, line)
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// Wrap breaks text at word boundaries to fit width columns, keeping
// existing newlines.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wordwrap(text, width, "")
}
