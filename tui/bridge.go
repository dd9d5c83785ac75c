package tui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/hamurabi/cli"
	"github.com/nathoo/hamurabi/types"
)

// ErrClosed is returned to the engine when the player quits mid-term.
var ErrClosed = errors.New("terminal closed")

// outputMsg carries engine output into the Update loop.
type outputMsg struct {
	text string
}

// promptMsg tells the model the engine is waiting for an answer.
type promptMsg struct {
	prompt types.Prompt
}

// statusMsg refreshes the status bar.
type statusMsg struct {
	city types.Snapshot
}

// bridge is the engine's Console while the TUI runs. The engine calls it
// from a command goroutine; answers arrive from Update over a channel.
type bridge struct {
	send    func(tea.Msg)
	answers chan string
	quit    chan struct{}
	once    sync.Once
}

func newBridge() *bridge {
	return &bridge{
		send:    func(tea.Msg) {},
		answers: make(chan string, 1),
		quit:    make(chan struct{}),
	}
}

// Print forwards text to the viewport.
func (b *bridge) Print(text string) {
	b.send(outputMsg{text: text})
}

// ReadNumber waits for the player's answer, complaining about lines that
// hold no number exactly as the plain terminal does.
func (b *bridge) ReadNumber(p types.Prompt) (int, error) {
	for {
		b.send(promptMsg{prompt: p})
		select {
		case line := <-b.answers:
			if n, ok := cli.ParseNumber(line); ok {
				return n, nil
			}
			b.Print(cli.BadNumber)
		case <-b.quit:
			return 0, ErrClosed
		}
	}
}

// answer hands a line to a waiting ReadNumber. It never blocks Update.
func (b *bridge) answer(line string) bool {
	select {
	case b.answers <- line:
		return true
	default:
		return false
	}
}

func (b *bridge) observe(s types.Snapshot) {
	b.send(statusMsg{city: s})
}

func (b *bridge) close() {
	b.once.Do(func() { close(b.quit) })
}
