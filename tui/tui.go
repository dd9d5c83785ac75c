// Package tui provides a Bubble Tea terminal UI for the Hamurabi engine.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nathoo/hamurabi/cli"
	"github.com/nathoo/hamurabi/engine"
	"github.com/nathoo/hamurabi/types"
)

// rawLine is one line of transcript kept unstyled, so a resize can wrap it
// again.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // true for echoed player input
}

// termOverMsg is returned by the command that ran a term.
type termOverMsg struct {
	verdict   types.Verdict
	year      int // last year played
	impeached bool
	err       error
}

// Model is the Bubble Tea model for the Hamurabi TUI.
type Model struct {
	bridge *bridge
	log    zerolog.Logger
	seed   int64
	term   int64

	viewport viewport.Model
	input    textinput.Model
	recall   *Recall

	rawLines []rawLine

	city     types.Snapshot
	ended    string        // how the last term ended, for the status bar
	prompt   *types.Prompt // question the engine is waiting on
	asking   bool          // play-again question pending
	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a TUI model. A zero seed draws a fresh one per term.
func New(log zerolog.Logger, seed int64) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 32
	ti.PromptStyle = styleInputPrompt

	return Model{
		bridge: newBridge(),
		log:    log,
		seed:   seed,
		input:  ti,
		recall: NewRecall(10),
	}
}

// Run plays terms in the alternate screen until the player leaves.
func Run(log zerolog.Logger, seed int64) error {
	m := New(log, seed)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.bridge.send = p.Send
	_, err := p.Run()
	m.bridge.close()
	return err
}

// Init starts the first term.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startTerm())
}

// startTerm runs a whole term inside a command. The engine blocks on the
// bridge for answers while Update keeps serving the screen.
func (m Model) startTerm() tea.Cmd {
	b, log := m.bridge, m.log
	seed := m.seed + m.term
	random := m.seed == 0
	return func() tea.Msg {
		if random {
			s, err := engine.NewSeed()
			if err != nil {
				return termOverMsg{err: err}
			}
			seed = s
		}
		log.Debug().Int64("seed", seed).Msg("term started")
		eng := engine.New(b, engine.NewRNG(seed), log)
		eng.Observer = b.observe
		b.observe(eng.City.Snapshot())
		v, err := eng.Run()
		return termOverMsg{verdict: v, year: eng.Year(), impeached: eng.Impeached(), err: err}
	}
}

// Update handles messages (key presses, window resize, engine output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.bridge.close()
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if m.prompt != nil {
				if prev, ok := m.recall.Prev(m.prompt.Kind); ok {
					m.input.SetValue(prev)
					m.input.CursorEnd()
				}
			}
			return m, nil

		case "down":
			if m.prompt != nil {
				if next, ok := m.recall.Next(m.prompt.Kind); ok {
					m.input.SetValue(next)
					m.input.CursorEnd()
				} else {
					m.input.SetValue("")
				}
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m = m.appendOutput(msg.text)

	case promptMsg:
		p := msg.prompt
		m.prompt = &p
		m.city = p.City
		m.input.Prompt = p.Kind.String() + "> "
		m.recall.ResetCursor()

	case statusMsg:
		m.city = msg.city

	case termOverMsg:
		m.prompt = nil
		if msg.err != nil {
			if errors.Is(msg.err, ErrClosed) {
				return m, nil
			}
			m = m.appendOutput("\nError: " + msg.err.Error())
		}
		m.ended = termEnding(msg)
		m = m.appendOutput("\nWould you like to play again? (y/n)")
		m.asking = true
		m.input.Prompt = "y/n> "
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// termEnding labels a finished term for the status bar.
func termEnding(msg termOverMsg) string {
	switch {
	case msg.err != nil:
		return ""
	case msg.impeached:
		return fmt.Sprintf("Impeached in year %d", msg.year)
	default:
		return msg.verdict.Outcome.String()
	}
}

// resize fits the scrollback above the status bar and input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	rows := max(height-2, 1)
	if m.ready {
		m.viewport.Width, m.viewport.Height = width, rows
	} else {
		m.viewport = viewport.New(width, rows)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	}
	m.refreshViewport()
}

// handleEnter routes a submitted line: meta command, play-again answer, or
// an answer for the engine.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.echo(input)
		for _, line := range output {
			m = m.appendOutput(line)
		}
		if quit {
			m.quitting = true
			m.bridge.close()
			return m, tea.Quit
		}
		return m, nil
	}

	if m.asking {
		m = m.echo(input)
		if strings.ToLower(input) != "y" {
			m.quitting = true
			return m, tea.Quit
		}
		m.asking = false
		m.ended = ""
		m.term++
		m.input.Prompt = "> "
		return m, m.startTerm()
	}

	if m.prompt == nil || !m.bridge.answer(input) {
		return m, nil
	}
	m.recall.Push(m.prompt.Kind, input)
	m.recall.ResetCursor()
	m.prompt = nil
	m = m.echo(input)
	return m, nil
}

func (m Model) echo(input string) Model {
	m.rawLines = append(m.rawLines, rawLine{text: "> " + input, isInput: true})
	m.refreshViewport()
	return m
}

// appendOutput splits engine text into lines and refreshes the viewport.
func (m Model) appendOutput(text string) Model {
	for _, line := range strings.Split(text, "\n") {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: classifyLine(line)})
	}
	m.refreshViewport()
	return m
}

// refreshViewport rebuilds the scrollback from the transcript at the current
// width and scrolls to the newest line.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := max(m.width, 10)

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := cli.Wrap(rl.text, width)
		if rl.isInput {
			styled = append(styled, stylePlayerInput.Render(wrapped))
			continue
		}
		styled = append(styled, renderLineKind(wrapped, rl.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View stacks the scrollback, the status bar and the input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta answers slash commands. quit reports whether to leave.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"[Goodbye.]"}, true

	case "/help":
		return []string{
			"[Answer each question with a number; \"1,200\" is fine.]",
			"[Up/Down recall your earlier answers to the same question.]",
			"[PgUp/PgDn scroll. /state shows the city's figures. /quit exits.]",
		}, false

	case "/state":
		s := m.city
		return []string{
			fmt.Sprintf("[Year %d: population %d, acres %d, grain %d, sown %d]",
				s.Year, s.Population, s.Acres, s.Store, s.Sown),
			fmt.Sprintf("[Died this year %d, in total %d, born %d, land price %d]",
				s.Died, s.DeadTotal, s.Babies, s.LandPrice),
		}, false

	default:
		return []string{fmt.Sprintf("[Unknown command: %s. Type /help for available commands.]", cmd)}, false
	}
}

// viewportKeyMap leaves Up and Down to answer recall.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
