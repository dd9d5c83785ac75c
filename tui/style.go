package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("94")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("178"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleSteward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleVerdict = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindHeading
	kindSteward
	kindWarning
	kindVerdict
	kindSystem
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		return kindSystem
	case strings.HasPrefix(trimmed, "YEAR "), trimmed == "HAMURUSTI":
		return kindHeading
	case strings.HasPrefix(trimmed, "Hamurusti: Think again"),
		strings.HasPrefix(trimmed, "Hamurusti: I cannot"),
		strings.HasPrefix(trimmed, "But you have only"),
		strings.HasPrefix(trimmed, "But then a horrible plague"),
		strings.HasPrefix(trimmed, "You starved"),
		strings.HasPrefix(trimmed, "There is no one left"),
		strings.HasPrefix(trimmed, "Rats ate"),
		strings.HasPrefix(trimmed, "Error:"):
		return kindWarning
	case strings.HasPrefix(trimmed, "Hamurusti:"):
		return kindSteward
	case isVerdict(trimmed):
		return kindVerdict
	default:
		return kindNarrative
	}
}

func isVerdict(line string) bool {
	for _, prefix := range []string{"Impeachment!", "Infamy!", "Mediocrity!", "Success!"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeading:
		return styleHeading.Render(line)
	case kindSteward:
		return styleSteward.Render(line)
	case kindWarning:
		return styleWarning.Render(line)
	case kindVerdict:
		return styleVerdict.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}
