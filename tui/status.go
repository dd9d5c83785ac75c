package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nathoo/hamurabi/engine"
)

var numbers = message.NewPrinter(language.English)

// renderStatusBar produces a full-width status line showing the year and
// the city's main figures. The right side shows the land price, or how the
// term ended once it is over, and drops off on narrow terminals.
func (m Model) renderStatusBar() string {
	s := m.city

	left := numbers.Sprintf(" Year %d/%d | Pop %d | Acres %d | Grain %d",
		s.Year, engine.TermYears, s.Population, s.Acres, s.Store)
	right := fmt.Sprintf("Land %d/acre ", s.LandPrice)
	if m.ended != "" {
		right = m.ended + " "
	}

	if lipgloss.Width(left)+lipgloss.Width(right)+2 > m.width {
		right = ""
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
