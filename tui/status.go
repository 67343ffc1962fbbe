package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// displayName derives a title from a scenario or ruleset name.
// "bribe a guarded warrior" -> "Bribe A Guarded Warrior", "civ2civ3" -> "Civ2civ3".
func displayName(name string) string {
	name = strings.Join(strings.Fields(strings.ReplaceAll(name, "_", " ")), " ")
	return cases.Title(language.English).String(name)
}

// renderStatusBar produces a full-width inverted status line showing the
// ruleset, the scenario, the enabler count and the consistency state.
func (m Model) renderStatusBar() string {
	left := " no ruleset"
	enablers := 0
	rs, release := m.console.Holder.Acquire()
	defer release()
	if rs != nil {
		left = " " + displayName(rs.Info.Name)
		if rs.Info.Version != "" {
			left += " " + rs.Info.Version
		}
		enablers = rs.EnablerCount()
	}
	if sc := m.console.Scenario; sc != nil {
		left += " | " + displayName(sc.Name)
	}

	right := fmt.Sprintf("E:%d ", enablers)
	if m.console.Trace {
		right = "trace | " + right
	}
	if m.violations > 0 {
		candidate := fmt.Sprintf("%d violation(s) | %s", m.violations, right)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("V:%d | %s", m.violations, right)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	if m.violations > 0 {
		return styleStatusAlert.Width(m.width).Render(bar)
	}
	return styleStatusBar.Width(m.width).Render(bar)
}
