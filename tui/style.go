package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusAlert = styleStatusBar.
				Foreground(lipgloss.Color("203"))

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleEnabled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	styleMaybe = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleDisabled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleAuthorInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindPlain lineKind = iota
	kindEnabled
	kindMaybe
	kindDisabled
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "[[trace]"):
		return kindTrace
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		return kindSystem
	case strings.HasPrefix(trimmed, "FAIL"),
		strings.HasPrefix(trimmed, "enabler "),
		strings.HasPrefix(trimmed, "no action matches"),
		strings.HasPrefix(trimmed, "which "),
		strings.Contains(trimmed, "error:"):
		return kindError
	}
	switch decision(line) {
	case "yes":
		return kindEnabled
	case "maybe":
		return kindMaybe
	case "no":
		return kindDisabled
	}
	return kindPlain
}

// decision finds the enabled verdict of an answer line ("…, enabled
// maybe, …") or a menu line ("  Bribe Unit   Maybe  [0%, 100%]").
func decision(line string) string {
	if _, rest, ok := strings.Cut(line, "enabled "); ok {
		word, _, _ := strings.Cut(rest, ",")
		return word
	}
	if !strings.HasPrefix(line, "  ") {
		return ""
	}
	for _, f := range strings.Fields(line) {
		switch f {
		case "Yes", "Maybe", "No":
			return strings.ToLower(f)
		}
	}
	return ""
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindEnabled:
		return styleEnabled.Render(line)
	case kindMaybe:
		return styleMaybe.Render(line)
	case kindDisabled:
		return styleDisabled.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return stylePlain.Render(line)
	}
}
