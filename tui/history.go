// Package tui provides a Bubble Tea explorer for authoring rulesets:
// ask about actions, list menus and violations, reload, with scrollback
// and command history.
package tui

import "strings"

// History keeps submitted command lines. Navigation is filtered by the
// text typed before the first Up press, so "ask" then Up walks back
// through earlier "ask …" lines only.
type History struct {
	entries []string
	max     int
	cursor  int    // -1 = not navigating, 0..len-1 = position in entries
	prefix  string // filter fixed when navigation starts
}

// NewHistory creates a history holding at most max lines.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Push records a line. Blank lines and repeats of the last line are
// skipped.
func (h *History) Push(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Prev returns the next older line starting with prefix. The prefix is
// only read when navigation starts. At the oldest match it stays there.
func (h *History) Prev(prefix string) (string, bool) {
	if h.cursor == -1 {
		h.prefix = prefix
		h.cursor = len(h.entries)
	}
	for i := h.cursor - 1; i >= 0; i-- {
		if strings.HasPrefix(h.entries[i], h.prefix) {
			h.cursor = i
			return h.entries[i], true
		}
	}
	if h.cursor == len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// Next returns the next newer match. Past the newest match it returns
// ("", false) and navigation ends.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	for i := h.cursor + 1; i < len(h.entries); i++ {
		if strings.HasPrefix(h.entries[i], h.prefix) {
			h.cursor = i
			return h.entries[i], true
		}
	}
	h.ResetCursor()
	return "", false
}

// ResetCursor ends navigation.
func (h *History) ResetCursor() {
	h.cursor = -1
	h.prefix = ""
}
