package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/openparley/parley/internal/debate"
)

const (
	fallbackWidth = 80
	maxWidth      = 100
)

// terminalWidth returns the display width for transcript output, clamped so
// very wide terminals still get readable lines.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}

// wrap word-wraps s to the given terminal display width. Existing newlines
// are preserved.
func wrap(s string, width int) []string {
	if width <= 0 {
		width = fallbackWidth
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := words[0]
		lineWidth := runewidth.StringWidth(line)
		for _, word := range words[1:] {
			ww := runewidth.StringWidth(word)
			if lineWidth+1+ww > width {
				lines = append(lines, line)
				line = word
				lineWidth = ww
				continue
			}
			line += " " + word
			lineWidth += 1 + ww
		}
		lines = append(lines, line)
	}
	return lines
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// printEntry renders one transcript entry with an attribution header.
func printEntry(w io.Writer, e debate.Entry, width int) {
	name := e.Speaker
	switch e.Role {
	case debate.RoleDirective:
		name = "(direction)"
	case debate.RoleModerator:
		if name == "" {
			name = "Moderator"
		}
	}

	fmt.Fprintf(w, "\n── %s %s\n", name, strings.Repeat("─", max(0, width-runewidth.StringWidth(name)-4))) //nolint:errcheck
	for _, line := range wrap(e.Content, width) {
		fmt.Fprintln(w, line) //nolint:errcheck
	}
}
