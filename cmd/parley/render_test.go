package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openparley/parley/internal/debate"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{
			name:  "short line untouched",
			input: "hello world",
			width: 40,
			want:  []string{"hello world"},
		},
		{
			name:  "wraps at width",
			input: "one two three four",
			width: 9,
			want:  []string{"one two", "three", "four"},
		},
		{
			name:  "preserves blank lines",
			input: "para one\n\npara two",
			width: 40,
			want:  []string{"para one", "", "para two"},
		},
		{
			name:  "word longer than width stands alone",
			input: "a superlongunbreakableword b",
			width: 10,
			want:  []string{"a", "superlongunbreakableword", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrap(tt.input, tt.width))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 5))
}

func TestPrintEntry(t *testing.T) {
	var buf bytes.Buffer
	printEntry(&buf, debate.Entry{
		Role:    debate.RoleSpeaker,
		Speaker: "The Scientist",
		Content: "Evidence first.",
	}, 40)

	out := buf.String()
	assert.Contains(t, out, "The Scientist")
	assert.Contains(t, out, "Evidence first.")
}

func TestPrintEntryDirective(t *testing.T) {
	var buf bytes.Buffer
	printEntry(&buf, debate.Entry{Role: debate.RoleDirective, Content: "Focus on costs."}, 40)
	assert.Contains(t, buf.String(), "(direction)")
}

func TestPromptNext(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      nextAction
		directive string
	}{
		{"enter continues", "\n", actionContinue, ""},
		{"q quits", "q\n", actionQuit, ""},
		{"quit word quits", "quit\n", actionQuit, ""},
		{"text becomes a direction", "press on the economics\n", actionContinue, "press on the economics"},
		{"eof quits", "", actionQuit, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, directive, err := promptNext(bufio.NewReader(strings.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
			assert.Equal(t, tt.directive, directive)
		})
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "personas")
	assert.Contains(t, names, "notebooks")
}
