// Package transcript exports finished (or in-progress) debate sessions as
// markdown files.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/openparley/parley/internal/debate"
)

// sanitize replaces characters that are unsafe in filenames.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "untitled"
	}
	return s
}

// Filename returns the transcript filename for a debate topic.
func Filename(topic string, ts time.Time) string {
	return fmt.Sprintf("%s-%s.md", sanitizeName(topic), ts.Format("20060102-150405"))
}

// Render produces the markdown document for a session.
func Render(s debate.Session, ts time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Debate: %s\n\n", s.Topic)
	fmt.Fprintf(&b, "- Date: %s\n", ts.Format("January 2, 2006 15:04"))
	fmt.Fprintf(&b, "- Debaters: %s vs %s\n", s.DebaterA.Name, s.DebaterB.Name)
	if s.Referee != nil {
		fmt.Fprintf(&b, "- Referee: %s\n", s.Referee.Name)
	}
	fmt.Fprintf(&b, "- Rounds completed: %d", s.Round)
	if s.RoundLimit > 0 {
		fmt.Fprintf(&b, " of %d", s.RoundLimit)
	}
	b.WriteString("\n")
	if s.Complete {
		b.WriteString("- Status: complete\n")
	} else {
		b.WriteString("- Status: adjourned\n")
	}
	b.WriteString("\n")

	for _, e := range s.Entries {
		switch e.Role {
		case debate.RoleDirective:
			fmt.Fprintf(&b, "> _Direction: %s_\n\n", e.Content)
		default:
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", e.Speaker, e.Content)
		}
	}

	return b.String()
}

// Write renders the session and writes it under dir, returning the path.
func Write(dir string, s debate.Session, ts time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	path := filepath.Join(dir, Filename(s.Topic, ts))
	if err := os.WriteFile(path, []byte(Render(s, ts)), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}
