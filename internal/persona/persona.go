// Package persona defines debate participant profiles and the registry
// they are resolved from.
package persona

import (
	"fmt"
	"strings"
)

// Stance holds a persona's position on four fixed axes, each scored 1-10.
type Stance struct {
	Progressive int `yaml:"progressive" json:"progressive"`
	Analytical  int `yaml:"analytical" json:"analytical"`
	Emotional   int `yaml:"emotional" json:"emotional"`
	RiskTaking  int `yaml:"risktaking" json:"risktaking"`
}

// Persona describes one debate participant. Preferences and Stance are
// optional; rendering helpers supply the fallback text so prompt builders
// never need presence checks of their own.
type Persona struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Directive   string   `yaml:"directive" json:"directive"`
	Preferences []string `yaml:"preferences,omitempty" json:"preferences,omitempty"`
	Stance      *Stance  `yaml:"stance,omitempty" json:"stance,omitempty"`
}

// band maps a 1-10 axis score to a qualitative label.
func band(score int, high, mid, low string) string {
	switch {
	case score > 7:
		return high
	case score > 4:
		return mid
	default:
		return low
	}
}

// Profile renders the stance as one labeled line per axis.
func (s *Stance) Profile() string {
	if s == nil {
		return "No stance profile."
	}
	lines := []string{
		fmt.Sprintf("Progressiveness: %d/10 (%s)", s.Progressive, band(s.Progressive, "strongly progressive", "middle of the road", "leans conservative")),
		fmt.Sprintf("Analyticity: %d/10 (%s)", s.Analytical, band(s.Analytical, "highly analytical", "balanced", "intuition-led")),
		fmt.Sprintf("Emotionality: %d/10 (%s)", s.Emotional, band(s.Emotional, "highly emotional", "balanced", "measured and detached")),
		fmt.Sprintf("Risk tolerance: %d/10 (%s)", s.RiskTaking, band(s.RiskTaking, "risk-seeking", "balanced", "cautious")),
	}
	return strings.Join(lines, "\n")
}

// Summary renders the stance as a single compact line, or "" when absent.
func (s *Stance) Summary() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("progressiveness %d/10, analyticity %d/10, emotionality %d/10, risk tolerance %d/10",
		s.Progressive, s.Analytical, s.Emotional, s.RiskTaking)
}

// PreferenceList renders the preferences as a markdown bullet list.
func (p Persona) PreferenceList() string {
	if len(p.Preferences) == 0 {
		return "No particular preferences."
	}
	var b strings.Builder
	for i, pref := range p.Preferences {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(pref)
	}
	return b.String()
}

// TopPreferences renders at most n preferences as a bullet list, or ""
// when the persona has none. Turn prompts use a short list; reflection
// prompts use the full one.
func (p Persona) TopPreferences(n int) string {
	if len(p.Preferences) == 0 || n <= 0 {
		return ""
	}
	prefs := p.Preferences
	if len(prefs) > n {
		prefs = prefs[:n]
	}
	var b strings.Builder
	for i, pref := range prefs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(pref)
	}
	return b.String()
}

// Validate checks the fields a persona needs before it can debate.
func (p Persona) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("persona id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("persona %q: name is required", p.ID)
	}
	if strings.TrimSpace(p.Directive) == "" {
		return fmt.Errorf("persona %q: directive is required", p.ID)
	}
	if s := p.Stance; s != nil {
		for axis, v := range map[string]int{
			"progressive": s.Progressive,
			"analytical":  s.Analytical,
			"emotional":   s.Emotional,
			"risktaking":  s.RiskTaking,
		} {
			if v < 1 || v > 10 {
				return fmt.Errorf("persona %q: stance axis %s must be in 1..10, got %d", p.ID, axis, v)
			}
		}
	}
	return nil
}
