// Package wizard collects debate setup interactively.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/openparley/parley/internal/persona"
)

// DebateSpec holds all fields collected during the interactive wizard.
type DebateSpec struct {
	Topic      string
	DebaterA   string
	DebaterB   string
	Referee    bool
	RoundLimit int
}

// RunDebateWizard runs an interactive huh form to collect debate setup.
// Non-empty initial values pre-populate the corresponding fields.
func RunDebateWizard(in io.Reader, out io.Writer, personas []persona.Persona, initial DebateSpec) (*DebateSpec, error) {
	if len(personas) < 2 {
		return nil, fmt.Errorf("at least two personas are required, have %d", len(personas))
	}

	var (
		topic     = initial.Topic
		debaterA  = initial.DebaterA
		debaterB  = initial.DebaterB
		referee   = initial.Referee
		roundsRaw string
	)
	if initial.RoundLimit > 0 {
		roundsRaw = strconv.Itoa(initial.RoundLimit)
	}

	options := make([]huh.Option[string], 0, len(personas))
	for _, p := range personas {
		options = append(options, huh.NewOption(p.Name, p.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Debate topic").
				Description("The question the debaters will argue").
				Placeholder("Should cities ban private cars?").
				Value(&topic).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("topic is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("First debater").
				Options(options...).
				Value(&debaterA),
			huh.NewSelect[string]().
				Title("Second debater").
				Options(options...).
				Value(&debaterB),
			huh.NewConfirm().
				Title("Add a referee?").
				Description("A neutral evaluator who keeps score but never speaks").
				Value(&referee),
			huh.NewInput().
				Title("Round limit").
				Description("Number of rounds, or blank for open-ended").
				Placeholder("3").
				Value(&roundsRaw).
				Validate(validateRounds),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return normalize(topic, debaterA, debaterB, referee, roundsRaw)
}

// normalize turns raw form values into a validated DebateSpec.
func normalize(topic, debaterA, debaterB string, referee bool, roundsRaw string) (*DebateSpec, error) {
	if debaterA == debaterB {
		return nil, fmt.Errorf("debaters must be distinct personas")
	}

	spec := &DebateSpec{
		Topic:    strings.TrimSpace(topic),
		DebaterA: debaterA,
		DebaterB: debaterB,
		Referee:  referee,
	}
	if roundsRaw = strings.TrimSpace(roundsRaw); roundsRaw != "" {
		n, err := strconv.Atoi(roundsRaw)
		if err != nil {
			return nil, fmt.Errorf("round limit must be a number: %q", roundsRaw)
		}
		spec.RoundLimit = n
	}
	return spec, nil
}

func validateRounds(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("round limit must be a non-negative number")
	}
	return nil
}
