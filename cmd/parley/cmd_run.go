package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openparley/parley/internal/debate"
	"github.com/openparley/parley/internal/spinner"
	"github.com/openparley/parley/internal/transcript"
	"github.com/openparley/parley/internal/wizard"
)

func newRunCommand() *cobra.Command {
	var (
		topic         string
		debaterA      string
		debaterB      string
		referee       bool
		rounds        int
		auto          bool
		maxTurns      int
		transcriptDir string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a debate in the terminal",
		Long: `Run a debate in the terminal.

When --topic, --debater-a, and --debater-b are all given, the debate starts
immediately; otherwise an interactive wizard collects the setup.

Between turns you can press Enter to continue, type a direction to steer the
next speaker, or quit. With --auto the debate runs without pausing until the
round limit (or --max-turns) is reached.`,
		Example: `  parley run
  parley run --topic "Should cities ban private cars?" --debater-a scientist --debater-b entrepreneur
  parley run --topic "Universal basic income" --debater-a politician --debater-b entrepreneur --referee --rounds 3 --auto`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			spec := wizard.DebateSpec{
				Topic:      topic,
				DebaterA:   debaterA,
				DebaterB:   debaterB,
				Referee:    referee,
				RoundLimit: rounds,
			}
			if spec.Topic == "" || spec.DebaterA == "" || spec.DebaterB == "" {
				collected, err := wizard.RunDebateWizard(os.Stdin, os.Stdout, a.registry.List(), spec)
				if err != nil {
					return err
				}
				spec = *collected
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runDebate(ctx, a, spec, auto, maxTurns, transcriptDir)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "Debate topic")
	cmd.Flags().StringVar(&debaterA, "debater-a", "", "Persona ID of the first debater")
	cmd.Flags().StringVar(&debaterB, "debater-b", "", "Persona ID of the second debater")
	cmd.Flags().BoolVar(&referee, "referee", false, "Add a neutral referee who keeps score but never speaks")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Round limit (0 = open-ended)")
	cmd.Flags().BoolVar(&auto, "auto", false, "Run without pausing between turns")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 0, "Stop after this many turns regardless of rounds (0 = no cap)")
	cmd.Flags().StringVar(&transcriptDir, "transcript", "", "Directory to save a markdown transcript to when the debate ends")

	return cmd
}

func runDebate(ctx context.Context, a *app, spec wizard.DebateSpec, auto bool, maxTurns int, transcriptDir string) error {
	width := terminalWidth()

	stop := spinner.Start(os.Stdout, "convening the debate...")
	s, err := a.engine.Start(ctx, debate.StartOptions{
		Topic:       spec.Topic,
		DebaterA:    spec.DebaterA,
		DebaterB:    spec.DebaterB,
		WithReferee: spec.Referee,
		RoundLimit:  spec.RoundLimit,
	})
	stop()
	if err != nil {
		return err
	}
	for _, e := range s.Entries {
		printEntry(os.Stdout, e, width)
	}

	reader := bufio.NewReader(os.Stdin)
	turns := 0
	for !s.Complete {
		if ctx.Err() != nil {
			fmt.Println("\nDebate interrupted.")
			return saveTranscript(transcriptDir, s)
		}
		if maxTurns > 0 && turns >= maxTurns {
			fmt.Printf("\nStopping after %d turns.\n", turns)
			return saveTranscript(transcriptDir, s)
		}

		seen := len(s.Entries)
		stop = spinner.Start(os.Stdout, "thinking...")
		s, err = a.engine.Advance(ctx, s)
		stop()
		if err != nil {
			return err
		}
		for _, e := range s.Entries[seen:] {
			printEntry(os.Stdout, e, width)
			if e.Role == debate.RoleSpeaker {
				turns++
			}
		}

		if s.UserConfirmationNeeded {
			fmt.Println("\n📓 Notebooks refreshed. Each participant has rewritten their private notes.")
			if auto {
				s = debate.Acknowledge(s)
				continue
			}
		} else if auto {
			continue
		}

		action, directive, err := promptNext(reader)
		if err != nil {
			return err
		}
		if action == actionQuit {
			fmt.Println("Debate closed.")
			return saveTranscript(transcriptDir, s)
		}
		if directive != "" {
			s = debate.InjectDirective(s, directive)
		}
		if s.UserConfirmationNeeded {
			s = debate.Acknowledge(s)
		}
	}

	fmt.Printf("\nDebate complete after %d round(s).\n", s.Round)
	return saveTranscript(transcriptDir, s)
}

// saveTranscript writes the session transcript when --transcript was given.
func saveTranscript(dir string, s debate.Session) error {
	if dir == "" {
		return nil
	}
	path, err := transcript.Write(dir, s, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Transcript saved to %s\n", path)
	return nil
}

type nextAction int

const (
	actionContinue nextAction = iota
	actionQuit
)

// promptNext asks what to do before the next turn. An empty line continues,
// "q" quits, and anything else becomes a steering direction.
func promptNext(r *bufio.Reader) (nextAction, string, error) {
	fmt.Print("\n[Enter] next turn · type a direction to steer · q to quit > ")
	line, err := r.ReadString('\n')
	if err != nil {
		// EOF on stdin (piped input exhausted) ends the debate cleanly.
		return actionQuit, "", nil
	}
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return actionContinue, "", nil
	case "q", "quit", "exit":
		return actionQuit, "", nil
	default:
		return actionContinue, line, nil
	}
}
