package debate

import (
	"fmt"
	"strings"

	"github.com/openparley/parley/internal/gateway"
	"github.com/openparley/parley/internal/notebook"
	"github.com/openparley/parley/internal/persona"
)

// emptyNotebook is the placeholder shown to the model when a participant
// has no notebook yet.
const emptyNotebook = "(nothing yet)"

// renderWindow flattens transcript entries into attributed lines for
// reflection prompts. Moderator remarks are procedural, not argumentative,
// so they are filtered out.
func renderWindow(entries []Entry) string {
	var parts []string
	for _, e := range entries {
		switch e.Role {
		case RoleModerator:
			continue
		case RoleDirective:
			parts = append(parts, "direction: "+e.Content)
		default:
			parts = append(parts, e.Speaker+": "+e.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// historyMessages maps the unprocessed transcript window onto chat roles
// for a turn request: the speaker's own past turns condition as assistant
// messages, everyone else's as user messages with attribution prefixed.
func historyMessages(entries []Entry, speaker persona.Persona) []gateway.Message {
	var msgs []gateway.Message
	for _, e := range entries {
		switch e.Role {
		case RoleModerator:
			continue
		case RoleDirective:
			msgs = append(msgs, gateway.Message{Role: gateway.RoleUser, Content: e.Content})
		default:
			role := gateway.RoleUser
			if e.Speaker == speaker.Name {
				role = gateway.RoleAssistant
			}
			msgs = append(msgs, gateway.Message{
				Role:    role,
				Content: fmt.Sprintf("[%s]: %s", e.Speaker, e.Content),
			})
		}
	}
	return msgs
}

// buildOpeningMessages produces the chairperson's one-shot prompt for the
// opening remarks.
func buildOpeningMessages(chair persona.Persona, topic string, a, b persona.Persona, referee *persona.Persona, roundLimit int, metaA, metaB notebook.Metadata) []gateway.Message {
	var info strings.Builder
	fmt.Fprintf(&info, "%s\n\nDebate briefing:\n", chair.Directive)
	fmt.Fprintf(&info, "- Topic: %q\n", topic)
	fmt.Fprintf(&info, "- First debater: %s\n", a.Name)
	fmt.Fprintf(&info, "- Second debater: %s\n", b.Name)
	if roundLimit > 0 {
		fmt.Fprintf(&info, "- Planned rounds: %d\n", roundLimit)
	} else {
		info.WriteString("- Planned rounds: open-ended, until the operator closes the debate\n")
	}
	if referee != nil {
		fmt.Fprintf(&info, "- Referee: %s\n", referee.Name)
	}
	info.WriteString("\nYou are the debate chairperson; open the debate.")

	var ask strings.Builder
	fmt.Fprintf(&ask, "As chairperson, deliver the opening remarks for the topic: %s.\n", topic)
	fmt.Fprintf(&ask, "The first debater is %s and the second is %s.\n", a.Name, b.Name)
	if metaA.Exists || metaB.Exists {
		ask.WriteString("Both sides have notes from an earlier discussion of this topic")
		if metaA.Exists {
			fmt.Fprintf(&ask, " (%s last wrote on %s)", a.Name, metaA.Modified.Format("Jan 2, 2006"))
		}
		ask.WriteString("; mention that the debate continues a prior conversation.\n")
	}
	ask.WriteString("Introduce the topic and the debaters, then declare the debate open.\n")
	ask.WriteString("Do not prefix your answer with your own title; begin the remarks directly.")

	return []gateway.Message{
		{Role: gateway.RoleSystem, Content: info.String()},
		{Role: gateway.RoleUser, Content: ask.String()},
	}
}

// reflectionRules lists the labeled sections a rewritten notebook must
// contain. Debaters keep an advocative notebook; the referee keeps an
// evaluative one.
func reflectionRules(name string, evaluative bool) string {
	if evaluative {
		return `Follow these rules:
1. Evaluate the strength of each side's arguments so far; do not advocate for either
2. Record which claims have been properly supported and which remain bare assertions
3. Record contested points and the quality of each side's case for them
4. Note fallacies, evasions, and dropped points that deserve immediate attention
5. Plan what to watch for in the upcoming exchanges
6. Keep the format clear, with sections titled "My Assessment", "Supported Claims", "Contested Points", "Points Needing Attention", "What To Watch Next"`
	}
	return fmt.Sprintf(`Follow these rules:
1. State your fundamental position and core arguments on the topic
2. To win this debate, record the consensus already reached that favors you, and why it holds
3. To win this debate, record the favorable consensus NOT yet reached (the contested points), and the opponent's stated reasons for resisting
4. Record the claims that must be rebutted immediately, and the reasons the opponent gave for them
5. Plan your next move: which angles will persuade the opponent
6. Keep the distinctive thinking style and concerns of %s on display
7. Keep the format clear, with sections titled "My Position", "Consensus Reached", "Contested Points", "Claims To Rebut Now", "Next Steps"
8. Stay consistent with your personality and values`, name)
}

// buildReflectionMessages produces the two-message prompt for one
// participant's notebook rewrite.
func buildReflectionMessages(p persona.Persona, topic, current string, window []Entry, evaluative bool) []gateway.Message {
	if current == "" {
		current = emptyNotebook
	}

	var sys strings.Builder
	sys.WriteString(p.Directive)
	fmt.Fprintf(&sys, "\n\nYou are taking part in a debate on %q. Based on your role and position, analyze the exchange and update your notebook.\n", topic)
	if !evaluative {
		fmt.Fprintf(&sys, "\nYour core preferences as %s:\n%s\n", p.Name, p.PreferenceList())
		fmt.Fprintf(&sys, "\nYour stance profile:\n%s\n", p.Stance.Profile())
	}
	fmt.Fprintf(&sys, "\n%s\n", reflectionRules(p.Name, evaluative))
	fmt.Fprintf(&sys, "\nCurrent notebook content:\n%s\n", current)
	sys.WriteString("\nUsing the above and the recent exchange, produce the updated notebook.")
	sys.WriteString("\nThis is your private notebook; record your honest views and strategy.")
	sys.WriteString("\nReturn only the notebook content, nothing else.")

	var user strings.Builder
	fmt.Fprintf(&user, "Update your notebook from the recent debate content below. Stay analytical, surface the key points, and keep %s's perspective throughout:\n\n", p.Name)
	user.WriteString(renderWindow(window))
	user.WriteString("\n\nProvide only the replacement notebook body, with no other reply.")

	return []gateway.Message{
		{Role: gateway.RoleSystem, Content: sys.String()},
		{Role: gateway.RoleUser, Content: user.String()},
	}
}

// buildTurnMessages produces the full conditioning context for the next
// speaker's debate turn.
func buildTurnMessages(s Session, speaker, opponent persona.Persona, nb, knowledge string) []gateway.Message {
	if nb == "" {
		nb = emptyNotebook
	}

	var sys strings.Builder
	sys.WriteString(speaker.Directive)
	sys.WriteString("\n\nDebate briefing:\n")
	fmt.Fprintf(&sys, "- Topic: %q\n", s.Topic)
	fmt.Fprintf(&sys, "- You are %s, debating %s\n", speaker.Name, opponent.Name)
	fmt.Fprintf(&sys, "- Current round: %d", s.Round+1)
	if s.RoundLimit > 0 {
		fmt.Fprintf(&sys, "/%d", s.RoundLimit)
	}
	sys.WriteString("\n")
	if prefs := speaker.TopPreferences(3); prefs != "" {
		fmt.Fprintf(&sys, "\nYour core preferences:\n%s\n", prefs)
	}
	if stance := speaker.Stance.Summary(); stance != "" {
		fmt.Fprintf(&sys, "\nYour stance profile: %s\n", stance)
	}
	fmt.Fprintf(&sys, "\nYour notebook (position, analysis, strategy):\n%s\n", nb)
	if knowledge != "" {
		fmt.Fprintf(&sys, "\nYour knowledge base (reference material):\n%s\n", knowledge)
	}
	sys.WriteString("\nGround your response in the briefing, your notebook, and the debate history. Stay in character, argue your position firmly, and use the strategy in your notebook and the material in your knowledge base to support your points.")

	msgs := []gateway.Message{{Role: gateway.RoleSystem, Content: sys.String()}}
	msgs = append(msgs, historyMessages(s.unprocessed(), speaker)...)

	var final string
	if s.speakerCount() == 0 {
		final = fmt.Sprintf("As %s, open the debate on %q by laying out your initial position. Do not prefix your answer with your own name; begin your argument directly.", speaker.Name, s.Topic)
	} else {
		final = fmt.Sprintf("As %s, respond to the exchange above on %q. Rebut your opponent's most recent point with concrete evidence, do not restate consensus that has already been settled, and keep the response to a few paragraphs. Do not prefix your answer with your own name; begin your argument directly.", speaker.Name, s.Topic)
	}
	msgs = append(msgs, gateway.Message{Role: gateway.RoleUser, Content: final})

	return msgs
}
