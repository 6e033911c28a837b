// Package sequencer maps (event type, current step) to the next or
// previous wizard step. It holds no state: callers query it fresh on every
// navigation decision, so changing the event type mid-flow immediately
// changes subsequent routing.
package sequencer

import "github.com/rheannec/planora/internal/models"

type Step string

const (
	StepTitle         Step = "title"
	StepHost          Step = "host"
	StepDate          Step = "date"
	StepOptionalInfo  Step = "optional-info"
	StepIllustration  Step = "illustration"
	StepBackground    Step = "background"
	StepInviteFriends Step = "invite-friends"
)

// Individual events pick their single host right after the title; every
// other type skips the host step.
func order(eventType models.EventType) []Step {
	if eventType == models.EventTypeIndividual {
		return []Step{StepTitle, StepHost, StepDate, StepOptionalInfo, StepIllustration, StepBackground, StepInviteFriends}
	}
	return []Step{StepTitle, StepDate, StepOptionalInfo, StepIllustration, StepBackground, StepInviteFriends}
}

// First is the entry step of every creation flow.
func First() Step {
	return StepTitle
}

// Next returns the step after current for the given event type. ok is
// false when current is terminal or not part of that type's flow.
func Next(eventType models.EventType, current Step) (Step, bool) {
	steps := order(eventType)
	for i, s := range steps {
		if s == current && i+1 < len(steps) {
			return steps[i+1], true
		}
	}
	return "", false
}

// Back returns the step before current, the exact inverse of Next.
func Back(eventType models.EventType, current Step) (Step, bool) {
	steps := order(eventType)
	for i, s := range steps {
		if s == current && i > 0 {
			return steps[i-1], true
		}
	}
	return "", false
}

// IsTerminal reports whether the flow ends at this step.
func IsTerminal(step Step) bool {
	return step == StepInviteFriends
}

// IsValid reports whether step names a known wizard screen.
func IsValid(step Step) bool {
	for _, s := range order(models.EventTypeIndividual) {
		if s == step {
			return true
		}
	}
	return false
}
