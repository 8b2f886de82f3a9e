package animation

import (
	"time"

	"poptimer/internal/core/timekeeper"
)

// PhaseChangePattern is a single firm pulse.
var PhaseChangePattern = Pattern{Pulses: 1, On: 250 * time.Millisecond}

// CompletePattern is a triple pulse, like a success notification.
var CompletePattern = Pattern{Pulses: 3, On: 150 * time.Millisecond, Off: 100 * time.Millisecond}

// PatternFor returns the pattern for a transition. TransitionNone has none.
func PatternFor(transition timekeeper.Transition) Pattern {
	switch transition {
	case timekeeper.TransitionWorkToRest, timekeeper.TransitionRestToWork:
		return PhaseChangePattern
	case timekeeper.TransitionComplete:
		return CompletePattern
	default:
		return Pattern{}
	}
}
