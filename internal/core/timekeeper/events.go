package timekeeper

import (
	"fmt"
	"time"
)

// Phase is the current interval type.
type Phase string

const (
	PhaseWork     Phase = "work"
	PhaseRest     Phase = "rest"
	PhaseComplete Phase = "complete"
)

// Transition names a phase change that deserves a cue.
type Transition string

const (
	TransitionNone       Transition = ""
	TransitionWorkToRest Transition = "work_to_rest"
	TransitionRestToWork Transition = "rest_to_work"
	TransitionComplete   Transition = "complete"
)

// delayMarker is the time remaining during the tick after a deadline.
const delayMarker = -1

// State is a snapshot of the timer.
// TimeRemaining may be -1 for one tick after a deadline; use DisplayRemaining for output.
type State struct {
	CurrentSet    int
	TotalSets     int
	Phase         Phase
	TimeRemaining int
	IsPlaying     bool
}

// DisplayRemaining returns the time remaining clamped to zero.
func (state State) DisplayRemaining() int {
	if state.TimeRemaining < 0 {
		return 0
	}
	return state.TimeRemaining
}

// Label formats the displayed time remaining as MM:SS.
func (state State) Label() string {
	return FormatClock(state.TimeRemaining)
}

// FormatClock formats seconds as MM:SS. Negative values render as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventProgress    EventType = "progress"
	EventStateChange EventType = "state_change"
)

// Command identifies the control that produced a state change.
type Command string

const (
	CommandPlay   Command = "play"
	CommandPause  Command = "pause"
	CommandToggle Command = "toggle"
	CommandReset  Command = "reset"
	CommandSkip   Command = "skip"
)

// Event represents a TimeKeeper update for observers.
// Transition is set when the update should trigger a sound or haptic cue.
type Event struct {
	Type       EventType
	Command    Command
	State      State
	Transition Transition
	At         time.Time
}
