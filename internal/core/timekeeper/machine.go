package timekeeper

import "poptimer/internal/core/model"

// NewState returns the start-of-workout state.
func NewState(config model.WorkoutConfig, playing bool) State {
	return State{
		CurrentSet:    1,
		TotalSets:     config.Sets,
		Phase:         PhaseWork,
		TimeRemaining: config.WorkTime,
		IsPlaying:     playing,
	}
}

// NextTransition returns the cue for leaving the current phase.
func NextTransition(state State) Transition {
	switch {
	case state.Phase == PhaseComplete:
		return TransitionNone
	case state.Phase == PhaseWork:
		return TransitionWorkToRest
	case state.CurrentSet < state.TotalSets:
		return TransitionRestToWork
	default:
		return TransitionComplete
	}
}

// Step advances the state by one tick and returns the cue to play, if any.
//
// A phase deadline takes two ticks: the tick reaching 0 fires the cue and shows
// 00:00, the next one parks at the delay marker, and only the third switches
// phase. The delay tick never fires a cue, so a zero-length rest, which is
// entered at 0, leaves silently.
func Step(config model.WorkoutConfig, state State) (State, Transition) {
	if !state.IsPlaying || state.Phase == PhaseComplete {
		return state, TransitionNone
	}

	switch {
	case state.TimeRemaining > 1:
		state.TimeRemaining--
		return state, TransitionNone
	case state.TimeRemaining == 1:
		transition := NextTransition(state)
		state.TimeRemaining = 0
		return state, transition
	case state.TimeRemaining == 0:
		state.TimeRemaining = delayMarker
		return state, TransitionNone
	default:
		return switchPhase(config, state), TransitionNone
	}
}

// Skip ends the current phase immediately, without the delay ticks.
// Skipping a complete workout changes nothing.
func Skip(config model.WorkoutConfig, state State) (State, Transition) {
	if state.Phase == PhaseComplete {
		return state, TransitionNone
	}
	transition := NextTransition(state)
	return switchPhase(config, state), transition
}

func switchPhase(config model.WorkoutConfig, state State) State {
	switch {
	case state.Phase == PhaseWork:
		state.Phase = PhaseRest
		state.TimeRemaining = config.RestTime
	case state.CurrentSet < state.TotalSets:
		state.CurrentSet++
		state.Phase = PhaseWork
		state.TimeRemaining = config.WorkTime
	default:
		state.Phase = PhaseComplete
		state.IsPlaying = false
		state.TimeRemaining = 0
	}
	return state
}
