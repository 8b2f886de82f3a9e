package timekeeper

import (
	"sync"
	"time"

	"poptimer/internal/core/model"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
	// OnTransition is called after a cue-worthy tick or skip has been applied,
	// outside the TimeKeeper lock, so it may issue commands. Calls never
	// overlap and arrive in the order their events were published; a
	// transition caused from inside the callback is delivered after it returns.
	OnTransition func(Transition)
}

// TimeKeeper runs an interval workout as a state machine driven by a recurring tick.
// All methods are safe for concurrent use.
type TimeKeeper struct {
	mu         sync.Mutex
	config     model.WorkoutConfig
	options    Config
	state      State
	events     []chan Event
	stopCh     chan struct{}
	generation uint64
	closed     bool
	pending    []Transition
	notifying  bool
}

// New creates a TimeKeeper for the workout and starts ticking immediately.
// The configuration must already be valid; see model.WorkoutConfig.Validate.
func New(config model.WorkoutConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}

	keeper := &TimeKeeper{
		config:  config,
		options: options,
		state:   NewState(config, true),
	}
	keeper.mu.Lock()
	keeper.startLocked()
	keeper.mu.Unlock()
	return keeper
}

// State returns a snapshot of the current state.
func (keeper *TimeKeeper) State() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Config returns the workout the TimeKeeper was created with.
func (keeper *TimeKeeper) Config() model.WorkoutConfig {
	return keeper.config
}

// Subscribe registers a new observer channel.
// Events are dropped for observers whose buffer is full.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Play resumes ticking unless the workout is complete.
func (keeper *TimeKeeper) Play() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || keeper.state.Phase == PhaseComplete || keeper.state.IsPlaying {
		return
	}
	keeper.state.IsPlaying = true
	keeper.startLocked()
	keeper.emitLocked(keeper.commandEventLocked(CommandPlay, TransitionNone))
}

// Pause stops ticking.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || !keeper.state.IsPlaying {
		return
	}
	keeper.state.IsPlaying = false
	keeper.stopLocked()
	keeper.emitLocked(keeper.commandEventLocked(CommandPause, TransitionNone))
}

// Toggle flips between playing and paused unless the workout is complete.
func (keeper *TimeKeeper) Toggle() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || keeper.state.Phase == PhaseComplete {
		return
	}
	keeper.state.IsPlaying = !keeper.state.IsPlaying
	if keeper.state.IsPlaying {
		keeper.startLocked()
	} else {
		keeper.stopLocked()
	}
	keeper.emitLocked(keeper.commandEventLocked(CommandToggle, TransitionNone))
}

// Reset returns to the first work interval, paused. No cue is produced.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	keeper.state = NewState(keeper.config, false)
	keeper.stopLocked()
	keeper.emitLocked(keeper.commandEventLocked(CommandReset, TransitionNone))
}

// Skip ends the current phase immediately and produces its cue.
func (keeper *TimeKeeper) Skip() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	next, transition := Skip(keeper.config, keeper.state)
	if transition == TransitionNone {
		keeper.mu.Unlock()
		return
	}
	keeper.state = next
	// The next phase starts on a whole second.
	keeper.stopLocked()
	if keeper.state.IsPlaying {
		keeper.startLocked()
	}
	keeper.emitLocked(keeper.commandEventLocked(CommandSkip, transition))
	keeper.queueLocked(transition)
	keeper.mu.Unlock()

	keeper.notify()
}

// Close cancels ticking and closes observers. Later commands are ignored.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.stopLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) startLocked() {
	if keeper.stopCh != nil {
		return
	}
	keeper.generation++
	stopCh := make(chan struct{})
	keeper.stopCh = stopCh
	ticker := keeper.options.Clock.NewTicker(keeper.options.TickInterval)
	go keeper.run(keeper.generation, ticker, stopCh)
}

func (keeper *TimeKeeper) stopLocked() {
	if keeper.stopCh == nil {
		return
	}
	close(keeper.stopCh)
	keeper.stopCh = nil
}

func (keeper *TimeKeeper) run(generation uint64, ticker Ticker, stopCh <-chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			if !keeper.tick(generation) {
				return
			}
		}
	}
}

// tick applies one step and reports whether the loop should keep running.
func (keeper *TimeKeeper) tick(generation uint64) bool {
	keeper.mu.Lock()
	// A loop that was stopped may still win the race against its stop channel.
	if keeper.closed || generation != keeper.generation || keeper.stopCh == nil {
		keeper.mu.Unlock()
		return false
	}

	next, transition := Step(keeper.config, keeper.state)
	keeper.state = next
	if !next.IsPlaying {
		keeper.stopLocked()
	}
	keeper.emitLocked(Event{
		Type:       EventProgress,
		State:      next,
		Transition: transition,
		At:         keeper.options.Clock.Now(),
	})
	keeper.queueLocked(transition)
	keeper.mu.Unlock()

	keeper.notify()
	return next.IsPlaying
}

func (keeper *TimeKeeper) queueLocked(transition Transition) {
	if transition == TransitionNone || keeper.options.OnTransition == nil {
		return
	}
	keeper.pending = append(keeper.pending, transition)
}

// notify drains queued transitions. Only one caller delivers at a time; the
// others leave their transitions to it.
func (keeper *TimeKeeper) notify() {
	keeper.mu.Lock()
	if keeper.notifying {
		keeper.mu.Unlock()
		return
	}
	keeper.notifying = true
	for len(keeper.pending) > 0 {
		transition := keeper.pending[0]
		keeper.pending = keeper.pending[1:]
		keeper.mu.Unlock()
		keeper.options.OnTransition(transition)
		keeper.mu.Lock()
	}
	keeper.notifying = false
	keeper.mu.Unlock()
}

func (keeper *TimeKeeper) commandEventLocked(command Command, transition Transition) Event {
	return Event{
		Type:       EventStateChange,
		Command:    command,
		State:      keeper.state,
		Transition: transition,
		At:         keeper.options.Clock.Now(),
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
