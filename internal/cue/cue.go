// Package cue turns timer transitions into sound and haptic-style feedback.
package cue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"

	"poptimer/internal/core/timekeeper"
)

// DefaultVolume is full volume.
const DefaultVolume = 1.0

// Player renders feedback for a transition.
type Player interface {
	Play(transition timekeeper.Transition, volume float64) error
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(transition timekeeper.Transition, volume float64) error

// Play calls fn.
func (fn PlayerFunc) Play(transition timekeeper.Transition, volume float64) error {
	return fn(transition, volume)
}

// ClampVolume limits volume to [0, 1]. Non-finite values mute.
func ClampVolume(volume float64) float64 {
	if math.IsNaN(volume) || math.IsInf(volume, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, volume))
}

// Dispatcher plays every registered Player for each transition.
type Dispatcher struct {
	mu      sync.Mutex
	players []Player
	volume  float64
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher with the given volume and players.
func NewDispatcher(volume float64, logger *slog.Logger, players ...Player) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		players: players,
		volume:  ClampVolume(volume),
		logger:  logger,
	}
}

// SetVolume updates the volume for later cues.
func (dispatcher *Dispatcher) SetVolume(volume float64) {
	dispatcher.mu.Lock()
	dispatcher.volume = ClampVolume(volume)
	dispatcher.mu.Unlock()
}

// Volume returns the current volume.
func (dispatcher *Dispatcher) Volume() float64 {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	return dispatcher.volume
}

// Add registers another player.
func (dispatcher *Dispatcher) Add(player Player) {
	dispatcher.mu.Lock()
	dispatcher.players = append(dispatcher.players, player)
	dispatcher.mu.Unlock()
}

// Dispatch plays the transition on every player. Player errors are logged.
func (dispatcher *Dispatcher) Dispatch(transition timekeeper.Transition) {
	if transition == timekeeper.TransitionNone {
		return
	}
	dispatcher.mu.Lock()
	players := append([]Player(nil), dispatcher.players...)
	volume := dispatcher.volume
	dispatcher.mu.Unlock()

	for _, player := range players {
		if err := player.Play(transition, volume); err != nil {
			dispatcher.logger.Warn("cue playback failed",
				slog.String("transition", string(transition)),
				slog.Any("error", err))
		}
	}
}

// Run dispatches transitions carried by events until the channel closes
// or ctx is done.
func (dispatcher *Dispatcher) Run(ctx context.Context, events <-chan timekeeper.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			dispatcher.Dispatch(event.Transition)
		}
	}
}

// Bell rings the terminal bell: once for a phase change, three times on completion.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBell creates a Bell writing to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

// Play implements Player. A zero volume is silent.
func (bell *Bell) Play(transition timekeeper.Transition, volume float64) error {
	if volume <= 0 {
		return nil
	}
	rings := 1
	if transition == timekeeper.TransitionComplete {
		rings = 3
	}

	bell.mu.Lock()
	defer bell.mu.Unlock()
	if _, err := io.WriteString(bell.out, strings.Repeat("\a", rings)); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
