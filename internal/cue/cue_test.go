package cue

import (
	"bytes"
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poptimer/internal/core/timekeeper"
)

type played struct {
	transition timekeeper.Transition
	volume     float64
}

type recordingPlayer struct {
	mu    sync.Mutex
	calls []played
	err   error
}

func (player *recordingPlayer) Play(transition timekeeper.Transition, volume float64) error {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.calls = append(player.calls, played{transition: transition, volume: volume})
	return player.err
}

func (player *recordingPlayer) snapshot() []played {
	player.mu.Lock()
	defer player.mu.Unlock()
	return append([]played(nil), player.calls...)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.5, want: 0.5},
		{in: 0, want: 0},
		{in: 1, want: 1},
		{in: -0.2, want: 0},
		{in: 3, want: 1},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampVolume(tt.in))
	}
}

func TestDispatchPlaysEveryPlayer(t *testing.T) {
	first := &recordingPlayer{}
	second := &recordingPlayer{err: errors.New("device busy")}
	dispatcher := NewDispatcher(0.4, nil, first)
	dispatcher.Add(second)

	dispatcher.Dispatch(timekeeper.TransitionWorkToRest)
	dispatcher.Dispatch(timekeeper.TransitionNone)

	want := []played{{transition: timekeeper.TransitionWorkToRest, volume: 0.4}}
	assert.Equal(t, want, first.snapshot())
	assert.Equal(t, want, second.snapshot())
}

func TestSetVolume(t *testing.T) {
	player := &recordingPlayer{}
	dispatcher := NewDispatcher(DefaultVolume, nil, player)

	dispatcher.SetVolume(7)
	assert.Equal(t, 1.0, dispatcher.Volume())

	dispatcher.SetVolume(0.25)
	dispatcher.Dispatch(timekeeper.TransitionComplete)

	require.Len(t, player.snapshot(), 1)
	assert.Equal(t, 0.25, player.snapshot()[0].volume)
}

func TestRunConsumesTransitions(t *testing.T) {
	player := &recordingPlayer{}
	dispatcher := NewDispatcher(1, nil, player)
	events := make(chan timekeeper.Event, 4)
	events <- timekeeper.Event{Type: timekeeper.EventProgress}
	events <- timekeeper.Event{Type: timekeeper.EventProgress, Transition: timekeeper.TransitionWorkToRest}
	events <- timekeeper.Event{Type: timekeeper.EventStateChange, Command: timekeeper.CommandSkip, Transition: timekeeper.TransitionRestToWork}
	close(events)

	done := make(chan struct{})
	go func() {
		dispatcher.Run(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after channel close")
	}
	assert.Equal(t, []played{
		{transition: timekeeper.TransitionWorkToRest, volume: 1},
		{transition: timekeeper.TransitionRestToWork, volume: 1},
	}, player.snapshot())
}

func TestRunStopsOnContext(t *testing.T) {
	dispatcher := NewDispatcher(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		dispatcher.Run(ctx, make(chan timekeeper.Event))
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestBell(t *testing.T) {
	var out bytes.Buffer
	bell := NewBell(&out)

	require.NoError(t, bell.Play(timekeeper.TransitionWorkToRest, 1))
	assert.Equal(t, "\a", out.String())

	out.Reset()
	require.NoError(t, bell.Play(timekeeper.TransitionComplete, 0.3))
	assert.Equal(t, "\a\a\a", out.String())

	out.Reset()
	require.NoError(t, bell.Play(timekeeper.TransitionRestToWork, 0))
	assert.Empty(t, out.String())

	err := NewBell(failingWriter{}).Play(timekeeper.TransitionRestToWork, 1)
	assert.ErrorContains(t, err, "ring bell")
}
