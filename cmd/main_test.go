package main

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poptimer/internal/core/model"
	"poptimer/internal/core/timekeeper"
	"poptimer/internal/ui/preferences"
)

func TestWorkoutFromFlags(t *testing.T) {
	_, ok, err := workoutFromFlags(0, 0, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	config, ok, err := workoutFromFlags(4, 30, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.WorkoutConfig{Sets: 4, WorkTime: 30, RestTime: 0}, config)

	_, ok, err = workoutFromFlags(3, 0, 10)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
	assert.False(t, ok)
}

func TestPaletteFrom(t *testing.T) {
	settings := preferences.DefaultSettings()
	settings.RestColor = "#5d9cec"

	palette := paletteFrom(settings)
	assert.Equal(t, settings.WorkBackground(), palette.Work)
	assert.Equal(t, settings.RestBackground(), palette.Rest)
}

func TestTrayIcon(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	assert.NotNil(t, trayIcon(nil))
	playing := trayIcon(&timekeeper.State{Phase: timekeeper.PhaseWork, IsPlaying: true})
	paused := trayIcon(&timekeeper.State{Phase: timekeeper.PhaseWork})
	assert.NotEqual(t, playing.Name(), paused.Name())
}
