package timerview

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"poptimer/internal/core/timekeeper"
)

var testPalette = Palette{
	Work: color.NRGBA{R: 0x24, G: 0x24, B: 0x24, A: 0xff},
	Rest: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff},
}

func TestPhaseHelpers(t *testing.T) {
	assert.Equal(t, "WORK", phaseTitle(timekeeper.PhaseWork))
	assert.Equal(t, "REST", phaseTitle(timekeeper.PhaseRest))
	assert.Equal(t, "Complete!", phaseTitle(timekeeper.PhaseComplete))

	assert.Equal(t, testPalette.Work, testPalette.backgroundFor(timekeeper.PhaseWork))
	assert.Equal(t, testPalette.Rest, testPalette.backgroundFor(timekeeper.PhaseRest))
	assert.Equal(t, completeAccent, accentFor(timekeeper.PhaseComplete))

	assert.Equal(t, "Set 2 / 5", setText(timekeeper.State{CurrentSet: 2, TotalSets: 5}))
}

func TestRender(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	view := New(app, testPalette, Actions{})
	view.Render(timekeeper.State{
		CurrentSet:    1,
		TotalSets:     3,
		Phase:         timekeeper.PhaseRest,
		TimeRemaining: -1,
		IsPlaying:     true,
	})

	assert.Equal(t, "REST", view.phaseLabel.Text)
	assert.Equal(t, "00:00", view.timerLabel.Text)
	assert.Equal(t, "Set 1 / 3", view.setLabel.Text)
	assert.Equal(t, color.Color(testPalette.Rest), view.background.FillColor)
	assert.True(t, view.controls.Visible())
	assert.Nil(t, view.closeTimer)
}

func TestRenderCompleteHidesControls(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	view := New(app, testPalette, Actions{})
	view.Render(timekeeper.State{CurrentSet: 3, TotalSets: 3, Phase: timekeeper.PhaseComplete})

	assert.Equal(t, "Complete!", view.phaseLabel.Text)
	assert.False(t, view.controls.Visible())
	assert.NotNil(t, view.closeTimer)

	view.Render(timekeeper.State{CurrentSet: 1, TotalSets: 3, Phase: timekeeper.PhaseWork, TimeRemaining: 30})
	assert.True(t, view.controls.Visible())
	assert.Nil(t, view.closeTimer)
}

func TestControlsCallActions(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var toggled, closed int
	view := New(app, testPalette, Actions{
		OnToggle: func() { toggled++ },
		OnClosed: func() { closed++ },
	})
	view.Render(timekeeper.State{CurrentSet: 1, TotalSets: 1, Phase: timekeeper.PhaseWork, TimeRemaining: 10})

	test.Tap(view.toggleButton)
	view.close()

	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, closed)
}
