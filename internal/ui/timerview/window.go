// Package timerview renders a running workout: phase, countdown, set
// progress and the playback controls.
package timerview

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"poptimer/internal/core/timekeeper"
	"poptimer/internal/ui/animation"
)

// AutoCloseDelay is how long the completed screen stays open.
const AutoCloseDelay = 3 * time.Second

var (
	workAccent     = color.NRGBA{R: 0xe8, G: 0xd4, B: 0x4d, A: 0xff}
	restAccent     = color.NRGBA{R: 0x5d, G: 0x9c, B: 0xec, A: 0xff}
	completeAccent = color.NRGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	textColor      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	flashColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x55}
)

// Palette holds the phase backgrounds.
type Palette struct {
	Work color.NRGBA
	Rest color.NRGBA
}

// Actions defines control handlers.
type Actions struct {
	OnToggle func()
	OnReset  func()
	OnSkip   func()
	OnClosed func()
}

// Window manages the timer screen.
type Window struct {
	window       fyne.Window
	palette      Palette
	actions      Actions
	background   *canvas.Rectangle
	flash        *canvas.Rectangle
	phaseLabel   *canvas.Text
	timerLabel   *canvas.Text
	setLabel     *canvas.Text
	toggleButton *widget.Button
	controls     *fyne.Container
	flasher      *animation.Engine
	closeTimer   *time.Timer
	state        timekeeper.State
}

// New creates the timer window. It stays hidden until Show. Apart from
// Play, methods must be called on the UI goroutine.
func New(app fyne.App, palette Palette, actions Actions) *Window {
	window := app.NewWindow("Poptimer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	view := &Window{
		window:     window,
		palette:    palette,
		actions:    actions,
		background: canvas.NewRectangle(palette.Work),
		flash:      canvas.NewRectangle(color.Transparent),
		phaseLabel: newText(28, true),
		timerLabel: newText(72, true),
		setLabel:   newText(18, false),
	}
	view.flasher = animation.New(func(on bool) {
		fyne.Do(func() { view.setHighlight(on) })
	})

	view.toggleButton = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), func() { call(view.actions.OnToggle) })
	resetButton := widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() { call(view.actions.OnReset) })
	skipButton := widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), func() { call(view.actions.OnSkip) })
	view.controls = container.NewHBox(layout.NewSpacer(), resetButton, view.toggleButton, skipButton, layout.NewSpacer())

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(view.phaseLabel),
		container.NewCenter(view.timerLabel),
		container.NewCenter(view.setLabel),
		layout.NewSpacer(),
		view.controls,
	)
	window.SetContent(container.NewStack(view.background, view.flash, container.NewPadded(content)))
	window.Resize(fyne.NewSize(360, 420))
	window.SetCloseIntercept(view.close)

	return view
}

// Show renders state and brings the window forward.
func (view *Window) Show(state timekeeper.State) {
	view.Render(state)
	view.window.Show()
	view.window.RequestFocus()
}

// SetPalette replaces the phase backgrounds.
func (view *Window) SetPalette(palette Palette) {
	view.palette = palette
	view.Render(view.state)
}

// Play flashes the screen for a transition.
func (view *Window) Play(transition timekeeper.Transition, _ float64) error {
	view.flasher.Flash(context.Background(), animation.PatternFor(transition))
	return nil
}

// Render draws state. Completing a workout hides the controls and closes
// the window after AutoCloseDelay unless another state arrives first.
func (view *Window) Render(state timekeeper.State) {
	view.state = state

	view.background.FillColor = view.palette.backgroundFor(state.Phase)
	view.background.Refresh()

	view.phaseLabel.Text = phaseTitle(state.Phase)
	view.phaseLabel.Color = accentFor(state.Phase)
	view.phaseLabel.Refresh()

	view.timerLabel.Text = state.Label()
	view.timerLabel.Refresh()

	view.setLabel.Text = setText(state)
	view.setLabel.Refresh()

	if state.IsPlaying {
		view.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		view.toggleButton.SetIcon(theme.MediaPlayIcon())
	}

	if state.Phase == timekeeper.PhaseComplete {
		view.controls.Hide()
		view.scheduleClose()
		return
	}
	view.controls.Show()
	view.cancelClose()
}

func (view *Window) setHighlight(on bool) {
	if on {
		view.flash.FillColor = flashColor
	} else {
		view.flash.FillColor = color.Transparent
	}
	view.flash.Refresh()
}

func (view *Window) scheduleClose() {
	if view.closeTimer != nil {
		return
	}
	view.closeTimer = time.AfterFunc(AutoCloseDelay, func() {
		fyne.Do(view.close)
	})
}

func (view *Window) cancelClose() {
	if view.closeTimer != nil {
		view.closeTimer.Stop()
		view.closeTimer = nil
	}
}

func (view *Window) close() {
	view.cancelClose()
	view.flasher.Stop()
	view.setHighlight(false)
	view.window.Hide()
	call(view.actions.OnClosed)
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

func (palette Palette) backgroundFor(phase timekeeper.Phase) color.NRGBA {
	if phase == timekeeper.PhaseRest {
		return palette.Rest
	}
	return palette.Work
}

func accentFor(phase timekeeper.Phase) color.NRGBA {
	switch phase {
	case timekeeper.PhaseRest:
		return restAccent
	case timekeeper.PhaseComplete:
		return completeAccent
	default:
		return workAccent
	}
}

func phaseTitle(phase timekeeper.Phase) string {
	switch phase {
	case timekeeper.PhaseRest:
		return "REST"
	case timekeeper.PhaseComplete:
		return "Complete!"
	default:
		return "WORK"
	}
}

func setText(state timekeeper.State) string {
	return fmt.Sprintf("Set %d / %d", state.CurrentSet, state.TotalSets)
}

func newText(size float32, bold bool) *canvas.Text {
	text := canvas.NewText("", textColor)
	text.Alignment = fyne.TextAlignCenter
	text.TextStyle = fyne.TextStyle{Bold: bold}
	text.TextSize = size
	return text
}
