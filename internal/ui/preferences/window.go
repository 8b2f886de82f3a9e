package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"poptimer/internal/core/model"
	"poptimer/internal/core/timekeeper"
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnSave       func(Settings)
	OnStart      func(model.WorkoutConfig)
	OnSavePreset func(name string, config model.WorkoutConfig) error
}

// Window handles the quickstart and settings UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	callbacks Callbacks
	sets      *widget.Entry
	workTime  *widget.Entry
	restTime  *widget.Entry
	total     *widget.Label
	volume    *widget.Slider
	workColor *widget.Entry
	restColor *widget.Entry
}

// New creates the quickstart window.
func New(app fyne.App, settings Settings, callbacks Callbacks) *Window {
	window := app.NewWindow("Poptimer")

	prefs := &Window{
		window:    window,
		settings:  settings,
		callbacks: callbacks,
		sets:      widget.NewEntry(),
		workTime:  widget.NewEntry(),
		restTime:  widget.NewEntry(),
		total:     widget.NewLabel(""),
		volume:    widget.NewSlider(0, 1),
		workColor: widget.NewEntry(),
		restColor: widget.NewEntry(),
	}
	prefs.volume.Step = 0.05
	prefs.workColor.SetPlaceHolder(DefaultBackground)
	prefs.restColor.SetPlaceHolder(DefaultBackground)
	for _, entry := range []*widget.Entry{prefs.sets, prefs.workTime, prefs.restTime} {
		entry.OnChanged = func(string) { prefs.refreshTotal() }
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Quickstart", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3,
			widget.NewLabel("Sets"), prefs.sets, widget.NewLabel(""),
			widget.NewLabel("Work"), prefs.workTime, widget.NewLabel("sec"),
			widget.NewLabel("Rest"), prefs.restTime, widget.NewLabel("sec"),
		),
		prefs.total,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Settings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Volume"),
		prefs.volume,
		container.NewGridWithColumns(2,
			widget.NewLabel("Work background"), prefs.workColor,
			widget.NewLabel("Rest background"), prefs.restColor,
		),
	)

	startButton := widget.NewButton("Start", prefs.handleStart)
	startButton.Importance = widget.HighImportance
	presetButton := widget.NewButton("Save preset", prefs.handleSavePreset)
	saveButton := widget.NewButton("Save", prefs.handleSave)
	buttons := container.NewHBox(startButton, presetButton, layout.NewSpacer(), saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 460))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.SetWorkout(settings.Quickstart)
	prefs.volume.Value = settings.Volume
	prefs.volume.Refresh()
	prefs.workColor.SetText(settings.WorkColor)
	prefs.restColor.SetText(settings.RestColor)
}

// SetWorkout loads a workout into the quickstart fields.
func (prefs *Window) SetWorkout(config model.WorkoutConfig) {
	prefs.sets.SetText(strconv.Itoa(config.Sets))
	prefs.workTime.SetText(strconv.Itoa(config.WorkTime))
	prefs.restTime.SetText(strconv.Itoa(config.RestTime))
	prefs.refreshTotal()
}

func (prefs *Window) handleSave() {
	settings, err := prefs.collect()
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	prefs.settings = settings
	if prefs.callbacks.OnSave != nil {
		prefs.callbacks.OnSave(settings)
	}
}

func (prefs *Window) handleStart() {
	settings, err := prefs.collect()
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	prefs.settings = settings
	if prefs.callbacks.OnSave != nil {
		prefs.callbacks.OnSave(settings)
	}
	if prefs.callbacks.OnStart != nil {
		prefs.callbacks.OnStart(settings.Quickstart)
	}
	prefs.window.Hide()
}

func (prefs *Window) handleSavePreset() {
	config, err := parseWorkout(prefs.sets.Text, prefs.workTime.Text, prefs.restTime.Text)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	name := widget.NewEntry()
	name.SetPlaceHolder("Enter preset name")
	items := []*widget.FormItem{widget.NewFormItem("Name", name)}
	dialog.ShowForm("Save preset", "Save", "Cancel", items, func(confirmed bool) {
		trimmed := strings.TrimSpace(name.Text)
		if !confirmed || trimmed == "" || prefs.callbacks.OnSavePreset == nil {
			return
		}
		if err := prefs.callbacks.OnSavePreset(trimmed, config); err != nil {
			dialog.ShowError(err, prefs.window)
		}
	}, prefs.window)
}

func (prefs *Window) collect() (Settings, error) {
	settings := prefs.settings
	config, err := parseWorkout(prefs.sets.Text, prefs.workTime.Text, prefs.restTime.Text)
	if err != nil {
		return settings, err
	}
	for _, value := range []string{prefs.workColor.Text, prefs.restColor.Text} {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if _, err := ParseHexColor(value); err != nil {
			return settings, err
		}
	}

	settings.Quickstart = config
	settings.Volume = prefs.volume.Value
	settings.WorkColor = strings.TrimSpace(prefs.workColor.Text)
	settings.RestColor = strings.TrimSpace(prefs.restColor.Text)
	return settings, nil
}

func (prefs *Window) refreshTotal() {
	config, err := parseWorkout(prefs.sets.Text, prefs.workTime.Text, prefs.restTime.Text)
	if err != nil {
		prefs.total.SetText("Total: --:--")
		return
	}
	prefs.total.SetText("Total: " + timekeeper.FormatClock(int(config.TotalDuration().Seconds())))
}

func parseWorkout(sets, workTime, restTime string) (model.WorkoutConfig, error) {
	var config model.WorkoutConfig
	fields := []struct {
		name  string
		value string
		into  *int
	}{
		{name: "sets", value: sets, into: &config.Sets},
		{name: "work time", value: workTime, into: &config.WorkTime},
		{name: "rest time", value: restTime, into: &config.RestTime},
	}
	for _, field := range fields {
		parsed, err := strconv.Atoi(strings.TrimSpace(field.value))
		if err != nil {
			return config, fmt.Errorf("parse %s: %w", field.name, err)
		}
		*field.into = parsed
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}
