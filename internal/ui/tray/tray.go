package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"poptimer/internal/core/model"
	"poptimer/internal/core/timekeeper"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnQuickstart   func()
	OnToggle       func()
	OnSkip         func()
	OnReset        func()
	OnStartPreset  func(model.Preset)
	OnDeletePreset func(model.Preset)
	OnQuit         func()
}

// Manager handles system tray state.
type Manager struct {
	host      Host
	callbacks Callbacks
	state     *timekeeper.State
	presets   []model.Preset
	menu      *fyne.Menu
}

// New creates a tray manager and installs its menu.
func New(host Host, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}
	manager.refreshMenu()
	return manager
}

// SetState shows the running workout. A nil state means no workout.
func (manager *Manager) SetState(state *timekeeper.State) {
	manager.state = state
	manager.refreshMenu()
}

// SetPresets replaces the presets submenu.
func (manager *Manager) SetPresets(presets []model.Preset) {
	manager.presets = append([]model.Preset(nil), presets...)
	manager.refreshMenu()
}

// Menu returns the installed menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshMenu() {
	status := fyne.NewMenuItem("Status: "+statusText(manager.state), nil)
	status.Disabled = true

	active := manager.state != nil && manager.state.Phase != timekeeper.PhaseComplete

	toggleLabel := "Pause"
	if manager.state != nil && !manager.state.IsPlaying {
		toggleLabel = "Resume"
	}
	toggle := fyne.NewMenuItem(toggleLabel, func() { call(manager.callbacks.OnToggle) })
	toggle.Disabled = !active

	skip := fyne.NewMenuItem("Skip", func() { call(manager.callbacks.OnSkip) })
	skip.Disabled = !active

	reset := fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) })
	reset.Disabled = manager.state == nil

	manager.menu = fyne.NewMenu("Poptimer",
		status,
		fyne.NewMenuItem("Quickstart", func() { call(manager.callbacks.OnQuickstart) }),
		manager.presetsItem(),
		fyne.NewMenuItemSeparator(),
		toggle,
		skip,
		reset,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	)
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func (manager *Manager) presetsItem() *fyne.MenuItem {
	item := fyne.NewMenuItem("Presets", nil)
	if len(manager.presets) == 0 {
		empty := fyne.NewMenuItem("No presets", nil)
		empty.Disabled = true
		item.ChildMenu = fyne.NewMenu("", empty)
		return item
	}

	items := make([]*fyne.MenuItem, 0, len(manager.presets))
	for _, preset := range manager.presets {
		preset := preset
		entry := fyne.NewMenuItem(presetLabel(preset), nil)
		entry.ChildMenu = fyne.NewMenu("",
			fyne.NewMenuItem("Start", func() {
				if manager.callbacks.OnStartPreset != nil {
					manager.callbacks.OnStartPreset(preset)
				}
			}),
			fyne.NewMenuItem("Delete", func() {
				if manager.callbacks.OnDeletePreset != nil {
					manager.callbacks.OnDeletePreset(preset)
				}
			}),
		)
		items = append(items, entry)
	}
	item.ChildMenu = fyne.NewMenu("", items...)
	return item
}

func statusText(state *timekeeper.State) string {
	if state == nil {
		return "idle"
	}
	if state.Phase == timekeeper.PhaseComplete {
		return "complete"
	}
	status := fmt.Sprintf("%s %s, set %d/%d", state.Phase, state.Label(), state.CurrentSet, state.TotalSets)
	if !state.IsPlaying {
		status += " (paused)"
	}
	return status
}

func presetLabel(preset model.Preset) string {
	return fmt.Sprintf("%s (%d x %s / %s)", preset.Name, preset.Sets,
		timekeeper.FormatClock(preset.WorkTime), timekeeper.FormatClock(preset.RestTime))
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
