package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"poptimer/internal/core/model"
	"poptimer/internal/core/timekeeper"
	"poptimer/internal/cue"
	"poptimer/internal/platform"
	"poptimer/internal/storage"
	"poptimer/internal/ui/preferences"
	"poptimer/internal/ui/timerview"
	"poptimer/internal/ui/tray"
)

const appName = "poptimer"

func main() {
	sets := flag.Int("sets", 0, "start immediately with this many sets")
	work := flag.Int("work", 0, "work time in seconds")
	rest := flag.Int("rest", 0, "rest time in seconds")
	configDir := flag.String("config-dir", "", "directory for settings.yaml and presets.yaml")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	initial, hasInitial, err := workoutFromFlags(*sets, *work, *rest)
	if err != nil {
		log.Printf("flags: %v", err)
		os.Exit(2)
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if err := platform.ActivateRunning(appName); err != nil {
				log.Printf("single instance: %v", err)
			}
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	dir := *configDir
	if dir == "" {
		dir, err = storage.DefaultDir(appName)
		if err != nil {
			log.Printf("config dir: %v", err)
			return
		}
	}

	settings, err := storage.LoadSettings(dir)
	if err != nil {
		logger.Warn("using default settings", slog.Any("error", err))
	}
	presets := storage.NewPresetStore(dir, logger)

	fyneApp := app.NewWithID("com.poptimer.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	dispatcher := cue.NewDispatcher(settings.Volume, logger, cue.NewBell(os.Stdout))
	host := &workoutHost{logger: logger, dispatcher: dispatcher}

	host.view = timerview.New(fyneApp, paletteFrom(settings), timerview.Actions{
		OnToggle: func() { host.command((*timekeeper.TimeKeeper).Toggle) },
		OnReset:  func() { host.command((*timekeeper.TimeKeeper).Reset) },
		OnSkip:   func() { host.command((*timekeeper.TimeKeeper).Skip) },
		OnClosed: host.stop,
	})
	dispatcher.Add(host.view)

	prefsWindow := preferences.New(fyneApp, settings, preferences.Callbacks{
		OnSave: func(updated preferences.Settings) {
			settings = updated
			dispatcher.SetVolume(settings.Volume)
			host.view.SetPalette(paletteFrom(settings))
			if err := storage.SaveSettings(dir, settings); err != nil {
				logger.Error("save settings", slog.Any("error", err))
			}
		},
		OnStart: host.start,
		OnSavePreset: func(name string, config model.WorkoutConfig) error {
			if _, err := presets.Save(name, config); err != nil {
				return err
			}
			host.refreshPresets(presets)
			return nil
		},
	})

	host.tray = tray.New(desktopApp, tray.Callbacks{
		OnQuickstart: prefsWindow.Show,
		OnToggle:     func() { host.command((*timekeeper.TimeKeeper).Toggle) },
		OnSkip:       func() { host.command((*timekeeper.TimeKeeper).Skip) },
		OnReset:      func() { host.command((*timekeeper.TimeKeeper).Reset) },
		OnStartPreset: func(preset model.Preset) {
			host.start(preset.Config())
		},
		OnDeletePreset: func(preset model.Preset) {
			if err := presets.Delete(preset.ID); err != nil {
				logger.Error("delete preset", slog.String("id", preset.ID), slog.Any("error", err))
			}
			host.refreshPresets(presets)
		},
		OnQuit: func() {
			host.stop()
			fyneApp.Quit()
		},
	})
	host.desktop = desktopApp
	host.refreshPresets(presets)
	host.refreshTray()

	go guard.Serve(func() {
		fyne.Do(prefsWindow.Show)
	})

	if hasInitial {
		host.start(initial)
	} else {
		prefsWindow.Show()
	}
	fyneApp.Run()
}

// workoutHost owns the running TimeKeeper. Its methods run on the UI goroutine.
type workoutHost struct {
	logger     *slog.Logger
	dispatcher *cue.Dispatcher
	view       *timerview.Window
	tray       *tray.Manager
	desktop    desktop.App
	keeper     *timekeeper.TimeKeeper
	cancel     context.CancelFunc
}

func (host *workoutHost) start(config model.WorkoutConfig) {
	if err := config.Validate(); err != nil {
		host.logger.Error("start workout", slog.Any("error", err))
		return
	}
	host.stop()

	logger := host.logger
	keeper := timekeeper.New(config, timekeeper.Config{
		OnTransition: func(transition timekeeper.Transition) {
			logger.Info("transition", slog.String("transition", string(transition)))
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	host.keeper = keeper
	host.cancel = cancel

	go host.dispatcher.Run(ctx, keeper.Subscribe(8))

	events := keeper.Subscribe(8)
	go func() {
		for event := range events {
			state := event.State
			fyne.Do(func() {
				if host.keeper != keeper {
					return
				}
				host.view.Render(state)
				host.refreshTray()
			})
		}
	}()

	logger.Info("workout started",
		slog.Int("sets", config.Sets),
		slog.Int("work_time", config.WorkTime),
		slog.Int("rest_time", config.RestTime))
	host.view.Show(keeper.State())
	host.refreshTray()
}

func (host *workoutHost) stop() {
	if host.keeper == nil {
		return
	}
	host.keeper.Close()
	host.cancel()
	host.keeper = nil
	host.cancel = nil
	host.refreshTray()
}

func (host *workoutHost) command(run func(*timekeeper.TimeKeeper)) {
	if host.keeper != nil {
		run(host.keeper)
	}
}

func (host *workoutHost) refreshTray() {
	if host.tray == nil {
		return
	}
	var state *timekeeper.State
	if host.keeper != nil {
		current := host.keeper.State()
		state = &current
	}
	host.tray.SetState(state)
	if host.desktop != nil {
		host.desktop.SetSystemTrayIcon(trayIcon(state))
	}
}

func (host *workoutHost) refreshPresets(presets *storage.PresetStore) {
	list, err := presets.List()
	if err != nil {
		host.logger.Error("list presets", slog.Any("error", err))
	}
	host.tray.SetPresets(list)
}

func trayIcon(state *timekeeper.State) fyne.Resource {
	switch {
	case state == nil:
		return theme.HistoryIcon()
	case state.Phase == timekeeper.PhaseComplete:
		return theme.ConfirmIcon()
	case state.IsPlaying:
		return theme.MediaPlayIcon()
	default:
		return theme.MediaPauseIcon()
	}
}

func paletteFrom(settings preferences.Settings) timerview.Palette {
	return timerview.Palette{
		Work: settings.WorkBackground(),
		Rest: settings.RestBackground(),
	}
}

// workoutFromFlags builds the command-line workout. All zero means none.
func workoutFromFlags(sets, work, rest int) (model.WorkoutConfig, bool, error) {
	if sets == 0 && work == 0 && rest == 0 {
		return model.WorkoutConfig{}, false, nil
	}
	config := model.WorkoutConfig{Sets: sets, WorkTime: work, RestTime: rest}
	if err := config.Validate(); err != nil {
		return config, false, fmt.Errorf("workout flags: %w", err)
	}
	return config, true, nil
}
