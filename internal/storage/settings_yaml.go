package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"poptimer/internal/core/model"
	"poptimer/internal/cue"
	"poptimer/internal/ui/preferences"
)

type yamlWorkout struct {
	Sets            int `yaml:"sets"`
	WorkTimeSeconds int `yaml:"work_time_seconds"`
	RestTimeSeconds int `yaml:"rest_time_seconds"`
}

type yamlSettings struct {
	Volume     *float64     `yaml:"volume,omitempty"`
	WorkColor  string       `yaml:"work_color,omitempty"`
	RestColor  string       `yaml:"rest_color,omitempty"`
	Quickstart *yamlWorkout `yaml:"quickstart,omitempty"`
}

// LoadSettings reads user preferences from settings.yaml in dir.
// If the file does not exist, default settings are returned. Invalid
// values fall back to their defaults one field at a time.
func LoadSettings(dir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to settings.yaml in dir.
func SaveSettings(dir string, settings preferences.Settings) error {
	volume := cue.ClampVolume(settings.Volume)
	fileData := yamlSettings{
		Volume:    &volume,
		WorkColor: settings.WorkColor,
		RestColor: settings.RestColor,
		Quickstart: &yamlWorkout{
			Sets:            settings.Quickstart.Sets,
			WorkTimeSeconds: settings.Quickstart.WorkTime,
			RestTimeSeconds: settings.Quickstart.RestTime,
		},
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, settingsFileName), serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Volume != nil {
		settings.Volume = cue.ClampVolume(*fileData.Volume)
	}
	if validColor(fileData.WorkColor) {
		settings.WorkColor = fileData.WorkColor
	}
	if validColor(fileData.RestColor) {
		settings.RestColor = fileData.RestColor
	}
	if fileData.Quickstart != nil {
		quickstart := model.WorkoutConfig{
			Sets:     fileData.Quickstart.Sets,
			WorkTime: fileData.Quickstart.WorkTimeSeconds,
			RestTime: fileData.Quickstart.RestTimeSeconds,
		}
		if quickstart.Validate() == nil {
			settings.Quickstart = quickstart
		}
	}
}

func validColor(value string) bool {
	if value == "" {
		return false
	}
	_, err := preferences.ParseHexColor(value)
	return err == nil
}
