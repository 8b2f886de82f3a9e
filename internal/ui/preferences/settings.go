package preferences

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"poptimer/internal/core/model"
)

// DefaultBackground is used when no phase colour is configured.
const DefaultBackground = "#242424"

// Settings defines editable user preferences.
type Settings struct {
	Volume float64

	// Empty colours fall back to DefaultBackground.
	WorkColor string
	RestColor string

	Quickstart model.WorkoutConfig
}

// DefaultSettings returns default settings for poptimer.
func DefaultSettings() Settings {
	return Settings{
		Volume: 1.0,
		Quickstart: model.WorkoutConfig{
			Sets:     3,
			WorkTime: 5 * 60,
			RestTime: 60,
		},
	}
}

// WorkBackground returns the work phase background colour.
func (settings Settings) WorkBackground() color.NRGBA {
	return backgroundOrDefault(settings.WorkColor)
}

// RestBackground returns the rest phase background colour.
func (settings Settings) RestBackground() color.NRGBA {
	return backgroundOrDefault(settings.RestColor)
}

// ParseHexColor parses #RRGGBB.
func ParseHexColor(value string) (color.NRGBA, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 6 {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: want #RRGGBB", value)
	}
	raw, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", value, err)
	}
	return color.NRGBA{
		R: uint8(raw >> 16),
		G: uint8(raw >> 8),
		B: uint8(raw),
		A: 0xff,
	}, nil
}

func backgroundOrDefault(value string) color.NRGBA {
	if value != "" {
		if parsed, err := ParseHexColor(value); err == nil {
			return parsed
		}
	}
	parsed, _ := ParseHexColor(DefaultBackground)
	return parsed
}
