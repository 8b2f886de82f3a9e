package model

import "time"

// Preset is a named, stored workout configuration.
type Preset struct {
	ID        string
	Name      string
	CreatedAt time.Time
	WorkoutConfig
}

// Config returns the workout configuration held by the preset.
func (preset Preset) Config() WorkoutConfig {
	return preset.WorkoutConfig
}
