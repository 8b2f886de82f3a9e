package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig indicates a workout configuration the engine cannot run.
var ErrInvalidConfig = errors.New("invalid workout config")

// WorkoutConfig defines a fixed interval workout. Times are whole seconds.
type WorkoutConfig struct {
	Sets     int
	WorkTime int
	RestTime int
}

// Validate reports whether the configuration satisfies the engine contract.
// The engine itself never validates; callers must reject bad input first.
func (config WorkoutConfig) Validate() error {
	if config.Sets < 1 {
		return fmt.Errorf("%w: sets must be at least 1, got %d", ErrInvalidConfig, config.Sets)
	}
	if config.WorkTime < 1 {
		return fmt.Errorf("%w: work time must be at least 1s, got %d", ErrInvalidConfig, config.WorkTime)
	}
	if config.RestTime < 0 {
		return fmt.Errorf("%w: rest time must not be negative, got %d", ErrInvalidConfig, config.RestTime)
	}
	return nil
}

// WorkDuration returns the work interval as a duration.
func (config WorkoutConfig) WorkDuration() time.Duration {
	return time.Duration(config.WorkTime) * time.Second
}

// RestDuration returns the rest interval as a duration.
func (config WorkoutConfig) RestDuration() time.Duration {
	return time.Duration(config.RestTime) * time.Second
}

// PhaseSwitchDelay is the time every phase runs past its own length: one tick
// showing 00:00 and one delay tick before the switch.
const PhaseSwitchDelay = 2 * time.Second

// TotalDuration returns the running time of the whole workout, rests and
// phase switch delays included.
func (config WorkoutConfig) TotalDuration() time.Duration {
	if config.Sets <= 0 {
		return 0
	}
	perSet := config.WorkDuration() + config.RestDuration() + 2*PhaseSwitchDelay
	return time.Duration(config.Sets) * perSet
}
