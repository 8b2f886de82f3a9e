package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  WorkoutConfig
		wantErr bool
	}{
		{name: "minimal", config: WorkoutConfig{Sets: 1, WorkTime: 1, RestTime: 0}},
		{name: "typical", config: WorkoutConfig{Sets: 8, WorkTime: 20, RestTime: 10}},
		{name: "zero sets", config: WorkoutConfig{Sets: 0, WorkTime: 20, RestTime: 10}, wantErr: true},
		{name: "zero work", config: WorkoutConfig{Sets: 3, WorkTime: 0, RestTime: 10}, wantErr: true},
		{name: "negative rest", config: WorkoutConfig{Sets: 3, WorkTime: 20, RestTime: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWorkoutConfigDurations(t *testing.T) {
	config := WorkoutConfig{Sets: 3, WorkTime: 30, RestTime: 15}

	assert.Equal(t, 30*time.Second, config.WorkDuration())
	assert.Equal(t, 15*time.Second, config.RestDuration())
	assert.Equal(t, 147*time.Second, config.TotalDuration())
	assert.Zero(t, WorkoutConfig{}.TotalDuration())
}

func TestTotalDurationCountsDelayTicks(t *testing.T) {
	// One tick per second: {1,2,2} completes on tick 8, {2,1,0} on tick 10.
	assert.Equal(t, 8*time.Second, WorkoutConfig{Sets: 1, WorkTime: 2, RestTime: 2}.TotalDuration())
	assert.Equal(t, 10*time.Second, WorkoutConfig{Sets: 2, WorkTime: 1, RestTime: 0}.TotalDuration())
}

func TestPresetConfig(t *testing.T) {
	preset := Preset{ID: "p1", Name: "Tabata", WorkoutConfig: WorkoutConfig{Sets: 8, WorkTime: 20, RestTime: 10}}

	assert.Equal(t, WorkoutConfig{Sets: 8, WorkTime: 20, RestTime: 10}, preset.Config())
}
