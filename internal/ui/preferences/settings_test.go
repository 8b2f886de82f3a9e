package preferences

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, 1.0, settings.Volume)
	assert.NoError(t, settings.Quickstart.Validate())
	assert.Equal(t, color.NRGBA{R: 0x24, G: 0x24, B: 0x24, A: 0xff}, settings.WorkBackground())
	assert.Equal(t, settings.WorkBackground(), settings.RestBackground())
}

func TestParseHexColor(t *testing.T) {
	parsed, err := ParseHexColor("#5d9cec")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x5d, G: 0x9c, B: 0xec, A: 0xff}, parsed)

	parsed, err = ParseHexColor(" e8d44d ")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xe8, G: 0xd4, B: 0x4d, A: 0xff}, parsed)

	_, err = ParseHexColor("#fff")
	assert.Error(t, err)
	_, err = ParseHexColor("#zzzzzz")
	assert.Error(t, err)
}

func TestPhaseBackgrounds(t *testing.T) {
	settings := DefaultSettings()
	settings.WorkColor = "#e8d44d"
	settings.RestColor = "not a colour"

	assert.Equal(t, color.NRGBA{R: 0xe8, G: 0xd4, B: 0x4d, A: 0xff}, settings.WorkBackground())
	assert.Equal(t, color.NRGBA{R: 0x24, G: 0x24, B: 0x24, A: 0xff}, settings.RestBackground())
}

func TestParseWorkout(t *testing.T) {
	config, err := parseWorkout("4", "45", "0")
	require.NoError(t, err)
	assert.Equal(t, 4, config.Sets)
	assert.Equal(t, 45, config.WorkTime)
	assert.Equal(t, 0, config.RestTime)

	_, err = parseWorkout("0", "45", "15")
	assert.Error(t, err)
	_, err = parseWorkout("3", "abc", "15")
	assert.Error(t, err)
	_, err = parseWorkout("3", "45", "-5")
	assert.Error(t, err)
}
