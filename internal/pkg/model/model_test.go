package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReading(t *testing.T) {
	r := NewReading(24, 45)
	assert.Equal(t, "24", r.Temperature())
	assert.Equal(t, "45", r.Humidity())

	assert.Equal(t, NoData, Unavailable.Temperature())
	assert.Equal(t, NoData, Unavailable.Humidity())
}

func TestRGB_String(t *testing.T) {
	assert.Equal(t, "R0 G0 B0", RGB{}.String())
	assert.Equal(t, "R255 G128 B7", RGB{R: 255, G: 128, B: 7}.String())
}

func TestDevice_Identifier(t *testing.T) {
	d := Device{ID: "rgb Bench", Model: "ESP32"}
	assert.Equal(t, "esp32-rgb-bench", d.Identifier())
}

func TestNewDatapoint(t *testing.T) {
	temp := NewDatapoint("Temperature", "22", UnitDegreeC)
	assert.Equal(t, "temperature", temp.Slug)
	assert.False(t, temp.IsText())

	rgb := NewDatapoint("RGB", "R1 G2 B3", UnitNone)
	assert.Equal(t, "rgb", rgb.Slug)
	assert.True(t, rgb.IsText())
}
