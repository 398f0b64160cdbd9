package display

import (
	"fmt"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

const (
	AlarmOnText     = "ALARM ON!"
	SystemNormal    = "System Normal"
	ButtonPressText = "Button Pressed!"
)

// Lines lays out the status screen shown after each request.
func Lines(st model.Status) []string {
	lines := []string{
		fmt.Sprintf("Temp: %s C", st.Reading.Temperature()),
		fmt.Sprintf("Humidity: %s%%", st.Reading.Humidity()),
		"",
	}
	switch st.Flavor {
	case model.FlavorAlarm:
		if st.Alarm.Enabled {
			return append(lines, AlarmOnText)
		}
		return append(lines, SystemNormal)
	default:
		return append(lines, "RGB: "+st.RGB.String())
	}
}

// ReadingLines lays out the compact screen used by the poll monitor.
func ReadingLines(r model.Reading) []string {
	return []string{
		"",
		"",
		fmt.Sprintf("Temp: %sC", r.Temperature()),
		"",
		fmt.Sprintf("Hum: %s%%", r.Humidity()),
	}
}

func MessageLines(msg string) []string {
	return []string{"", "", msg}
}
