package model

import "fmt"

// Reading is one temperature/humidity measurement. A zero Reading is the
// read-failed sentinel, see Unavailable.
type Reading struct {
	TemperatureC int  `json:"temperature_c"`
	HumidityPct  int  `json:"humidity_pct"`
	Available    bool `json:"available"`
}

// Unavailable is substituted whenever the sensor could not be read.
var Unavailable = Reading{}

func NewReading(temperatureC, humidityPct int) Reading {
	return Reading{TemperatureC: temperatureC, HumidityPct: humidityPct, Available: true}
}

// Temperature returns the temperature as text, or "--" when unavailable.
func (r Reading) Temperature() string {
	if !r.Available {
		return NoData
	}
	return fmt.Sprintf("%d", r.TemperatureC)
}

// Humidity returns the humidity as text, or "--" when unavailable.
func (r Reading) Humidity() string {
	if !r.Available {
		return NoData
	}
	return fmt.Sprintf("%d", r.HumidityPct)
}

type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

func (c RGB) String() string {
	return fmt.Sprintf("R%d G%d B%d", c.R, c.G, c.B)
}

type Alarm struct {
	Enabled bool `json:"enabled"`
	Buzzing bool `json:"buzzing"`
}

// Status is the snapshot of one handled request: the reading taken during
// the request and the actuator state after the command was applied.
type Status struct {
	Flavor  Flavor  `json:"flavor"`
	Reading Reading `json:"reading"`
	RGB     RGB     `json:"rgb"`
	Alarm   Alarm   `json:"alarm"`
}
