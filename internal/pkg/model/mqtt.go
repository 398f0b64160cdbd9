package model

import "github.com/gosimple/slug"

type RegisterDevice struct {
	Name         string   `json:"name"`
	Identifiers  []string `json:"identifiers"`
	Model        string   `json:"model"`
	Manufacturer string   `json:"manufacturer"`
}

// RegisterMessage is a Home Assistant MQTT discovery payload.
type RegisterMessage struct {
	Tilda             string         `json:"~"`
	Name              string         `json:"name"`
	ID                string         `json:"unique_id"`
	StateTopic        string         `json:"state_topic"`
	ValueTemplate     string         `json:"value_template"`
	UnitOfMeasurement string         `json:"unit_of_measurement,omitempty"`
	Device            RegisterDevice `json:"device"`
}

type Device struct {
	ID    string
	Model string
	Name  string
}

// Identifier is the topic-safe name of the device, e.g. "esp32-rgb-1a2b".
func (d Device) Identifier() string {
	return slug.Make(d.Model + " " + d.ID)
}

// Datapoint is one published value of a device.
type Datapoint struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Value string `json:"value"`
	Unit  Unit   `json:"unit"`
}

func NewDatapoint(name, value string, unit Unit) Datapoint {
	return Datapoint{Name: name, Slug: slug.Make(name), Value: value, Unit: unit}
}

// IsText reports whether the datapoint carries text rather than a
// measurement.
func (d Datapoint) IsText() bool {
	return TextSensors.HasSlug(d.Slug)
}
