package model

type Flavor string

func (f Flavor) String() string {
	return string(f)
}

const (
	FlavorRGB   Flavor = "rgb"
	FlavorAlarm Flavor = "alarm"
)

const NoData = "--"

type Unit string

func (u Unit) String() string {
	return string(u)
}

const (
	UnitDegreeC Unit = "°C"
	UnitPercent Unit = "%"
	UnitNone    Unit = ""
)

type (
	TextSensor  string
	TextSensorz []TextSensor
)

const (
	RGBTextSensor    TextSensor = "rgb"
	AlarmTextSensor  TextSensor = "alarm"
	BuzzerTextSensor TextSensor = "buzzer"
)

func (t TextSensor) String() string {
	return string(t)
}

func (ts TextSensorz) HasSlug(slug string) bool {
	for _, t := range ts {
		if t.String() == slug {
			return true
		}
	}
	return false
}

var TextSensors TextSensorz = TextSensorz{
	RGBTextSensor,
	AlarmTextSensor,
	BuzzerTextSensor,
}
