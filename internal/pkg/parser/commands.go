package parser

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

var rgbKeys = []string{"r", "g", "b"}

type RGBCommand struct {
	Status Status
	Color  model.RGB
	Err    error
}

// RGB extracts a colour command. All three of r, g and b must be present
// for the command to apply; a partial set is treated as no command. The
// first conversion error discards the whole command.
func RGB(q Query) RGBCommand {
	if q.Status == Malformed {
		if lo.SomeBy(rgbKeys, q.isMalformedKey) {
			return RGBCommand{Status: Malformed, Err: q.Err}
		}
		return RGBCommand{Status: Absent}
	}
	if q.Status != Present {
		return RGBCommand{Status: Absent}
	}

	if bad, found := lo.Find(rgbKeys, q.isMalformedKey); found {
		return RGBCommand{Status: Malformed, Err: fmt.Errorf("%w: %s", ErrMissingParam, bad)}
	}
	if !lo.EveryBy(rgbKeys, q.Has) {
		return RGBCommand{Status: Absent}
	}

	values := make([]int, 0, len(rgbKeys))
	for _, key := range rgbKeys {
		n, _, err := q.Int(key)
		if err != nil {
			return RGBCommand{Status: Malformed, Err: err}
		}
		values = append(values, n)
	}
	return RGBCommand{
		Status: Present,
		Color:  model.RGB{R: values[0], G: values[1], B: values[2]},
	}
}

type AlarmAction int

const (
	AlarmNone AlarmAction = iota
	AlarmOn
	AlarmOff
)

func (a AlarmAction) String() string {
	switch a {
	case AlarmOn:
		return "on"
	case AlarmOff:
		return "off"
	}
	return "none"
}

// Alarm extracts an alarm command. Unknown values never match.
func Alarm(q Query) AlarmAction {
	v, ok := q.Get("alarm")
	if !ok {
		return AlarmNone
	}
	switch v {
	case "on":
		return AlarmOn
	case "off":
		return AlarmOff
	}
	return AlarmNone
}
