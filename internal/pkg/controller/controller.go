package controller

import (
	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/model"
	"github.com/anicoll/esp32-status/internal/pkg/parser"
)

type led interface {
	SetColor(c model.RGB) error
}

type buzzer interface {
	SetAlarm(on bool) error
}

// Thresholds above which an armed alarm sounds.
type Thresholds struct {
	TemperatureC int
	HumidityPct  int
}

var DefaultThresholds = Thresholds{TemperatureC: 30, HumidityPct: 80}

// Exceeded reports whether r is over either threshold. An unavailable
// reading never exceeds.
func (t Thresholds) Exceeded(r model.Reading) bool {
	if !r.Available {
		return false
	}
	return r.TemperatureC > t.TemperatureC || r.HumidityPct > t.HumidityPct
}

// RGB owns the LED colour. It is not safe for concurrent use; the
// connection loop is its only caller.
type RGB struct {
	led    led
	state  model.RGB
	logger *zap.Logger
}

func NewRGB(l led) *RGB {
	return &RGB{led: l, logger: zap.L()}
}

// Apply updates the colour from q and drives the LED with the resulting
// state. The state only changes when the LED accepts the new colour.
func (c *RGB) Apply(q parser.Query) {
	cmd := parser.RGB(q)
	switch cmd.Status {
	case parser.Present:
		if err := c.led.SetColor(cmd.Color); err != nil {
			c.logger.Warn("led rejected colour", zap.Stringer("color", cmd.Color), zap.Error(err))
			break
		}
		c.state = cmd.Color
		c.logger.Info("colour changed", zap.Stringer("color", c.state))
		return
	case parser.Malformed:
		c.logger.Info("ignoring malformed colour command", zap.Error(cmd.Err))
	}
	if err := c.led.SetColor(c.state); err != nil {
		c.logger.Error("failed to drive led", zap.Stringer("color", c.state), zap.Error(err))
	}
}

// Drive is a no-op for the LED, its output does not depend on readings.
func (c *RGB) Drive(model.Reading) {}

func (c *RGB) State() model.RGB {
	return c.state
}

func (c *RGB) Status(r model.Reading) model.Status {
	return model.Status{Flavor: model.FlavorRGB, Reading: r, RGB: c.state}
}

// Alarm owns the armed flag and drives the buzzer from it and the latest
// reading. It is not safe for concurrent use.
type Alarm struct {
	buzzer     buzzer
	thresholds Thresholds
	enabled    bool
	buzzing    bool
	logger     *zap.Logger
}

func NewAlarm(b buzzer, thresholds Thresholds) *Alarm {
	return &Alarm{buzzer: b, thresholds: thresholds, logger: zap.L()}
}

func (c *Alarm) Apply(q parser.Query) {
	switch parser.Alarm(q) {
	case parser.AlarmOn:
		c.enabled = true
	case parser.AlarmOff:
		c.enabled = false
	default:
		return
	}
	c.logger.Info("alarm armed state", zap.Bool("enabled", c.enabled))
}

// Drive switches the buzzer on iff the alarm is armed and r exceeds the
// thresholds. It runs on every request. A buzzer that cannot be driven is
// reported as silent.
func (c *Alarm) Drive(r model.Reading) {
	on := c.enabled && c.thresholds.Exceeded(r)
	if err := c.buzzer.SetAlarm(on); err != nil {
		c.logger.Error("failed to drive buzzer", zap.Bool("on", on), zap.Error(err))
		c.buzzing = false
		return
	}
	c.buzzing = on
}

func (c *Alarm) Enabled() bool {
	return c.enabled
}

func (c *Alarm) Status(r model.Reading) model.Status {
	return model.Status{
		Flavor:  model.FlavorAlarm,
		Reading: r,
		Alarm:   model.Alarm{Enabled: c.enabled, Buzzing: c.buzzing},
	}
}
