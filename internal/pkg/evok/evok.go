// Package evok drives the status actuators through an EVOK websocket API:
// the LED channels as analog outputs and the buzzer as a relay.
package evok

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/config"
	"github.com/anicoll/esp32-status/internal/pkg/device"
	"github.com/anicoll/esp32-status/internal/pkg/model"
)

const (
	analogOutput = "ao"
	relay        = "relay"

	// Analog outputs take volts; a full colour channel is 10V.
	maxVolts = 10.0
)

type Message struct {
	Command string  `json:"cmd,omitempty"`
	Circuit string  `json:"circuit"`
	Device  string  `json:"dev"`
	Value   float64 `json:"value"`
}

type sender interface {
	Send(msg []byte) error
}

type Driver struct {
	conn   sender
	cfg    *config.EvokConfig
	logger *zap.Logger
}

func New(conn sender, cfg *config.EvokConfig) *Driver {
	return &Driver{conn: conn, cfg: cfg, logger: zap.L()}
}

// SetColor sets the three LED channels. Out of range colours are rejected
// before anything is sent.
func (d *Driver) SetColor(c model.RGB) error {
	if !device.ValidColor(c) {
		return fmt.Errorf("%w: %s", device.ErrOutOfRange, c)
	}
	channels := []struct {
		circuit string
		value   int
	}{
		{d.cfg.RedCircuit, c.R},
		{d.cfg.GreenCircuit, c.G},
		{d.cfg.BlueCircuit, c.B},
	}
	for _, ch := range channels {
		if err := d.set(analogOutput, ch.circuit, float64(ch.value)*maxVolts/255); err != nil {
			return err
		}
	}
	d.logger.Debug("led colour set", zap.Stringer("color", c))
	return nil
}

func (d *Driver) SetAlarm(on bool) error {
	value := 0.0
	if on {
		value = 1
	}
	return d.set(relay, d.cfg.RelayCircuit, value)
}

func (d *Driver) set(dev, circuit string, value float64) error {
	payload, err := json.Marshal(Message{Command: "set", Device: dev, Circuit: circuit, Value: value})
	if err != nil {
		return err
	}
	if err := d.conn.Send(payload); err != nil {
		return fmt.Errorf("set %s %s: %w", dev, circuit, err)
	}
	return nil
}
