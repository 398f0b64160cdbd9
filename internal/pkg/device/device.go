// Package device holds the peripheral drivers: a DHT11 temperature and
// humidity sensor, an SSD1306 text display, a NeoPixel RGB LED and a
// buzzer. The drivers here are software stand-ins that keep their state
// in memory so the servers run on any host.
package device

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

var (
	ErrUnavailable = errors.New("sensor reading unavailable")
	ErrOutOfRange  = errors.New("colour component out of range")
)

const (
	minColor = 0
	maxColor = 255
)

// ValidColor reports whether every component of c is in [0,255].
func ValidColor(c model.RGB) bool {
	for _, v := range []int{c.R, c.G, c.B} {
		if v < minColor || v > maxColor {
			return false
		}
	}
	return true
}

type NeoPixel struct {
	mu     sync.Mutex
	color  model.RGB
	writes int
	logger *zap.Logger
}

func NewNeoPixel() *NeoPixel {
	return &NeoPixel{logger: zap.L()}
}

// SetColor writes c to the LED. Components outside [0,255] are rejected.
func (p *NeoPixel) SetColor(c model.RGB) error {
	if !ValidColor(c) {
		return ErrOutOfRange
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.color = c
	p.writes++
	p.logger.Debug("neopixel write", zap.Stringer("color", c))
	return nil
}

func (p *NeoPixel) Color() model.RGB {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.color
}

func (p *NeoPixel) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

type Buzzer struct {
	mu     sync.Mutex
	on     bool
	logger *zap.Logger
}

func NewBuzzer() *Buzzer {
	return &Buzzer{logger: zap.L()}
}

func (b *Buzzer) SetAlarm(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if on != b.on {
		b.logger.Info("buzzer switched", zap.Bool("on", on))
	}
	b.on = on
	return nil
}

func (b *Buzzer) On() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.on
}
