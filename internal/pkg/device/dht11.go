package device

import (
	"context"
	"sync"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

// DHT11 measuring range.
const (
	DHT11MinTemperature = 0
	DHT11MaxTemperature = 50
	DHT11MinHumidity    = 20
	DHT11MaxHumidity    = 90
)

type DHT11 struct {
	mu          sync.Mutex
	temperature int
	humidity    int
	failing     bool
	reads       int
}

func NewDHT11(temperature, humidity int) *DHT11 {
	return &DHT11{temperature: temperature, humidity: humidity}
}

// Read measures temperature and humidity. It returns ErrUnavailable while
// the sensor is failing or when ctx is already done.
func (d *DHT11) Read(ctx context.Context) (model.Reading, error) {
	if err := ctx.Err(); err != nil {
		return model.Unavailable, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reads++
	if d.failing {
		return model.Unavailable, ErrUnavailable
	}
	return model.NewReading(
		clamp(d.temperature, DHT11MinTemperature, DHT11MaxTemperature),
		clamp(d.humidity, DHT11MinHumidity, DHT11MaxHumidity),
	), nil
}

// Set changes the environment the sensor will measure next.
func (d *DHT11) Set(temperature, humidity int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.temperature = temperature
	d.humidity = humidity
}

func (d *DHT11) SetFailing(failing bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failing = failing
}

func (d *DHT11) Reads() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reads
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
