// Package publisher fans status snapshots out to telemetry sinks.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

var (
	errAlreadyRegistered = errors.New("publisher already registered")
	errPublishFailed     = errors.New("every publisher failed")
)

const (
	onValue  = "on"
	offValue = "off"
)

type publisher interface {
	Write(ctx context.Context, data []model.Datapoint) error
	RegisterDevice(device *model.Device) error
}

type Registry struct {
	mu         sync.Mutex
	publishers map[string]publisher
	device     *model.Device
	sensors    sync.Map
	logger     *zap.Logger
}

func New(device *model.Device) *Registry {
	return &Registry{
		publishers: make(map[string]publisher),
		device:     device,
		logger:     zap.L(),
	}
}

// Register adds p under name and announces the device to it.
func (r *Registry) Register(name string, p publisher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.publishers[name]; ok {
		return fmt.Errorf("%w: %s", errAlreadyRegistered, name)
	}
	if err := p.RegisterDevice(r.device); err != nil {
		return fmt.Errorf("register device with %s: %w", name, err)
	}
	r.publishers[name] = p
	r.logger.Debug("registered device", zap.String("device", r.device.Identifier()), zap.String("publisher", name))
	return nil
}

// Publish writes the datapoints of st that changed since the last
// delivered publish to every registered publisher. A failing publisher is
// logged and skipped. Values are only remembered once at least one
// publisher accepted them, so a full outage is retried with the next
// status.
func (r *Registry) Publish(ctx context.Context, st model.Status) error {
	data := make([]model.Datapoint, 0)
	for _, dp := range Datapoints(st) {
		if r.shouldUpdate(dp.Slug, dp.Value) {
			data = append(data, dp)
		}
	}
	if len(data) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.publishers) == 0 {
		return nil
	}
	errs := make([]error, 0)
	for name, p := range r.publishers {
		if err := p.Write(ctx, data); err != nil {
			r.logger.Error("failed to publish data", zap.Error(err), zap.String("publisher", name))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		r.logger.Debug("updated sensors", zap.Int("count", len(data)), zap.String("publisher", name))
	}
	if len(errs) == len(r.publishers) {
		return fmt.Errorf("%w: %w", errPublishFailed, errors.Join(errs...))
	}
	for _, dp := range data {
		r.commit(dp.Slug, dp.Value)
	}
	return nil
}

// Run publishes every status received on updates until ctx is done. A
// failed publish is logged; the next status retries it.
func (r *Registry) Run(ctx context.Context, updates <-chan model.Status) error {
	for {
		select {
		case st := <-updates:
			if err := r.Publish(ctx, st); err != nil {
				r.logger.Warn("status not published", zap.Error(err))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Datapoints flattens a status into published values. Measurements are
// left out while the sensor is unavailable.
func Datapoints(st model.Status) []model.Datapoint {
	data := make([]model.Datapoint, 0, 4)
	if st.Reading.Available {
		data = append(data,
			model.NewDatapoint("Temperature", st.Reading.Temperature(), model.UnitDegreeC),
			model.NewDatapoint("Humidity", st.Reading.Humidity(), model.UnitPercent),
		)
	}
	switch st.Flavor {
	case model.FlavorAlarm:
		data = append(data,
			model.NewDatapoint("Alarm", onOff(st.Alarm.Enabled), model.UnitNone),
			model.NewDatapoint("Buzzer", onOff(st.Alarm.Buzzing), model.UnitNone),
		)
	case model.FlavorRGB:
		data = append(data, model.NewDatapoint("RGB", st.RGB.String(), model.UnitNone))
	}
	return data
}

func onOff(b bool) string {
	if b {
		return onValue
	}
	return offValue
}

func (r *Registry) shouldUpdate(slug, newValue string) bool {
	oldValue, exists := r.sensors.Load(slug)
	return !exists || !strings.EqualFold(newValue, oldValue.(string))
}

func (r *Registry) commit(slug, value string) {
	if _, loaded := r.sensors.Swap(slug, value); !loaded {
		r.logger.Info("configured sensor", zap.String("device", r.device.Identifier()), zap.String("sensor", slug), zap.String("value", value))
	}
}
