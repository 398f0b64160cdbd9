package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

const manufacturer = "Espressif"

func (s *service) RegisterDevice(device *model.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.device = device
	return nil
}

// Write publishes the state of every datapoint. A datapoint's discovery
// config is published, retained, the first time it is seen.
func (s *service) Write(ctx context.Context, data []model.Datapoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.device == nil {
		return ErrNoDevice
	}
	for _, d := range data {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.registerSensor(d); err != nil {
			return err
		}
		if err := s.publishData(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) registerSensor(d model.Datapoint) error {
	if _, exists := s.configured[d.Slug]; exists {
		return nil
	}
	payload, err := json.Marshal(s.registerMsg(d))
	if err != nil {
		return err
	}
	if err := s.wait(s.client.Publish(s.baseTopic(d)+"/config", 1, true, payload)); err != nil {
		return fmt.Errorf("register sensor %s: %w", d.Slug, err)
	}
	s.configured[d.Slug] = struct{}{}
	s.logger.Debug("registered sensor", zap.String("sensor", d.Slug))
	return nil
}

func (s *service) publishData(d model.Datapoint) error {
	payload := map[string]string{
		"value": d.Value,
	}
	if !d.IsText() {
		payload["unit_of_measurement"] = d.Unit.String()
	}
	publishData, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := s.wait(s.client.Publish(s.baseTopic(d)+"/state", 0, false, publishData)); err != nil {
		return fmt.Errorf("publish %s: %w", d.Slug, err)
	}
	return nil
}

func (s *service) baseTopic(d model.Datapoint) string {
	return fmt.Sprintf("homeassistant/sensor/%s/%s", s.device.Identifier(), d.Slug)
}

func (s *service) registerMsg(d model.Datapoint) model.RegisterMessage {
	identifier := s.device.Identifier()
	return model.RegisterMessage{
		Tilda:             s.baseTopic(d),
		Name:              d.Name,
		ID:                fmt.Sprintf("%s_%s", identifier, d.Slug),
		StateTopic:        "~/state",
		ValueTemplate:     "{{ value_json.value }}",
		UnitOfMeasurement: d.Unit.String(),
		Device: model.RegisterDevice{
			Name:         s.device.Name,
			Identifiers:  []string{identifier},
			Model:        s.device.Model,
			Manufacturer: manufacturer,
		},
	}
}
