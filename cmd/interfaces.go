package cmd

import (
	"context"

	"github.com/anicoll/esp32-status/internal/pkg/model"
	"github.com/anicoll/esp32-status/internal/pkg/parser"
	"github.com/anicoll/esp32-status/internal/pkg/wifi"
)

// Link brings the network up and reports the device address.
type Link interface {
	Up(ctx context.Context) (string, error)
}

type Radio interface {
	Activate(mode wifi.Mode) error
	ConfigureAP(ssid, password string) error
	ConfigureIP(ip wifi.IPConfig) error
	Connect(ssid, password string) error
	IsConnected() bool
	Address() string
}

type LED interface {
	SetColor(c model.RGB) error
}

type Buzzer interface {
	SetAlarm(on bool) error
}

type Sensor interface {
	Read(ctx context.Context) (model.Reading, error)
}

type Screen interface {
	Render(lines []string) error
}

// Publisher consumes the status snapshots offered by the server.
type Publisher interface {
	Run(ctx context.Context, updates <-chan model.Status) error
}

type StatusController interface {
	Apply(q parser.Query)
	Drive(r model.Reading)
	Status(r model.Reading) model.Status
}
