package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anicoll/esp32-status/internal/pkg/config"
	"github.com/anicoll/esp32-status/internal/pkg/controller"
	"github.com/anicoll/esp32-status/internal/pkg/device"
	"github.com/anicoll/esp32-status/internal/pkg/evok"
	"github.com/anicoll/esp32-status/internal/pkg/model"
	"github.com/anicoll/esp32-status/internal/pkg/mqtt"
	"github.com/anicoll/esp32-status/internal/pkg/publisher"
	"github.com/anicoll/esp32-status/internal/pkg/server"
	"github.com/anicoll/esp32-status/internal/pkg/wifi"
	"github.com/anicoll/esp32-status/pkg/sockets"
)

const (
	simDHCPAddress = "192.168.1.100"
	deviceModel    = "ESP32"
	updateBuffer   = 16
)

var ErrUnknownRadio = errors.New("unknown radio")

// services are the collaborators of a status server.
type services struct {
	led       LED
	buzzer    Buzzer
	sensor    Sensor
	screen    Screen
	publisher Publisher
}

func RGBServerCommand(c *cli.Context) error {
	return serve(c, model.FlavorRGB, wifi.ModeAP)
}

func AlarmServerCommand(c *cli.Context) error {
	return serve(c, model.FlavorAlarm, wifi.ModeStation)
}

func serve(c *cli.Context, flavor model.Flavor, mode wifi.Mode) error {
	cfg, err := loadConfig(c, mode.String())
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	radio, err := newRadio(&cfg.WifiCfg)
	if err != nil {
		return err
	}
	if _, err := bringUp(c.Context, wifi.New(radio, &cfg.WifiCfg), cfg); err != nil {
		return err
	}

	svc, cleanup, err := newServices(c.Context, cfg, flavor)
	if err != nil {
		return err
	}
	defer cleanup()

	return run(c.Context, cfg, flavor, svc)
}

func loadConfig(c *cli.Context, mode string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("listen") {
		cfg.ListenAddr = c.String("listen")
	}
	if err := cfg.WithMode(mode).Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	var err error
	logCfg := zap.NewProductionConfig()
	logCfg.Level, err = zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	logCfg.OutputPaths = []string{"stdout"}
	logCfg.ErrorOutputPaths = []string{"stdout"}
	logCfg.Sampling = nil
	return logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

func newRadio(cfg *config.WifiConfig) (Radio, error) {
	switch cfg.Radio {
	case "sim":
		return wifi.NewSimRadio(cfg.SimPollsToJoin, simDHCPAddress), nil
	case "host":
		return wifi.NewHostRadio(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRadio, cfg.Radio)
}

// bringUp starts the network link and tells the user where to find the
// page.
func bringUp(ctx context.Context, link Link, cfg *config.Config) (string, error) {
	addr, err := link.Up(ctx)
	if err != nil {
		return "", fmt.Errorf("wifi: %w", err)
	}
	_, port, _ := net.SplitHostPort(cfg.ListenAddr)
	url := "http://" + addr
	if port != "" && port != "80" {
		url = "http://" + net.JoinHostPort(addr, port)
	}
	zap.L().Info("status page ready", zap.String("ssid", cfg.WifiCfg.SSID), zap.String("url", url))
	return url, nil
}

// newServices picks the actuators and telemetry from cfg. EVOK replaces the
// on-board LED and buzzer when EVOK_URL is set; MQTT telemetry is enabled by
// MQTT_HOST.
func newServices(ctx context.Context, cfg *config.Config, flavor model.Flavor) (*services, func(), error) {
	svc := &services{
		sensor: device.NewDHT11(cfg.SensorCfg.Temperature, cfg.SensorCfg.Humidity),
		screen: device.NewSSD1306(),
	}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.EvokCfg.URL != "" {
		conn := sockets.New(sockets.OnError(func(err error) {
			zap.L().Error("evok connection error", zap.Error(err))
		}))
		if err := conn.Dial(ctx, cfg.EvokCfg.URL); err != nil {
			return nil, nil, fmt.Errorf("evok: %w", err)
		}
		closers = append(closers, func() { _ = conn.Close() })
		drv := evok.New(conn, &cfg.EvokCfg)
		svc.led, svc.buzzer = drv, drv
	} else {
		svc.led, svc.buzzer = device.NewNeoPixel(), device.NewBuzzer()
	}

	if cfg.MqttCfg.Host != "" {
		m := mqtt.New(mqtt.NewClient(&cfg.MqttCfg), cfg.MqttCfg.Timeout)
		if err := m.Connect(); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("mqtt: %w", err)
		}
		closers = append(closers, m.Close)
		registry := publisher.New(newDevice(cfg, flavor))
		if err := registry.Register("mqtt", m); err != nil {
			cleanup()
			return nil, nil, err
		}
		svc.publisher = registry
	}
	return svc, cleanup, nil
}

func newDevice(cfg *config.Config, flavor model.Flavor) *model.Device {
	id, err := os.Hostname()
	if err != nil || id == "" {
		id = "status"
	}
	return &model.Device{
		ID:    flavor.String() + " " + id,
		Model: deviceModel,
		Name:  cfg.MqttCfg.DeviceName,
	}
}

func newController(flavor model.Flavor, svc *services, cfg *config.Config) (StatusController, error) {
	switch flavor {
	case model.FlavorRGB:
		return controller.NewRGB(svc.led), nil
	case model.FlavorAlarm:
		return controller.NewAlarm(svc.buzzer, controller.Thresholds{
			TemperatureC: cfg.AlarmCfg.TemperatureC,
			HumidityPct:  cfg.AlarmCfg.HumidityPct,
		}), nil
	}
	return nil, fmt.Errorf("unknown flavor %q", flavor)
}

func run(ctx context.Context, cfg *config.Config, flavor model.Flavor, svc *services) error {
	eg, ctx := errgroup.WithContext(ctx)

	ctrl, err := newController(flavor, svc, cfg)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
	}

	opts := []server.Option{
		server.WithBufferSize(cfg.BufferSize),
		server.WithReadTimeout(cfg.ReadTimeout),
	}
	if svc.publisher != nil {
		updates := make(chan model.Status, updateBuffer)
		opts = append(opts, server.WithUpdates(updates))
		eg.Go(func() error {
			return svc.publisher.Run(ctx, updates)
		})
	}
	srv := server.New(ctrl, svc.sensor, svc.screen, opts...)
	eg.Go(func() error {
		return srv.Serve(ctx, ln)
	})

	return eg.Wait()
}
