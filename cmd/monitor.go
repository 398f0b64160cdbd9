package cmd

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anicoll/esp32-status/internal/pkg/config"
	"github.com/anicoll/esp32-status/internal/pkg/device"
	"github.com/anicoll/esp32-status/internal/pkg/monitor"
)

// MonitorCommand polls the sensor onto the display. Every line read from
// stdin counts as a button press.
func MonitorCommand(c *cli.Context) error {
	cfg, err := loadConfig(c, "")
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	sensor := device.NewDHT11(cfg.SensorCfg.Temperature, cfg.SensorCfg.Humidity)
	return runMonitor(c.Context, cfg, sensor, device.NewSSD1306(), os.Stdin)
}

func runMonitor(ctx context.Context, cfg *config.Config, sensor Sensor, screen Screen, button io.Reader) error {
	m := monitor.New(sensor, screen, &cfg.MonitorCfg)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return m.Run(ctx)
	})
	// Reading stdin cannot be interrupted, so this goroutine is left to
	// die with the process.
	go watchButton(button, m)

	return eg.Wait()
}

func watchButton(r io.Reader, m *monitor.Monitor) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m.Press()
	}
	if err := scanner.Err(); err != nil {
		zap.L().Warn("button input closed", zap.Error(err))
	}
}
