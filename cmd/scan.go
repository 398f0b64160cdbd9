package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/config"
	"github.com/anicoll/esp32-status/internal/pkg/i2c"
)

type bus interface {
	Probe(addr uint8) bool
}

// ScanCommand lists the devices answering on the configured I2C bus.
func ScanCommand(c *cli.Context) error {
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

	b, closeBus, err := newBus(&cfg.I2CCfg)
	if err != nil {
		return err
	}
	defer closeBus()

	return scan(c.Context, b, c.App.Writer)
}

// newBus returns the simulated bus for "sim" and /dev/i2c-N for a bus
// number N.
func newBus(cfg *config.I2CConfig) (bus, func(), error) {
	if cfg.Bus == "sim" {
		return i2c.NewSimBus(cfg.SimAddresses...), func() {}, nil
	}
	n, err := strconv.Atoi(cfg.Bus)
	if err != nil {
		return nil, nil, fmt.Errorf("I2C_BUS must be \"sim\" or a bus number: %w", err)
	}
	b, err := i2c.OpenDevBus(n)
	if err != nil {
		return nil, nil, err
	}
	return b, func() { _ = b.Close() }, nil
}

func scan(ctx context.Context, b bus, w io.Writer) error {
	found, err := i2c.Scan(ctx, b)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		_, err = fmt.Fprintln(w, "No I2C devices found. Check wiring!")
		return err
	}
	_, err = fmt.Fprintf(w, "I2C devices found: %s\n", strings.Join(i2c.Format(found), " "))
	return err
}
