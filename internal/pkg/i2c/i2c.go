// Package i2c finds the devices answering on an I2C bus.
package i2c

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// The 7-bit address range left after the reserved blocks at both ends.
const (
	FirstAddress uint8 = 0x08
	LastAddress  uint8 = 0x77
)

type bus interface {
	Probe(addr uint8) bool
}

// Scan probes every usable address on b and returns the ones that
// acknowledged, in ascending order.
func Scan(ctx context.Context, b bus) ([]uint8, error) {
	logger := zap.L()
	logger.Info("scanning for i2c devices")

	found := []uint8{}
	for addr := FirstAddress; addr <= LastAddress; addr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if b.Probe(addr) {
			found = append(found, addr)
		}
	}

	if len(found) == 0 {
		logger.Warn("no i2c devices found, check wiring")
		return found, nil
	}
	logger.Info("i2c devices found", zap.Strings("addresses", Format(found)))
	return found, nil
}

// Format renders addresses the way datasheets print them, e.g. "0x3c".
func Format(addrs []uint8) []string {
	return lo.Map(addrs, func(a uint8, _ int) string {
		return fmt.Sprintf("0x%02x", a)
	})
}
