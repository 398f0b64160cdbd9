//go:build linux

package i2c

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// i2cSlave is the I2C_SLAVE ioctl from linux/i2c-dev.h.
const i2cSlave = 0x0703

// DevBus probes a bus through the i2c-dev character device.
type DevBus struct {
	fd int
}

// OpenDevBus opens /dev/i2c-<n>.
func OpenDevBus(n int) (*DevBus, error) {
	path := fmt.Sprintf("/dev/i2c-%d", n)
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &DevBus{fd: fd}, nil
}

// Probe addresses the device and reads one byte. Only a device that
// acknowledges its address lets the read through.
func (b *DevBus) Probe(addr uint8) bool {
	if err := unix.IoctlSetInt(b.fd, i2cSlave, int(addr)); err != nil {
		return false
	}
	buf := make([]byte, 1)
	n, err := unix.Read(b.fd, buf)
	return err == nil && n == 1
}

func (b *DevBus) Close() error {
	return unix.Close(b.fd)
}
