//go:build !linux

package i2c

import "errors"

var ErrUnsupported = errors.New("i2c-dev buses are only available on linux")

type DevBus struct{}

func OpenDevBus(int) (*DevBus, error) {
	return nil, ErrUnsupported
}

func (b *DevBus) Probe(uint8) bool {
	return false
}

func (b *DevBus) Close() error {
	return nil
}
