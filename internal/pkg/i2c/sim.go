package i2c

import "github.com/samber/lo"

// SimBus acknowledges a fixed set of addresses.
type SimBus struct {
	present []uint8
	probes  int
}

func NewSimBus(addrs ...uint8) *SimBus {
	return &SimBus{present: addrs}
}

func (b *SimBus) Probe(addr uint8) bool {
	b.probes++
	return lo.Contains(b.present, addr)
}

func (b *SimBus) Probes() int {
	return b.probes
}
