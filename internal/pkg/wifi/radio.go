package wifi

import (
	"errors"
	"net"
	"sync"
)

// DefaultAPAddress is the address a soft access point hands itself.
const DefaultAPAddress = "192.168.4.1"

var (
	ErrInactive   = errors.New("radio is not active")
	ErrBadAddress = errors.New("invalid ip address")
	ErrNoAddress  = errors.New("no usable ipv4 address")
)

// SimRadio associates after a fixed number of IsConnected polls.
type SimRadio struct {
	mu          sync.Mutex
	mode        Mode
	active      bool
	ip          *IPConfig
	joined      bool
	polls       int
	pollsToJoin int
	dhcpAddress string
}

func NewSimRadio(pollsToJoin int, dhcpAddress string) *SimRadio {
	return &SimRadio{pollsToJoin: pollsToJoin, dhcpAddress: dhcpAddress}
}

func (r *SimRadio) Activate(mode Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = mode
	r.active = true
	return nil
}

func (r *SimRadio) ConfigureAP(ssid, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return ErrInactive
	}
	return nil
}

func (r *SimRadio) ConfigureIP(ip IPConfig) error {
	for _, a := range []string{ip.Address, ip.Netmask, ip.Gateway, ip.DNS} {
		if net.ParseIP(a) == nil {
			return ErrBadAddress
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ip = &ip
	return nil
}

func (r *SimRadio) Connect(ssid, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return ErrInactive
	}
	r.joined = true
	return nil
}

func (r *SimRadio) IsConnected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.joined || r.pollsToJoin < 0 {
		return false
	}
	r.polls++
	return r.polls > r.pollsToJoin
}

func (r *SimRadio) Polls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.polls
}

func (r *SimRadio) Address() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.mode == ModeAP:
		return DefaultAPAddress
	case r.ip != nil:
		return r.ip.Address
	}
	return r.dhcpAddress
}

// HostRadio treats the machine's existing network as the link. It cannot
// change addressing; it only reports what the host already has.
type HostRadio struct {
	addrs func() ([]net.Addr, error)
}

func NewHostRadio() *HostRadio {
	return &HostRadio{addrs: net.InterfaceAddrs}
}

func (r *HostRadio) Activate(Mode) error { return nil }

func (r *HostRadio) ConfigureAP(ssid, password string) error { return nil }

func (r *HostRadio) ConfigureIP(IPConfig) error { return nil }

func (r *HostRadio) Connect(ssid, password string) error { return nil }

func (r *HostRadio) IsConnected() bool {
	_, err := r.ipv4()
	return err == nil
}

func (r *HostRadio) Address() string {
	ip, err := r.ipv4()
	if err != nil {
		return ""
	}
	return ip.String()
}

func (r *HostRadio) ipv4() (net.IP, error) {
	addrs, err := r.addrs()
	if err != nil {
		return nil, err
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	return nil, ErrNoAddress
}
